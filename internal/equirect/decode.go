// Package equirect 获取并解码等距柱状投影（equirectangular）全景图。
//
// 全景图引用（TextureRef）支持四种形式：
//   - "placeholder:<seed>"：程序化生成的占位全景图（无需任何素材文件）
//   - "data:image/...;base64,..."：内嵌的 data URL
//   - "http://..." / "https://..."：远程图片
//   - "file:<path>" 或裸路径：本地文件
package equirect

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"

	// 注册 JPEG/PNG 解码器
	_ "image/jpeg"
	_ "image/png"
)

// maxImageBytes 单张全景图的字节上限，防止异常引用耗尽内存
const maxImageBytes = 64 << 20

// Resolve 按引用获取并解码全景图。
// ctx 控制网络获取的取消与超时；本地与程序化引用立即返回。
func Resolve(ctx context.Context, ref string) (image.Image, error) {
	switch {
	case strings.HasPrefix(ref, "placeholder:"):
		return Placeholder(strings.TrimPrefix(ref, "placeholder:")), nil

	case strings.HasPrefix(ref, "data:"):
		return resolveDataURL(ref)

	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return resolveHTTP(ctx, ref)

	case strings.HasPrefix(ref, "file:"):
		return resolveFile(strings.TrimPrefix(ref, "file:"))

	case ref == "":
		return nil, fmt.Errorf("empty texture reference")

	default:
		// 裸路径按本地文件处理
		return resolveFile(ref)
	}
}

func decodeBytes(data []byte, ref string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ref, err)
	}
	return img, nil
}

func resolveDataURL(ref string) (image.Image, error) {
	// data:[mediatype][;base64],payload
	comma := strings.IndexByte(ref, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URL (no comma)")
	}
	meta, payload := ref[len("data:"):comma], ref[comma+1:]

	var data []byte
	var err error
	if strings.HasSuffix(meta, ";base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URL payload: %w", err)
		}
	} else {
		data = []byte(payload)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("data URL payload exceeds %d bytes", maxImageBytes)
	}
	return decodeBytes(data, "data URL")
}

func resolveHTTP(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("fetch %s: image exceeds %d bytes", url, maxImageBytes)
	}
	return decodeBytes(data, url)
}

func resolveFile(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > maxImageBytes {
		return nil, fmt.Errorf("%s: image exceeds %d bytes", path, maxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decodeBytes(data, path)
}
