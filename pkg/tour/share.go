package tour

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BundleFormat 当前导出包格式版本
const BundleFormat = 1

// ShareScheme 分享链接协议名
const ShareScheme = "virtushot"

// Bundle 漫游导出包：自包含的 YAML 文档，可在设备间传递后导入
type Bundle struct {
	Format   int       `yaml:"format"`
	Exported time.Time `yaml:"exported"`
	Rev      string    `yaml:"rev"`
	Tour     *Tour     `yaml:"tour"`
}

// ExportBundle 把漫游打包为可分享的 YAML 字节流
func ExportBundle(t *Tour) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to export invalid tour: %w", err)
	}

	raw, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tour for export: %w", err)
	}

	b := Bundle{
		Format:   BundleFormat,
		Exported: time.Now().UTC(),
		Rev:      Revision(raw),
		Tour:     t,
	}
	data, err := yaml.Marshal(&b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bundle: %w", err)
	}
	return data, nil
}

// ImportBundle 解析导出包并校验其中的漫游
func ImportBundle(data []byte) (*Tour, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}
	if b.Format != BundleFormat {
		return nil, fmt.Errorf("unsupported bundle format %d (expected %d)", b.Format, BundleFormat)
	}
	if b.Tour == nil {
		return nil, fmt.Errorf("bundle contains no tour")
	}
	if err := b.Tour.Validate(); err != nil {
		return nil, fmt.Errorf("bundle tour is invalid: %w", err)
	}
	return b.Tour, nil
}

// ShareLink 生成漫游的分享链接，如 virtushot://tour/tour-3fa9c2d1?rev=ab12cd34ef56
func ShareLink(id, rev string) string {
	u := url.URL{
		Scheme: ShareScheme,
		Host:   "tour",
		Path:   "/" + id,
	}
	if rev != "" {
		u.RawQuery = url.Values{"rev": {rev}}.Encode()
	}
	return u.String()
}

// ParseShareLink 解析分享链接，返回漫游ID与修订哈希
func ParseShareLink(raw string) (id, rev string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid share link: %w", err)
	}
	if u.Scheme != ShareScheme {
		return "", "", fmt.Errorf("invalid share link scheme %q (expected %q)", u.Scheme, ShareScheme)
	}
	if u.Host != "tour" {
		return "", "", fmt.Errorf("invalid share link host %q", u.Host)
	}
	id = strings.TrimPrefix(u.Path, "/")
	if id == "" {
		return "", "", fmt.Errorf("share link is missing the tour id")
	}
	return id, u.Query().Get("rev"), nil
}
