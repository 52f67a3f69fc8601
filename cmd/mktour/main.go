// mktour 从一个全景图目录批量生成漫游导出包。
//
// 目录下的 jpg/png 按文件名排序，每张图成为一个场景，第一张为入口。
// 生成的包可以直接放进应用导入，也可以用 -chain 预先把相邻场景
// 用往返热点串起来，得到一条可以直接行走的路线。
//
// 用法:
//
//	mktour -dir ./panos -title "Show Flat 12F" -out flat.vst.yaml -chain
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chewxy/math32"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/geom"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"

	_ "image/jpeg"
	_ "image/png"
)

func main() {
	dir := flag.String("dir", "", "全景图目录（必填）")
	title := flag.String("title", "Untitled Tour", "漫游标题")
	out := flag.String("out", "tour.vst.yaml", "输出包路径")
	chain := flag.Bool("chain", false, "为相邻场景生成往返热点")
	verify := flag.Bool("verify", false, "读取图片头并检查 2:1 等距柱状宽高比")
	flag.Parse()

	if *dir == "" {
		fmt.Println("用法: mktour -dir <全景图目录> [-title 标题] [-out 输出路径] [-chain] [-verify]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	t, err := buildTour(*dir, *title, *chain, *verify)
	if err != nil {
		log.Fatalf("生成失败: %v", err)
	}

	data, err := tour.ExportBundle(t)
	if err != nil {
		log.Fatalf("打包失败: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("写入失败: %v", err)
	}

	fmt.Printf("漫游已生成: %s\n", *out)
	fmt.Printf("  标题: %s\n", t.Title)
	fmt.Printf("  场景: %d 个，入口 %s\n", len(t.Scenes), t.StartID)
}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// buildTour 扫描目录并组装漫游，场景顺序即文件名顺序
func buildTour(dir, title string, chain, verify bool) (*tour.Tour, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("目录 %s 中没有 jpg/png 全景图", dir)
	}

	t := tour.New(title)
	for _, name := range files {
		abs, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("解析路径 %s 失败: %w", name, err)
		}
		if verify {
			if err := verifyPanorama(abs); err != nil {
				fmt.Printf("警告: %s: %v\n", name, err)
			}
		}
		t.AddScene(&tour.Scene{
			ID:         tour.NewID("scn"),
			Name:       sceneName(name),
			TextureRef: "file:" + abs,
		})
	}

	if chain {
		linkScenes(t)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("生成的漫游无效: %w", err)
	}
	return t, nil
}

// sceneName 把文件名清理成场景名，如 "02_living-room.jpg" -> "02 living room"
func sceneName(file string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.TrimSpace(base)
}

// verifyPanorama 只解码图片头，检查尺寸是否接近等距柱状投影的 2:1
func verifyPanorama(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("无法解码图片头: %w", err)
	}
	if cfg.Height == 0 || cfg.Width != cfg.Height*2 {
		return fmt.Errorf("宽高 %dx%d 不是 2:1，渲染时可能出现拉伸", cfg.Width, cfg.Height)
	}
	return nil
}

// linkScenes 按扫描顺序为每个场景放置"前进/后退"热点，首尾相接
func linkScenes(t *tour.Tour) {
	n := len(t.Scenes)
	if n < 2 {
		return
	}
	for i, sc := range t.Scenes {
		next := t.Scenes[(i+1)%n]
		prev := t.Scenes[(i-1+n)%n]

		sc.AddHotspot(&tour.Hotspot{
			ID:       tour.NewID("hs"),
			Position: hotspotAt(30, -8),
			TargetID: next.ID,
			Label:    next.Name,
		})
		if prev != next {
			sc.AddHotspot(&tour.Hotspot{
				ID:       tour.NewID("hs"),
				Position: hotspotAt(-150, -8),
				TargetID: prev.ID,
				Label:    prev.Name,
			})
		}
	}
}

// hotspotAt 把 yaw/pitch（度）换算成球面上的热点位置
func hotspotAt(yawDeg, pitchDeg float32) geom.Vec3 {
	const degToRad = math32.Pi / 180
	return geom.DirFromAngles(yawDeg*degToRad, pitchDeg*degToRad).Scale(config.SphereRadius)
}
