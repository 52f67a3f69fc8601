// placeholder 把程序化生成的占位全景渲染成 PNG 文件。
//
// 占位图和应用内 "placeholder:<seed>" 引用解析出的画面完全一致，
// 方便在没有实拍素材时制作文档截图或离线检查配色。
//
// 用法:
//
//	placeholder -seed lobby -out lobby.png
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/jupdesignstudio/VirtuShot/internal/equirect"
)

func main() {
	seed := flag.String("seed", "demo", "占位图种子，相同种子产生相同画面")
	out := flag.String("out", "", "输出 PNG 路径，默认 <seed>.png")
	flag.Parse()

	path := *out
	if path == "" {
		path = *seed + ".png"
	}

	img := equirect.Placeholder(*seed)

	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("创建文件失败: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Fatalf("编码 PNG 失败: %v", err)
	}

	fmt.Printf("占位全景已写出: %s (%dx%d)\n", path, equirect.PlaceholderWidth, equirect.PlaceholderHeight)
}
