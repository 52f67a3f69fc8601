// VirtuShot 桌面端入口
//
// 用法：
//
//	virtushot                      # 画廊启动
//	virtushot -tour tour-sample    # 直接打开指定漫游
//	virtushot -tour tour-x -editor # 以编辑模式打开
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jupdesignstudio/VirtuShot/pkg/app"
	"github.com/jupdesignstudio/VirtuShot/pkg/config"
)

func main() {
	tourID := flag.String("tour", "", "启动时直接打开的漫游ID")
	editor := flag.Bool("editor", false, "以编辑模式打开 -tour 指定的漫游")
	fullscreen := flag.Bool("fullscreen", false, "启动时进入全屏")
	verbose := flag.Bool("verbose", false, "输出详细日志")
	flag.Parse()

	virtuShot, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		TourID:     *tourID,
		Editor:     *editor,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 关闭请求交给 App.Update 处理，退出前保存编辑中的漫游
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(virtuShot); err != nil {
		log.Fatal(err)
	}
}
