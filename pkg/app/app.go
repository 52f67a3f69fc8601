// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/screens"
	"github.com/jupdesignstudio/VirtuShot/pkg/settings"
	"github.com/jupdesignstudio/VirtuShot/pkg/sfx"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// TourID 启动时直接打开的漫游（如 "tour-sample"），为空则进入画廊
	TourID string
	// Editor 以编辑模式打开 TourID 指定的漫游
	Editor bool
	// Fullscreen 启动时进入全屏（与用户设置做或运算）
	Fullscreen bool
	// Mobile 移动端模式：禁用编辑器入口，只做漫游
	Mobile bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	screens  *screens.Manager
	settings *settings.Manager
	verbose  bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 打开本地数据目录；失败时降级为纯内存模式，不影响漫游
	gdataManager, err := gdata.Open(gdata.Config{AppName: "virtushot"})
	if err != nil {
		log.Printf("[App] Warning: failed to open data dir: %v (running without persistence)", err)
		gdataManager = nil
	}

	settingsManager := settings.NewManager(gdataManager)
	store := tour.NewStore(gdataManager)

	fonts, err := screens.NewFontCache()
	if err != nil {
		return nil, fmt.Errorf("字体初始化失败: %w", err)
	}

	mixer := sfx.NewMixer()
	st := settingsManager.Get()
	mixer.SetVolume(st.SoundVolume)
	mixer.SetEnabled(st.SoundEnabled)

	manager := screens.NewManager()
	deps := &screens.Deps{
		Screens:  manager,
		Store:    store,
		Settings: settingsManager,
		Sound:    mixer,
		Fonts:    fonts,
		Mobile:   cfg.Mobile,
	}

	if cfg.Fullscreen || st.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 确定启动画面
	if cfg.TourID != "" {
		t, err := store.Load(cfg.TourID)
		if err != nil {
			return nil, fmt.Errorf("漫游加载失败 %s: %w", cfg.TourID, err)
		}
		editor := cfg.Editor && !cfg.Mobile
		ts, err := screens.NewTourScreen(deps, t, editor)
		if err != nil {
			return nil, fmt.Errorf("漫游画面创建失败: %w", err)
		}
		log.Printf("[App] 直接打开漫游 %s (editor=%v)", cfg.TourID, editor)
		manager.SwitchTo(ts)
	} else {
		manager.SwitchTo(screens.NewLoadingScreen(deps))
	}

	return &App{
		screens:  manager,
		settings: settingsManager,
		verbose:  cfg.Verbose,
	}, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口即将关闭：给当前画面一次保存机会，再结束主循环
	if ebiten.IsWindowBeingClosed() {
		a.saveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	return a.screens.Update(deltaTime)
}

// saveOnExit 退出前让当前画面落盘，并保存用户设置
func (a *App) saveOnExit() {
	if s, ok := a.screens.Current().(screens.Saveable); ok {
		if s.SaveOnExit() {
			log.Printf("[App] 退出前画面状态已保存")
		}
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] 退出前保存设置失败: %v", err)
	}
}

// Draw 绘制应用画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.screens.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回应用的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Screens 返回画面管理器
func (a *App) Screens() *screens.Manager {
	return a.screens
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
