package screens

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// LoadingScreen 启动画面
// 展示标题与进度条，首次启动时向空存储写入示例漫游，
// 进度走满或用户点击后切换到画廊。
type LoadingScreen struct {
	deps *Deps

	elapsed  float64
	progress float64
	complete bool
	seeded   bool
}

// NewLoadingScreen 创建启动画面
func NewLoadingScreen(deps *Deps) *LoadingScreen {
	return &LoadingScreen{deps: deps}
}

// Update 推进进度并在完成后等待切换
func (s *LoadingScreen) Update(deltaTime float64) error {
	s.elapsed += deltaTime

	if !s.seeded {
		s.seeded = true
		s.seedSampleTour()
	}

	if !s.complete {
		s.progress = s.elapsed / config.SplashSeconds
		if s.progress >= 1 {
			s.progress = 1
			s.complete = true
		}
	}

	// 完成后自动进入画廊；点击或回车可提前跳过
	skip := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
	if s.complete || skip {
		s.deps.Screens.SwitchTo(NewGalleryScreen(s.deps))
	}
	return nil
}

// seedSampleTour 存储为空时写入内置示例漫游，让应用开箱即有内容
func (s *LoadingScreen) seedSampleTour() {
	if len(s.deps.Store.List()) > 0 {
		return
	}
	sample := tour.NewSample()
	if _, err := s.deps.Store.Save(sample); err != nil {
		log.Printf("[Loading] 写入示例漫游失败: %v", err)
		return
	}
	log.Printf("[Loading] 存储为空，已写入示例漫游 %s", sample.ID)
}

// Draw 绘制标题与进度条
func (s *LoadingScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 18, 24, 255})

	w := float64(config.WindowWidth)
	h := float64(config.WindowHeight)

	titleFace := s.deps.Fonts.Face(config.TitleFontSize)
	title := "VirtuShot"
	tw, _ := text.Measure(title, titleFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((w-tw)/2, h*0.36)
	op.ColorScale.ScaleWithColor(color.RGBA{230, 234, 240, 255})
	text.Draw(screen, title, titleFace, op)

	subFace := s.deps.Fonts.Face(config.HUDFontSize)
	sub := "Panorama tour maker"
	sw, _ := text.Measure(sub, subFace, 0)
	op = &text.DrawOptions{}
	op.GeoM.Translate((w-sw)/2, h*0.36+config.TitleFontSize+10)
	op.ColorScale.ScaleWithColor(color.RGBA{140, 148, 160, 255})
	text.Draw(screen, sub, subFace, op)

	// 进度条
	barW := float32(360)
	barH := float32(8)
	barX := float32(w/2) - barW/2
	barY := float32(h * 0.58)
	vector.DrawFilledRect(screen, barX, barY, barW, barH, color.RGBA{40, 44, 54, 255}, true)
	vector.DrawFilledRect(screen, barX, barY, barW*float32(s.progress), barH, color.RGBA{79, 195, 247, 255}, true)
}
