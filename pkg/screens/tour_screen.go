package screens

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/engine"
	"github.com/jupdesignstudio/VirtuShot/pkg/sfx"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

const (
	tourToastSeconds = 3.0
	tourToastFade    = 0.5 // 最后这段时间内淡出
)

// TourScreen 漫游画面，承载全景引擎
// 查看模式只负责漫游；编辑模式叠加侧边栏，支持热点与场景编辑。
// Tab 随时切换两种模式，Esc 返回画廊（编辑模式下先保存改动）。
type TourScreen struct {
	deps *Deps
	tour *tour.Tour
	eng  *engine.Engine

	editor bool
	dirty  bool

	sidebar *sidebar

	sceneName  string
	toast      string
	toastTimer float64
}

// NewTourScreen 创建漫游画面并请求入口场景
func NewTourScreen(deps *Deps, t *tour.Tour, editor bool) (*TourScreen, error) {
	s := &TourScreen{
		deps:   deps,
		tour:   t,
		editor: editor,
	}

	viewH := config.WindowHeight - config.HUDBarHeight
	eng, err := engine.New(t, s.currentMode(), config.WindowWidth, viewH)
	if err != nil {
		return nil, fmt.Errorf("failed to create panorama engine: %w", err)
	}
	s.eng = eng

	st := deps.Settings.Get()
	eng.SetLabelFont(deps.Fonts.Face(14))
	eng.SetInvertPitch(st.InvertDragPitch)
	eng.SetTextureCacheSize(st.TextureCacheSize)
	eng.OnSceneShown = func(sc *tour.Scene) {
		s.sceneName = sc.Name
	}
	eng.OnLoadError = func(sceneID string, err error) {
		log.Printf("[TourScreen] 场景加载失败 %s: %v", sceneID, err)
		s.showToast("Failed to load scene")
		s.deps.Sound.Play(sfx.Error)
	}

	s.sidebar = newSidebar(s)

	if !eng.RequestScene(t.StartID) {
		eng.Close()
		return nil, fmt.Errorf("tour %s has no usable start scene %q", t.ID, t.StartID)
	}
	return s, nil
}

// currentMode 按当前编辑开关装配引擎交互模式
func (s *TourScreen) currentMode() engine.Mode {
	if s.editor {
		return engine.EditorMode{
			OnPlace: func(h *tour.Hotspot) {
				s.dirty = true
				s.deps.Sound.Play(sfx.Confirm)
				s.sidebar.focusHotspot(h)
			},
			OnSelect: func(h *tour.Hotspot) {
				s.deps.Sound.Play(sfx.Click)
				s.sidebar.focusHotspot(h)
			},
			OnDelete: func(id string) {
				s.dirty = true
				s.deps.Sound.Play(sfx.Cancel)
				s.showToast("Hotspot removed")
			},
		}
	}
	return engine.ViewerMode{
		OnNavigate: func(h *tour.Hotspot) {
			if s.eng.RequestScene(h.TargetID) {
				s.deps.Sound.Play(sfx.Whoosh)
			}
		},
	}
}

// Update 处理快捷键、采集输入并推进引擎
func (s *TourScreen) Update(deltaTime float64) error {
	if s.toastTimer > 0 {
		s.toastTimer -= deltaTime
		if s.toastTimer <= 0 {
			s.toast = ""
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.toggleMode()
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.save()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.share()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch {
		case s.eng.Pending() != nil:
			s.eng.CancelPending()
			s.deps.Sound.Play(sfx.Cancel)
		case s.sidebar.typing():
			s.sidebar.blur()
		default:
			s.leave()
			return nil
		}
	}

	in := GatherInput(s.deps.Settings.Get().Keys)
	if s.sidebar.typing() {
		// 打字时按键归文本框，不再驱动相机
		in = maskKeys(in)
	}
	cx, cy := in.CursorX, in.CursorY
	if s.editor && s.sidebar.contains(cx, cy) {
		in = maskPointer(in)
	}
	if cy >= float64(config.WindowHeight-config.HUDBarHeight) {
		in = maskPointer(in)
	}

	s.eng.Update(in, deltaTime)

	if s.editor {
		s.sidebar.update(deltaTime)
	}
	return nil
}

// toggleMode 在编辑与漫游模式之间切换
func (s *TourScreen) toggleMode() {
	s.editor = !s.editor
	s.eng.SetMode(s.currentMode())
	s.deps.Sound.Play(sfx.Click)
	if s.editor {
		s.showToast("Editor mode")
	} else {
		s.sidebar.blur()
		s.showToast("Viewer mode")
	}
	log.Printf("[TourScreen] 模式切换: editor=%v", s.editor)
}

// save 保存漫游并刷新修订号
func (s *TourScreen) save() bool {
	if _, err := s.deps.Store.Save(s.tour); err != nil {
		log.Printf("[TourScreen] 保存失败: %v", err)
		s.showToast("Failed to save tour")
		s.deps.Sound.Play(sfx.Error)
		return false
	}
	s.dirty = false
	s.showToast("Tour saved")
	s.deps.Sound.Play(sfx.Confirm)
	return true
}

// share 发布分享包并展示链接
// 编辑模式先保存以获得最新修订号，查看模式要求漫游已保存过。
func (s *TourScreen) share() {
	if s.editor {
		if _, err := s.deps.Store.Save(s.tour); err != nil {
			log.Printf("[TourScreen] 分享前保存失败: %v", err)
			s.showToast("Failed to save tour")
			s.deps.Sound.Play(sfx.Error)
			return
		}
		s.dirty = false
	} else if _, err := s.deps.Store.Meta(s.tour.ID); err != nil {
		log.Printf("[TourScreen] 读取修订号失败: %v", err)
		s.showToast("Tour is not saved yet")
		s.deps.Sound.Play(sfx.Error)
		return
	}

	link, err := s.deps.Store.Publish(s.tour)
	if err != nil {
		log.Printf("[TourScreen] 发布分享包失败: %v", err)
		s.showToast("Failed to share tour")
		s.deps.Sound.Play(sfx.Error)
		return
	}
	log.Printf("[TourScreen] 分享链接: %s", link)
	s.showToast(link)
	s.deps.Sound.Play(sfx.Confirm)
}

// leave 返回画廊，编辑模式下改动先落盘
func (s *TourScreen) leave() {
	if s.editor && s.dirty {
		s.save()
	}
	s.eng.Close()
	s.deps.Screens.SwitchTo(NewGalleryScreen(s.deps))
}

// SaveOnExit 窗口关闭前保存未落盘的编辑
func (s *TourScreen) SaveOnExit() bool {
	if !s.editor || !s.dirty {
		return false
	}
	if _, err := s.deps.Store.Save(s.tour); err != nil {
		log.Printf("[TourScreen] 退出保存失败: %v", err)
		return false
	}
	log.Printf("[TourScreen] 退出前已保存漫游 %s", s.tour.ID)
	return true
}

func (s *TourScreen) showToast(msg string) {
	s.toast = msg
	s.toastTimer = tourToastSeconds
}

// Draw 绘制全景、侧边栏与信息条
func (s *TourScreen) Draw(screen *ebiten.Image) {
	s.eng.Draw(screen)
	if s.editor {
		s.sidebar.draw(screen)
	}
	s.drawHUD(screen)
}

func (s *TourScreen) drawHUD(screen *ebiten.Image) {
	barY := float32(config.WindowHeight - config.HUDBarHeight)
	vector.DrawFilledRect(screen, 0, barY, config.WindowWidth, config.HUDBarHeight, color.RGBA{22, 26, 33, 255}, true)

	face := s.deps.Fonts.Face(config.HUDFontSize)
	textY := float64(barY) + (config.HUDBarHeight-config.HUDFontSize)/2

	mode := "[Viewer]"
	if s.editor {
		mode = "[Editor]"
	}
	name := s.sceneName
	switch s.eng.Phase() {
	case engine.PhaseLoading:
		name += "  loading..."
	case engine.PhaseTransitioning:
		name += "  transitioning..."
	}
	if s.dirty {
		name += " *"
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(24, textY)
	op.ColorScale.ScaleWithColor(color.RGBA{230, 234, 240, 255})
	text.Draw(screen, fmt.Sprintf("%s %s", mode, name), face, op)

	hints := "Tab mode * Ctrl+S save * Ctrl+L share * Esc back"
	hw, _ := text.Measure(hints, face, 0)
	op = &text.DrawOptions{}
	op.GeoM.Translate(float64(config.WindowWidth)-hw-24, textY)
	op.ColorScale.ScaleWithColor(color.RGBA{140, 148, 160, 255})
	text.Draw(screen, hints, face, op)

	if s.toast != "" {
		a := engine.EaseOutQuad(math.Min(1, s.toastTimer/tourToastFade))
		tw, _ := text.Measure(s.toast, face, 0)
		tx := (float64(config.WindowWidth) - tw) / 2
		ty := float64(barY) - 40
		vector.DrawFilledRect(screen, float32(tx)-10, float32(ty)-6, float32(tw)+20, 30,
			color.RGBA{uint8(22 * a), uint8(26 * a), uint8(33 * a), uint8(230 * a)}, true)
		op := &text.DrawOptions{}
		op.GeoM.Translate(tx, ty)
		op.ColorScale.ScaleWithColor(color.RGBA{255, 213, 128, 255})
		op.ColorScale.ScaleAlpha(float32(a))
		text.Draw(screen, s.toast, face, op)
	}
}
