package engine

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/geom"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// Mode 一种交互模式的能力集合。引擎只通过能力回调与宿主对话，
// 不看模式名做行为分支之外的事。
type Mode interface{ isMode() }

// EditorMode 编辑模式能力。点击空白球面进入待确认放置；
// 确认后热点已写入当前场景再回调 OnPlace，新热点同时成为当前选中项。
// 点击既有标记回调 OnSelect；点中悬停标记的删除按钮时热点已移除，
// 再回调 OnDelete。
type EditorMode struct {
	OnPlace  func(h *tour.Hotspot)
	OnSelect func(h *tour.Hotspot)
	OnDelete func(id string)
}

func (EditorMode) isMode() {}

// ViewerMode 漫游模式能力。过渡控制器空闲时点击带目标的热点
// 回调 OnNavigate，由宿主决定是否请求切换场景。
type ViewerMode struct {
	OnNavigate func(h *tour.Hotspot)
}

func (ViewerMode) isMode() {}

const (
	pendingButtonGap    = 28.0
	pendingButtonDrop   = 40.0
	pendingButtonRadius = 14.0
)

// PendingPlacement 待确认的热点放置。Position 是点击射线与全景球面的
// 交点，确认与取消按钮挂在投影点下方。处于该子状态时，
// 落在按钮之外的点击一律不做事。
type PendingPlacement struct {
	Position geom.Vec3
	X        float64
	Y        float64
	Visible  bool
}

func (p *PendingPlacement) project(cam Camera, width, height int) {
	fov := float32(cam.EffectiveFovRad())
	sx, sy, _, ok := geom.ProjectPoint(p.Position, float32(cam.Yaw), float32(cam.Pitch), fov, float32(width), float32(height))
	p.Visible = ok
	if ok {
		p.X = float64(sx)
		p.Y = float64(sy)
	}
}

func (p *PendingPlacement) confirmCenter() (float64, float64) {
	return p.X - pendingButtonGap, p.Y + pendingButtonDrop
}

func (p *PendingPlacement) cancelCenter() (float64, float64) {
	return p.X + pendingButtonGap, p.Y + pendingButtonDrop
}

// ConfirmHit 报告屏幕点是否落在确认按钮上。
func (p *PendingPlacement) ConfirmHit(px, py float64) bool {
	if !p.Visible {
		return false
	}
	cx, cy := p.confirmCenter()
	return hitCircle(px, py, cx, cy, pendingButtonRadius)
}

// CancelHit 报告屏幕点是否落在取消按钮上。
func (p *PendingPlacement) CancelHit(px, py float64) bool {
	if !p.Visible {
		return false
	}
	cx, cy := p.cancelCenter()
	return hitCircle(px, py, cx, cy, pendingButtonRadius)
}

func hitCircle(px, py, cx, cy, r float64) bool {
	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy <= r*r
}

// frameContext 交互控制器一帧所需的世界快照，由引擎组装。
type frameContext struct {
	cam     Camera
	width   int
	height  int
	markers []*Marker
	scene   *tour.Scene
	tour    *tour.Tour
	idle    bool
}

// Interaction 指针交互控制器。把按下与抬起合成为点击（位移不超过
// 点击容差且按住时长不超过上限），再按当前模式分发：标记选择、
// 热点导航、删除，或进入放置子状态。
type Interaction struct {
	mode Mode

	pending  *PendingPlacement
	selected *tour.Hotspot

	pressed   bool
	pressX    float64
	pressY    float64
	pressedAt float64
}

// NewInteraction 以给定模式建立控制器。
func NewInteraction(mode Mode) *Interaction {
	return &Interaction{mode: mode}
}

// SetMode 切换交互模式。待确认的放置随切换作废；
// 切到漫游模式时选中项一并清空。
func (it *Interaction) SetMode(mode Mode) {
	it.mode = mode
	it.pending = nil
	if _, ok := mode.(ViewerMode); ok {
		it.selected = nil
	}
}

// Mode 返回当前模式。
func (it *Interaction) Mode() Mode { return it.mode }

// Editor 报告当前是否为编辑模式。
func (it *Interaction) Editor() bool {
	_, ok := it.mode.(EditorMode)
	return ok
}

// Selected 返回当前选中的热点，可能为 nil。
func (it *Interaction) Selected() *tour.Hotspot { return it.selected }

// Select 由外部（如侧边栏列表）指定选中热点。
func (it *Interaction) Select(h *tour.Hotspot) { it.selected = h }

// Pending 返回待确认的放置，没有时为 nil。
func (it *Interaction) Pending() *PendingPlacement { return it.pending }

// CancelPending 丢弃待确认的放置，无任何副作用。
func (it *Interaction) CancelPending() { it.pending = nil }

// update 消化一帧指针输入。返回热点列表是否发生了增删，
// 引擎据此重建标记。
func (it *Interaction) update(in InputState, now float64, fc frameContext) bool {
	if it.pending != nil {
		it.pending.project(fc.cam, fc.width, fc.height)
	}
	it.updateHover(in, fc)

	if in.PrimaryJustPressed {
		it.pressed = true
		it.pressX = in.CursorX
		it.pressY = in.CursorY
		it.pressedAt = now
	}
	if !in.PrimaryJustReleased || !it.pressed {
		return false
	}
	it.pressed = false

	dx := in.CursorX - it.pressX
	dy := in.CursorY - it.pressY
	if math.Hypot(dx, dy) > config.ClickSlopPx {
		return false
	}
	if now-it.pressedAt > config.ClickMaxSeconds {
		return false
	}
	return it.handleClick(in.CursorX, in.CursorY, fc)
}

// updateHover 重算悬停。多个标记叠在光标下时只认最近的一个；
// 已悬停标记的删除按钮区域保持悬停，按钮才按得到。
func (it *Interaction) updateHover(in InputState, fc frameContext) {
	editor := it.Editor()
	var best *Marker
	for _, m := range fc.markers {
		sticky := editor && m.Hovered && m.DeleteHit(in.CursorX, in.CursorY)
		if !m.Contains(in.CursorX, in.CursorY) && !sticky {
			m.Hovered = false
			continue
		}
		m.Hovered = false
		if best == nil || m.Depth < best.Depth {
			best = m
		}
	}
	if best != nil {
		best.Hovered = true
	}
}

// handleClick 分发一次合成点击。优先级：放置按钮、删除按钮、
// 既有标记，最后才是空白球面。
func (it *Interaction) handleClick(px, py float64, fc frameContext) bool {
	if it.pending != nil {
		switch {
		case it.pending.ConfirmHit(px, py):
			return it.confirmPlacement(fc)
		case it.pending.CancelHit(px, py):
			it.pending = nil
		}
		return false
	}

	if editorMode, ok := it.mode.(EditorMode); ok {
		for _, m := range fc.markers {
			if m.Hovered && m.DeleteHit(px, py) {
				return it.deleteHotspot(m.Hotspot, editorMode, fc)
			}
		}
	}

	if m := topmostMarkerAt(fc.markers, px, py); m != nil {
		it.clickMarker(m, fc)
		return false
	}

	if _, ok := it.mode.(EditorMode); ok && fc.idle && fc.scene != nil {
		it.startPlacement(px, py, fc)
	}
	return false
}

func topmostMarkerAt(markers []*Marker, px, py float64) *Marker {
	var best *Marker
	for _, m := range markers {
		if !m.Contains(px, py) {
			continue
		}
		if best == nil || m.Depth < best.Depth {
			best = m
		}
	}
	return best
}

func (it *Interaction) clickMarker(m *Marker, fc frameContext) {
	switch mode := it.mode.(type) {
	case EditorMode:
		it.selected = m.Hotspot
		if mode.OnSelect != nil {
			mode.OnSelect(m.Hotspot)
		}
	case ViewerMode:
		// 过渡期间的点击一律忽略；目标解析不出场景（未设或悬空）的
		// 热点不可导航，回调不发
		if !fc.idle || fc.tour == nil || fc.tour.SceneByID(m.Hotspot.TargetID) == nil {
			return
		}
		if mode.OnNavigate != nil {
			mode.OnNavigate(m.Hotspot)
		}
	}
}

// startPlacement 把屏幕点击还原成球面交点并进入放置子状态。
func (it *Interaction) startPlacement(px, py float64, fc frameContext) {
	ray := geom.ScreenRay(float32(px), float32(py), float32(fc.width), float32(fc.height),
		float32(fc.cam.EffectiveFovRad()), float32(fc.cam.Yaw), float32(fc.cam.Pitch))
	it.selected = nil
	it.pending = &PendingPlacement{Position: ray.Scale(config.SphereRadius)}
	it.pending.project(fc.cam, fc.width, fc.height)
}

// confirmPlacement 提交放置：新热点目标为空、标签为空，
// 写入当前场景并成为选中项。
func (it *Interaction) confirmPlacement(fc frameContext) bool {
	if fc.scene == nil {
		it.pending = nil
		return false
	}
	h := &tour.Hotspot{
		ID:       tour.NewID("hs"),
		Position: it.pending.Position,
	}
	fc.scene.AddHotspot(h)
	it.selected = h
	it.pending = nil
	if mode, ok := it.mode.(EditorMode); ok && mode.OnPlace != nil {
		mode.OnPlace(h)
	}
	return true
}

func (it *Interaction) deleteHotspot(h *tour.Hotspot, mode EditorMode, fc frameContext) bool {
	if fc.scene == nil || !fc.scene.RemoveHotspot(h.ID) {
		return false
	}
	if it.selected == h {
		it.selected = nil
	}
	if mode.OnDelete != nil {
		mode.OnDelete(h.ID)
	}
	return true
}

// draw 绘制放置子状态的临时标记与确认、取消按钮。
func (it *Interaction) draw(dst *ebiten.Image, now float64, font *text.GoTextFace) {
	p := it.pending
	if p == nil || !p.Visible {
		return
	}
	cx := float32(p.X)
	cy := float32(p.Y)
	accent := color.NRGBA{R: 0xff, G: 0xe0, B: 0x82, A: 0xff}

	wave := math.Sin(now * config.MarkerPulseOmega)
	r := float32(20 * (1 + 0.1*wave))
	vector.StrokeCircle(dst, cx, cy, r, 2, withAlpha(accent, 0.8), true)
	vector.DrawFilledCircle(dst, cx, cy, 4, accent, true)

	// 确认按钮：绿底对勾
	confX, confY := p.confirmCenter()
	vector.DrawFilledCircle(dst, float32(confX), float32(confY), pendingButtonRadius, color.NRGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xf0}, true)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	vector.StrokeLine(dst, float32(confX)-6, float32(confY)+1, float32(confX)-2, float32(confY)+5, 2.5, white, true)
	vector.StrokeLine(dst, float32(confX)-2, float32(confY)+5, float32(confX)+6, float32(confY)-5, 2.5, white, true)

	// 取消按钮：红底叉
	canX, canY := p.cancelCenter()
	vector.DrawFilledCircle(dst, float32(canX), float32(canY), pendingButtonRadius, color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xf0}, true)
	vector.StrokeLine(dst, float32(canX)-5, float32(canY)-5, float32(canX)+5, float32(canY)+5, 2.5, white, true)
	vector.StrokeLine(dst, float32(canX)-5, float32(canY)+5, float32(canX)+5, float32(canY)-5, 2.5, white, true)

	if font != nil {
		label := "Place hotspot here?"
		textW, _ := text.Measure(label, font, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(p.X-textW/2, p.Y-46)
		op.ColorScale.ScaleWithColor(white)
		text.Draw(dst, label, font, op)
	}
}
