package screens

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/sfx"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// hotspotPalette 热点颜色循环表，Color 按钮按序切换
var hotspotPalette = []string{"#4fc3f7", "#ffb74d", "#81c784", "#e57373", "#ba68c8"}

// rect 侧边栏内的命中矩形
type rect struct {
	x, y, w, h float32
}

func (r rect) hit(cx, cy float64) bool {
	return cx >= float64(r.x) && cx <= float64(r.x+r.w) &&
		cy >= float64(r.y) && cy <= float64(r.y+r.h)
}

// sidebarLayout 一帧内侧边栏各控件的位置，update 与 draw 共用同一布局
type sidebarLayout struct {
	panel rect

	sceneRows []rect
	addScene  rect
	setStart  rect

	labelBox   rect
	targetRows []rect
	colorBtn   rect
	deleteBtn  rect

	saveBtn  rect
	shareBtn rect
}

// sidebar 编辑器侧边栏
// 覆盖在全景画布右侧：场景列表与起点设置在上，选中热点的
// 标签、目标、颜色编辑在中，保存与分享在底部。
type sidebar struct {
	screen *TourScreen
	label  *TextField
	hot    *tour.Hotspot // 标签输入框当前绑定的热点
}

func newSidebar(s *TourScreen) *sidebar {
	sb := &sidebar{
		screen: s,
		label:  &TextField{},
	}
	sb.label.OnChange = func(v string) {
		if sb.hot == nil {
			return
		}
		sb.hot.Label = v
		s.dirty = true
		s.eng.RebuildMarkers()
	}
	return sb
}

// contains 光标是否落在侧边栏面板内
func (sb *sidebar) contains(cx, cy float64) bool {
	return sb.panelRect().hit(cx, cy)
}

func (sb *sidebar) panelRect() rect {
	return rect{
		x: float32(config.WindowWidth - config.SidebarWidth),
		y: 0,
		w: config.SidebarWidth,
		h: float32(config.WindowHeight - config.HUDBarHeight),
	}
}

// typing 标签输入框是否持有键盘焦点
func (sb *sidebar) typing() bool {
	return sb.label.Focused()
}

func (sb *sidebar) blur() {
	sb.label.Blur()
}

// focusHotspot 绑定热点到标签输入框并聚焦，放置或选中热点后调用
func (sb *sidebar) focusHotspot(h *tour.Hotspot) {
	sb.hot = h
	sb.label.SetText(h.Label)
	sb.label.Focus()
}

// layout 计算本帧布局
// 行高与间距固定，热点区域只在有选中热点时出现。
func (sb *sidebar) layout() sidebarLayout {
	panel := sb.panelRect()
	pad := float32(config.SidebarPadding)
	x := panel.x + pad
	w := panel.w - 2*pad

	l := sidebarLayout{panel: panel}
	y := panel.y + pad

	// 头部：标题两行
	y += 24 + 18 + 12

	// 场景列表
	y += 16 // 小节标题
	for range sb.screen.tour.Scenes {
		l.sceneRows = append(l.sceneRows, rect{x, y, w, 22})
		y += 24
	}
	half := (w - 6) / 2
	l.addScene = rect{x, y + 4, half, 26}
	l.setStart = rect{x + half + 6, y + 4, half, 26}
	y += 4 + 26 + 14

	// 选中热点的编辑区
	if sb.hot != nil {
		y += 16 // 小节标题
		y += 16 // Label 标题
		l.labelBox = rect{x, y, w, 26}
		y += 30
		y += 16 // Target 标题
		for range sb.screen.tour.Scenes {
			l.targetRows = append(l.targetRows, rect{x, y, w, 22})
			y += 24
		}
		l.colorBtn = rect{x, y + 4, half, 26}
		l.deleteBtn = rect{x + half + 6, y + 4, half, 26}
	}

	// 底部按钮固定锚在面板底边
	l.shareBtn = rect{x, panel.y + panel.h - pad - 28, w, 28}
	l.saveBtn = rect{x, l.shareBtn.y - 34, w, 28}
	return l
}

// update 处理侧边栏点击与文本输入
func (sb *sidebar) update(deltaTime float64) {
	// 选中态与绑定保持同步，选中被引擎清掉时松开输入框
	sel := sb.screen.eng.Selected()
	if sel != sb.hot {
		sb.hot = sel
		if sel != nil {
			sb.label.SetText(sel.Label)
		} else {
			sb.label.SetText("")
			sb.label.Blur()
		}
	}

	sb.label.Update(deltaTime)

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	cx, cy := float64(mx), float64(my)

	l := sb.layout()
	if !l.panel.hit(cx, cy) {
		// 点到画布上时输入框交出焦点
		sb.label.Blur()
		return
	}

	for i, r := range l.sceneRows {
		if r.hit(cx, cy) {
			sb.jumpToScene(sb.screen.tour.Scenes[i].ID)
			return
		}
	}
	if l.addScene.hit(cx, cy) {
		sb.addScene()
		return
	}
	if l.setStart.hit(cx, cy) {
		sb.setStartScene()
		return
	}

	if sb.hot != nil {
		if l.labelBox.hit(cx, cy) {
			sb.label.Focus()
			return
		}
		for i, r := range l.targetRows {
			if r.hit(cx, cy) {
				sb.setTarget(sb.screen.tour.Scenes[i].ID)
				return
			}
		}
		if l.colorBtn.hit(cx, cy) {
			sb.cycleColor()
			return
		}
		if l.deleteBtn.hit(cx, cy) {
			sb.deleteHotspot()
			return
		}
	}

	if l.saveBtn.hit(cx, cy) {
		sb.screen.save()
		return
	}
	if l.shareBtn.hit(cx, cy) {
		sb.screen.share()
		return
	}

	// 面板空白区域：收回输入焦点即可
	sb.label.Blur()
}

func (sb *sidebar) jumpToScene(id string) {
	if sb.screen.eng.RequestScene(id) {
		sb.screen.deps.Sound.Play(sfx.Whoosh)
	}
}

// addScene 追加一个占位纹理的新场景并跳转过去
func (sb *sidebar) addScene() {
	t := sb.screen.tour
	sc := &tour.Scene{
		ID:   tour.NewID("scn"),
		Name: fmt.Sprintf("Scene %d", len(t.Scenes)+1),
	}
	sc.TextureRef = "placeholder:" + sc.ID
	t.AddScene(sc)
	sb.screen.dirty = true
	sb.screen.deps.Sound.Play(sfx.Confirm)
	sb.screen.showToast("Scene added")
	log.Printf("[Sidebar] 新增场景 %s (%s)", sc.ID, sc.Name)
	sb.screen.eng.RequestScene(sc.ID)
}

func (sb *sidebar) setStartScene() {
	cur := sb.screen.eng.CurrentScene()
	if cur == nil || sb.screen.tour.StartID == cur.ID {
		return
	}
	sb.screen.tour.StartID = cur.ID
	sb.screen.dirty = true
	sb.screen.deps.Sound.Play(sfx.Click)
	sb.screen.showToast("Start scene set")
}

// setTarget 设置选中热点的目标场景，点击当前目标则清空
func (sb *sidebar) setTarget(id string) {
	if sb.hot.TargetID == id {
		sb.hot.TargetID = ""
	} else {
		sb.hot.TargetID = id
	}
	sb.screen.dirty = true
	sb.screen.deps.Sound.Play(sfx.Click)
	sb.screen.eng.RebuildMarkers()
}

// cycleColor 在调色板中切换热点颜色
func (sb *sidebar) cycleColor() {
	next := hotspotPalette[0]
	for i, c := range hotspotPalette {
		if c == sb.hot.Color {
			next = hotspotPalette[(i+1)%len(hotspotPalette)]
			break
		}
	}
	sb.hot.Color = next
	sb.screen.dirty = true
	sb.screen.deps.Sound.Play(sfx.Click)
	sb.screen.eng.RebuildMarkers()
}

func (sb *sidebar) deleteHotspot() {
	cur := sb.screen.eng.CurrentScene()
	if cur == nil || sb.hot == nil {
		return
	}
	id := sb.hot.ID
	if !cur.RemoveHotspot(id) {
		return
	}
	sb.hot = nil
	sb.label.Blur()
	sb.screen.eng.Select(nil)
	sb.screen.eng.RebuildMarkers()
	sb.screen.dirty = true
	sb.screen.deps.Sound.Play(sfx.Cancel)
	sb.screen.showToast("Hotspot removed")
	log.Printf("[Sidebar] 删除热点 %s", id)
}

// draw 绘制侧边栏
func (sb *sidebar) draw(dst *ebiten.Image) {
	l := sb.layout()
	fonts := sb.screen.deps.Fonts

	vector.DrawFilledRect(dst, l.panel.x, l.panel.y, l.panel.w, l.panel.h, color.RGBA{22, 26, 33, 238}, true)
	vector.StrokeLine(dst, l.panel.x, l.panel.y, l.panel.x, l.panel.y+l.panel.h, 1, color.RGBA{50, 56, 66, 255}, true)

	pad := float64(config.SidebarPadding)
	x := float64(l.panel.x) + pad
	y := float64(l.panel.y) + pad

	// 头部
	drawText(dst, "Editor", fonts.Face(18), x, y, color.RGBA{79, 195, 247, 255})
	drawText(dst, sb.screen.tour.Title, fonts.Face(13), x, y+24, color.RGBA{140, 148, 160, 255})

	cur := sb.screen.eng.CurrentScene()

	// 场景列表
	caption := fonts.Face(11)
	body := fonts.Face(13)
	drawText(dst, "SCENES", caption, x, float64(l.addScene.y)-float64(len(l.sceneRows)*24)-20, color.RGBA{110, 118, 130, 255})
	for i, r := range l.sceneRows {
		sc := sb.screen.tour.Scenes[i]
		if cur != nil && sc.ID == cur.ID {
			vector.DrawFilledRect(dst, r.x, r.y, r.w, r.h, color.RGBA{38, 46, 58, 255}, true)
		}
		name := sc.Name
		if sc.ID == sb.screen.tour.StartID {
			name += "  (start)"
		}
		drawText(dst, name, body, float64(r.x)+6, float64(r.y)+4, color.RGBA{230, 234, 240, 255})
	}
	sb.drawButton(dst, l.addScene, "+ Scene", false)
	sb.drawButton(dst, l.setStart, "Set start", false)

	// 热点编辑区
	if sb.hot != nil {
		drawText(dst, "HOTSPOT", caption, x, float64(l.labelBox.y)-32, color.RGBA{110, 118, 130, 255})
		drawText(dst, "Label", caption, x, float64(l.labelBox.y)-14, color.RGBA{140, 148, 160, 255})
		sb.label.Draw(dst, l.labelBox.x, l.labelBox.y, l.labelBox.w, l.labelBox.h, body)

		if len(l.targetRows) > 0 {
			drawText(dst, "Target scene (click to toggle)", caption, x, float64(l.targetRows[0].y)-14, color.RGBA{140, 148, 160, 255})
		}
		for i, r := range l.targetRows {
			sc := sb.screen.tour.Scenes[i]
			if sc.ID == sb.hot.TargetID {
				vector.DrawFilledRect(dst, r.x, r.y, r.w, r.h, color.RGBA{32, 58, 72, 255}, true)
			}
			drawText(dst, sc.Name, body, float64(r.x)+6, float64(r.y)+4, color.RGBA{230, 234, 240, 255})
		}

		sb.drawButton(dst, l.colorBtn, "Color", false)
		swatch := sb.hot.Color
		if swatch == "" {
			swatch = hotspotPalette[0]
		}
		vector.DrawFilledRect(dst, l.colorBtn.x+l.colorBtn.w-22, l.colorBtn.y+7, 12, 12, parseSwatch(swatch), true)
		sb.drawButton(dst, l.deleteBtn, "Delete", true)
	}

	sb.drawButton(dst, l.saveBtn, "Save (Ctrl+S)", false)
	sb.drawButton(dst, l.shareBtn, "Share link (Ctrl+L)", false)
}

func (sb *sidebar) drawButton(dst *ebiten.Image, r rect, label string, danger bool) {
	fill := color.RGBA{38, 44, 54, 255}
	border := color.RGBA{80, 88, 100, 255}
	if danger {
		fill = color.RGBA{58, 30, 32, 255}
		border = color.RGBA{229, 115, 115, 255}
	}
	vector.DrawFilledRect(dst, r.x, r.y, r.w, r.h, fill, true)
	vector.StrokeRect(dst, r.x, r.y, r.w, r.h, 1, border, true)

	face := sb.screen.deps.Fonts.Face(13)
	tw, _ := text.Measure(label, face, 0)
	drawText(dst, label, face, float64(r.x)+(float64(r.w)-tw)/2, float64(r.y)+(float64(r.h)-face.Size)/2, color.RGBA{230, 234, 240, 255})
}

// drawText 在给定位置绘制一行文本
func drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// parseSwatch 色板按钮上的小色块颜色
func parseSwatch(hex string) color.RGBA {
	c := color.RGBA{79, 195, 247, 255}
	if len(hex) == 7 && hex[0] == '#' {
		var r, g, b uint8
		if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			c = color.RGBA{r, g, b, 255}
		}
	}
	return c
}
