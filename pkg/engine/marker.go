package engine

import (
	"hash/fnv"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/geom"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// defaultMarkerColor 热点未指定颜色或颜色串非法时的回退色。
var defaultMarkerColor = color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}

// Marker 场景热点在屏幕上的标记。永远正对相机（屏幕空间公告板），
// 投影状态每帧由 Project 重算，动画只依赖引擎累计时间，不保留帧间状态。
type Marker struct {
	Hotspot *tour.Hotspot
	Label   string
	Color   color.NRGBA

	// 投影结果。Visible 为 false 时其余字段无意义。
	X       float64
	Y       float64
	Radius  float64
	Depth   float64
	Visible bool

	Hovered  bool
	Selected bool

	// 脉冲相位偏移，由热点 ID 决定，让相邻标记不同步呼吸。
	phase float64
}

// NewMarker 为热点建立标记。label 为空时交给调用方先用
// tour.HotspotLabel 解析目标场景名。
func NewMarker(h *tour.Hotspot, label string) *Marker {
	return &Marker{
		Hotspot: h,
		Label:   label,
		Color:   parseHexColor(h.Color),
		phase:   markerPhase(h.ID),
	}
}

// Project 把热点的球面位置投影到屏幕并换算标记半径。
// 相机背面的热点标记不可见。
func (m *Marker) Project(cam Camera, width, height int) {
	fov := float32(cam.EffectiveFovRad())
	sx, sy, depth, ok := geom.ProjectPoint(m.Hotspot.Position, float32(cam.Yaw), float32(cam.Pitch), fov, float32(width), float32(height))
	if !ok {
		m.Visible = false
		m.Hovered = false
		return
	}
	focal := float64(height) / 2 / math.Tan(float64(fov)/2)
	r := float64(config.MarkerWorldRadius) / float64(depth) * focal
	m.X = float64(sx)
	m.Y = float64(sy)
	m.Radius = clampFloat(r, config.MarkerMinScreenRadius, config.MarkerMaxScreenRadius)
	m.Depth = float64(depth)
	m.Visible = true
}

// Contains 报告屏幕点是否落在标记的交互区（内盘）内。
func (m *Marker) Contains(px, py float64) bool {
	if !m.Visible {
		return false
	}
	dx := px - m.X
	dy := py - m.Y
	r := m.discRadius()
	return dx*dx+dy*dy <= r*r
}

// DeleteHit 报告屏幕点是否落在删除按钮上。按钮只在编辑模式悬停时出现，
// 调用方自行保证时机。
func (m *Marker) DeleteHit(px, py float64) bool {
	if !m.Visible {
		return false
	}
	bx, by := m.deleteCenter()
	dx := px - bx
	dy := py - by
	r := config.MarkerDeleteRadius
	return dx*dx+dy*dy <= r*r
}

func (m *Marker) discRadius() float64 {
	r := m.Radius * 0.6
	if m.Hovered {
		r *= config.MarkerHoverGrow
	}
	return r
}

func (m *Marker) deleteCenter() (float64, float64) {
	off := m.Radius * 0.95
	return m.X + off, m.Y - off
}

// Draw 按固定层序绘制标记：脉冲外环、匀速旋转的中环、
// 交互内盘（悬停换色）、中心点。悬停时在标记上方追加标签，
// 编辑模式下再加删除按钮。
func (m *Marker) Draw(dst *ebiten.Image, now float64, editor bool, labelFont *text.GoTextFace) {
	if !m.Visible {
		return
	}
	cx := float32(m.X)
	cy := float32(m.Y)
	t := now + m.phase

	// 1. 外环：透明度与半径随时间正弦呼吸
	wave := math.Sin(t * config.MarkerPulseOmega)
	pulseR := m.Radius * (1 + config.MarkerPulseScaleAmp*wave)
	pulseA := 0.55 * (1 - config.MarkerPulseAlphaAmp*(0.5+0.5*wave))
	vector.StrokeCircle(dst, cx, cy, float32(pulseR), 2.5, withAlpha(m.Color, pulseA), true)

	// 2. 中环：淡环加三颗以固定角速度公转的亮点
	midR := m.Radius * 0.78
	vector.StrokeCircle(dst, cx, cy, float32(midR), 1.5, withAlpha(m.Color, 0.35), true)
	spin := t * config.MarkerSpinSpeed
	for k := 0; k < 3; k++ {
		a := spin + float64(k)*(2*math.Pi/3)
		dx := math.Cos(a) * midR
		dy := math.Sin(a) * midR
		vector.DrawFilledCircle(dst, cx+float32(dx), cy+float32(dy), 2.5, withAlpha(m.Color, 0.9), true)
	}

	// 3. 内盘：命中区域，悬停换成亮色
	discColor := withAlpha(m.Color, 0.82)
	if m.Hovered {
		discColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xdd}
	}
	vector.DrawFilledCircle(dst, cx, cy, float32(m.discRadius()), discColor, true)
	if m.Selected {
		vector.StrokeCircle(dst, cx, cy, float32(m.discRadius()+4), 2, color.NRGBA{R: 0xff, G: 0xe0, B: 0x82, A: 0xff}, true)
	}

	// 4. 中心点：静态装饰，始终在最上层
	vector.DrawFilledCircle(dst, cx, cy, float32(m.Radius*0.12+1.5), color.NRGBA{R: 0x10, G: 0x14, B: 0x1c, A: 0xff}, true)

	if m.Hovered {
		m.drawLabel(dst, labelFont)
		if editor {
			m.drawDeleteButton(dst)
		}
	}
}

// drawLabel 在标记上方画悬浮标签。标签始终水平朝向屏幕。
func (m *Marker) drawLabel(dst *ebiten.Image, font *text.GoTextFace) {
	if font == nil || m.Label == "" {
		return
	}
	textW, textH := text.Measure(m.Label, font, 0)
	padX := 8.0
	padY := 4.0
	boxW := textW + padX*2
	boxH := textH + padY*2
	boxX := m.X - boxW/2
	boxY := m.Y - m.Radius*1.4 - boxH

	vector.DrawFilledRect(dst, float32(boxX), float32(boxY), float32(boxW), float32(boxH), color.NRGBA{R: 0x14, G: 0x18, B: 0x20, A: 0xd2}, true)
	op := &text.DrawOptions{}
	op.GeoM.Translate(boxX+padX, boxY+padY)
	op.ColorScale.ScaleWithColor(color.NRGBA{R: 0xf2, G: 0xf5, B: 0xfa, A: 0xff})
	text.Draw(dst, m.Label, font, op)
}

func (m *Marker) drawDeleteButton(dst *ebiten.Image) {
	bx, by := m.deleteCenter()
	r := float32(config.MarkerDeleteRadius)
	vector.DrawFilledCircle(dst, float32(bx), float32(by), r, color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xf0}, true)
	arm := r * 0.45
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	vector.StrokeLine(dst, float32(bx)-arm, float32(by)-arm, float32(bx)+arm, float32(by)+arm, 2, white, true)
	vector.StrokeLine(dst, float32(bx)-arm, float32(by)+arm, float32(bx)+arm, float32(by)-arm, 2, white, true)
}

// markerPhase 用 ID 散列出 [0,2π) 的相位偏移。
func markerPhase(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%360) * math.Pi / 180
}

// withAlpha 按系数缩放颜色透明度，系数范围 [0,1]。
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = clampFloat(a, 0, 1)
	c.A = uint8(float64(c.A) * a)
	return c
}

// parseHexColor 解析 "#rrggbb" 或 "rrggbb" 形式的颜色串，
// 非法输入回退到默认标记色。
func parseHexColor(s string) color.NRGBA {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return defaultMarkerColor
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return defaultMarkerColor
		}
		rgb[i] = hi<<4 | lo
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
