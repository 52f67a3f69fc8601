package engine

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jupdesignstudio/VirtuShot/pkg/geom"
)

//go:embed panorama.kage
var panoramaShaderSrc []byte

// layer 持有一张全景图。GPU 纹理推迟到首次绘制才创建，
// 这样 Update 路径完全不碰显卡，逻辑测试可以无窗口运行。
type layer struct {
	src image.Image
	tex *ebiten.Image
}

func (l *layer) texture() *ebiten.Image {
	if l.tex == nil && l.src != nil {
		l.tex = ebiten.NewImageFromImage(l.src)
	}
	return l.tex
}

// Canvas 双层球面画布。下层（back）是正在进入的场景，始终完全不透明；
// 上层（front）是当前场景，过渡期间不透明度从 1 淡出到 0。
// 任意时刻至少有一层不透明，因此屏幕上永远不会露出底色。
type Canvas struct {
	width  int
	height int
	shader *ebiten.Shader

	front *layer
	back  *layer
	fade  float64
}

// NewCanvas 编译全景着色器并返回指定输出尺寸的画布。
func NewCanvas(width, height int) (*Canvas, error) {
	shader, err := ebiten.NewShader(panoramaShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile panorama shader: %w", err)
	}
	return &Canvas{width: width, height: height, shader: shader, fade: 1}, nil
}

// SetCurrent 直接安装当前场景纹理，不经过过渡。用于首个场景就位。
func (c *Canvas) SetCurrent(img image.Image) {
	c.front = &layer{src: img}
	c.back = nil
	c.fade = 1
}

// HasCurrent 报告是否已有当前场景纹理。
func (c *Canvas) HasCurrent() bool { return c.front != nil }

// StageIncoming 把目标场景纹理装入下层，等待淡入换。
func (c *Canvas) StageIncoming(img image.Image) {
	c.back = &layer{src: img}
}

// HasIncoming 报告下层是否有待切换的纹理。
func (c *Canvas) HasIncoming() bool { return c.back != nil }

// DiscardIncoming 丢弃已装入但尚未提交的目标纹理。
func (c *Canvas) DiscardIncoming() {
	c.back = nil
}

// SetFade 设置上层不透明度，范围 [0,1]。
func (c *Canvas) SetFade(a float64) {
	c.fade = clampFloat(a, 0, 1)
}

// Fade 返回上层当前不透明度。
func (c *Canvas) Fade() float64 { return c.fade }

// Commit 把下层提为当前层并恢复完全不透明。没有待切换纹理时不做任何事。
func (c *Canvas) Commit() {
	if c.back == nil {
		return
	}
	c.front = c.back
	c.back = nil
	c.fade = 1
}

// Draw 以相机姿态渲染两层球面。先画下层再画上层，混合由 Alpha 完成。
func (c *Canvas) Draw(screen *ebiten.Image, cam Camera) {
	if c.back != nil {
		c.drawLayer(screen, c.back, cam, 1)
	}
	if c.front != nil {
		c.drawLayer(screen, c.front, cam, c.fade)
	}
}

func (c *Canvas) drawLayer(screen *ebiten.Image, l *layer, cam Camera, alpha float64) {
	if alpha <= 0 {
		return
	}
	tex := l.texture()
	if tex == nil {
		return
	}

	// 全屏四边形。全景图尺寸和画布无关，采样点由着色器逐像素计算，
	// 顶点携带的源坐标不参与取色。
	tw := float32(tex.Bounds().Dx())
	th := float32(tex.Bounds().Dy())
	w := float32(c.width)
	h := float32(c.height)
	verts := []ebiten.Vertex{
		{DstX: 0, DstY: 0, SrcX: 0, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: w, DstY: 0, SrcX: tw, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 0, DstY: h, SrcX: 0, SrcY: th, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: w, DstY: h, SrcX: tw, SrcY: th, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	indices := []uint16{0, 1, 2, 1, 3, 2}

	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0] = tex
	op.Uniforms = map[string]any{
		"Yaw":        geom.WrapAngle(float32(cam.Yaw)),
		"Pitch":      float32(cam.Pitch),
		"FovY":       float32(cam.EffectiveFovRad()),
		"Alpha":      float32(alpha),
		"ScreenSize": []float32{w, h},
	}
	screen.DrawTrianglesShader(verts, indices, c.shader, op)
}
