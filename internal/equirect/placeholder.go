package equirect

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"math/rand"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// 占位全景图尺寸（等距柱状投影要求 2:1）
const (
	PlaceholderWidth  = 2048
	PlaceholderHeight = 1024
)

var (
	placeholderFontOnce sync.Once
	placeholderTitle    font.Face
	placeholderSmall    font.Face
)

func placeholderFaces() (title, small font.Face) {
	placeholderFontOnce.Do(func() {
		ft, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		placeholderTitle, _ = opentype.NewFace(ft, &opentype.FaceOptions{
			Size: 120, DPI: 72, Hinting: font.HintingFull,
		})
		placeholderSmall, _ = opentype.NewFace(ft, &opentype.FaceOptions{
			Size: 44, DPI: 72, Hinting: font.HintingFull,
		})
	})
	return placeholderTitle, placeholderSmall
}

// Placeholder 生成程序化的等距柱状全景图。
//
// 同一 seed 总是生成同一张图：色相、地标方块布局都由 seed 的哈希决定，
// 不同场景因此在视觉上可区分。图中叠加经纬网格线便于确认投影方向，
// 正前方（yaw=0，即图片水平中心）有一条高亮立柱作为方位锚点。
func Placeholder(seed string) *image.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(seed))
	hash := h.Sum32()

	img := image.NewNRGBA(image.Rect(0, 0, PlaceholderWidth, PlaceholderHeight))
	baseHue := float64(hash % 360)
	const horizonV = 0.58

	// 天空与地面的垂直渐变
	for y := 0; y < PlaceholderHeight; y++ {
		v := float64(y) / float64(PlaceholderHeight-1)
		var c color.NRGBA
		if v < horizonV {
			// 天空：从天顶的深色到地平线的亮色
			t := v / horizonV
			c = hsl(baseHue, 0.45, 0.22+0.48*t)
		} else {
			// 地面：从地平线向下渐暗
			t := (v - horizonV) / (1 - horizonV)
			c = hsl(baseHue+30, 0.30, 0.40-0.22*t)
		}
		for x := 0; x < PlaceholderWidth; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	// 地标方块：立在地平线上，位置与大小由 seed 决定
	rng := rand.New(rand.NewSource(int64(hash)))
	horizonPx := horizonV * float64(PlaceholderHeight)
	horizonY := int(horizonPx)
	for i := 0; i < 9; i++ {
		bw := 60 + rng.Intn(160)
		bh := 80 + rng.Intn(220)
		bx := rng.Intn(PlaceholderWidth)
		c := hsl(baseHue+float64(rng.Intn(120))-60, 0.5, 0.30+0.25*rng.Float64())
		fillRectWrapped(img, bx, horizonY-bh, bw, bh, c)
	}

	// 方位锚点：yaw=0（图片水平中心）的高亮立柱
	anchor := hsl(baseHue+180, 0.7, 0.75)
	fillRectWrapped(img, PlaceholderWidth/2-10, horizonY-320, 20, 320, anchor)

	// 经线（每 30°）与纬线（每 30°）
	grid := color.NRGBA{255, 255, 255, 56}
	for k := 0; k < 12; k++ {
		x := k * PlaceholderWidth / 12
		fillRectWrapped(img, x, 0, 2, PlaceholderHeight, grid)
	}
	for k := 1; k < 6; k++ {
		y := k * PlaceholderHeight / 6
		fillRectWrapped(img, 0, y, PlaceholderWidth, 2, grid)
	}

	drawPlaceholderLabels(img, seed, hash)
	return img
}

// drawPlaceholderLabels 在正前方烘焙场景名称与短码
func drawPlaceholderLabels(img *image.NRGBA, seed string, hash uint32) {
	title, small := placeholderFaces()
	if title == nil || small == nil {
		return
	}

	label := seed
	if !isRenderable(label) || label == "" {
		// goregular 只含拉丁字形，其它文字回退为哈希短码
		label = fmt.Sprintf("PANO-%06X", hash&0xFFFFFF)
	}

	drawCenteredString(img, title, label, PlaceholderWidth/2, PlaceholderHeight/2-30,
		color.NRGBA{255, 255, 255, 230})
	drawCenteredString(img, small, fmt.Sprintf("equirect 2:1  seed %06X", hash&0xFFFFFF),
		PlaceholderWidth/2, PlaceholderHeight/2+50, color.NRGBA{255, 255, 255, 140})
}

func drawCenteredString(img *image.NRGBA, face font.Face, s string, cx, cy int, c color.NRGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	adv := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - adv/2,
		Y: fixed.I(cy),
	}
	d.DrawString(s)
}

// fillRectWrapped 填充矩形，x 方向越界时环绕到另一侧（经度连续）
func fillRectWrapped(img *image.NRGBA, x, y, w, h int, c color.NRGBA) {
	for dy := 0; dy < h; dy++ {
		py := y + dy
		if py < 0 || py >= PlaceholderHeight {
			continue
		}
		for dx := 0; dx < w; dx++ {
			px := (x + dx) % PlaceholderWidth
			if px < 0 {
				px += PlaceholderWidth
			}
			blendNRGBA(img, px, py, c)
		}
	}
}

func blendNRGBA(img *image.NRGBA, x, y int, c color.NRGBA) {
	if c.A == 255 {
		img.SetNRGBA(x, y, c)
		return
	}
	old := img.NRGBAAt(x, y)
	a := int(c.A)
	img.SetNRGBA(x, y, color.NRGBA{
		R: uint8((int(c.R)*a + int(old.R)*(255-a)) / 255),
		G: uint8((int(c.G)*a + int(old.G)*(255-a)) / 255),
		B: uint8((int(c.B)*a + int(old.B)*(255-a)) / 255),
		A: 255,
	})
}

func isRenderable(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}

// hsl 把 HSL 颜色转换为 NRGBA（h 按度数，可越界；s/l 取 [0,1]）
func hsl(h, s, l float64) color.NRGBA {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}

	c := (1 - abs(2*l-1)) * s
	x := c * (1 - abs(mod2(h/60)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.NRGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func mod2(v float64) float64 {
	for v >= 2 {
		v -= 2
	}
	for v < 0 {
		v += 2
	}
	return v
}
