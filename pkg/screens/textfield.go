package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 光标闪烁间隔（秒）
const cursorBlinkInterval = 0.5

// TextField 单行文本输入框
// 处理焦点、光标闪烁与键盘编辑。坐标与尺寸由调用方在 Draw 时给出，
// 命中测试也以同一矩形为准。
type TextField struct {
	text   []rune
	cursor int // 光标位置（按 rune 计）

	focused      bool
	blinkTimer   float64
	blinkVisible bool

	// OnChange 文本变化后回调（可为 nil）
	OnChange func(string)
}

// Text 当前文本内容
func (f *TextField) Text() string {
	return string(f.text)
}

// SetText 替换文本并把光标移到末尾，不触发 OnChange
func (f *TextField) SetText(s string) {
	f.text = []rune(s)
	f.cursor = len(f.text)
}

// Focused 是否持有输入焦点
func (f *TextField) Focused() bool {
	return f.focused
}

// Focus 获得焦点并立即显示光标
func (f *TextField) Focus() {
	f.focused = true
	f.resetBlink()
}

// Blur 失去焦点
func (f *TextField) Blur() {
	f.focused = false
	f.blinkVisible = false
}

// Update 更新光标闪烁并处理键盘输入，只在持有焦点时生效
func (f *TextField) Update(deltaTime float64) {
	if !f.focused {
		return
	}

	f.blinkTimer += deltaTime
	if f.blinkTimer >= cursorBlinkInterval {
		f.blinkTimer = 0
		f.blinkVisible = !f.blinkVisible
	}

	// 文本字符输入
	runes := ebiten.AppendInputChars(nil)
	if len(runes) > 0 {
		f.insert(runes)
		f.resetBlink()
	}

	// 退格与删除支持按住连续触发：第1帧立即响应，之后每隔3帧一次
	if keyRepeats(ebiten.KeyBackspace) {
		f.deleteBefore()
		f.resetBlink()
	}
	if keyRepeats(ebiten.KeyDelete) {
		f.deleteAfter()
		f.resetBlink()
	}

	// 光标移动
	if keyRepeats(ebiten.KeyArrowLeft) {
		if f.cursor > 0 {
			f.cursor--
		}
		f.resetBlink()
	}
	if keyRepeats(ebiten.KeyArrowRight) {
		if f.cursor < len(f.text) {
			f.cursor++
		}
		f.resetBlink()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		f.cursor = 0
		f.resetBlink()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		f.cursor = len(f.text)
		f.resetBlink()
	}

	// 回车确认并释放焦点
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		f.Blur()
	}
}

// keyRepeats 按键是否在本帧触发（含按住连续触发）
func keyRepeats(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

func (f *TextField) resetBlink() {
	f.blinkTimer = 0
	f.blinkVisible = true
}

// insert 在光标位置插入字符
func (f *TextField) insert(runes []rune) {
	out := make([]rune, 0, len(f.text)+len(runes))
	out = append(out, f.text[:f.cursor]...)
	out = append(out, runes...)
	out = append(out, f.text[f.cursor:]...)
	f.text = out
	f.cursor += len(runes)
	f.notify()
}

// deleteBefore 删除光标前的字符
func (f *TextField) deleteBefore() {
	if f.cursor == 0 {
		return
	}
	f.text = append(f.text[:f.cursor-1], f.text[f.cursor:]...)
	f.cursor--
	f.notify()
}

// deleteAfter 删除光标后的字符
func (f *TextField) deleteAfter() {
	if f.cursor >= len(f.text) {
		return
	}
	f.text = append(f.text[:f.cursor], f.text[f.cursor+1:]...)
	f.notify()
}

func (f *TextField) notify() {
	if f.OnChange != nil {
		f.OnChange(string(f.text))
	}
}

// Draw 在给定矩形内绘制输入框、文本与光标
func (f *TextField) Draw(dst *ebiten.Image, x, y, w, h float32, face *text.GoTextFace) {
	bg := color.RGBA{30, 34, 42, 255}
	border := color.RGBA{80, 88, 100, 255}
	if f.focused {
		border = color.RGBA{79, 195, 247, 255}
	}
	vector.DrawFilledRect(dst, x, y, w, h, bg, true)
	vector.StrokeRect(dst, x, y, w, h, 1, border, true)

	padX := float64(x) + 6
	textY := float64(y) + (float64(h)-face.Size)/2

	op := &text.DrawOptions{}
	op.GeoM.Translate(padX, textY)
	op.ColorScale.ScaleWithColor(color.RGBA{230, 234, 240, 255})
	text.Draw(dst, string(f.text), face, op)

	if f.focused && f.blinkVisible {
		cx := padX + text.Advance(string(f.text[:f.cursor]), face)
		vector.StrokeLine(dst, float32(cx), y+4, float32(cx), y+h-4, 1, color.RGBA{230, 234, 240, 255}, true)
	}
}

// Hit 光标是否落在输入框矩形内
func (f *TextField) Hit(cx, cy float64, x, y, w, h float32) bool {
	return cx >= float64(x) && cx <= float64(x+w) && cy >= float64(y) && cy <= float64(y+h)
}
