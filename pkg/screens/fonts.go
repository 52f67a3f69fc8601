package screens

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontCache 界面字体缓存
// 同一字号的字面只构建一次，所有画面共用。内置 Go Regular 字体，
// 只覆盖拉丁字形，因此界面文案使用英文。
type FontCache struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewFontCache 解析内置字体并创建缓存
func NewFontCache() (*FontCache, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundled font: %w", err)
	}
	return &FontCache{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// Face 获取指定字号的字面，缓存命中时直接复用
func (fc *FontCache) Face(size float64) *text.GoTextFace {
	if face, ok := fc.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source: fc.source,
		Size:   size,
	}
	fc.faces[size] = face
	return face
}
