package screens

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/jupdesignstudio/VirtuShot/internal/equirect"
	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/sfx"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// 画廊布局常量
const (
	galleryHeaderHeight = 104
	galleryToastSeconds = 2.5
)

// galleryCard 画廊中的一张漫游卡片，布局时确定位置
type galleryCard struct {
	meta tour.Meta
	x    float64
	y    float64
}

// GalleryScreen 漫游画廊
// 列出存储中的全部漫游，缩略图由后台协程预取，键盘与鼠标均可操作。
// 删除需要按两次 Delete 确认。
type GalleryScreen struct {
	deps *Deps

	cards     []*galleryCard
	selected  int
	scroll    float64
	maxScroll float64

	// 缩略图预取：协程只写 thumbImgs，GPU 纹理只在 Draw 里创建
	thumbMu   sync.Mutex
	thumbImgs map[string]image.Image
	thumbTex  map[string]*ebiten.Image
	thumbGen  int

	confirmID  string // 等待二次确认删除的漫游ID
	toast      string
	toastTimer float64
}

// NewGalleryScreen 创建画廊并立即加载漫游列表
func NewGalleryScreen(deps *Deps) *GalleryScreen {
	s := &GalleryScreen{
		deps:      deps,
		thumbImgs: make(map[string]image.Image),
		thumbTex:  make(map[string]*ebiten.Image),
	}
	s.refresh()
	return s
}

// refresh 重新读取漫游列表并重排卡片
func (s *GalleryScreen) refresh() {
	metas := s.deps.Store.List()
	s.cards = s.cards[:0]

	gridW := config.GalleryColumns*config.GalleryCardWidth + (config.GalleryColumns-1)*config.GalleryGap
	x0 := float64(config.WindowWidth-gridW) / 2
	for i, m := range metas {
		col := i % config.GalleryColumns
		row := i / config.GalleryColumns
		s.cards = append(s.cards, &galleryCard{
			meta: m,
			x:    x0 + float64(col*(config.GalleryCardWidth+config.GalleryGap)),
			y:    galleryHeaderHeight + float64(row*(config.GalleryCardHeight+config.GalleryGap)),
		})
	}
	if s.selected >= len(s.cards) {
		s.selected = len(s.cards) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}

	rows := (len(s.cards) + config.GalleryColumns - 1) / config.GalleryColumns
	contentH := float64(galleryHeaderHeight + rows*(config.GalleryCardHeight+config.GalleryGap))
	s.maxScroll = contentH - float64(config.WindowHeight) + float64(config.HUDBarHeight)
	if s.maxScroll < 0 {
		s.maxScroll = 0
	}
	if s.scroll > s.maxScroll {
		s.scroll = s.maxScroll
	}

	s.prefetchThumbs(metas)
}

// prefetchThumbs 后台解码各漫游入口场景的全景图并压成条幅缩略图
// 刷新会推进 thumbGen，过期协程的结果直接丢弃。
func (s *GalleryScreen) prefetchThumbs(metas []tour.Meta) {
	s.thumbMu.Lock()
	s.thumbGen++
	gen := s.thumbGen
	s.thumbMu.Unlock()

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(2)
	for _, m := range metas {
		m := m
		if m.CoverRef == "" {
			continue
		}
		s.thumbMu.Lock()
		_, have := s.thumbImgs[m.ID]
		s.thumbMu.Unlock()
		if have {
			continue
		}
		g.Go(func() error {
			img, err := equirect.Resolve(ctx, m.CoverRef)
			if err != nil {
				log.Printf("[Gallery] 缩略图加载失败 %s: %v", m.ID, err)
				return nil
			}
			strip := thumbStrip(img)
			s.thumbMu.Lock()
			if gen == s.thumbGen {
				s.thumbImgs[m.ID] = strip
			}
			s.thumbMu.Unlock()
			return nil
		})
	}
	go func() {
		_ = g.Wait()
	}()
}

// thumbStrip 从全景图中间截取一条水平带并缩放为卡片缩略图
func thumbStrip(src image.Image) image.Image {
	b := src.Bounds()
	aspect := float64(config.GalleryThumbWidth) / float64(config.GalleryThumbHeight)
	bandH := int(float64(b.Dx()) / aspect)
	if bandH > b.Dy() || bandH <= 0 {
		bandH = b.Dy()
	}
	bandY := b.Min.Y + (b.Dy()-bandH)/2
	band := image.Rect(b.Min.X, bandY, b.Max.X, bandY+bandH)

	dst := image.NewRGBA(image.Rect(0, 0, config.GalleryThumbWidth, config.GalleryThumbHeight))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, band, xdraw.Src, nil)
	return dst
}

// Update 处理画廊输入
func (s *GalleryScreen) Update(deltaTime float64) error {
	if s.toastTimer > 0 {
		s.toastTimer -= deltaTime
		if s.toastTimer <= 0 {
			s.toast = ""
		}
	}

	// 滚轮滚动列表
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		s.scroll -= wheelY * 40
		if s.scroll < 0 {
			s.scroll = 0
		}
		if s.scroll > s.maxScroll {
			s.scroll = s.maxScroll
		}
	}

	s.handleKeys()
	s.handleMouse()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (s *GalleryScreen) handleKeys() {
	moved := false
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && s.selected > 0 {
		s.selected--
		moved = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && s.selected < len(s.cards)-1 {
		s.selected++
		moved = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && s.selected-config.GalleryColumns >= 0 {
		s.selected -= config.GalleryColumns
		moved = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && s.selected+config.GalleryColumns < len(s.cards) {
		s.selected += config.GalleryColumns
		moved = true
	}
	if moved {
		s.confirmID = ""
		s.deps.Sound.Play(sfx.Click)
		s.scrollToSelected()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.open(false)
	}
	if s.deps.Mobile {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		s.open(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.createTour()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.deleteSelected()
	}
}

func (s *GalleryScreen) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	cx, cy := ebiten.CursorPosition()
	for i, c := range s.cards {
		y := c.y - s.scroll
		if float64(cx) >= c.x && float64(cx) <= c.x+config.GalleryCardWidth &&
			float64(cy) >= y && float64(cy) <= y+config.GalleryCardHeight {
			if s.selected == i {
				// 再次点击已选中的卡片直接打开
				s.open(false)
			} else {
				s.selected = i
				s.confirmID = ""
				s.deps.Sound.Play(sfx.Click)
			}
			return
		}
	}
}

// scrollToSelected 保证选中卡片在可视区域内
func (s *GalleryScreen) scrollToSelected() {
	if s.selected < 0 || s.selected >= len(s.cards) {
		return
	}
	top := s.cards[s.selected].y
	bottom := top + config.GalleryCardHeight
	viewBottom := float64(config.WindowHeight - config.HUDBarHeight)
	if top-s.scroll < galleryHeaderHeight {
		s.scroll = top - galleryHeaderHeight
	}
	if bottom-s.scroll > viewBottom {
		s.scroll = bottom - viewBottom
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// open 打开选中的漫游，editor 为真时进入编辑模式
func (s *GalleryScreen) open(editor bool) {
	if s.selected < 0 || s.selected >= len(s.cards) {
		return
	}
	meta := s.cards[s.selected].meta
	t, err := s.deps.Store.Load(meta.ID)
	if err != nil {
		log.Printf("[Gallery] 打开漫游失败 %s: %v", meta.ID, err)
		s.showToast("Failed to open tour")
		s.deps.Sound.Play(sfx.Error)
		return
	}
	ts, err := NewTourScreen(s.deps, t, editor)
	if err != nil {
		log.Printf("[Gallery] 创建漫游画面失败: %v", err)
		s.showToast("Failed to open tour")
		s.deps.Sound.Play(sfx.Error)
		return
	}
	s.deps.Sound.Play(sfx.Confirm)
	s.deps.Screens.SwitchTo(ts)
}

// createTour 新建只有一个占位场景的漫游并直接进入编辑器
func (s *GalleryScreen) createTour() {
	t := tour.New(fmt.Sprintf("Untitled Tour %d", len(s.cards)+1))
	first := &tour.Scene{
		ID:   tour.NewID("scn"),
		Name: "Scene 1",
	}
	first.TextureRef = "placeholder:" + first.ID
	t.AddScene(first)
	t.StartID = first.ID

	if _, err := s.deps.Store.Save(t); err != nil {
		log.Printf("[Gallery] 新建漫游失败: %v", err)
		s.showToast("Failed to create tour")
		s.deps.Sound.Play(sfx.Error)
		return
	}
	log.Printf("[Gallery] 新建漫游 %s", t.ID)
	s.refresh()

	ts, err := NewTourScreen(s.deps, t, true)
	if err != nil {
		log.Printf("[Gallery] 创建漫游画面失败: %v", err)
		s.showToast("Failed to open editor")
		return
	}
	s.deps.Sound.Play(sfx.Confirm)
	s.deps.Screens.SwitchTo(ts)
}

// deleteSelected 两段式删除：第一次按键进入确认态，第二次真正删除
func (s *GalleryScreen) deleteSelected() {
	if s.selected < 0 || s.selected >= len(s.cards) {
		return
	}
	meta := s.cards[s.selected].meta
	if s.confirmID != meta.ID {
		s.confirmID = meta.ID
		s.showToast(fmt.Sprintf("Press Delete again to remove \"%s\"", meta.Title))
		s.deps.Sound.Play(sfx.Cancel)
		return
	}
	s.confirmID = ""
	if err := s.deps.Store.Delete(meta.ID); err != nil {
		log.Printf("[Gallery] 删除漫游失败 %s: %v", meta.ID, err)
		s.showToast("Failed to delete tour")
		s.deps.Sound.Play(sfx.Error)
		return
	}
	s.thumbMu.Lock()
	delete(s.thumbImgs, meta.ID)
	delete(s.thumbTex, meta.ID)
	s.thumbMu.Unlock()
	s.showToast("Tour removed")
	s.deps.Sound.Play(sfx.Confirm)
	s.refresh()
}

func (s *GalleryScreen) showToast(msg string) {
	s.toast = msg
	s.toastTimer = galleryToastSeconds
}

// Draw 绘制标题、卡片网格与底部提示
func (s *GalleryScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 18, 24, 255})

	titleFace := s.deps.Fonts.Face(config.TitleFontSize)
	op := &text.DrawOptions{}
	op.GeoM.Translate(48, 34)
	op.ColorScale.ScaleWithColor(color.RGBA{230, 234, 240, 255})
	text.Draw(screen, "VirtuShot Tours", titleFace, op)

	for i, c := range s.cards {
		s.drawCard(screen, c, i == s.selected)
	}

	if len(s.cards) == 0 {
		face := s.deps.Fonts.Face(config.HUDFontSize)
		msg := "No tours yet. Press N to create one."
		if s.deps.Mobile {
			msg = "No tours yet."
		}
		mw, _ := text.Measure(msg, face, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate((float64(config.WindowWidth)-mw)/2, float64(config.WindowHeight)*0.45)
		op.ColorScale.ScaleWithColor(color.RGBA{140, 148, 160, 255})
		text.Draw(screen, msg, face, op)
	}

	s.drawFooter(screen)
}

func (s *GalleryScreen) drawCard(screen *ebiten.Image, c *galleryCard, selected bool) {
	x := float32(c.x)
	y := float32(c.y - s.scroll)
	if y > float32(config.WindowHeight) || y+config.GalleryCardHeight < 0 {
		return
	}

	vector.DrawFilledRect(screen, x, y, config.GalleryCardWidth, config.GalleryCardHeight, color.RGBA{30, 34, 42, 255}, true)

	pad := float32(config.GalleryCardWidth-config.GalleryThumbWidth) / 2
	thumbX := x + pad
	thumbY := y + pad
	if tex := s.thumbTexture(c.meta.ID); tex != nil {
		geo := ebiten.GeoM{}
		geo.Translate(float64(thumbX), float64(thumbY))
		screen.DrawImage(tex, &ebiten.DrawImageOptions{GeoM: geo})
	} else {
		vector.DrawFilledRect(screen, thumbX, thumbY, config.GalleryThumbWidth, config.GalleryThumbHeight, color.RGBA{22, 26, 33, 255}, true)
	}

	titleFace := s.deps.Fonts.Face(18)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(thumbX), float64(thumbY+config.GalleryThumbHeight)+8)
	op.ColorScale.ScaleWithColor(color.RGBA{230, 234, 240, 255})
	text.Draw(screen, c.meta.Title, titleFace, op)

	metaFace := s.deps.Fonts.Face(13)
	date, _, _ := strings.Cut(c.meta.UpdatedAt, "T")
	info := fmt.Sprintf("%d scenes * updated %s", c.meta.SceneCount, date)
	op = &text.DrawOptions{}
	op.GeoM.Translate(float64(thumbX), float64(thumbY+config.GalleryThumbHeight)+32)
	op.ColorScale.ScaleWithColor(color.RGBA{140, 148, 160, 255})
	text.Draw(screen, info, metaFace, op)

	if selected {
		border := color.RGBA{79, 195, 247, 255}
		if s.confirmID == c.meta.ID {
			border = color.RGBA{229, 115, 115, 255}
		}
		vector.StrokeRect(screen, x, y, config.GalleryCardWidth, config.GalleryCardHeight, 2, border, true)
	}
}

// thumbTexture 取缩略图 GPU 纹理，后台图像就绪后在绘制线程惰性创建
func (s *GalleryScreen) thumbTexture(id string) *ebiten.Image {
	if tex, ok := s.thumbTex[id]; ok {
		return tex
	}
	s.thumbMu.Lock()
	img, ok := s.thumbImgs[id]
	s.thumbMu.Unlock()
	if !ok {
		return nil
	}
	tex := ebiten.NewImageFromImage(img)
	s.thumbTex[id] = tex
	return tex
}

func (s *GalleryScreen) drawFooter(screen *ebiten.Image) {
	barY := float32(config.WindowHeight - config.HUDBarHeight)
	vector.DrawFilledRect(screen, 0, barY, config.WindowWidth, config.HUDBarHeight, color.RGBA{22, 26, 33, 255}, true)

	face := s.deps.Fonts.Face(config.HUDFontSize)
	hints := "Enter view * E edit * N new * Delete remove * Esc quit"
	if s.deps.Mobile {
		hints = "Enter view"
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(24, float64(barY)+(config.HUDBarHeight-config.HUDFontSize)/2)
	op.ColorScale.ScaleWithColor(color.RGBA{140, 148, 160, 255})
	text.Draw(screen, hints, face, op)

	if s.toast != "" {
		tw, _ := text.Measure(s.toast, face, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(config.WindowWidth)-tw-24, float64(barY)+(config.HUDBarHeight-config.HUDFontSize)/2)
		op.ColorScale.ScaleWithColor(color.RGBA{255, 213, 128, 255})
		text.Draw(screen, s.toast, face, op)
	}
}
