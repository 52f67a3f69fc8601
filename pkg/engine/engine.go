// Package engine 实现全景漫游的核心模拟：双层球面画布、场景过渡状态机、
// 连续式相机导航、热点标记动画与指针交互。
//
// 引擎是单线程的。所有状态变更都发生在宿主每帧调用的 Update 里；
// 纹理加载是唯一的离线动作，结果经一次性通道在后续帧被轮询取走，
// 过期回调靠按场景请求的取消机制丢弃。Update 路径不创建任何 GPU 资源，
// 逻辑可以在无窗口环境下跑测试，Draw 才接触显卡。
package engine

import (
	"log"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// Engine 漫游引擎。宿主每帧喂入输入快照并调用 Update，再调用 Draw 上屏。
// 切换场景一律走 RequestScene，包括首个场景。
type Engine struct {
	width  int
	height int

	cam      Camera
	canvas   *Canvas
	nav      *Navigator
	runner   *Runner
	loader   *Loader
	trans    *TransitionController
	interact *Interaction

	tour    *tour.Tour
	current *tour.Scene
	markers []*Marker

	// 累计运行时间（秒），驱动标记脉冲与旋转
	now float64

	labelFont *text.GoTextFace

	// OnSceneShown 新场景成为当前场景后调用，首个场景也算。
	OnSceneShown func(s *tour.Scene)
	// OnLoadError 纹理加载失败时调用，此时引擎已回到空闲，旧画面保留。
	OnLoadError func(sceneID string, err error)
}

// New 组装引擎。mode 决定点击语义（编辑或漫游），之后可用 SetMode 切换。
func New(t *tour.Tour, mode Mode, width, height int) (*Engine, error) {
	canvas, err := NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		width:    width,
		height:   height,
		cam:      NewCamera(),
		canvas:   canvas,
		runner:   &Runner{},
		loader:   NewLoader(config.LoadTimeoutSeconds*time.Second, config.TextureCacheSize),
		tour:     t,
		interact: NewInteraction(mode),
	}
	e.nav = NewNavigator(&e.cam, width, height)
	e.trans = NewTransitionController(&e.cam, canvas, e.loader, e.runner)
	e.trans.onCommit = e.commitScene
	e.trans.onError = func(sceneID string, err error) {
		if e.OnLoadError != nil {
			e.OnLoadError(sceneID, err)
		}
	}
	return e, nil
}

// Update 推进一帧。顺序固定：先轮询过渡状态机，再让导航消化输入，
// 然后步进补间、重投影标记，最后分发指针交互。
func (e *Engine) Update(in InputState, dt float64) {
	e.now += dt
	e.trans.Update()
	e.nav.Update(in, dt, e.trans.FovOwned())
	e.runner.Update(dt)
	e.projectMarkers()
	if e.interact.update(in, e.now, e.frameContext()) {
		e.RebuildMarkers()
	}
}

// Draw 渲染全景、标记与放置子状态。标记按深度从远到近画。
func (e *Engine) Draw(screen *ebiten.Image) {
	e.canvas.Draw(screen, e.cam)
	if e.trans.Phase() != PhaseTransitioning {
		visible := make([]*Marker, 0, len(e.markers))
		for _, m := range e.markers {
			if m.Visible {
				visible = append(visible, m)
			}
		}
		sort.Slice(visible, func(i, j int) bool { return visible[i].Depth > visible[j].Depth })
		editor := e.interact.Editor()
		for _, m := range visible {
			m.Draw(screen, e.now, editor, e.labelFont)
		}
	}
	e.interact.draw(screen, e.now, e.labelFont)
}

// RequestScene 请求切换到指定场景。已在该场景或场景不存在时不做事；
// 过渡控制器非空闲时请求被忽略。返回是否受理。
func (e *Engine) RequestScene(id string) bool {
	if e.tour == nil {
		return false
	}
	if e.current != nil && e.current.ID == id {
		return false
	}
	scene := e.tour.SceneByID(id)
	if scene == nil {
		log.Printf("[Engine] 目标场景不存在: %s", id)
		return false
	}
	return e.trans.Request(scene)
}

// commitScene 过渡提交回调：套用场景初始朝向、重对齐导航目标、重建标记。
func (e *Engine) commitScene(s *tour.Scene) {
	e.current = s
	e.cam.LookYaw(s.InitialYaw)
	e.nav.SyncTargets()
	e.RebuildMarkers()
	if e.OnSceneShown != nil {
		e.OnSceneShown(s)
	}
}

// RebuildMarkers 按当前场景的热点列表重建标记。
// 热点增删或场景切换后调用；标签此时解析一次，目标场景改名后需重建。
func (e *Engine) RebuildMarkers() {
	e.markers = e.markers[:0]
	if e.current == nil {
		return
	}
	for _, h := range e.current.Hotspots {
		label := e.tour.HotspotLabel(h)
		if label == "" {
			label = "No target"
		}
		e.markers = append(e.markers, NewMarker(h, label))
	}
}

// projectMarkers 重投影全部标记。过渡动画期间标记整体隐藏。
func (e *Engine) projectMarkers() {
	transitioning := e.trans.Phase() == PhaseTransitioning
	sel := e.interact.Selected()
	for _, m := range e.markers {
		m.Selected = m.Hotspot == sel
		if transitioning {
			m.Visible = false
			m.Hovered = false
			continue
		}
		m.Project(e.cam, e.width, e.height)
	}
}

func (e *Engine) frameContext() frameContext {
	return frameContext{
		cam:     e.cam,
		width:   e.width,
		height:  e.height,
		markers: e.markers,
		scene:   e.current,
		tour:    e.tour,
		idle:    e.trans.Phase() == PhaseIdle,
	}
}

// Close 取消在途加载与动画。离开漫游界面时调用，防止过期回调落在废弃状态上。
func (e *Engine) Close() {
	e.trans.Cancel()
}

// Phase 返回过渡控制器当前阶段。
func (e *Engine) Phase() Phase { return e.trans.Phase() }

// Camera 返回相机当前姿态的副本。
func (e *Engine) Camera() Camera { return e.cam }

// CurrentScene 返回当前场景，首个场景就位前为 nil。
func (e *Engine) CurrentScene() *tour.Scene { return e.current }

// Tour 返回引擎持有的漫游数据。
func (e *Engine) Tour() *tour.Tour { return e.tour }

// Markers 返回当前标记列表，调用方不得保留引用跨帧使用。
func (e *Engine) Markers() []*Marker { return e.markers }

// Selected 返回当前选中的热点，可能为 nil。
func (e *Engine) Selected() *tour.Hotspot { return e.interact.Selected() }

// Select 指定选中热点，供侧边栏列表用。
func (e *Engine) Select(h *tour.Hotspot) { e.interact.Select(h) }

// Pending 返回待确认的热点放置，没有时为 nil。
func (e *Engine) Pending() *PendingPlacement { return e.interact.Pending() }

// CancelPending 丢弃待确认的放置。
func (e *Engine) CancelPending() { e.interact.CancelPending() }

// SetMode 切换交互模式。
func (e *Engine) SetMode(mode Mode) { e.interact.SetMode(mode) }

// EditorActive 报告当前是否为编辑模式。
func (e *Engine) EditorActive() bool { return e.interact.Editor() }

// SetLabelFont 设置标记悬停标签与放置提示的字体。
func (e *Engine) SetLabelFont(f *text.GoTextFace) { e.labelFont = f }

// SetInvertPitch 设置拖拽俯仰反转。
func (e *Engine) SetInvertPitch(v bool) { e.nav.SetInvertPitch(v) }

// SetTextureCacheSize 调整纹理缓存容量，多出的最久未用项立即淘汰。
func (e *Engine) SetTextureCacheSize(n int) { e.loader.SetCacheSize(n) }

// InvalidateTexture 让指定引用的缓存失效，场景换图后调用。
func (e *Engine) InvalidateTexture(ref string) { e.loader.Invalidate(ref) }
