package engine

import (
	"image"
	"log"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// Phase 过渡控制器所处阶段。
type Phase int

const (
	// PhaseIdle 空闲，可接受新的场景请求。
	PhaseIdle Phase = iota
	// PhaseLoading 目标纹理加载中，画面与交互保持原样。
	PhaseLoading
	// PhaseTransitioning 淡出加推进动画进行中。
	PhaseTransitioning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseLoading:
		return "Loading"
	case PhaseTransitioning:
		return "Transitioning"
	default:
		return "Unknown"
	}
}

// TransitionController 场景切换状态机，任意时刻最多一次切换在途。
//
// Idle --Request--> Loading --纹理就绪--> Transitioning --淡出+推近完成--> Idle
//
// Loading 阶段失败或被取消都直接回到 Idle，旧画面原样保留。
// 非 Idle 阶段收到的新请求一律忽略，这保证了切换事件的串行化。
//
// 视场角写权：从进入 Transitioning 起归本控制器，直到提交后的回拉
// 动画结束才交还导航控制器（FovOwned 反映这个窗口，它比
// Transitioning 阶段本身更长）。
type TransitionController struct {
	cam    *Camera
	canvas *Canvas
	loader *Loader
	runner *Runner

	phase   Phase
	pending *tour.Scene
	task    *LoadTask

	fadeDone bool
	zoomDone bool
	fovOwned bool

	fadeTween  *Tween
	zoomTween  *Tween
	resetTween *Tween

	// onCommit 在新场景成为当前场景的那一刻调用（首载与过渡提交都算）。
	onCommit func(s *tour.Scene)
	// onError 加载失败时调用，此时已回到 Idle。
	onError func(sceneID string, err error)
}

// NewTransitionController 组装状态机。相机、画布与补间调度器
// 和引擎共享，加载器独占使用。
func NewTransitionController(cam *Camera, canvas *Canvas, loader *Loader, runner *Runner) *TransitionController {
	return &TransitionController{
		cam:    cam,
		canvas: canvas,
		loader: loader,
		runner: runner,
		phase:  PhaseIdle,
	}
}

// Phase 返回当前阶段。
func (tc *TransitionController) Phase() Phase { return tc.phase }

// FovOwned 报告视场角当前是否归本控制器写。
func (tc *TransitionController) FovOwned() bool { return tc.fovOwned }

// Request 请求切换到指定场景。只有 Idle 阶段会受理，
// 其余阶段记一条日志后忽略。返回是否受理。
func (tc *TransitionController) Request(scene *tour.Scene) bool {
	if scene == nil {
		return false
	}
	if tc.phase != PhaseIdle {
		log.Printf("[Transition] 忽略场景请求 %s: 当前阶段 %s", scene.ID, tc.phase)
		return false
	}
	tc.phase = PhaseLoading
	tc.pending = scene
	tc.task = tc.loader.Load(scene.ID, scene.TextureRef)
	log.Printf("[Transition] 加载场景 %s (%s)", scene.ID, scene.Name)
	return true
}

// Update 每帧轮询加载结果。Transitioning 阶段由补间回调推进，这里无事可做。
func (tc *TransitionController) Update() {
	if tc.phase != PhaseLoading || tc.task == nil {
		return
	}
	status, img, err := tc.task.Poll()
	switch status {
	case LoadPending:
	case LoadFailed:
		scene := tc.pending
		tc.task = nil
		tc.pending = nil
		tc.phase = PhaseIdle
		log.Printf("[Transition] 场景 %s 加载失败: %v", scene.ID, err)
		if tc.onError != nil {
			tc.onError(scene.ID, err)
		}
	case LoadReady:
		tc.stage(img)
	}
}

// stage 纹理就绪后的分支：还没有当前画面就直接上屏，
// 否则装入下层并启动淡出与推近两条补间。
func (tc *TransitionController) stage(img image.Image) {
	scene := tc.pending
	tc.task = nil

	if !tc.canvas.HasCurrent() {
		tc.canvas.SetCurrent(img)
		tc.pending = nil
		tc.phase = PhaseIdle
		log.Printf("[Transition] 首个场景就位: %s", scene.ID)
		if tc.onCommit != nil {
			tc.onCommit(scene)
		}
		return
	}

	// 上一次提交后的回拉若还在跑，先停掉，推近补间从当前视场角接手
	if tc.resetTween != nil {
		tc.resetTween.Stop()
		tc.resetTween = nil
	}

	tc.canvas.StageIncoming(img)
	tc.phase = PhaseTransitioning
	tc.fovOwned = true
	tc.fadeDone = false
	tc.zoomDone = false
	log.Printf("[Transition] 开始过渡到场景 %s", scene.ID)

	tc.fadeTween = &Tween{
		From:     1,
		To:       0,
		Duration: config.FadeDuration,
		Ease:     EaseInOutCubic,
		Apply:    func(v float64) { tc.canvas.SetFade(v) },
		OnDone:   func() { tc.fadeDone = true; tc.maybeFinish() },
	}
	tc.zoomTween = &Tween{
		From:     tc.cam.Fov,
		To:       config.TransitionTargetFov,
		Duration: config.ZoomDuration,
		Ease:     EaseInOutCubic,
		Apply:    func(v float64) { tc.cam.Fov = v },
		OnDone:   func() { tc.zoomDone = true; tc.maybeFinish() },
	}
	tc.runner.Start(tc.fadeTween)
	tc.runner.Start(tc.zoomTween)
}

// maybeFinish 两条补间都结束后提交：下层提为当前层、回到 Idle、
// 通知宿主，然后启动把视场角拉回静息值的收尾补间。
func (tc *TransitionController) maybeFinish() {
	if !tc.fadeDone || !tc.zoomDone {
		return
	}
	scene := tc.pending
	tc.pending = nil
	tc.fadeTween = nil
	tc.zoomTween = nil
	tc.canvas.Commit()
	tc.phase = PhaseIdle
	log.Printf("[Transition] 过渡完成: %s", scene.ID)
	if tc.onCommit != nil {
		tc.onCommit(scene)
	}

	tc.resetTween = &Tween{
		From:     tc.cam.Fov,
		To:       config.RestingFov,
		Duration: config.FovResetDuration,
		Ease:     EaseOutCubic,
		Apply:    func(v float64) { tc.cam.Fov = v },
		OnDone: func() {
			tc.fovOwned = false
			tc.resetTween = nil
		},
	}
	tc.runner.Start(tc.resetTween)
}

// Cancel 中止一切在途动作：加载任务取消、未提交的纹理丢弃、
// 补间全部停止，回到 Idle。退出漫游界面时调用。
func (tc *TransitionController) Cancel() {
	if tc.task != nil {
		tc.task.Cancel()
		tc.task = nil
	}
	tc.pending = nil
	for _, tw := range []*Tween{tc.fadeTween, tc.zoomTween, tc.resetTween} {
		if tw != nil {
			tw.Stop()
		}
	}
	tc.fadeTween = nil
	tc.zoomTween = nil
	tc.resetTween = nil
	tc.canvas.DiscardIncoming()
	tc.canvas.SetFade(1)
	tc.fovOwned = false
	tc.phase = PhaseIdle
}
