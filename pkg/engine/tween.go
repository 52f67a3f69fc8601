package engine

// Tween 数值补间描述符：起止值、时长、速度曲线、逐帧写回与完成回调。
// 补间不挂到任何全局注册表上，由 Runner 按帧显式推进。
type Tween struct {
	From     float64
	To       float64
	Duration float64 // 秒；<=0 时首帧直接完成
	Ease     Easing  // nil 按线性处理
	Apply    func(v float64)
	OnDone   func()

	elapsed  float64
	finished bool
	stopped  bool
}

// Stop 中止补间：不再写回，也不触发 OnDone
func (t *Tween) Stop() {
	t.stopped = true
}

// Finished 补间是否已正常完成
func (t *Tween) Finished() bool {
	return t.finished
}

// step 推进一帧，返回 true 表示补间仍存活
func (t *Tween) step(dt float64) bool {
	if t.stopped || t.finished {
		return false
	}

	t.elapsed += dt
	p := 1.0
	if t.Duration > 0 {
		p = t.elapsed / t.Duration
		if p > 1 {
			p = 1
		}
	}

	ease := t.Ease
	if ease == nil {
		ease = EaseLinear
	}
	if t.Apply != nil {
		t.Apply(Lerp(t.From, t.To, ease(p)))
	}

	if p >= 1 {
		t.finished = true
		if t.OnDone != nil {
			t.OnDone()
		}
		return false
	}
	return true
}

// Runner 补间调度器，每帧由引擎推进一次
type Runner struct {
	tweens []*Tween
}

// Start 启动补间并立即应用起始值
func (r *Runner) Start(t *Tween) *Tween {
	if t.Apply != nil {
		t.Apply(t.From)
	}
	r.tweens = append(r.tweens, t)
	return t
}

// Update 推进所有补间；完成或中止的补间被移除。
// OnDone 回调里启动的新补间从下一帧开始推进。
func (r *Runner) Update(dt float64) {
	current := r.tweens
	// 置 nil 而不是清空复用：OnDone 里 Start 的新补间会追加到
	// r.tweens，共享底层数组会改写还没遍历到的条目
	r.tweens = nil
	for _, t := range current {
		if t.step(dt) {
			r.tweens = append(r.tweens, t)
		}
	}
}

// Active 存活补间数量
func (r *Runner) Active() int {
	return len(r.tweens)
}
