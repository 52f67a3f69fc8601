package engine

import (
	"math"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
)

// InputState 一帧输入快照。外层屏幕每帧从 ebiten 采集后喂给引擎，
// 测试里直接手工构造即可，引擎逻辑完全不接触真实输入设备。
// 键位字段是持续按住状态，不是按下事件。
type InputState struct {
	CursorX float64
	CursorY float64

	PrimaryPressed      bool
	PrimaryJustPressed  bool
	PrimaryJustReleased bool
	SecondaryPressed    bool

	WheelY float64

	TiltUp    bool
	TiltDown  bool
	PanLeft   bool
	PanRight  bool
	FovWiden  bool
	FovNarrow bool
}

// Navigator 连续式相机控制。每帧读取输入快照，把拖拽、滚轮与持续按键
// 累积到目标姿态上，再按阻尼系数把相机逐帧逼近目标，拖拽松手后会平滑减速。
//
// 视场角的写权在过渡期间归过渡控制器，此时 Update 的 fovLocked 为 true，
// 视场角按键被压制，目标值每帧与相机回对齐，解锁后不会突跳。
type Navigator struct {
	cam    *Camera
	width  int
	height int

	targetYaw   float64
	targetPitch float64
	targetFov   float64
	targetDolly float64

	dragging      bool
	lastX         float64
	lastY         float64
	dollyDragging bool
	dollyLastY    float64

	invertPitch bool
}

// NewNavigator 绑定相机并以其当前姿态初始化所有目标值。
func NewNavigator(cam *Camera, width, height int) *Navigator {
	n := &Navigator{cam: cam, width: width, height: height}
	n.SyncTargets()
	return n
}

// SyncTargets 把全部目标值重置为相机当前姿态。
// 外部直接改写相机（如场景提交后套用初始朝向）之后必须调用，
// 否则阻尼会把相机拉回旧目标。
func (n *Navigator) SyncTargets() {
	n.targetYaw = n.cam.Yaw
	n.targetPitch = n.cam.Pitch
	n.targetFov = n.cam.Fov
	n.targetDolly = n.cam.Dolly
}

// SetInvertPitch 设置拖拽俯仰是否反转。
func (n *Navigator) SetInvertPitch(v bool) { n.invertPitch = v }

// Dragging 报告主键拖拽是否进行中。
func (n *Navigator) Dragging() bool { return n.dragging }

// Update 消化一帧输入并推进相机。dt 为本帧经过秒数，
// fovLocked 为 true 时视场角不归本控制器写。
func (n *Navigator) Update(in InputState, dt float64, fovLocked bool) {
	n.applyPointer(in)
	n.applyWheel(in)
	n.applyKeys(in, dt, fovLocked)
	n.clampTargets()
	n.approach(dt, fovLocked)
}

func (n *Navigator) applyPointer(in InputState) {
	// 主键拖拽：沿拖拽方向环视。角速度随视场角缩放，
	// 放大看细节时同样的手移对应更小的转角。
	if in.PrimaryJustPressed {
		n.dragging = true
		n.lastX = in.CursorX
		n.lastY = in.CursorY
	}
	if n.dragging {
		if !in.PrimaryPressed {
			n.dragging = false
		} else {
			scale := n.cam.EffectiveFovRad() / float64(n.height)
			dx := in.CursorX - n.lastX
			dy := in.CursorY - n.lastY
			n.targetYaw -= dx * scale
			pitchDelta := dy * scale
			if n.invertPitch {
				pitchDelta = -pitchDelta
			}
			n.targetPitch += pitchDelta
			n.lastX = in.CursorX
			n.lastY = in.CursorY
		}
	}

	// 副键拖拽：垂直方向推拉焦距
	if in.SecondaryPressed {
		if !n.dollyDragging {
			n.dollyDragging = true
		} else {
			n.targetDolly += (in.CursorY - n.dollyLastY) * config.DollyDragFactor
		}
		n.dollyLastY = in.CursorY
	} else {
		n.dollyDragging = false
	}
}

func (n *Navigator) applyWheel(in InputState) {
	if in.WheelY == 0 {
		return
	}
	// 每格滚轮按固定倍率推拉，向上滚拉近
	n.targetDolly *= math.Pow(config.WheelDollyFactor, in.WheelY)
}

func (n *Navigator) applyKeys(in InputState, dt float64, fovLocked bool) {
	tilt := config.KeyTiltSpeedDeg * math.Pi / 180 * dt
	pan := config.KeyPanSpeedDeg * math.Pi / 180 * dt
	if in.TiltUp {
		n.targetPitch += tilt
	}
	if in.TiltDown {
		n.targetPitch -= tilt
	}
	if in.PanLeft {
		n.targetYaw -= pan
	}
	if in.PanRight {
		n.targetYaw += pan
	}
	if fovLocked {
		return
	}
	fovStep := config.KeyFovSpeedDeg * dt
	if in.FovWiden {
		n.targetFov += fovStep
	}
	if in.FovNarrow {
		n.targetFov -= fovStep
	}
}

func (n *Navigator) clampTargets() {
	n.targetPitch = clampFloat(n.targetPitch, -pitchLimitRad(), pitchLimitRad())
	n.targetFov = clampFloat(n.targetFov, config.FovMin, config.FovMax)
	n.targetDolly = clampFloat(n.targetDolly, config.DollyMin, config.DollyMax)
}

// approach 按阻尼把相机逼近目标。阻尼系数按 60Hz 标定，
// 对实际帧时长做指数换算保证帧率无关。
func (n *Navigator) approach(dt float64, fovLocked bool) {
	k := 1 - math.Pow(1-config.DragDamping, dt*60)
	n.cam.Yaw += (n.targetYaw - n.cam.Yaw) * k
	n.cam.Pitch += (n.targetPitch - n.cam.Pitch) * k
	n.cam.Dolly += (n.targetDolly - n.cam.Dolly) * k
	if fovLocked {
		n.targetFov = n.cam.Fov
		return
	}
	n.cam.Fov += (n.targetFov - n.cam.Fov) * k
	n.cam.Fov = clampFloat(n.cam.Fov, config.FovMin, config.FovMax)
}
