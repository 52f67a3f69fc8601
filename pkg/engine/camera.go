package engine

import (
	"math"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
)

// Camera 全景相机状态（值类型）。
//
// 相机固定在球心，只有朝向和视场角变化：
//   - Yaw/Pitch 为弧度。Yaw 不在此处归一化（阻尼吸附需要连续累积值），
//     渲染与拾取在 geom 边界处归一。
//   - Fov 为垂直视场角（度），与配置常量同单位。
//   - Dolly 为焦距系数：1 为静止值，小于 1 拉近，大于 1 拉远。
//
// 每个阶段只有一个写入者：过渡期间 Fov 归 Transition 所有，
// 其余时间归 Navigator 所有（见 Transition.FovOwned）。
type Camera struct {
	Yaw   float64
	Pitch float64
	Fov   float64
	Dolly float64
}

// NewCamera 返回静止状态的相机
func NewCamera() Camera {
	return Camera{
		Yaw:   0,
		Pitch: 0,
		Fov:   config.RestingFov,
		Dolly: config.DollyRest,
	}
}

// EffectiveFovRad 合成推拉系数后的等效垂直视场角（弧度）。
// 渲染、拾取、标记投影都使用同一等效值，保证三者一致。
func (c Camera) EffectiveFovRad() float64 {
	half := c.Fov * math.Pi / 180 / 2
	return 2 * math.Atan(math.Tan(half)*c.Dolly)
}

// LookYaw 设置朝向（度），俯仰归零。进入场景时应用初始朝向。
func (c *Camera) LookYaw(yawDeg float64) {
	c.Yaw = yawDeg * math.Pi / 180
	c.Pitch = 0
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func pitchLimitRad() float64 {
	return config.PitchLimitDeg * math.Pi / 180
}
