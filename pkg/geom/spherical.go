package geom

import "github.com/chewxy/math32"

// DirFromAngles 由 yaw/pitch（弧度）计算世界空间的单位视线方向。
func DirFromAngles(yaw, pitch float32) Vec3 {
	sy, cy := math32.Sincos(yaw)
	sp, cp := math32.Sincos(pitch)
	return Vec3{cp * sy, sp, -cp * cy}
}

// AnglesFromDir 由方向向量反推 yaw/pitch（弧度）。
// yaw 归一到 [0, 2π)，pitch 落在 [-π/2, π/2]。
func AnglesFromDir(d Vec3) (yaw, pitch float32) {
	d = d.Normalize()
	yaw = WrapAngle(math32.Atan2(d.X, -d.Z))
	pitch = math32.Asin(Clamp(d.Y, -1, 1))
	return yaw, pitch
}

// EquirectUV 计算方向向量在等距柱状全景图上的采样坐标。
// u 沿经度环绕（0.5 对应 yaw=0 的正前方），v 从顶(0)到底(1)。
func EquirectUV(d Vec3) (u, v float32) {
	d = d.Normalize()
	u = 0.5 + math32.Atan2(d.X, -d.Z)/(2*math32.Pi)
	v = 0.5 - math32.Asin(Clamp(d.Y, -1, 1))/math32.Pi
	return u, v
}

// WrapAngle 把角度归一到 [0, 2π)。
func WrapAngle(a float32) float32 {
	a = math32.Mod(a, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a
}

// Clamp 把 v 限制在 [lo, hi] 区间内。
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
