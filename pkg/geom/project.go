package geom

import "github.com/chewxy/math32"

// ScreenRay 把屏幕像素坐标转换为世界空间的视线方向（单位向量）。
//
// 计算公式（fovY 为垂直视场角，弧度）：
//
//	tanHalf = tan(fovY/2)
//	ndcX = (2*px/w - 1) * tanHalf * (w/h)
//	ndcY = (1 - 2*py/h) * tanHalf
//	ray  = normalize(ndcX, ndcY, -1)
//	world = ray.RotateX(pitch).RotateY(-yaw)
//
// 用于点击拾取：射线与全景球面的交点即 ray * 球半径。
func ScreenRay(px, py, w, h, fovY, yaw, pitch float32) Vec3 {
	tanHalf := math32.Tan(fovY / 2)
	ndcX := (2*px/w - 1) * tanHalf * (w / h)
	ndcY := (1 - 2*py/h) * tanHalf
	ray := Vec3{ndcX, ndcY, -1}.Normalize()
	return ray.RotateX(pitch).RotateY(-yaw)
}

// ProjectPoint 把世界空间点透视投影到屏幕。
//
// 返回屏幕坐标（像素）、相机空间深度，以及 ok=false 表示点位于
// 相机背面（不可见，此时其余返回值无意义）。
// 与 ScreenRay 互为逆变换：ProjectPoint(ScreenRay(px,py)*r) ≈ (px,py)。
func ProjectPoint(p Vec3, yaw, pitch, fovY, w, h float32) (sx, sy, depth float32, ok bool) {
	c := p.RotateY(yaw).RotateX(-pitch)
	if c.Z > -1e-4 {
		return 0, 0, 0, false
	}
	depth = -c.Z
	focal := (h / 2) / math32.Tan(fovY/2)
	sx = w/2 + c.X/depth*focal
	sy = h/2 - c.Y/depth*focal
	return sx, sy, depth, true
}
