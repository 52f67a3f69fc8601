// Package geom 提供全景渲染所需的三维向量与球面坐标工具。
//
// # 坐标系统概述
//
// 本项目使用右手坐标系，相机固定在球心（原点）：
//   - **+X**：屏幕右方
//   - **+Y**：天顶（向上）
//   - **-Z**：yaw=0、pitch=0 时的视线方向
//   - **yaw**：绕 Y 轴的水平旋转，正值向右看，范围 [0, 2π)
//   - **pitch**：俯仰角，正值向上看，范围 (-π/2, π/2)
//
// # 核心转换公式
//
// 视线方向（yaw/pitch → 单位向量）：
//
//	dir.X = cos(pitch) * sin(yaw)
//	dir.Y = sin(pitch)
//	dir.Z = -cos(pitch) * cos(yaw)
//
// 等距柱状全景图采样（单位向量 → 纹理 UV）：
//
//	u = 0.5 + atan2(dir.X, -dir.Z) / (2π)
//	v = 0.5 - asin(dir.Y) / π
//
// 屏幕坐标与世界方向的互转见 ScreenRay 与 ProjectPoint。
// 渲染端数学统一使用 float32（与 Ebiten 顶点 / 着色器 uniform 一致）。
package geom

import "github.com/chewxy/math32"

// Vec3 三维向量（float32）
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 标量乘法
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length 向量长度
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize 归一化为单位向量；零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// RotateX 绕 +X 轴旋转 a 弧度（右手法则）
func (v Vec3) RotateX(a float32) Vec3 {
	s, c := math32.Sincos(a)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

// RotateY 绕 +Y 轴旋转 a 弧度（右手法则）
func (v Vec3) RotateY(a float32) Vec3 {
	s, c := math32.Sincos(a)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}
