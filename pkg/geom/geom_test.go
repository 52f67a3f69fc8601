package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-4

func almostEqual(a, b float32) bool {
	return math32.Abs(a-b) < eps
}

func vecAlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

// TestDirFromAngles 测试 yaw/pitch 到方向向量的转换
func TestDirFromAngles(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		expected   Vec3
	}{
		{"正前方", 0, 0, Vec3{0, 0, -1}},
		{"右转90度", math32.Pi / 2, 0, Vec3{1, 0, 0}},
		{"后方", math32.Pi, 0, Vec3{0, 0, 1}},
		{"左转90度", 3 * math32.Pi / 2, 0, Vec3{-1, 0, 0}},
		{"正上方", 0, math32.Pi / 2, Vec3{0, 1, 0}},
		{"正下方", 0, -math32.Pi / 2, Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DirFromAngles(tt.yaw, tt.pitch)
			if !vecAlmostEqual(got, tt.expected) {
				t.Errorf("DirFromAngles(%v, %v) = %+v, 期望 %+v", tt.yaw, tt.pitch, got, tt.expected)
			}
		})
	}
}

// TestAnglesFromDirRoundTrip 测试方向向量与角度的往返一致性
func TestAnglesFromDirRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
	}{
		{"正前方", 0, 0},
		{"斜向右上", 0.8, 0.4},
		{"斜向左下", 5.1, -0.9},
		{"接近天顶", 2.0, 1.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DirFromAngles(tt.yaw, tt.pitch)
			yaw, pitch := AnglesFromDir(d)
			if !almostEqual(yaw, tt.yaw) || !almostEqual(pitch, tt.pitch) {
				t.Errorf("往返结果 (%v, %v)，期望 (%v, %v)", yaw, pitch, tt.yaw, tt.pitch)
			}
		})
	}
}

// TestEquirectUV 测试等距柱状投影采样坐标
func TestEquirectUV(t *testing.T) {
	tests := []struct {
		name     string
		dir      Vec3
		expected [2]float32
	}{
		{"正前方是图片中心", Vec3{0, 0, -1}, [2]float32{0.5, 0.5}},
		{"右方在四分之三处", Vec3{1, 0, 0}, [2]float32{0.75, 0.5}},
		{"左方在四分之一处", Vec3{-1, 0, 0}, [2]float32{0.25, 0.5}},
		{"天顶在顶边", Vec3{0, 1, 0}, [2]float32{0.5, 0}},
		{"天底在底边", Vec3{0, -1, 0}, [2]float32{0.5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := EquirectUV(tt.dir)
			if !almostEqual(u, tt.expected[0]) || !almostEqual(v, tt.expected[1]) {
				t.Errorf("EquirectUV(%+v) = (%v, %v), 期望 (%v, %v)",
					tt.dir, u, v, tt.expected[0], tt.expected[1])
			}
		})
	}
}

// TestWrapAngle 测试角度归一化
func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected float32
	}{
		{"零", 0, 0},
		{"负角度", -math32.Pi / 2, 3 * math32.Pi / 2},
		{"超过一圈", 2*math32.Pi + 0.5, 0.5},
		{"负两圈", -4*math32.Pi + 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapAngle(tt.input)
			if !almostEqual(got, tt.expected) {
				t.Errorf("WrapAngle(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestScreenRayCenter 测试屏幕中心像素的射线即视线方向
func TestScreenRayCenter(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
	}{
		{"初始朝向", 0, 0},
		{"右转仰视", 1.2, 0.5},
		{"左转俯视", 4.5, -0.7},
	}

	const w, h = 1280, 720
	fovY := float32(75) * math32.Pi / 180

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := ScreenRay(w/2, h/2, w, h, fovY, tt.yaw, tt.pitch)
			want := DirFromAngles(tt.yaw, tt.pitch)
			if !vecAlmostEqual(ray, want) {
				t.Errorf("中心射线 %+v, 期望视线方向 %+v", ray, want)
			}
		})
	}
}

// TestProjectPointRoundTrip 测试投影与射线互为逆变换
func TestProjectPointRoundTrip(t *testing.T) {
	const w, h = 1280, 720
	const radius = 500
	fovY := float32(60) * math32.Pi / 180
	yaw, pitch := float32(0.9), float32(-0.3)

	tests := []struct {
		name   string
		px, py float32
	}{
		{"屏幕中心", w / 2, h / 2},
		{"左上区域", 300, 150},
		{"右下区域", 1000, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ScreenRay(tt.px, tt.py, w, h, fovY, yaw, pitch).Scale(radius)
			sx, sy, depth, ok := ProjectPoint(p, yaw, pitch, fovY, w, h)
			if !ok {
				t.Fatalf("投影点 %+v 不应在相机背面", p)
			}
			if depth <= 0 {
				t.Errorf("深度 %v 应为正值", depth)
			}
			if math32.Abs(sx-tt.px) > 0.1 || math32.Abs(sy-tt.py) > 0.1 {
				t.Errorf("往返屏幕坐标 (%v, %v), 期望 (%v, %v)", sx, sy, tt.px, tt.py)
			}
		})
	}
}

// TestProjectPointBehindCamera 测试相机背面的点不可见
func TestProjectPointBehindCamera(t *testing.T) {
	const w, h = 1280, 720
	fovY := float32(75) * math32.Pi / 180

	// 视线朝向 -Z，背面的点在 +Z 方向
	behind := Vec3{0, 0, 400}
	if _, _, _, ok := ProjectPoint(behind, 0, 0, fovY, w, h); ok {
		t.Error("背面的点不应该可见")
	}

	// 转身 180 度后同一点应该可见且位于屏幕中心
	sx, sy, _, ok := ProjectPoint(behind, math32.Pi, 0, fovY, w, h)
	if !ok {
		t.Fatal("转身后点应该可见")
	}
	if math32.Abs(sx-w/2) > 0.1 || math32.Abs(sy-h/2) > 0.1 {
		t.Errorf("转身后应投影到屏幕中心, 实际 (%v, %v)", sx, sy)
	}
}

// TestNormalize 测试向量归一化
func TestNormalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if !almostEqual(v.Length(), 1) {
		t.Errorf("归一化后长度 %v, 期望 1", v.Length())
	}

	// 零向量原样返回，不产生 NaN
	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("零向量归一化应原样返回, 实际 %+v", zero)
	}
}

// TestRotations 测试绕轴旋转
func TestRotations(t *testing.T) {
	t.Run("绕Y轴旋转90度", func(t *testing.T) {
		got := Vec3{0, 0, -1}.RotateY(math32.Pi / 2)
		if !vecAlmostEqual(got, Vec3{-1, 0, 0}) {
			t.Errorf("RotateY 结果 %+v, 期望 (-1, 0, 0)", got)
		}
	})

	t.Run("绕X轴旋转90度", func(t *testing.T) {
		got := Vec3{0, 0, -1}.RotateX(math32.Pi / 2)
		if !vecAlmostEqual(got, Vec3{0, 1, 0}) {
			t.Errorf("RotateX 结果 %+v, 期望 (0, 1, 0)", got)
		}
	})

	t.Run("旋转保持长度", func(t *testing.T) {
		v := Vec3{2, 3, 5}
		r := v.RotateX(0.7).RotateY(1.9)
		if !almostEqual(v.Length(), r.Length()) {
			t.Errorf("旋转后长度 %v, 期望 %v", r.Length(), v.Length())
		}
	})
}
