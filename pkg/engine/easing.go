package engine

import "math"

// Easing 缓动函数，输入进度 t ∈ [0,1]，输出同区间。
// 补间用它把线性进度变成速度曲线。
type Easing func(t float64) float64

// EaseLinear 匀速，补间未指定曲线时的缺省
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次缓出，比三次更柔和，适合提示淡出一类的轻量动画
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次缓出，起步快收尾慢，视角回位用
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次缓入缓出，两头慢中间快，交叉淡化和视角推近用
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp 在 a、b 之间按 t 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
