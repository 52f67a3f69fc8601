package config

// 热点标记视觉配置常量

const (
	// MarkerWorldRadius 标记的世界空间半径，屏幕大小随距离与视场角缩放
	MarkerWorldRadius float32 = 22

	// MarkerMinScreenRadius 标记最小屏幕半径（像素）
	MarkerMinScreenRadius float64 = 12

	// MarkerMaxScreenRadius 标记最大屏幕半径（像素）
	MarkerMaxScreenRadius float64 = 60

	// MarkerPulseOmega 外圈脉冲角频率（弧度/秒），与帧率无关
	MarkerPulseOmega float64 = 2.4

	// MarkerPulseScaleAmp 外圈脉冲的半径振幅（相对基准半径）
	MarkerPulseScaleAmp float64 = 0.14

	// MarkerPulseAlphaAmp 外圈脉冲的透明度振幅
	MarkerPulseAlphaAmp float64 = 0.25

	// MarkerSpinSpeed 中圈旋转角速度（弧度/秒）
	MarkerSpinSpeed float64 = 1.6

	// MarkerHoverGrow 悬停时的放大倍数
	MarkerHoverGrow float64 = 1.18

	// MarkerLabelFontSize 悬停标签文字大小
	MarkerLabelFontSize float64 = 16

	// MarkerDeleteRadius 编辑器删除按钮半径（像素）
	MarkerDeleteRadius float64 = 10
)
