package config

// 全景引擎核心配置常量：相机、过渡、导航、加载

const (
	// SphereRadius 全景球半径（世界单位），热点放置在球面上
	SphereRadius float32 = 500

	// RestingFov 静止垂直视场角（度）
	RestingFov float64 = 75

	// TransitionTargetFov 过渡推进的目标视场角（度）
	TransitionTargetFov float64 = 40

	// FovMin 视场角下限（度）
	FovMin float64 = 20

	// FovMax 视场角上限（度）
	FovMax float64 = 100

	// PitchLimitDeg 俯仰角限制（度），防止越过天顶/天底翻转
	PitchLimitDeg float64 = 88

	// DollyRest 推拉系数静止值
	DollyRest float64 = 1.0

	// DollyMin 推拉系数下限（小于 1 为拉近）
	DollyMin float64 = 0.6

	// DollyMax 推拉系数上限
	DollyMax float64 = 1.6

	// WheelDollyFactor 每格滚轮对推拉系数的乘数
	WheelDollyFactor float64 = 0.94

	// DollyDragFactor 副键垂直拖拽每像素对推拉系数的增量
	DollyDragFactor float64 = 0.004
)

const (
	// FadeDuration 过渡淡出时长（秒）：顶层不透明度 1 → 0
	FadeDuration float64 = 1.0

	// ZoomDuration 过渡推进时长（秒）：视场角收窄到 TransitionTargetFov
	ZoomDuration float64 = 1.0

	// FovResetDuration 过渡完成后视场角回归静止值的时长（秒）
	FovResetDuration float64 = 1.5
)

const (
	// DragDamping 拖拽阻尼系数：每帧向目标角度吸附的比例（60fps 基准）
	DragDamping float64 = 0.05

	// KeyTiltSpeedDeg 按键俯仰速度（度/秒）
	KeyTiltSpeedDeg float64 = 45

	// KeyPanSpeedDeg 按键平移速度（度/秒）
	KeyPanSpeedDeg float64 = 60

	// KeyFovSpeedDeg 按键视场角变化速度（度/秒）
	KeyFovSpeedDeg float64 = 35
)

const (
	// LoadTimeoutSeconds 纹理加载超时（秒），超时按加载失败处理
	LoadTimeoutSeconds = 15

	// TextureCacheSize 解码后全景图的 LRU 缓存容量（张）
	TextureCacheSize = 4
)

const (
	// ClickSlopPx 点击判定的最大位移（像素），超过视为拖拽
	ClickSlopPx float64 = 6

	// ClickMaxSeconds 点击判定的最长按住时间（秒）
	ClickMaxSeconds float64 = 0.35
)
