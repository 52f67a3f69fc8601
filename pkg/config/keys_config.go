package config

// 默认按键绑定（键名），可在设置中覆盖。
// 键名到 ebiten.Key 的解析见 pkg/screens 的按键映射表。

const (
	// DefaultKeyTiltUp 默认仰视按键
	DefaultKeyTiltUp = "W"

	// DefaultKeyTiltDown 默认俯视按键
	DefaultKeyTiltDown = "S"

	// DefaultKeyPanLeft 默认左转按键
	DefaultKeyPanLeft = "A"

	// DefaultKeyPanRight 默认右转按键
	DefaultKeyPanRight = "D"

	// DefaultKeyFovWiden 默认拉远（视场角增大）按键
	DefaultKeyFovWiden = "Q"

	// DefaultKeyFovNarrow 默认推近（视场角减小）按键
	DefaultKeyFovNarrow = "E"
)
