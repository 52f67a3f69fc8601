package screens

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jupdesignstudio/VirtuShot/pkg/engine"
	"github.com/jupdesignstudio/VirtuShot/pkg/settings"
)

// keyTable 设置文件中的键名到 ebiten 按键的映射
// 键名不区分大小写，覆盖导航绑定实际会用到的键位。
var keyTable = map[string]ebiten.Key{
	"A": ebiten.KeyA, "B": ebiten.KeyB, "C": ebiten.KeyC, "D": ebiten.KeyD,
	"E": ebiten.KeyE, "F": ebiten.KeyF, "G": ebiten.KeyG, "H": ebiten.KeyH,
	"I": ebiten.KeyI, "J": ebiten.KeyJ, "K": ebiten.KeyK, "L": ebiten.KeyL,
	"M": ebiten.KeyM, "N": ebiten.KeyN, "O": ebiten.KeyO, "P": ebiten.KeyP,
	"Q": ebiten.KeyQ, "R": ebiten.KeyR, "S": ebiten.KeyS, "T": ebiten.KeyT,
	"U": ebiten.KeyU, "V": ebiten.KeyV, "W": ebiten.KeyW, "X": ebiten.KeyX,
	"Y": ebiten.KeyY, "Z": ebiten.KeyZ,

	"0": ebiten.KeyDigit0, "1": ebiten.KeyDigit1, "2": ebiten.KeyDigit2,
	"3": ebiten.KeyDigit3, "4": ebiten.KeyDigit4, "5": ebiten.KeyDigit5,
	"6": ebiten.KeyDigit6, "7": ebiten.KeyDigit7, "8": ebiten.KeyDigit8,
	"9": ebiten.KeyDigit9,

	"UP":    ebiten.KeyArrowUp,
	"DOWN":  ebiten.KeyArrowDown,
	"LEFT":  ebiten.KeyArrowLeft,
	"RIGHT": ebiten.KeyArrowRight,

	"SPACE":  ebiten.KeySpace,
	"SHIFT":  ebiten.KeyShift,
	"COMMA":  ebiten.KeyComma,
	"PERIOD": ebiten.KeyPeriod,
	"MINUS":  ebiten.KeyMinus,
	"EQUAL":  ebiten.KeyEqual,
	"PGUP":   ebiten.KeyPageUp,
	"PGDOWN": ebiten.KeyPageDown,
}

// KeyByName 按键名查找 ebiten 按键，未知键名返回 false
func KeyByName(name string) (ebiten.Key, bool) {
	k, ok := keyTable[strings.ToUpper(strings.TrimSpace(name))]
	return k, ok
}

// keyHeld 绑定键名对应的按键是否处于按下状态
func keyHeld(name string) bool {
	k, ok := KeyByName(name)
	return ok && ebiten.IsKeyPressed(k)
}

// GatherInput 采集本帧原始输入并按键位绑定折叠成引擎输入快照
func GatherInput(keys settings.KeyBindings) engine.InputState {
	cx, cy := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()
	return engine.InputState{
		CursorX: float64(cx),
		CursorY: float64(cy),

		PrimaryPressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		PrimaryJustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PrimaryJustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		SecondaryPressed:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),

		WheelY: wheelY,

		TiltUp:    keyHeld(keys.TiltUp),
		TiltDown:  keyHeld(keys.TiltDown),
		PanLeft:   keyHeld(keys.PanLeft),
		PanRight:  keyHeld(keys.PanRight),
		FovWiden:  keyHeld(keys.FovWiden),
		FovNarrow: keyHeld(keys.FovNarrow),
	}
}

// maskPointer 清空快照中的指针相关字段
// 光标落在界面面板上时调用，避免面板点击漏进全景画布。
func maskPointer(in engine.InputState) engine.InputState {
	in.PrimaryPressed = false
	in.PrimaryJustPressed = false
	in.PrimaryJustReleased = false
	in.SecondaryPressed = false
	in.WheelY = 0
	return in
}

// maskKeys 清空快照中的持续按键字段
// 文本框持有焦点时调用，打字不应驱动相机。
func maskKeys(in engine.InputState) engine.InputState {
	in.TiltUp = false
	in.TiltDown = false
	in.PanLeft = false
	in.PanRight = false
	in.FovWiden = false
	in.FovNarrow = false
	return in
}
