package event

// Windows keyboard hook message codes. The low-level keyboard hook only
// ever delivers these four; anything else is an OS anomaly and is left
// unclassified.
const (
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
)

// Key is a decoded keyboard key. Keys without a dedicated constant
// decode to KeyOther with the virtual-key code kept in KeyboardEvent.Raw.
type Key int

const (
	KeyOther Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyShift
	KeyLeftShift
	KeyRightShift
	KeyControl
	KeyLeftControl
	KeyRightControl
	KeyAlt
	KeyLeftAlt
	KeyRightAlt
	KeyLeftWin
	KeyRightWin
	KeyCapsLock
	KeyNumLock
	KeyScrollLock
	KeyPrintScreen
	KeyPause
)

// vkToKey maps Windows virtual-key codes to decoded keys. Letters and
// digits share their ASCII codes, everything else is a VK_* constant.
var vkToKey = map[uint32]Key{
	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0D: KeyEnter,
	0x10: KeyShift,
	0x11: KeyControl,
	0x12: KeyAlt,
	0x13: KeyPause,
	0x14: KeyCapsLock,
	0x1B: KeyEscape,
	0x20: KeySpace,
	0x21: KeyPageUp,
	0x22: KeyPageDown,
	0x23: KeyEnd,
	0x24: KeyHome,
	0x25: KeyLeft,
	0x26: KeyUp,
	0x27: KeyRight,
	0x28: KeyDown,
	0x2C: KeyPrintScreen,
	0x2D: KeyInsert,
	0x2E: KeyDelete,
	0x30: Key0, 0x31: Key1, 0x32: Key2, 0x33: Key3, 0x34: Key4,
	0x35: Key5, 0x36: Key6, 0x37: Key7, 0x38: Key8, 0x39: Key9,
	0x41: KeyA, 0x42: KeyB, 0x43: KeyC, 0x44: KeyD, 0x45: KeyE,
	0x46: KeyF, 0x47: KeyG, 0x48: KeyH, 0x49: KeyI, 0x4A: KeyJ,
	0x4B: KeyK, 0x4C: KeyL, 0x4D: KeyM, 0x4E: KeyN, 0x4F: KeyO,
	0x50: KeyP, 0x51: KeyQ, 0x52: KeyR, 0x53: KeyS, 0x54: KeyT,
	0x55: KeyU, 0x56: KeyV, 0x57: KeyW, 0x58: KeyX, 0x59: KeyY,
	0x5A: KeyZ,
	0x5B: KeyLeftWin,
	0x5C: KeyRightWin,
	0x70: KeyF1, 0x71: KeyF2, 0x72: KeyF3, 0x73: KeyF4,
	0x74: KeyF5, 0x75: KeyF6, 0x76: KeyF7, 0x77: KeyF8,
	0x78: KeyF9, 0x79: KeyF10, 0x7A: KeyF11, 0x7B: KeyF12,
	0x90: KeyNumLock,
	0x91: KeyScrollLock,
	0xA0: KeyLeftShift,
	0xA1: KeyRightShift,
	0xA2: KeyLeftControl,
	0xA3: KeyRightControl,
	0xA4: KeyLeftAlt,
	0xA5: KeyRightAlt,
}

var keyNames = map[Key]string{
	KeyA: "a", KeyB: "b", KeyC: "c", KeyD: "d", KeyE: "e", KeyF: "f",
	KeyG: "g", KeyH: "h", KeyI: "i", KeyJ: "j", KeyK: "k", KeyL: "l",
	KeyM: "m", KeyN: "n", KeyO: "o", KeyP: "p", KeyQ: "q", KeyR: "r",
	KeyS: "s", KeyT: "t", KeyU: "u", KeyV: "v", KeyW: "w", KeyX: "x",
	KeyY: "y", KeyZ: "z",
	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",
	KeyF1: "f1", KeyF2: "f2", KeyF3: "f3", KeyF4: "f4",
	KeyF5: "f5", KeyF6: "f6", KeyF7: "f7", KeyF8: "f8",
	KeyF9: "f9", KeyF10: "f10", KeyF11: "f11", KeyF12: "f12",
	KeySpace: "space", KeyEnter: "enter", KeyEscape: "esc",
	KeyTab: "tab", KeyBackspace: "backspace", KeyDelete: "delete",
	KeyInsert: "insert", KeyHome: "home", KeyEnd: "end",
	KeyPageUp: "pageup", KeyPageDown: "pagedown",
	KeyLeft: "left", KeyRight: "right", KeyUp: "up", KeyDown: "down",
	KeyShift: "shift", KeyLeftShift: "lshift", KeyRightShift: "rshift",
	KeyControl: "ctrl", KeyLeftControl: "lctrl", KeyRightControl: "rctrl",
	KeyAlt: "alt", KeyLeftAlt: "lalt", KeyRightAlt: "ralt",
	KeyLeftWin: "lwin", KeyRightWin: "rwin",
	KeyCapsLock: "capslock", KeyNumLock: "numlock",
	KeyScrollLock: "scrolllock", KeyPrintScreen: "printscreen",
	KeyPause: "pause",
}

// String returns a short lowercase name, or "other" for keys without a
// dedicated constant.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "other"
}

// DecodeKey maps a Windows virtual-key code to a Key. Unknown codes
// decode to KeyOther.
func DecodeKey(vk uint32) Key {
	if k, ok := vkToKey[vk]; ok {
		return k
	}
	return KeyOther
}

// ClassifyKeyAction maps a keyboard hook message code to a KeyPress.
// The second return is false for codes the hook does not recognize.
func ClassifyKeyAction(action uint32) (KeyPress, bool) {
	switch action {
	case wmKeyDown, wmSysKeyDown:
		return Down, true
	case wmKeyUp, wmSysKeyUp:
		return Up, true
	default:
		return Down, false
	}
}

// DecodeKeyboard classifies a low-level keyboard hook message into a
// KeyboardEvent. It is total: unrecognized action codes return false.
func DecodeKeyboard(action uint32, vk uint32) (KeyboardEvent, bool) {
	press, ok := ClassifyKeyAction(action)
	if !ok {
		return KeyboardEvent{}, false
	}
	return KeyboardEvent{Press: press, Key: DecodeKey(vk), Raw: vk}, true
}
