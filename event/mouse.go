package event

// Windows mouse hook message codes delivered to WH_MOUSE_LL.
const (
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C
	wmMouseHWheel = 0x020E
)

// High word of MSLLHOOKSTRUCT.mouseData for WM_XBUTTON* messages.
const (
	xButton1 = 0x0001
	xButton2 = 0x0002
)

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonX1
	ButtonX2
	ButtonOther
)

// String returns a short lowercase name for the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonX1:
		return "x1"
	case ButtonX2:
		return "x2"
	default:
		return "other"
	}
}

// DecodeMouse classifies a low-level mouse hook message into a
// MouseEvent. x and y are the screen coordinates from the hook struct;
// data is its mouseData field, which carries the wheel delta or the
// extended button index in the high word. Unrecognized action codes
// return false.
func DecodeMouse(action uint32, x, y int32, data uint32) (MouseEvent, bool) {
	switch action {
	case wmMouseMove:
		return MouseEvent{Action: MouseMove, X: x, Y: y}, true
	case wmLButtonDown:
		return MouseEvent{Action: MousePress, Press: Down, Button: ButtonLeft, X: x, Y: y}, true
	case wmLButtonUp:
		return MouseEvent{Action: MousePress, Press: Up, Button: ButtonLeft, X: x, Y: y}, true
	case wmRButtonDown:
		return MouseEvent{Action: MousePress, Press: Down, Button: ButtonRight, X: x, Y: y}, true
	case wmRButtonUp:
		return MouseEvent{Action: MousePress, Press: Up, Button: ButtonRight, X: x, Y: y}, true
	case wmMButtonDown:
		return MouseEvent{Action: MousePress, Press: Down, Button: ButtonMiddle, X: x, Y: y}, true
	case wmMButtonUp:
		return MouseEvent{Action: MousePress, Press: Up, Button: ButtonMiddle, X: x, Y: y}, true
	case wmXButtonDown:
		return MouseEvent{Action: MousePress, Press: Down, Button: xButton(data), X: x, Y: y}, true
	case wmXButtonUp:
		return MouseEvent{Action: MousePress, Press: Up, Button: xButton(data), X: x, Y: y}, true
	case wmMouseWheel:
		return MouseEvent{Action: MouseWheel, X: x, Y: y, Delta: wheelDelta(data)}, true
	case wmMouseHWheel:
		return MouseEvent{Action: MouseWheelHorizontal, X: x, Y: y, Delta: wheelDelta(data)}, true
	default:
		return MouseEvent{}, false
	}
}

func xButton(data uint32) Button {
	switch data >> 16 {
	case xButton1:
		return ButtonX1
	case xButton2:
		return ButtonX2
	default:
		return ButtonOther
	}
}

func wheelDelta(data uint32) int16 {
	return int16(data >> 16)
}
