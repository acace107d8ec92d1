// Package event defines the input event types produced by the low-level
// hooks and the classification of raw Windows hook messages into them.
// All classification functions are total: unrecognized input yields a
// false second return instead of an error or panic, because they run on
// the hook callback path where failure is not an option.
package event

// KeyPress reports whether a key or button went down or up.
type KeyPress int

const (
	// Down is a key or button press.
	Down KeyPress = iota
	// Up is a key or button release.
	Up
)

// String returns "down" or "up".
func (p KeyPress) String() string {
	if p == Up {
		return "up"
	}
	return "down"
}

// KeyboardEvent is a single keyboard action observed by the hook.
type KeyboardEvent struct {
	Press KeyPress
	Key   Key
	// Raw is the Windows virtual-key code as delivered by the OS,
	// preserved even when Key is KeyOther.
	Raw uint32
}

// MouseAction distinguishes the kinds of mouse events the hook reports.
type MouseAction int

const (
	// MousePress is a button press or release; see Press and Button.
	MousePress MouseAction = iota
	// MouseMove is a pointer move; see X and Y.
	MouseMove
	// MouseWheel is a vertical wheel turn; see Delta.
	MouseWheel
	// MouseWheelHorizontal is a horizontal wheel turn; see Delta.
	MouseWheelHorizontal
)

// String returns a short lowercase name for the action.
func (a MouseAction) String() string {
	switch a {
	case MouseMove:
		return "move"
	case MouseWheel:
		return "wheel"
	case MouseWheelHorizontal:
		return "hwheel"
	default:
		return "press"
	}
}

// MouseEvent is a single mouse action observed by the hook. Only the
// fields relevant to Action are meaningful.
type MouseEvent struct {
	Action MouseAction
	Press  KeyPress
	Button Button
	X, Y   int32
	// Delta is the signed wheel rotation; positive is away from the
	// user (or to the right for horizontal wheels).
	Delta int16
}

// InputEvent is the union of everything the hooks can report. Exactly
// one of Keyboard or Mouse is non-nil.
type InputEvent struct {
	Keyboard *KeyboardEvent
	Mouse    *MouseEvent
}

// Source names the hook kind an event came from.
func (e InputEvent) Source() string {
	if e.Keyboard != nil {
		return "keyboard"
	}
	if e.Mouse != nil {
		return "mouse"
	}
	return "unknown"
}
