//go:build windows

package hook

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/myood/winhook/event"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14
)

type kbdllHookStruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msllHookStruct struct {
	pt          struct{ x, y int32 }
	mouseData   uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// Callback trampolines are created once at package load:
// windows.NewCallback never releases them, so minting one per install
// would leak a limited resource.
var (
	keyboardCallback = windows.NewCallback(keyboardProc)
	mouseCallback    = windows.NewCallback(mouseProc)
)

// keyboardProc is invoked by Windows on the hook thread for every
// keyboard action system-wide. It must never block, never panic, and
// always forward to the rest of the hook chain.
func keyboardProc(nCode int, wParam, lParam uintptr) uintptr {
	std.dispatch(Keyboard, int32(nCode), func() (event.InputEvent, bool) {
		ks := (*kbdllHookStruct)(unsafe.Pointer(lParam))
		ke, ok := event.DecodeKeyboard(uint32(wParam), ks.vkCode)
		if !ok {
			return event.InputEvent{}, false
		}
		return event.InputEvent{Keyboard: &ke}, true
	})
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// mouseProc is the WH_MOUSE_LL counterpart of keyboardProc.
func mouseProc(nCode int, wParam, lParam uintptr) uintptr {
	std.dispatch(Mouse, int32(nCode), func() (event.InputEvent, bool) {
		ms := (*msllHookStruct)(unsafe.Pointer(lParam))
		me, ok := event.DecodeMouse(uint32(wParam), ms.pt.x, ms.pt.y, ms.mouseData)
		if !ok {
			return event.InputEvent{}, false
		}
		return event.InputEvent{Mouse: &me}, true
	})
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// systemHooks is the real Windows binding.
type systemHooks struct{}

func newSystemHooks() osHooks {
	return systemHooks{}
}

func (systemHooks) install(kind Kind) (uintptr, error) {
	id, cb := uintptr(whKeyboardLL), keyboardCallback
	if kind == Mouse {
		id, cb = uintptr(whMouseLL), mouseCallback
	}
	// Low-level hooks take no module handle and no thread id: the
	// callback lives in this process and applies system-wide.
	h, _, err := procSetWindowsHookExW.Call(id, cb, 0, 0)
	if h == 0 {
		return 0, fmt.Errorf("SetWindowsHookExW(%s): %w", kind, err)
	}
	return h, nil
}

func (systemHooks) uninstall(token uintptr) {
	procUnhookWindowsHookEx.Call(token)
}

func (systemHooks) wait() {
	var m msg
	procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
}
