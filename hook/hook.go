// Package hook manages process-wide Windows low-level input hooks.
//
// Each hook kind (keyboard, mouse) is backed by at most one OS hook
// registration per process, installed on a dedicated background
// goroutine that parks forever inside the Windows message wait. Callers
// obtain reference-counted handles; the OS hook is unregistered exactly
// once, when the last handle is closed. Events cross from the OS
// callback to consumers through an unbounded queue so the callback can
// never block.
//
// The package is read-only by contract: it never injects, alters, or
// suppresses input, and every callback path forwards to the next hook
// in the OS chain.
package hook

import (
	"errors"
	"sync"

	"github.com/myood/winhook/event"
)

// Kind identifies a low-level hook type.
type Kind int

const (
	// Keyboard is the WH_KEYBOARD_LL hook.
	Keyboard Kind = iota
	// Mouse is the WH_MOUSE_LL hook.
	Mouse

	kindCount
)

// String returns "keyboard" or "mouse".
func (k Kind) String() string {
	if k == Mouse {
		return "mouse"
	}
	return "keyboard"
}

var (
	// ErrEmpty is returned by TryRecv when no event is currently queued
	// but a producer may still send.
	ErrEmpty = errors.New("hook: no event available")
	// ErrDisconnected is returned by TryRecv when the queue is drained
	// and no producer can ever send again.
	ErrDisconnected = errors.New("hook: all producers closed")
	// ErrAlreadyActive is returned by Acquire when a live hook of the
	// requested kind already exists in this process.
	ErrAlreadyActive = errors.New("hook: hook of this kind is already active")
)

// std is the process-wide registry backing the package-level API. The
// OS callbacks registered with Windows route through it.
var std = newRegistry(newSystemHooks(), newQueue())

// IsPresent reports whether a live hook of the given kind exists in
// this process.
func IsPresent(kind Kind) bool {
	return std.isPresent(kind)
}

// Acquire installs a hook of the given kind, or returns ErrAlreadyActive
// if one is live. The call does not return until the background
// goroutine has attempted the OS registration, so a returned handle is
// never "in flight": the hook is either registered or known to have
// failed. Registration failure is not an error here; the handle is
// simply inert and never yields events.
func Acquire(kind Kind) (*Handle, error) {
	return std.acquire(kind)
}

// Handle is a shared reference to a live hook. Clones share one OS
// registration; the hook is unregistered when the last clone is closed.
type Handle struct {
	kind Kind
	reg  *registry
	ctx  *execContext
	once sync.Once
}

// Kind returns the hook kind this handle refers to.
func (h *Handle) Kind() Kind {
	return h.kind
}

// Clone returns a new handle sharing the same underlying hook. The
// hook stays registered until every clone is closed. Cloning a handle
// whose hook has already been torn down returns nil rather than
// resurrecting the dead registration.
func (h *Handle) Clone() *Handle {
	if !h.ctx.tryRetain() {
		return nil
	}
	return &Handle{kind: h.kind, reg: h.reg, ctx: h.ctx}
}

// TryRecv polls the shared event queue without blocking. It returns
// ErrEmpty when nothing is queued and ErrDisconnected when the queue is
// drained and every producer is gone. Events arrive in OS callback
// order.
func (h *Handle) TryRecv() (event.InputEvent, error) {
	return h.reg.events.tryRecv()
}

// Close releases this handle's reference. Closing the last clone
// unregisters the OS hook and closes the hook's queue producer. Close
// is idempotent and never fails.
func (h *Handle) Close() error {
	h.once.Do(func() {
		h.ctx.release()
	})
	return nil
}
