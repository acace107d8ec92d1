// Package winhook provides safe, read-only access to Windows low-level
// keyboard and mouse hooks, regardless of which application has focus.
//
// A Hook obtained here observes input events system-wide; it cannot
// inject, alter, or suppress them. The underlying OS hooks are shared
// process-wide and reference counted: they are installed on first use
// and unregistered when the last Hook referencing them is closed.
//
//	h, err := winhook.Keyboard()
//	if err != nil {
//		// a keyboard hook is already active elsewhere in the process
//	}
//	defer h.Close()
//	for {
//		ev, err := h.TryRecv()
//		...
//	}
//
// On platforms other than Windows the hooks are inert: construction
// succeeds but no events ever arrive.
package winhook

import (
	"errors"
	"sync"

	"github.com/myood/winhook/event"
	"github.com/myood/winhook/hook"
)

// ErrNoKinds is returned by Build when the builder was given nothing
// to observe.
var ErrNoKinds = errors.New("winhook: no hook kinds requested")

// Keyboard returns a hook observing keyboard events only.
func Keyboard() (*Hook, error) {
	return NewBuilder().WithKeyboard().Build()
}

// Mouse returns a hook observing mouse events only.
func Mouse() (*Hook, error) {
	return NewBuilder().WithMouse().Build()
}

// All returns a hook observing both keyboard and mouse events.
func All() (*Hook, error) {
	return NewBuilder().WithKeyboard().WithMouse().Build()
}

// Builder selects which hook kinds a Hook should observe.
type Builder struct {
	kinds []hook.Kind
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithKeyboard requests keyboard events.
func (b *Builder) WithKeyboard() *Builder {
	return b.with(hook.Keyboard)
}

// WithMouse requests mouse events.
func (b *Builder) WithMouse() *Builder {
	return b.with(hook.Mouse)
}

func (b *Builder) with(kind hook.Kind) *Builder {
	for _, k := range b.kinds {
		if k == kind {
			return b
		}
	}
	b.kinds = append(b.kinds, kind)
	return b
}

// Build acquires the requested hooks. It fails with
// hook.ErrAlreadyActive if any requested kind is already hooked
// elsewhere in the process, releasing whatever it had acquired so a
// failed build leaves no hook behind.
func (b *Builder) Build() (*Hook, error) {
	if len(b.kinds) == 0 {
		return nil, ErrNoKinds
	}
	h := &Hook{}
	for _, kind := range b.kinds {
		handle, err := hook.Acquire(kind)
		if err != nil {
			h.Close()
			return nil, err
		}
		h.handles = append(h.handles, handle)
	}
	return h, nil
}

// Hook is a handle to one or more live low-level hooks. It is safe for
// concurrent use.
type Hook struct {
	mu      sync.Mutex
	handles []*hook.Handle
}

// TryRecv polls for the next input event without blocking. It returns
// hook.ErrEmpty when no event is queued and hook.ErrDisconnected once
// the hook is closed and the queue drained.
func (h *Hook) TryRecv() (event.InputEvent, error) {
	h.mu.Lock()
	handles := h.handles
	h.mu.Unlock()
	if len(handles) == 0 {
		return event.InputEvent{}, hook.ErrDisconnected
	}
	return handles[0].TryRecv()
}

// Close releases every underlying hook. It is idempotent.
func (h *Hook) Close() error {
	h.mu.Lock()
	handles := h.handles
	h.handles = nil
	h.mu.Unlock()
	for _, handle := range handles {
		handle.Close()
	}
	return nil
}
