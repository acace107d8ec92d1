package hook

import (
	"sync"

	"github.com/myood/winhook/event"
)

// registry is the process-wide table of live hooks: one slot per kind,
// each guarded by its own mutex. A slot keeps a non-owning pointer to
// the current execution context; liveness is decided by the context's
// reference count, so the registry never keeps a hook alive and never
// hands out a context whose teardown has begun.
type registry struct {
	os     osHooks
	events *queue
	slots  [kindCount]slot
}

type slot struct {
	mu  sync.Mutex
	ctx *execContext
}

func newRegistry(os osHooks, events *queue) *registry {
	return &registry{os: os, events: events}
}

// isPresent reports whether a live context exists for kind.
func (r *registry) isPresent(kind Kind) bool {
	s := &r.slots[kind]
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx != nil && s.ctx.alive()
}

// acquire is the public entry point: it refuses to hand a second,
// redundant handle for a kind that is already hooked. A caller that
// lost the race inside acquireOrCreate still gets a clone of the
// winner's handle rather than a duplicate registration.
func (r *registry) acquire(kind Kind) (*Handle, error) {
	if r.isPresent(kind) {
		return nil, ErrAlreadyActive
	}
	return r.acquireOrCreate(kind), nil
}

// acquireOrCreate returns a handle to the live context for kind,
// creating one if needed. The check is repeated under the slot lock to
// close the gap between a concurrent caller's liveness probe and its
// creation: whichever caller wins creates the context, the rest upgrade
// to clones of it.
func (r *registry) acquireOrCreate(kind Kind) *Handle {
	s := &r.slots[kind]
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil && s.ctx.tryRetain() {
		return &Handle{kind: kind, reg: r, ctx: s.ctx}
	}

	ctx := newExecContext(kind, r.os, r.events.newSender())
	s.ctx = ctx
	return &Handle{kind: kind, reg: r, ctx: ctx}
}

// dispatch is the decision core of the OS hook callback. It never
// interprets the event unless the filter code is non-negative and a
// live hook of the kind exists, which is also what makes a torn-down
// hook's stale callback an inert pass-through. decode must be total;
// events it does not recognize are dropped without side effects. The
// return value reports whether an event was delivered — the callback
// forwards to the OS chain regardless.
func (r *registry) dispatch(kind Kind, code int32, decode func() (event.InputEvent, bool)) bool {
	if code < 0 {
		return false
	}
	s := &r.slots[kind]
	s.mu.Lock()
	ctx := s.ctx
	live := ctx != nil && ctx.alive()
	s.mu.Unlock()
	if !live {
		return false
	}

	ev, ok := decode()
	if !ok {
		return false
	}
	// A teardown racing with this send loses nothing: a closed sender
	// drops the event silently.
	ctx.out.send(ev)
	return true
}
