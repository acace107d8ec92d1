package hook

import "sync"

// rawHandle owns one OS hook registration token. The token starts
// unset because registration happens asynchronously on the hook's
// background goroutine; it transitions unset to set at most once, and
// is unregistered at most once, by the last handle's teardown.
type rawHandle struct {
	mu    sync.Mutex
	token uintptr
	dead  bool
	os    osHooks
}

func newRawHandle(os osHooks) *rawHandle {
	return &rawHandle{os: os}
}

// set stores the registration token. Only the background goroutine
// calls it, and only after a successful registration. A set that loses
// the race against teardown is discarded.
func (r *rawHandle) set(token uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dead || r.token != 0 {
		return
	}
	r.token = token
}

// teardown unregisters the hook if it was ever registered. Repeated
// calls are no-ops, so a teardown race cannot double-free the OS
// registration.
func (r *rawHandle) teardown() {
	r.mu.Lock()
	if r.dead {
		r.mu.Unlock()
		return
	}
	r.dead = true
	token := r.token
	r.token = 0
	r.mu.Unlock()
	if token == 0 {
		return
	}
	r.os.uninstall(token)
}
