package hook

import (
	"errors"
	"sync"
	"testing"

	"github.com/myood/winhook/event"
)

// fakeHooks records hook primitive calls instead of touching the OS.
type fakeHooks struct {
	mu          sync.Mutex
	installs    int
	uninstalls  []uintptr
	failInstall bool
	nextToken   uintptr
}

func newFakeHooks() *fakeHooks {
	return &fakeHooks{nextToken: 1000}
}

func (f *fakeHooks) install(Kind) (uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installs++
	if f.failInstall {
		return 0, errors.New("install refused")
	}
	f.nextToken++
	return f.nextToken, nil
}

func (f *fakeHooks) uninstall(token uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uninstalls = append(f.uninstalls, token)
}

func (f *fakeHooks) wait() {}

func (f *fakeHooks) installCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installs
}

func (f *fakeHooks) uninstallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uninstalls)
}

func keyEvent(press event.KeyPress) event.InputEvent {
	return event.InputEvent{Keyboard: &event.KeyboardEvent{Press: press, Key: event.KeyA, Raw: 0x41}}
}

func TestAcquireInstallsOnce(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer h.Close()

	if got := f.installCount(); got != 1 {
		t.Fatalf("install count = %d, want 1", got)
	}
	if !r.isPresent(Keyboard) {
		t.Fatal("isPresent(Keyboard) = false after acquire")
	}
	if r.isPresent(Mouse) {
		t.Fatal("isPresent(Mouse) = true, no mouse hook acquired")
	}
}

func TestAcquireRefusesSecondHandle(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer h.Close()

	if _, err := r.acquire(Keyboard); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("second acquire error = %v, want ErrAlreadyActive", err)
	}
	if got := f.installCount(); got != 1 {
		t.Fatalf("install count = %d after refused acquire, want 1", got)
	}
}

func TestConcurrentAcquireSharesOneInstall(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	const callers = 32
	handles := make([]*Handle, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = r.acquireOrCreate(Keyboard)
		}(i)
	}
	wg.Wait()

	if got := f.installCount(); got != 1 {
		t.Fatalf("install count = %d, want 1", got)
	}
	for i, h := range handles[1:] {
		if h.ctx != handles[0].ctx {
			t.Fatalf("handle %d has a different context", i+1)
		}
	}

	for _, h := range handles {
		h.Close()
	}
	if got := f.uninstallCount(); got != 1 {
		t.Fatalf("uninstall count = %d after dropping all handles, want 1", got)
	}
	if r.isPresent(Keyboard) {
		t.Fatal("isPresent(Keyboard) = true after all handles closed")
	}
}

func TestReacquireAfterTeardownInstallsFresh(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	h.Close()

	h2, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	defer h2.Close()

	if got := f.installCount(); got != 2 {
		t.Fatalf("install count = %d, want 2 (registry must not resurrect a dead hook)", got)
	}
}

func TestCloneKeepsHookAlive(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	a := r.acquireOrCreate(Keyboard)
	b := r.acquireOrCreate(Keyboard)
	if a.ctx != b.ctx {
		t.Fatal("second acquireOrCreate did not attach to the live context")
	}
	if !r.isPresent(Keyboard) {
		t.Fatal("isPresent = false with two handles alive")
	}

	a.Close()
	if !r.isPresent(Keyboard) {
		t.Fatal("isPresent = false after dropping only one of two handles")
	}
	if got := f.uninstallCount(); got != 0 {
		t.Fatalf("uninstall count = %d with a handle still alive, want 0", got)
	}

	b.Close()
	if r.isPresent(Keyboard) {
		t.Fatal("isPresent = true after dropping the last handle")
	}
	if got := f.uninstallCount(); got != 1 {
		t.Fatalf("uninstall count = %d, want exactly 1", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Mouse)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	c := h.Clone()

	h.Close()
	h.Close()
	if got := f.uninstallCount(); got != 0 {
		t.Fatalf("uninstall count = %d after double close of one clone, want 0", got)
	}

	c.Close()
	if got := f.uninstallCount(); got != 1 {
		t.Fatalf("uninstall count = %d, want 1", got)
	}
}

func TestCloneAfterTeardownReturnsNil(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	h.Close()

	if c := h.Clone(); c != nil {
		t.Fatal("Clone on a closed handle resurrected the hook")
	}
	if got := f.uninstallCount(); got != 1 {
		t.Fatalf("uninstall count = %d, want 1", got)
	}
}

func TestFailedInstallYieldsInertHandle(t *testing.T) {
	f := newFakeHooks()
	f.failInstall = true
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire after failed install: %v (fail-soft expected)", err)
	}

	if _, err := h.TryRecv(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("TryRecv on inert handle = %v, want ErrEmpty", err)
	}

	h.Close()
	if got := f.uninstallCount(); got != 0 {
		t.Fatalf("uninstall count = %d for a hook that never registered, want 0", got)
	}
}

func TestDispatchNegativeFilterCode(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer h.Close()

	decoded := false
	sent := r.dispatch(Keyboard, -1, func() (event.InputEvent, bool) {
		decoded = true
		return keyEvent(event.Down), true
	})
	if sent {
		t.Fatal("dispatch with negative filter code delivered an event")
	}
	if decoded {
		t.Fatal("dispatch with negative filter code interpreted the event")
	}
	if _, err := h.TryRecv(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("TryRecv = %v, want ErrEmpty", err)
	}
}

func TestDispatchWithoutLiveHook(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	if r.dispatch(Keyboard, 0, func() (event.InputEvent, bool) {
		t.Fatal("decode invoked with no live hook")
		return event.InputEvent{}, false
	}) {
		t.Fatal("dispatch delivered with no live hook")
	}
}

func TestDispatchAfterTeardownIsInert(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	h.Close()

	// The OS may still invoke a stale callback during a teardown race;
	// it must have no observable effect beyond chain forwarding.
	if r.dispatch(Keyboard, 0, func() (event.InputEvent, bool) {
		t.Fatal("decode invoked after teardown")
		return event.InputEvent{}, false
	}) {
		t.Fatal("dispatch delivered after teardown")
	}
}

func TestDispatchDropsUnrecognizedActions(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer h.Close()

	if r.dispatch(Keyboard, 0, func() (event.InputEvent, bool) {
		return event.InputEvent{}, false
	}) {
		t.Fatal("dispatch delivered an unrecognized event")
	}
	if _, err := h.TryRecv(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("TryRecv = %v, want ErrEmpty", err)
	}
}

func TestDispatchDeliversInOrder(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer h.Close()

	presses := []event.KeyPress{event.Down, event.Up, event.Down, event.Up}
	for _, p := range presses {
		p := p
		if !r.dispatch(Keyboard, 0, func() (event.InputEvent, bool) {
			return keyEvent(p), true
		}) {
			t.Fatal("dispatch refused a deliverable event")
		}
	}

	for i, want := range presses {
		ev, err := h.TryRecv()
		if err != nil {
			t.Fatalf("TryRecv %d: %v", i, err)
		}
		if ev.Keyboard == nil || ev.Keyboard.Press != want {
			t.Fatalf("event %d = %+v, want press %v", i, ev, want)
		}
	}
	if _, err := h.TryRecv(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("TryRecv after drain = %v, want ErrEmpty", err)
	}
}

func TestTryRecvDisconnectedAfterLastClose(t *testing.T) {
	f := newFakeHooks()
	r := newRegistry(f, newQueue())

	h, err := r.acquire(Keyboard)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if !r.dispatch(Keyboard, 0, func() (event.InputEvent, bool) {
		return keyEvent(event.Down), true
	}) {
		t.Fatal("dispatch refused a deliverable event")
	}

	h.Close()

	// Pending events stay readable after teardown, then the channel
	// reports disconnection rather than hanging on Empty forever.
	if _, err := h.TryRecv(); err != nil {
		t.Fatalf("TryRecv of pending event after close: %v", err)
	}
	if _, err := h.TryRecv(); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("TryRecv after drain = %v, want ErrDisconnected", err)
	}
}
