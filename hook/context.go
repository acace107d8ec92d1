package hook

import (
	"runtime"
	"sync"
)

// execContext pairs a raw hook registration with the background
// goroutine that performed it. The goroutine's remaining lifetime is
// the OS message wait, which is what keeps the hook callback eligible
// to fire; teardown unregisters the hook but deliberately leaves the
// goroutine parked, since waking it would require posting to a thread
// whose id was never captured. The reference count gates teardown: it
// reaches zero exactly once.
type execContext struct {
	mu   sync.Mutex
	refs int
	raw  *rawHandle
	out  *sender
}

// newExecContext spawns the background goroutine and does not return
// until it has attempted the OS registration. That turns the
// asynchronous registration into a construction-time guarantee: a
// caller holding a context knows the hook is either registered or has
// failed, never in flight. A failed registration leaves the raw handle
// unset and the context inert.
func newExecContext(kind Kind, os osHooks, out *sender) *execContext {
	c := &execContext{
		refs: 1,
		raw:  newRawHandle(os),
		out:  out,
	}

	ready := make(chan struct{})
	go func() {
		// Low-level hooks are serviced on the thread that installed
		// them; the message wait below must stay on that thread.
		runtime.LockOSThread()

		token, err := os.install(kind)
		if err == nil && token != 0 {
			c.raw.set(token)
		}
		// Readiness is signalled regardless of success so the
		// constructing caller is never left waiting.
		close(ready)

		// Parks this goroutine for the life of the hook. It does not
		// return during normal operation.
		os.wait()
	}()
	<-ready

	return c
}

// alive reports whether the context still has holders. Once false it
// stays false: the registry treats a dead context as absent and never
// resurrects it.
func (c *execContext) alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refs > 0
}

// retain adds a reference on behalf of a caller that already holds one.
func (c *execContext) retain() {
	c.mu.Lock()
	c.refs++
	c.mu.Unlock()
}

// tryRetain adds a reference only if the context is still alive. This
// is the weak-to-strong upgrade: it fails once teardown has begun.
func (c *execContext) tryRetain() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refs == 0 {
		return false
	}
	c.refs++
	return true
}

// release drops a reference. The last release closes the queue
// producer and unregisters the OS hook, in that order, exactly once.
func (c *execContext) release() {
	c.mu.Lock()
	c.refs--
	last := c.refs == 0
	c.mu.Unlock()
	if !last {
		return
	}
	c.out.close()
	c.raw.teardown()
}
