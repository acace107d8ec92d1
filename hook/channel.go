package hook

import (
	"sync"

	"github.com/myood/winhook/event"
)

// queue is the process-wide delivery path from OS callbacks to the
// polling consumer. It is unbounded: a producer must never block, since
// a stalled hook callback degrades input latency for the whole desktop.
type queue struct {
	mu    sync.Mutex
	items []event.InputEvent
	open  int
}

func newQueue() *queue {
	return &queue{}
}

// newSender registers a producer. The queue reports ErrDisconnected
// only once every registered producer has closed.
func (q *queue) newSender() *sender {
	q.mu.Lock()
	q.open++
	q.mu.Unlock()
	return &sender{q: q}
}

// tryRecv pops the oldest event, or reports why none is available.
func (q *queue) tryRecv() (event.InputEvent, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		if q.open == 0 {
			return event.InputEvent{}, ErrDisconnected
		}
		return event.InputEvent{}, ErrEmpty
	}
	ev := q.items[0]
	q.items = q.items[1:]
	return ev, nil
}

// sender is one producer endpoint, owned by a hook execution context.
// Sends after close are silently dropped; the callback treats delivery
// as fire-and-forget.
type sender struct {
	q      *queue
	mu     sync.Mutex
	closed bool
}

func (s *sender) send(ev event.InputEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.q.mu.Lock()
	s.q.items = append(s.q.items, ev)
	s.q.mu.Unlock()
}

func (s *sender) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.q.mu.Lock()
	s.q.open--
	s.q.mu.Unlock()
}
