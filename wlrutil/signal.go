// Package wlrutil holds the small generic ownership/notification
// primitives (Signal, AddonSet) shared by the root package and every
// subsystem package, kept separate from wlrcore itself so a leaf
// package like output or scene can depend on them without an import
// cycle back through the root package.
package wlrutil

import "sync"

// Signal is the Go rendering of wl_signal/wl_listener: a list of
// subscribers invoked synchronously, in subscription order, each time
// Emit is called. Grounded on the teacher's callback-list dispatch
// pattern (internal/platform/wayland's per-event listener slices),
// generalized with generics instead of one struct field per event
// kind.
type Signal[T any] struct {
	mu        sync.Mutex
	listeners []*signalListener[T]
	nextID    uint64
}

type signalListener[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn to be called on every future Emit, returning
// an unsubscribe function.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, &signalListener[T]{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every current subscriber with value, in subscription
// order. A subscriber that unsubscribes itself or others from within
// the callback is safe: Emit snapshots the listener list first.
func (s *Signal[T]) Emit(value T) {
	s.mu.Lock()
	snapshot := make([]*signalListener[T], len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn(value)
	}
}

// Len reports the current subscriber count.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
