package history

import (
	"sync"

	"github.com/vango-dev/vrouter/pkg/location"
)

type listenerEntry struct {
	id uint64
	fn Listener
}

// listenerSet calls listeners in registration order.
type listenerSet struct {
	mu      sync.Mutex
	nextID  uint64
	entries []listenerEntry
}

func (s *listenerSet) add(fn Listener) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *listenerSet) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *listenerSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// notify runs listeners outside the lock so they may navigate or unlisten.
func (s *listenerSet) notify(loc location.Location, action Action) {
	s.mu.Lock()
	entries := make([]listenerEntry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	for _, e := range entries {
		e.fn(loc, action)
	}
}
