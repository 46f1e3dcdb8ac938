// Package behavior holds the ordered behaviour list shared by particle
// animations, forces and emitter animations.
package behavior

import (
	"slices"
	"sync"
)

// Sequence is an ordered list of behaviours. Order is significant: later
// behaviours see state already mutated by earlier ones.
//
// A tick reads the list once through Snapshot, so edits made while a tick is
// in flight only become visible on the next tick.
type Sequence[T any] struct {
	mu    sync.RWMutex
	items []T
}

// Add appends item at the end of the sequence.
func (s *Sequence[T]) Add(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// RemoveAt removes and returns the item at index i.
func (s *Sequence[T]) RemoveAt(i int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if i < 0 || i >= len(s.items) {
		return zero, false
	}
	item := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	return item, true
}

// Replace swaps the whole sequence for items.
func (s *Sequence[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(items)
}

// Clear removes every item.
func (s *Sequence[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Len returns the number of items.
func (s *Sequence[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a copy of the current items in order.
func (s *Sequence[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}
