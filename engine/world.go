package engine

import (
	"iter"
	"slices"
	"sync"

	"github.com/kamstrup/intmap"

	"github.com/plus3/ember/emitter"
)

// EmitterID identifies an emitter inside a World. IDs are never reused.
type EmitterID uint32

// World holds the emitters of a simulation in insertion order.
type World struct {
	mu       sync.RWMutex
	emitters *intmap.Map[EmitterID, *emitter.Emitter]
	order    []EmitterID
	nextID   EmitterID
	workers  int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		emitters: intmap.New[EmitterID, *emitter.Emitter](16),
		nextID:   1,
	}
}

// SetWorkers bounds the goroutines each emitter uses per tick, for current
// and future emitters. n <= 0 uses the emitter default.
func (w *World) SetWorkers(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.workers = n
	for _, id := range w.order {
		e, _ := w.emitters.Get(id)
		e.SetWorkers(n)
	}
}

// Add inserts e and returns its id.
func (w *World) Add(e *emitter.Emitter) EmitterID {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	if w.workers != 0 {
		e.SetWorkers(w.workers)
	}
	w.emitters.Put(id, e)
	w.order = append(w.order, id)
	return id
}

// Remove deletes the emitter with the given id.
func (w *World) Remove(id EmitterID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.emitters.Del(id) {
		return false
	}
	if i := slices.Index(w.order, id); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
	return true
}

// Get returns the emitter with the given id.
func (w *World) Get(id EmitterID) (*emitter.Emitter, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.emitters.Get(id)
}

// Len returns the number of emitters.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.emitters.Len()
}

// All yields the emitters in insertion order. It iterates over a snapshot,
// so the world may be modified during iteration.
func (w *World) All() iter.Seq2[EmitterID, *emitter.Emitter] {
	w.mu.RLock()
	ids := slices.Clone(w.order)
	items := make([]*emitter.Emitter, len(ids))
	for i, id := range ids {
		items[i], _ = w.emitters.Get(id)
	}
	w.mu.RUnlock()

	return func(yield func(EmitterID, *emitter.Emitter) bool) {
		for i, id := range ids {
			if !yield(id, items[i]) {
				return
			}
		}
	}
}

// Emitters returns the emitters in insertion order.
func (w *World) Emitters() []*emitter.Emitter {
	var out []*emitter.Emitter
	for _, e := range w.All() {
		out = append(out, e)
	}
	return out
}
