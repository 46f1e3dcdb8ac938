package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/plus3/ember/animation"
	"github.com/plus3/ember/emitter"
	"github.com/plus3/ember/force"
)

// ErrUnknownEmitter is reported by Flush for commands naming a missing emitter.
var ErrUnknownEmitter = errors.New("engine: unknown emitter")

// Commands buffers edits to the world so they are applied between ticks and
// never while emitters are running. It is safe for concurrent use.
type Commands struct {
	mu         sync.Mutex
	spawns     []spawnCommand
	deletes    []EmitterID
	removes    []removeForceCommand
	behaviours []behaviourCommand
	counts     []countCommand
	defers     []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	emitter *emitter.Emitter
	done    func(EmitterID)
}

type removeForceCommand struct {
	emitter EmitterID
	index   int
}

type behaviourCommand struct {
	emitter EmitterID
	apply   func(e *emitter.Emitter)
}

type countCommand struct {
	emitter EmitterID
	count   int
}

// AddEmitter queues e for insertion. done, if not nil, receives the new id.
func (c *Commands) AddEmitter(e *emitter.Emitter, done func(EmitterID)) {
	if e == nil {
		panic("engine: AddEmitter called with nil emitter")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spawns = append(c.spawns, spawnCommand{emitter: e, done: done})
}

// RemoveEmitter queues the removal of an emitter.
func (c *Commands) RemoveEmitter(id EmitterID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, id)
}

// AddForce queues f to be appended to the emitter's force handler.
func (c *Commands) AddForce(id EmitterID, f force.Force) {
	if f == nil {
		panic("engine: AddForce called with nil force")
	}
	c.behaviour(id, func(e *emitter.Emitter) { e.Forces().Add(f) })
}

// RemoveForce queues the removal of the force at index.
func (c *Commands) RemoveForce(id EmitterID, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removes = append(c.removes, removeForceCommand{emitter: id, index: index})
}

// AddAnimation queues a particle animation for the emitter.
func (c *Commands) AddAnimation(id EmitterID, a animation.Animate) {
	if a == nil {
		panic("engine: AddAnimation called with nil animation")
	}
	c.behaviour(id, func(e *emitter.Emitter) { e.Animations().Add(a) })
}

// AddEmitterAnimation queues an emitter-wide animation.
func (c *Commands) AddEmitterAnimation(id EmitterID, a emitter.Animate) {
	if a == nil {
		panic("engine: AddEmitterAnimation called with nil animation")
	}
	c.behaviour(id, func(e *emitter.Emitter) { e.EmitterAnimations().Add(a) })
}

func (c *Commands) behaviour(id EmitterID, apply func(*emitter.Emitter)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.behaviours = append(c.behaviours, behaviourCommand{emitter: id, apply: apply})
}

// SetParticleCount queues a population change.
func (c *Commands) SetParticleCount(id EmitterID, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = append(c.counts, countCommand{emitter: id, count: n})
}

// Defer queues fn to run after every other command.
func (c *Commands) Defer(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.spawns) + len(c.deletes) + len(c.removes) + len(c.behaviours) + len(c.counts) + len(c.defers)
}

// Flush applies every queued command to world and resets the buffer. Removals
// run first, so edits aimed at an emitter removed in the same batch are
// dropped. Commands that name an unknown emitter are reported in the returned
// error; the rest still apply.
func (c *Commands) Flush(world *World) error {
	c.mu.Lock()
	spawns, deletes, removes := c.spawns, c.deletes, c.removes
	behaviours, counts, defers := c.behaviours, c.counts, c.defers
	c.spawns, c.deletes, c.removes = nil, nil, nil
	c.behaviours, c.counts, c.defers = nil, nil, nil
	c.mu.Unlock()

	var errs []error
	deleted := make(map[EmitterID]bool, len(deletes))
	lookup := func(id EmitterID, what string) *emitter.Emitter {
		if deleted[id] {
			return nil
		}
		e, ok := world.Get(id)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w %d", what, ErrUnknownEmitter, id))
			return nil
		}
		return e
	}

	for _, id := range deletes {
		if !world.Remove(id) {
			errs = append(errs, fmt.Errorf("remove emitter: %w %d", ErrUnknownEmitter, id))
		}
		deleted[id] = true
	}

	for _, cmd := range removes {
		if e := lookup(cmd.emitter, "remove force"); e != nil {
			if _, ok := e.Forces().Remove(cmd.index); !ok {
				errs = append(errs, fmt.Errorf("remove force: emitter %d has no force %d", cmd.emitter, cmd.index))
			}
		}
	}

	for _, cmd := range behaviours {
		if e := lookup(cmd.emitter, "add behaviour"); e != nil {
			cmd.apply(e)
		}
	}

	for _, cmd := range counts {
		if e := lookup(cmd.emitter, "set particle count"); e != nil {
			if err := e.SetParticleCount(cmd.count); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, cmd := range spawns {
		id := world.Add(cmd.emitter)
		if cmd.done != nil {
			cmd.done(id)
		}
	}

	for _, fn := range defers {
		fn()
	}

	return errors.Join(errs...)
}
