// Package engine drives emitters tick by tick: a World holds them, a
// Scheduler runs systems over it, and Commands carry edits to the next gap
// between ticks.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/plus3/ember/clock"
	"github.com/plus3/ember/emitter"
)

// DefaultInterval is the tick interval used when Options.Interval is zero.
const DefaultInterval = 16 * time.Millisecond

// Options configures a Simulation.
type Options struct {
	// Interval between ticks in Run.
	Interval time.Duration
	// Workers bounds the goroutines per emitter tick; zero keeps the default.
	Workers int
	Logger  *log.Logger
}

// Simulation ties a wall clock, a world and a scheduler running the
// EmitterSystem followed by the StatsSystem.
type Simulation struct {
	clock     *clock.Wall
	world     *World
	scheduler *Scheduler
	stats     *StatsSystem
	interval  time.Duration
	logger    *log.Logger
}

// NewSimulation creates a simulation with an empty world.
func NewSimulation(opts Options) *Simulation {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	world := NewWorld()
	world.SetWorkers(opts.Workers)

	s := &Simulation{
		clock:     clock.NewWall(),
		world:     world,
		scheduler: NewScheduler(world, opts.Logger),
		stats:     &StatsSystem{},
		interval:  opts.Interval,
		logger:    opts.Logger,
	}
	s.scheduler.Register(&EmitterSystem{})
	s.scheduler.Register(s.stats)
	return s
}

func (s *Simulation) World() *World { return s.world }

func (s *Simulation) Scheduler() *Scheduler { return s.scheduler }

func (s *Simulation) Clock() clock.Clock { return s.clock }

// Commands returns the edit buffer applied after the current or next tick.
func (s *Simulation) Commands() *Commands { return s.scheduler.Commands() }

// Counters returns the world summary recorded by the latest tick.
func (s *Simulation) Counters() Counters { return s.stats.Counters() }

// Load inserts emitters directly. Use Commands while the simulation runs.
func (s *Simulation) Load(emitters ...*emitter.Emitter) []EmitterID {
	ids := make([]EmitterID, 0, len(emitters))
	for _, e := range emitters {
		ids = append(ids, s.world.Add(e))
	}
	return ids
}

// Step advances the clock and runs one tick.
func (s *Simulation) Step() {
	s.clock.Tick()
	s.scheduler.Once(s.clock)
}

// Restart queues a reset of the clock and of every emitter. It takes effect
// between ticks; every emitter respawns on the following tick.
func (s *Simulation) Restart() {
	s.Commands().Defer(func() {
		s.clock.Reset()
		for _, e := range s.world.All() {
			e.Reset()
		}
		s.logger.Printf("[Engine] Restarted")
	})
}

// Run ticks the simulation until ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) {
	s.logger.Printf("[Engine] Running %d emitters every %v", s.world.Len(), s.interval)
	s.scheduler.Run(ctx, s.interval, s.clock)
	c := s.Counters()
	s.logger.Printf("[Engine] Stopped after %d ticks (%d particles)", c.Ticks, c.Particles)
}
