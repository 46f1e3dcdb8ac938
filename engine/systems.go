package engine

import "sync/atomic"

// EmitterSystem ticks every emitter of the world in insertion order.
type EmitterSystem struct{}

func (s *EmitterSystem) Execute(frame *Frame) {
	for _, e := range frame.World.All() {
		e.Tick(frame.Clock)
	}
}

// Counters is a point-in-time summary of the world.
type Counters struct {
	Ticks     int64
	Emitters  int
	Particles int
	ElapsedMs uint64
}

// StatsSystem records world counters after the emitters ran. Counters may be
// read from any goroutine.
type StatsSystem struct {
	last atomic.Pointer[Counters]
}

func (s *StatsSystem) Execute(frame *Frame) {
	c := Counters{ElapsedMs: frame.Clock.ElapsedMs()}
	if prev := s.last.Load(); prev != nil {
		c.Ticks = prev.Ticks
	}
	c.Ticks++
	for _, e := range frame.World.All() {
		c.Emitters++
		c.Particles += e.ParticleCount()
	}
	s.last.Store(&c)
}

// Counters returns the values recorded by the latest tick.
func (s *StatsSystem) Counters() Counters {
	if c := s.last.Load(); c != nil {
		return *c
	}
	return Counters{}
}
