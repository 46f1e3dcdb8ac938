// Package clock provides the time sources that drive a simulation.
// Behaviours only ever read a Clock; the owning loop advances it once per tick.
package clock

import "time"

// Clock is a read-only view of simulation time.
type Clock interface {
	// ElapsedMs returns whole milliseconds since the clock was started or reset.
	ElapsedMs() uint64
	// ElapsedSec returns seconds since the clock was started or reset.
	ElapsedSec() float64
	// DeltaSec returns the duration of the last tick in seconds. Never negative.
	DeltaSec() float64
}

// Wall is a monotonic Clock backed by time.Now. It only moves when Tick is called,
// so every reader in one tick observes the same values.
type Wall struct {
	start   time.Time
	last    time.Time
	elapsed time.Duration
	delta   time.Duration
	now     func() time.Time
}

// NewWall creates a Wall clock started at the current instant.
func NewWall() *Wall {
	w := &Wall{now: time.Now}
	w.Reset()
	return w
}

// Reset restarts the clock at zero elapsed time.
func (w *Wall) Reset() {
	t := w.now()
	w.start = t
	w.last = t
	w.elapsed = 0
	w.delta = 0
}

// Tick advances the clock to the current instant and returns the new delta.
func (w *Wall) Tick() time.Duration {
	t := w.now()
	d := t.Sub(w.last)
	if d < 0 {
		d = 0
	}
	w.last = t
	w.delta = d
	w.elapsed = t.Sub(w.start)
	return d
}

func (w *Wall) ElapsedMs() uint64 {
	return uint64(w.elapsed / time.Millisecond)
}

func (w *Wall) ElapsedSec() float64 {
	return w.elapsed.Seconds()
}

func (w *Wall) DeltaSec() float64 {
	return w.delta.Seconds()
}

// Manual is a Clock whose time is set explicitly. Useful for tests, replays and
// fixed-step loops.
type Manual struct {
	elapsed time.Duration
	delta   time.Duration
}

// NewManual creates a Manual clock at the given elapsed time.
func NewManual(elapsed time.Duration) *Manual {
	return &Manual{elapsed: elapsed}
}

// Advance moves the clock forward by d and records d as the tick delta.
// Negative durations are treated as zero.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.elapsed += d
	m.delta = d
}

// Set freezes the clock at the given elapsed time with the given tick delta.
func (m *Manual) Set(elapsed, delta time.Duration) {
	if delta < 0 {
		delta = 0
	}
	m.elapsed = elapsed
	m.delta = delta
}

// SetMs is Set expressed in milliseconds.
func (m *Manual) SetMs(elapsedMs, deltaMs uint64) {
	m.Set(time.Duration(elapsedMs)*time.Millisecond, time.Duration(deltaMs)*time.Millisecond)
}

// Reset returns the clock to zero.
func (m *Manual) Reset() {
	m.elapsed = 0
	m.delta = 0
}

func (m *Manual) ElapsedMs() uint64 {
	if m.elapsed < 0 {
		return 0
	}
	return uint64(m.elapsed / time.Millisecond)
}

func (m *Manual) ElapsedSec() float64 {
	return m.elapsed.Seconds()
}

func (m *Manual) DeltaSec() float64 {
	return m.delta.Seconds()
}

// Source is a Clock that its owner advances once per tick.
type Source interface {
	Clock
	Tick() time.Duration
}

var _ Source = (*Wall)(nil)
