// Package lifecycle turns a Clock's elapsed time into repeating time windows and
// interpolation fractions.
//
// Two boundary conventions coexist on purpose:
//   - LifeCycle (seconds) is inclusive at both ends: ShouldAnimate(from) and
//     ShouldAnimate(until) are both true.
//   - Window (milliseconds), used by every per-behaviour guard, is inclusive at
//     from and exclusive at until: the tick landing exactly on until is a no-op.
package lifecycle

import (
	"errors"
	"fmt"
	"math"

	"github.com/plus3/ember/clock"
)

// ErrInvalidLifeCycle is returned by LifeCycle.Validate.
var ErrInvalidLifeCycle = errors.New("invalid lifecycle")

// LifeCycle describes a repeating period of LifetimeSec seconds and an active
// window [FromSec, UntilSec] inside it.
type LifeCycle struct {
	FromSec     float64 `yaml:"from_sec" json:"from_sec"`
	UntilSec    float64 `yaml:"until_sec" json:"until_sec"`
	LifetimeSec float64 `yaml:"lifetime_sec" json:"lifetime_sec" jsonschema:"minimum=0"`
}

// New creates a LifeCycle whose active window spans the whole period.
func New(lifetimeSec float64) LifeCycle {
	return LifeCycle{FromSec: 0, UntilSec: lifetimeSec, LifetimeSec: lifetimeSec}
}

// Validate checks 0 <= from <= until and that the lifetime is at least one
// millisecond once rounded.
func (lc LifeCycle) Validate() error {
	if !(lc.LifetimeSec > 0) {
		return fmt.Errorf("%w: lifetime %v must be positive", ErrInvalidLifeCycle, lc.LifetimeSec)
	}
	if lc.LifetimeMs() == 0 {
		return fmt.Errorf("%w: lifetime %v is shorter than 1ms", ErrInvalidLifeCycle, lc.LifetimeSec)
	}
	if lc.FromSec < 0 || lc.UntilSec < lc.FromSec {
		return fmt.Errorf("%w: window [%v, %v] must satisfy 0 <= from <= until",
			ErrInvalidLifeCycle, lc.FromSec, lc.UntilSec)
	}
	return nil
}

// CurrentSec returns the clock's elapsed time wrapped into [0, LifetimeSec).
func (lc LifeCycle) CurrentSec(c clock.Clock) float64 {
	return wrap(c.ElapsedSec(), lc.LifetimeSec)
}

// LifetimeMs returns the period rounded to whole milliseconds.
func (lc LifeCycle) LifetimeMs() uint64 {
	if !(lc.LifetimeSec > 0) {
		return 0
	}
	return uint64(math.Round(lc.LifetimeSec * 1000))
}

// CurrentMs returns the clock's elapsed milliseconds wrapped into the period.
// Integer arithmetic keeps cycle boundaries exact.
func (lc LifeCycle) CurrentMs(c clock.Clock) uint64 {
	period := lc.LifetimeMs()
	if period == 0 {
		return 0
	}
	return c.ElapsedMs() % period
}

// CycleIndex returns how many whole periods have elapsed.
func (lc LifeCycle) CycleIndex(c clock.Clock) uint64 {
	period := lc.LifetimeMs()
	if period == 0 {
		return 0
	}
	return c.ElapsedMs() / period
}

// Active reports whether the clock lies inside the active window. The position
// is taken from CurrentMs so it always agrees with CycleIndex.
func (lc LifeCycle) Active(c clock.Clock) bool {
	return lc.ShouldAnimate(float64(lc.CurrentMs(c)) / 1000)
}

// ShouldAnimate reports whether current lies in [FromSec, UntilSec].
func (lc LifeCycle) ShouldAnimate(current float64) bool {
	return lc.FromSec <= current && current <= lc.UntilSec
}

// Fraction returns the linear progress of current through the active window,
// clamped to [0, 1]. A degenerate window (until == from) yields 0.
func (lc LifeCycle) Fraction(current float64) float64 {
	span := lc.UntilSec - lc.FromSec
	if !(span > 0) {
		return 0
	}
	return clamp01((current - lc.FromSec) / span)
}

// Time builds the per-tick context for behaviours driven by this LifeCycle.
func (lc LifeCycle) Time(c clock.Clock) Time {
	return Time{
		ElapsedMs: c.ElapsedMs(),
		CycleMs:   lc.CurrentMs(c),
		DeltaSec:  c.DeltaSec(),
	}
}

// Time is the time context handed to behaviours on every tick.
type Time struct {
	// ElapsedMs is the raw clock reading.
	ElapsedMs uint64
	// CycleMs is the position inside the behaviour's repeating period.
	CycleMs uint64
	// DeltaSec is the duration of the tick, used for integration.
	DeltaSec float64
}

// Cycle builds a Time for a period of periodMs milliseconds. A zero period
// reports CycleMs as zero.
func Cycle(c clock.Clock, periodMs uint64) Time {
	t := Time{ElapsedMs: c.ElapsedMs(), DeltaSec: c.DeltaSec()}
	if periodMs > 0 {
		t.CycleMs = t.ElapsedMs % periodMs
	}
	return t
}

func wrap(v, period float64) float64 {
	if !(period > 0) {
		return 0
	}
	r := math.Mod(v, period)
	if r < 0 {
		r += period
	}
	// math.Mod can return period itself after the negative correction
	if r >= period {
		r = 0
	}
	return r
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
