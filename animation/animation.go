// Package animation provides particle-scoped behaviours: single-purpose
// mutators applied to every particle once per tick while their window is
// active.
//
// All animations here use the exclusive-upper lifecycle.Window in
// milliseconds relative to the emitter's particle cycle. Outside the window a
// particle is left untouched, so values freeze rather than snap back.
package animation

import (
	"fmt"

	"github.com/plus3/ember/behavior"
	"github.com/plus3/ember/lifecycle"
	"github.com/plus3/ember/particle"
	"github.com/plus3/ember/persist"
)

// Animate mutates one particle for the current tick. Implementations must only
// touch the particle passed in and keep no state between ticks.
type Animate interface {
	Animate(p *particle.Particle, t lifecycle.Time)
}

// List is an ordered set of animations applied sequentially.
type List struct {
	behavior.Sequence[Animate]
}

// Add appends a to the list.
func (l *List) Add(a Animate) {
	if a == nil {
		panic("animation: Add called with nil animation")
	}
	l.Sequence.Add(a)
}

// Apply runs every animation of the current list on p, in order.
func (l *List) Apply(p *particle.Particle, t lifecycle.Time) {
	Apply(l.Snapshot(), p, t)
}

// Apply runs animations on p in order. Callers holding a per-tick snapshot use
// this directly.
func Apply(animations []Animate, p *particle.Particle, t lifecycle.Time) {
	for _, a := range animations {
		a.Animate(p, t)
	}
}

const (
	TagSize  = "size_v1"
	TagSpeed = "speed_v1"
	TagColor = "color_v1"
)

// Register binds every animation in this package to r.
func Register(r *persist.Registry) error {
	if err := persist.RegisterFunc(r, TagSize, func(rd *persist.Reader) (*SizeAnimation, error) {
		return &SizeAnimation{
			Window:    lifecycle.ReadWindow(rd),
			StartSize: rd.Float("start_size"),
			EndSize:   rd.Float("end_size"),
		}, nil
	}); err != nil {
		return fmt.Errorf("animation: %w", err)
	}

	if err := persist.RegisterFunc(r, TagSpeed, func(rd *persist.Reader) (*SpeedAnimation, error) {
		return &SpeedAnimation{
			Window:    lifecycle.ReadWindow(rd),
			FromSpeed: rd.Float("from_speed"),
			ToSpeed:   rd.Float("to_speed"),
		}, nil
	}); err != nil {
		return fmt.Errorf("animation: %w", err)
	}

	if err := persist.RegisterFunc(r, TagColor, func(rd *persist.Reader) (*ColorAnimation, error) {
		return &ColorAnimation{
			Window:    lifecycle.ReadWindow(rd),
			FromColor: particle.ReadColor(rd, "from"),
			ToColor:   particle.ReadColor(rd, "to"),
		}, nil
	}); err != nil {
		return fmt.Errorf("animation: %w", err)
	}

	return nil
}
