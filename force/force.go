// Package force provides field-scoped behaviours and the Handler that composes
// them over one shared cyclic period.
package force

import (
	"errors"
	"fmt"

	"github.com/plus3/ember/behavior"
	"github.com/plus3/ember/clock"
	"github.com/plus3/ember/lifecycle"
	"github.com/plus3/ember/particle"
	"github.com/plus3/ember/persist"
)

// ErrZeroDuration is returned by NewHandler for a zero period.
var ErrZeroDuration = errors.New("force: handler duration must be positive")

// Force mutates one particle for the current tick. Windows are relative to the
// owning Handler's period.
type Force interface {
	Apply(p *particle.Particle, t lifecycle.Time)
}

// Handler owns an ordered list of forces sharing one cyclic duration. Forces
// run in registration order, each seeing the state left by the previous one.
type Handler struct {
	behavior.Sequence[Force]
	durationMs uint64
}

// NewHandler creates an empty handler whose forces repeat every durationMs.
func NewHandler(durationMs uint64) (*Handler, error) {
	if durationMs == 0 {
		return nil, ErrZeroDuration
	}
	return &Handler{durationMs: durationMs}, nil
}

// DurationMs returns the shared period.
func (h *Handler) DurationMs() uint64 {
	return h.durationMs
}

// Add appends f after every force already registered.
func (h *Handler) Add(f Force) {
	if f == nil {
		panic("force: Add called with nil force")
	}
	h.Sequence.Add(f)
}

// Remove deletes the force at index i.
func (h *Handler) Remove(i int) (Force, bool) {
	return h.RemoveAt(i)
}

// Prepare captures the force list and the shared cycle position for one tick.
func (h *Handler) Prepare(clk clock.Clock) Pass {
	return Pass{
		Time:   lifecycle.Cycle(clk, h.durationMs),
		forces: h.Snapshot(),
	}
}

// Apply runs every force on p at the clock's current cycle position.
func (h *Handler) Apply(p *particle.Particle, clk clock.Clock) {
	h.Prepare(clk).Apply(p)
}

// Pass is one tick's view of a Handler. It is immutable and can be shared by
// goroutines working on distinct particles.
type Pass struct {
	Time   lifecycle.Time
	forces []Force
}

// Len returns the number of forces in the pass.
func (ps Pass) Len() int {
	return len(ps.forces)
}

// Apply runs the captured forces on p in order.
func (ps Pass) Apply(p *particle.Particle) {
	for _, f := range ps.forces {
		f.Apply(p, ps.Time)
	}
}

const (
	TagGravity      = "gravity_v1"
	TagStray        = "stray_v1"
	TagAcceleration = "acceleration_v1"
	TagFriction     = "friction_v1"
)

// Register binds every force in this package to r.
func Register(r *persist.Registry) error {
	if err := persist.RegisterFunc(r, TagGravity, func(rd *persist.Reader) (*GravitationalForce, error) {
		return &GravitationalForce{
			Window:   lifecycle.ReadWindow(rd),
			StartPos: particle.ReadVec3(rd, "start"),
			EndPos:   particle.ReadVec3(rd, "end"),
			Mass:     rd.Float("mass"),
			DeadZone: rd.Float("dead_zone"),
		}, nil
	}); err != nil {
		return fmt.Errorf("force: %w", err)
	}

	if err := persist.RegisterFunc(r, TagStray, func(rd *persist.Reader) (*StrayForce, error) {
		return &StrayForce{
			Window:       lifecycle.ReadWindow(rd),
			StrayRadians: rd.Float("stray_radians"),
		}, nil
	}); err != nil {
		return fmt.Errorf("force: %w", err)
	}

	if err := persist.RegisterFunc(r, TagAcceleration, func(rd *persist.Reader) (*AccelerationForce, error) {
		return &AccelerationForce{
			Window: lifecycle.ReadWindow(rd),
			Accel:  particle.ReadVec3(rd, "accel"),
		}, nil
	}); err != nil {
		return fmt.Errorf("force: %w", err)
	}

	if err := persist.RegisterFunc(r, TagFriction, func(rd *persist.Reader) (*FrictionForce, error) {
		f := &FrictionForce{
			Window:      lifecycle.ReadWindow(rd),
			Coefficient: rd.Float("coefficient"),
		}
		if f.Coefficient < 0 {
			return nil, fmt.Errorf("negative coefficient %v", f.Coefficient)
		}
		return f, nil
	}); err != nil {
		return fmt.Errorf("force: %w", err)
	}

	return nil
}
