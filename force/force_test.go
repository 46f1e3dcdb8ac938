package force_test

import (
	"math"
	"testing"
	"time"

	"github.com/plus3/ember/clock"
	"github.com/plus3/ember/force"
	"github.com/plus3/ember/lifecycle"
	"github.com/plus3/ember/particle"
	"github.com/plus3/ember/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addSpeed float64

func (a addSpeed) Apply(p *particle.Particle, _ lifecycle.Time) { p.Speed += float64(a) }

type mulSpeed float64

func (m mulSpeed) Apply(p *particle.Particle, _ lifecycle.Time) { p.Speed *= float64(m) }

type recordCycle struct{ seen *[]uint64 }

func (r recordCycle) Apply(_ *particle.Particle, t lifecycle.Time) {
	*r.seen = append(*r.seen, t.CycleMs)
}

func newHandler(t *testing.T, durationMs uint64, forces ...force.Force) *force.Handler {
	t.Helper()
	h, err := force.NewHandler(durationMs)
	require.NoError(t, err)
	for _, f := range forces {
		h.Add(f)
	}
	return h
}

func TestHandlerCompositionOrder(t *testing.T) {
	clk := clock.NewManual(0)

	tests := []struct {
		name   string
		forces []force.Force
		want   float64
	}{
		{"add then multiply", []force.Force{addSpeed(1), mulSpeed(2)}, 8},
		{"multiply then add", []force.Force{mulSpeed(2), addSpeed(1)}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, 1000, tt.forces...)
			p := &particle.Particle{Speed: 3}
			h.Apply(p, clk)
			assert.Equal(t, tt.want, p.Speed)
		})
	}
}

func TestHandlerSharesOneCycle(t *testing.T) {
	var seen []uint64
	h := newHandler(t, 1000, recordCycle{&seen}, recordCycle{&seen})

	clk := clock.NewManual(2500 * time.Millisecond)
	h.Apply(&particle.Particle{}, clk)

	assert.Equal(t, []uint64{500, 500}, seen)
}

func TestNewHandlerRejectsZeroDuration(t *testing.T) {
	h, err := force.NewHandler(0)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, force.ErrZeroDuration)
}

func TestHandlerAddRemove(t *testing.T) {
	h := newHandler(t, 100, addSpeed(1), mulSpeed(10))
	assert.Panics(t, func() { h.Add(nil) })

	removed, ok := h.Remove(0)
	require.True(t, ok)
	assert.Equal(t, addSpeed(1), removed)

	_, ok = h.Remove(5)
	assert.False(t, ok)

	p := &particle.Particle{Speed: 2}
	h.Apply(p, clock.NewManual(0))
	assert.Equal(t, 20.0, p.Speed)
}

func TestPassIgnoresLaterEdits(t *testing.T) {
	h := newHandler(t, 100, addSpeed(1))
	pass := h.Prepare(clock.NewManual(0))

	h.Add(addSpeed(100))

	p := &particle.Particle{}
	pass.Apply(p)
	assert.Equal(t, 1.0, p.Speed)
	assert.Equal(t, 1, pass.Len())
	assert.Equal(t, 2, h.Len())
}

func tick(cycleMs uint64, dt float64) lifecycle.Time {
	return lifecycle.Time{ElapsedMs: cycleMs, CycleMs: cycleMs, DeltaSec: dt}
}

func TestAccelerationForce(t *testing.T) {
	f := &force.AccelerationForce{
		Window: lifecycle.Window{FromMs: 0, UntilMs: 1000},
		Accel:  particle.Vec3{Y: -10},
	}
	p := &particle.Particle{Velocity: particle.Vec3{X: 1}}

	f.Apply(p, tick(10, 0.5))
	assert.Equal(t, particle.Vec3{X: 1, Y: -5}, p.Velocity)

	f.Apply(p, tick(1000, 0.5))
	assert.Equal(t, particle.Vec3{X: 1, Y: -5}, p.Velocity, "until is exclusive")
}

func TestFrictionForce(t *testing.T) {
	f := &force.FrictionForce{Window: lifecycle.Window{UntilMs: 100}, Coefficient: 0.5}
	p := &particle.Particle{Velocity: particle.Vec3{X: 4, Y: -2}}

	f.Apply(p, tick(0, 1))
	assert.Equal(t, particle.Vec3{X: 2, Y: -1}, p.Velocity)

	f.Coefficient = 10
	f.Apply(p, tick(0, 1))
	assert.True(t, p.Velocity.IsZero(), "friction never reverses velocity")
}

func TestGravitationalForce(t *testing.T) {
	g := &force.GravitationalForce{
		Window:   lifecycle.Window{FromMs: 0, UntilMs: 1000},
		StartPos: particle.Vec3{X: 2},
		EndPos:   particle.Vec3{X: 2},
		Mass:     8,
		DeadZone: 0.5,
	}

	t.Run("pulls toward center", func(t *testing.T) {
		p := &particle.Particle{}
		g.Apply(p, tick(100, 1))
		assert.InDelta(t, 2.0, p.Velocity.X, 1e-12)
		assert.Zero(t, p.Velocity.Y)
	})

	t.Run("dead zone", func(t *testing.T) {
		p := &particle.Particle{Position: particle.Vec3{X: 1.75}}
		g.Apply(p, tick(100, 1))
		assert.True(t, p.Velocity.IsZero())
	})

	t.Run("center moves across the window", func(t *testing.T) {
		moving := *g
		moving.StartPos = particle.Vec3{X: -2}
		p := &particle.Particle{}
		moving.Apply(p, tick(0, 1))
		assert.InDelta(t, -2.0, p.Velocity.X, 1e-12)
	})
}

func TestStrayForce(t *testing.T) {
	s := &force.StrayForce{Window: lifecycle.Window{UntilMs: 1000}, StrayRadians: math.Pi / 4}

	a := &particle.Particle{Seed: 42, Velocity: particle.Vec3{X: 3, Y: 4, Z: 1}}
	b := *a
	s.Apply(a, tick(250, 1))
	s.Apply(&b, tick(250, 1))

	assert.Equal(t, *a, b, "same seed and cycle give the same rotation")
	assert.InDelta(t, 5.0, math.Hypot(a.Velocity.X, a.Velocity.Y), 1e-9, "rotation keeps speed")
	assert.Equal(t, 1.0, a.Velocity.Z)

	cos := (a.Velocity.X*3 + a.Velocity.Y*4) / 25
	assert.GreaterOrEqual(t, cos, math.Cos(math.Pi/4)-1e-9)
}

func TestForcesAreIdempotent(t *testing.T) {
	forces := []force.Force{
		&force.GravitationalForce{Window: lifecycle.Window{UntilMs: 500}, EndPos: particle.Vec3{Y: 5}, Mass: 3},
		&force.StrayForce{Window: lifecycle.Window{UntilMs: 500}, StrayRadians: 1},
		&force.AccelerationForce{Window: lifecycle.Window{UntilMs: 500}, Accel: particle.Vec3{Z: 9.8}},
		&force.FrictionForce{Window: lifecycle.Window{UntilMs: 500}, Coefficient: 0.1},
	}
	start := particle.Particle{Seed: 7, Position: particle.Vec3{X: 1}, Velocity: particle.Vec3{X: 1, Y: 1}}

	for _, f := range forces {
		first, second := start, start
		f.Apply(&first, tick(123, 0.016))
		f.Apply(&second, tick(123, 0.016))
		assert.Equal(t, first, second, "%T", f)
	}
}

func TestForcesRoundTrip(t *testing.T) {
	r := persist.NewRegistry()
	require.NoError(t, force.Register(r))

	originals := []force.Force{
		&force.GravitationalForce{
			Window:   lifecycle.Window{FromMs: 5, UntilMs: 800},
			StartPos: particle.Vec3{X: 1, Y: 2, Z: 3},
			EndPos:   particle.Vec3{X: -4, Y: 5.5, Z: 0},
			Mass:     12.5,
			DeadZone: 0.25,
		},
		&force.StrayForce{Window: lifecycle.Window{UntilMs: 1000}, StrayRadians: 0.3},
		&force.AccelerationForce{Window: lifecycle.Window{FromMs: 100, UntilMs: 200}, Accel: particle.Vec3{Y: -9.81}},
		&force.FrictionForce{Window: lifecycle.Window{UntilMs: 60000}, Coefficient: 0.75},
	}

	recs, err := persist.ExportAll(r, originals)
	require.NoError(t, err)
	restored, err := persist.ImportAll[force.Force](r, recs)
	require.NoError(t, err)
	assert.Equal(t, originals, restored)
}

func TestRegisterStopsAtFirstCollision(t *testing.T) {
	r := persist.NewRegistry()
	require.NoError(t, r.Register(force.TagGravity, func(persist.Record) (any, error) { return nil, nil }))

	assert.ErrorIs(t, force.Register(r), persist.ErrTagCollision)
	for _, tag := range []string{force.TagStray, force.TagAcceleration, force.TagFriction} {
		assert.False(t, r.Registered(tag), tag)
	}
}

func TestFrictionRejectsNegativeCoefficient(t *testing.T) {
	r := persist.NewRegistry()
	require.NoError(t, force.Register(r))

	rec := (&force.FrictionForce{Window: lifecycle.Window{UntilMs: 10}, Coefficient: -1}).Export()
	_, err := r.Import(rec)
	assert.ErrorIs(t, err, persist.ErrMalformedRecord)
}
