package force

import (
	"math"

	"github.com/plus3/ember/lifecycle"
	"github.com/plus3/ember/particle"
	"github.com/plus3/ember/persist"
)

// GravitationalForce pulls particles toward a point that travels from StartPos
// to EndPos across the window. The pull is Mass/dist² and vanishes inside
// DeadZone.
type GravitationalForce struct {
	lifecycle.Window
	StartPos particle.Vec3
	EndPos   particle.Vec3
	Mass     float64
	DeadZone float64
}

func (g *GravitationalForce) Apply(p *particle.Particle, t lifecycle.Time) {
	center, ok := lifecycle.Tween(g.Window, t.CycleMs, g.StartPos, g.EndPos, particle.LerpVec3)
	if !ok {
		return
	}
	d := center.Sub(p.Position)
	dist2 := d.LenSquared()
	if dist2 == 0 || dist2 <= g.DeadZone*g.DeadZone {
		return
	}
	p.Velocity = p.Velocity.Add(d.Normalize().Scale(g.Mass / dist2 * t.DeltaSec))
}

func (g *GravitationalForce) Tag() string { return TagGravity }

func (g *GravitationalForce) Export() persist.Record {
	rec := g.Window.Put(persist.NewRecord(TagGravity))
	rec = particle.PutVec3(rec, "start", g.StartPos)
	rec = particle.PutVec3(rec, "end", g.EndPos)
	return rec.Set("mass", g.Mass).Set("dead_zone", g.DeadZone)
}

// StrayForce turns the velocity about the Z axis by a pseudo-random angle of
// at most StrayRadians per second. The angle depends only on the particle seed
// and the cycle position.
type StrayForce struct {
	lifecycle.Window
	StrayRadians float64
}

func (s *StrayForce) Apply(p *particle.Particle, t lifecycle.Time) {
	if !s.Active(t.CycleMs) {
		return
	}
	angle := noise(p.Seed, t.CycleMs) * s.StrayRadians * t.DeltaSec
	sin, cos := math.Sincos(angle)
	v := p.Velocity
	p.Velocity = particle.Vec3{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

func (s *StrayForce) Tag() string { return TagStray }

func (s *StrayForce) Export() persist.Record {
	return s.Window.Put(persist.NewRecord(TagStray)).Set("stray_radians", s.StrayRadians)
}

// AccelerationForce adds a constant acceleration: Velocity += Accel*dt.
type AccelerationForce struct {
	lifecycle.Window
	Accel particle.Vec3
}

func (a *AccelerationForce) Apply(p *particle.Particle, t lifecycle.Time) {
	if !a.Active(t.CycleMs) {
		return
	}
	p.Velocity = p.Velocity.Add(a.Accel.Scale(t.DeltaSec))
}

func (a *AccelerationForce) Tag() string { return TagAcceleration }

func (a *AccelerationForce) Export() persist.Record {
	return particle.PutVec3(a.Window.Put(persist.NewRecord(TagAcceleration)), "accel", a.Accel)
}

// FrictionForce damps velocity: Velocity *= max(0, 1 - Coefficient*dt).
type FrictionForce struct {
	lifecycle.Window
	Coefficient float64
}

func (f *FrictionForce) Apply(p *particle.Particle, t lifecycle.Time) {
	if !f.Active(t.CycleMs) {
		return
	}
	p.Velocity = p.Velocity.Scale(max(0, 1-f.Coefficient*t.DeltaSec))
}

func (f *FrictionForce) Tag() string { return TagFriction }

func (f *FrictionForce) Export() persist.Record {
	return f.Window.Put(persist.NewRecord(TagFriction)).Set("coefficient", f.Coefficient)
}

// noise maps (seed, cycle) to [-1, 1] with a splitmix64 finalizer.
func noise(seed, cycle uint64) float64 {
	z := seed ^ (cycle * 0x9e3779b97f4a7c15)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11)/float64(1<<53)*2 - 1
}
