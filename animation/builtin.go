package animation

import (
	"github.com/plus3/ember/lifecycle"
	"github.com/plus3/ember/particle"
	"github.com/plus3/ember/persist"
)

// SizeAnimation grows or shrinks particles from StartSize to EndSize.
type SizeAnimation struct {
	lifecycle.Window
	StartSize float64
	EndSize   float64
}

func (a *SizeAnimation) Animate(p *particle.Particle, t lifecycle.Time) {
	if v, ok := lifecycle.Tween(a.Window, t.CycleMs, a.StartSize, a.EndSize, lifecycle.Lerp); ok {
		p.Size = v
	}
}

func (a *SizeAnimation) Tag() string { return TagSize }

func (a *SizeAnimation) Export() persist.Record {
	return a.Window.Put(persist.NewRecord(TagSize)).
		Set("start_size", a.StartSize).
		Set("end_size", a.EndSize)
}

// SpeedAnimation drives the particle speed multiplier from FromSpeed to ToSpeed.
type SpeedAnimation struct {
	lifecycle.Window
	FromSpeed float64
	ToSpeed   float64
}

func (a *SpeedAnimation) Animate(p *particle.Particle, t lifecycle.Time) {
	if v, ok := lifecycle.Tween(a.Window, t.CycleMs, a.FromSpeed, a.ToSpeed, lifecycle.Lerp); ok {
		p.Speed = v
	}
}

func (a *SpeedAnimation) Tag() string { return TagSpeed }

func (a *SpeedAnimation) Export() persist.Record {
	return a.Window.Put(persist.NewRecord(TagSpeed)).
		Set("from_speed", a.FromSpeed).
		Set("to_speed", a.ToSpeed)
}

// ColorAnimation fades the particle tint from FromColor to ToColor.
type ColorAnimation struct {
	lifecycle.Window
	FromColor particle.Color
	ToColor   particle.Color
}

func (a *ColorAnimation) Animate(p *particle.Particle, t lifecycle.Time) {
	if v, ok := lifecycle.Tween(a.Window, t.CycleMs, a.FromColor, a.ToColor, particle.LerpColor); ok {
		p.Color = v
	}
}

func (a *ColorAnimation) Tag() string { return TagColor }

func (a *ColorAnimation) Export() persist.Record {
	rec := a.Window.Put(persist.NewRecord(TagColor))
	rec = particle.PutColor(rec, "from", a.FromColor)
	return particle.PutColor(rec, "to", a.ToColor)
}
