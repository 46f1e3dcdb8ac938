package main

import (
	"fmt"
	"math"

	"github.com/plus3/ember/animation"
	"github.com/plus3/ember/emitter"
	"github.com/plus3/ember/force"
	"github.com/plus3/ember/lifecycle"
	"github.com/plus3/ember/particle"
)

// demoScene builds count fountains spread on a circle, each with a full set
// of behaviours.
func demoScene(count, particles int) ([]*emitter.Emitter, error) {
	emitters := make([]*emitter.Emitter, 0, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(max(count, 1))
		e, err := emitter.New(emitter.Config{
			Name:          fmt.Sprintf("fountain-%d", i),
			Origin:        particle.Vec3{X: 10 * math.Cos(angle), Z: 10 * math.Sin(angle)},
			ParticleCount: particles,
			Lifetime:      lifecycle.New(3),
			Seed:          uint64(i + 1),
		}, emitter.AnimationData{
			ParticleSpeed: 6,
			Diffusion:     0.35,
			ParticleSize:  0.2,
			ParticleColor: particle.Color{R: 0.6, G: 0.8, B: 1, A: 1},
		}, 1500)
		if err != nil {
			return nil, err
		}

		life := lifecycle.Window{FromMs: 0, UntilMs: 3000}
		e.Animations().Add(&animation.SizeAnimation{Window: life, StartSize: 0.2, EndSize: 0.05})
		e.Animations().Add(&animation.ColorAnimation{
			Window:    lifecycle.Window{FromMs: 1500, UntilMs: 3000},
			FromColor: particle.Color{R: 0.6, G: 0.8, B: 1, A: 1},
			ToColor:   particle.Color{R: 0.1, G: 0.2, B: 0.6, A: 0},
		})
		e.Animations().Add(&animation.SpeedAnimation{Window: lifecycle.Window{FromMs: 2000, UntilMs: 3000}, FromSpeed: 6, ToSpeed: 2})

		e.Forces().Add(&force.AccelerationForce{Window: lifecycle.Window{UntilMs: 1500}, Accel: particle.Vec3{Y: -1.5}})
		e.Forces().Add(&force.StrayForce{Window: lifecycle.Window{FromMs: 300, UntilMs: 1500}, StrayRadians: 0.8})
		e.Forces().Add(&force.GravitationalForce{
			Window:   lifecycle.Window{FromMs: 500, UntilMs: 1200},
			StartPos: particle.Vec3{Y: 8},
			EndPos:   particle.Vec3{Y: 2},
			Mass:     30,
			DeadZone: 0.5,
		})
		e.Forces().Add(&force.FrictionForce{Window: lifecycle.Window{UntilMs: 1500}, Coefficient: 0.2})

		e.EmitterAnimations().Add(&emitter.SpeedAnimation{Window: life, FromSpeed: 6, ToSpeed: 9})
		e.EmitterAnimations().Add(&emitter.DiffusionAnimation{Window: life, FromRadians: 0.35, ToRadians: 0.6})

		emitters = append(emitters, e)
	}
	return emitters, nil
}
