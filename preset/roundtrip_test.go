package preset_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/plus3/ember/animation"
	"github.com/plus3/ember/emitter"
	"github.com/plus3/ember/force"
	"github.com/plus3/ember/lifecycle"
	"github.com/plus3/ember/particle"
	"github.com/plus3/ember/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// values hands out field values for one behaviour set. A nil rng cycles
// through fixed edge cases instead of random draws.
type values struct {
	rng   *rand.Rand
	edges []float64
	next  int
}

var edgeFloats = []float64{
	math.Copysign(0, -1),
	0,
	2,
	-7,
	math.SmallestNonzeroFloat64,
	-math.SmallestNonzeroFloat64,
	math.MaxFloat64,
	1e21,
	0.1,
}

func (v *values) float() float64 {
	if v.rng == nil {
		f := v.edges[v.next%len(v.edges)]
		v.next++
		return f
	}
	switch v.rng.IntN(4) {
	case 0:
		return float64(v.rng.IntN(2001) - 1000)
	case 1:
		return math.Ldexp(v.rng.Float64(), v.rng.IntN(2070)-1070)
	default:
		return (v.rng.Float64() - 0.5) * 1e6
	}
}

func (v *values) vec() particle.Vec3 {
	return particle.Vec3{X: v.float(), Y: v.float(), Z: v.float()}
}

func (v *values) color() particle.Color {
	return particle.Color{R: v.float(), G: v.float(), B: v.float(), A: v.float()}
}

func (v *values) window() lifecycle.Window {
	if v.rng == nil {
		return lifecycle.Window{FromMs: math.MaxUint64 - 1, UntilMs: math.MaxUint64}
	}
	return lifecycle.Window{FromMs: v.rng.Uint64(), UntilMs: v.rng.Uint64()}
}

func TestBehavioursSurviveYAML(t *testing.T) {
	cases := []struct {
		name string
		v    *values
	}{
		{"edge values", &values{edges: edgeFloats}},
	}
	for seed := uint64(1); seed <= 16; seed++ {
		cases = append(cases, struct {
			name string
			v    *values
		}{fmt.Sprintf("seed %d", seed), &values{rng: rand.New(rand.NewPCG(seed, 0x5eed))}})
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.v
			animations := []animation.Animate{
				&animation.SizeAnimation{Window: v.window(), StartSize: v.float(), EndSize: v.float()},
				&animation.SpeedAnimation{Window: v.window(), FromSpeed: v.float(), ToSpeed: v.float()},
				&animation.ColorAnimation{Window: v.window(), FromColor: v.color(), ToColor: v.color()},
			}
			forces := []force.Force{
				&force.GravitationalForce{Window: v.window(), StartPos: v.vec(), EndPos: v.vec(), Mass: v.float(), DeadZone: v.float()},
				&force.StrayForce{Window: v.window(), StrayRadians: v.float()},
				&force.AccelerationForce{Window: v.window(), Accel: v.vec()},
				&force.FrictionForce{Window: v.window(), Coefficient: math.Abs(v.float())},
			}
			emitterAnimations := []emitter.Animate{
				&emitter.SpeedAnimation{Window: v.window(), FromSpeed: v.float(), ToSpeed: v.float()},
				&emitter.DiffusionAnimation{Window: v.window(), FromRadians: v.float(), ToRadians: v.float()},
			}

			e, err := emitter.New(emitter.Config{Name: tc.name, ParticleCount: 1, Lifetime: lifecycle.New(1)}, emitter.DefaultData, 0)
			require.NoError(t, err)
			for _, a := range animations {
				e.Animations().Add(a)
			}
			for _, f := range forces {
				e.Forces().Add(f)
			}
			for _, a := range emitterAnimations {
				e.EmitterAnimations().Add(a)
			}

			r := preset.NewRegistry()
			doc, err := preset.Capture(r, e)
			require.NoError(t, err)
			data, err := preset.Marshal(doc)
			require.NoError(t, err)
			decoded, err := preset.Unmarshal(data)
			require.NoError(t, err)
			built, err := preset.Build(r, decoded)
			require.NoError(t, err)
			require.Len(t, built, 1)

			assert.Equal(t, describe(animations), describe(built[0].Animations().Snapshot()))
			assert.Equal(t, describe(forces), describe(built[0].Forces().Snapshot()))
			assert.Equal(t, describe(emitterAnimations), describe(built[0].EmitterAnimations().Snapshot()))
		})
	}
}

// describe prints each item on its own so the sign of zero is compared too;
// assert.Equal treats -0 and 0 as equal.
func describe[T any](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprintf("%+v", item))
	}
	return out
}
