// Package emitter owns a population of particles together with the behaviour
// lists that drive it, and advances them once per tick.
package emitter

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/plus3/ember/animation"
	"github.com/plus3/ember/clock"
	"github.com/plus3/ember/force"
	"github.com/plus3/ember/lifecycle"
	"github.com/plus3/ember/particle"
)

// Config is the static description of an emitter.
type Config struct {
	Name          string              `yaml:"name" json:"name"`
	Origin        particle.Vec3       `yaml:"origin" json:"origin"`
	ParticleCount int                 `yaml:"particle_count" json:"particle_count" jsonschema:"minimum=0"`
	Lifetime      lifecycle.LifeCycle `yaml:"lifetime" json:"lifetime"`
	// Seed makes respawn directions reproducible.
	Seed uint64 `yaml:"seed" json:"seed"`
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	var errs []error
	if c.ParticleCount < 0 {
		errs = append(errs, fmt.Errorf("particle count %d is negative", c.ParticleCount))
	}
	if err := c.Lifetime.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("emitter %q: %w", c.Name, err)
	}
	return nil
}

// Emitter owns its particles, its particle animations, its force handler and
// its emitter animations. All particles are respawned at Origin when the
// lifetime cycle wraps.
//
// Tick and SetParticleCount serialize on an internal lock; behaviour lists
// may be edited at any time and take effect on the next tick.
type Emitter struct {
	mu      sync.Mutex
	config  Config
	initial AnimationData
	data    AnimationData
	pool    *particle.Pool

	animations        animation.List
	forces            *force.Handler
	emitterAnimations AnimationList

	workers int
	started bool
	cycle   uint64
}

// New creates an emitter. forceDurationMs is the shared period of the force
// handler; zero uses the emitter's lifetime.
func New(cfg Config, data AnimationData, forceDurationMs uint64) (*Emitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if forceDurationMs == 0 {
		forceDurationMs = cfg.Lifetime.LifetimeMs()
	}
	forces, err := force.NewHandler(forceDurationMs)
	if err != nil {
		return nil, fmt.Errorf("emitter %q: %w", cfg.Name, err)
	}

	e := &Emitter{
		config:  cfg,
		initial: data,
		data:    data,
		pool:    particle.NewPool(cfg.ParticleCount),
		forces:  forces,
		workers: runtime.GOMAXPROCS(0),
	}
	for i := 0; i < cfg.ParticleCount; i++ {
		e.pool.Append(particle.Particle{})
	}
	return e, nil
}

func (e *Emitter) Name() string { return e.config.Name }

// Config returns the emitter's configuration. ParticleCount reflects the
// current population.
func (e *Emitter) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.config
	cfg.ParticleCount = e.pool.Len()
	return cfg
}

// Data returns a copy of the current emitter-wide data.
func (e *Emitter) Data() AnimationData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data
}

func (e *Emitter) Animations() *animation.List { return &e.animations }

func (e *Emitter) Forces() *force.Handler { return e.forces }

func (e *Emitter) EmitterAnimations() *AnimationList { return &e.emitterAnimations }

// Reset restores the initial emitter data and forces a respawn on the next
// tick.
func (e *Emitter) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data = e.initial
	e.started = false
}

// SetWorkers bounds the goroutines used per tick. n <= 0 restores the default.
func (e *Emitter) SetWorkers(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	e.workers = n
}

// ParticleCount returns the number of live particles.
func (e *Emitter) ParticleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pool.Len()
}

// SetParticleCount grows or shrinks the population. New particles spawn at
// Origin immediately; removed particles are taken from the end.
func (e *Emitter) SetParticleCount(n int) error {
	if n < 0 {
		return fmt.Errorf("emitter %q: particle count %d is negative", e.config.Name, n)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if n < e.pool.Len() {
		e.pool.Truncate(n)
		e.pool.Compact()
		return nil
	}
	for e.pool.Len() < n {
		index := e.pool.Append(particle.Particle{})
		e.spawn(e.pool.Get(index), index, e.cycle, e.data)
	}
	return nil
}

// Particles copies the live particles into dst, reusing its storage.
func (e *Emitter) Particles(dst []particle.Particle) []particle.Particle {
	e.mu.Lock()
	defer e.mu.Unlock()
	dst = dst[:0]
	for _, p := range e.pool.All() {
		dst = append(dst, *p)
	}
	return dst
}

// Tick advances the emitter to the clock's current time:
//  1. emitter animations update the emitter-wide data;
//  2. on the first tick or when the lifetime cycle wrapped, every particle is
//     respawned from that data;
//  3. while the lifetime window is active, each particle runs the particle
//     animations, then the forces, then integrates its position.
//
// Behaviour lists are snapshotted once, so edits made during the tick apply to
// the next one. Particles are processed in chunks across goroutines; the
// behaviours of one particle always run sequentially.
func (e *Emitter) Tick(clk clock.Clock) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lc := e.config.Lifetime
	now := lc.Time(clk)
	cycle := lc.CycleIndex(clk)
	respawn := !e.started || cycle != e.cycle
	e.started = true
	e.cycle = cycle

	e.emitterAnimations.Apply(&e.data, now)

	active := lc.Active(clk)
	if !respawn && !active {
		return
	}

	data := e.data
	animations := e.animations.Snapshot()
	forces := e.forces.Prepare(clk)
	step := func(index int, p *particle.Particle) {
		if respawn {
			e.spawn(p, index, cycle, data)
		}
		if !active {
			return
		}
		animation.Apply(animations, p, now)
		forces.Apply(p)
		p.Position = p.Position.Add(p.Velocity.Scale(p.Speed * now.DeltaSec))
	}

	chunks := e.pool.Chunks()
	if e.workers <= 1 || len(chunks) <= 1 {
		for _, c := range chunks {
			c.Each(step)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	for _, c := range chunks {
		g.Go(func() error {
			c.Each(step)
			return nil
		})
	}
	// chunk workers never fail
	g.Wait()
}

// spawn resets p at the origin with a launch direction inside the diffusion
// cone around +Y. The direction depends only on the seed, index and cycle.
func (e *Emitter) spawn(p *particle.Particle, index int, cycle uint64, data AnimationData) {
	rng := rand.New(rand.NewPCG(e.config.Seed+uint64(index), cycle))

	polar := rng.Float64() * data.Diffusion
	azimuth := rng.Float64() * 2 * math.Pi
	sinPolar, cosPolar := math.Sincos(polar)
	sinAz, cosAz := math.Sincos(azimuth)

	*p = particle.Particle{
		Seed:     rng.Uint64(),
		Position: e.config.Origin,
		Velocity: particle.Vec3{X: sinPolar * cosAz, Y: cosPolar, Z: sinPolar * sinAz},
		Speed:    data.ParticleSpeed,
		Size:     data.ParticleSize,
		Color:    data.ParticleColor,
	}
}
