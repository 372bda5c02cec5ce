package fx

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
)

// Range is an inclusive-exclusive span sampled uniformly. A zero Range
// always yields Min.
type Range struct {
	Min, Max float64
}

// Fixed returns a Range holding a single value.
func Fixed(v float64) Range { return Range{v, v} }

func (r Range) pick(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// EmitterConfig describes how particles are spawned and how they fade.
type EmitterConfig struct {
	X, Y           Range
	SpeedX, SpeedY Range
	// Speed, when set, launches particles at a random angle instead of
	// using SpeedX/SpeedY.
	Speed     Range
	Lifespan  time.Duration
	Frequency time.Duration // 0 disables continuous emission
	Quantity  int           // particles per emission; 0 means 1

	ScaleStart, ScaleEnd float64
	AlphaStart, AlphaEnd float64
	Blend                render.BlendMode
	Tints                []color.Color
}

// Particle is one live particle.
type Particle struct {
	Pos, Vel geom.Point
	Age      time.Duration
	Life     time.Duration
	Tint     color.Color
}

func (p Particle) progress() float64 {
	if p.Life <= 0 {
		return 1
	}
	return math.Min(1, float64(p.Age)/float64(p.Life))
}

// Emitter spawns and simulates particles.
type Emitter struct {
	Config   EmitterConfig
	Emitting bool

	rng       *rand.Rand
	particles []Particle
	acc       time.Duration
}

// NewEmitter returns an emitter that starts emitting immediately when the
// config has a frequency.
func NewEmitter(cfg EmitterConfig, rng *rand.Rand) *Emitter {
	return &Emitter{Config: cfg, Emitting: cfg.Frequency > 0, rng: rng}
}

// Update ages particles, drops the expired ones and emits new ones.
func (e *Emitter) Update(dt time.Duration) {
	secs := dt.Seconds()
	live := e.particles[:0]
	for _, p := range e.particles {
		p.Age += dt
		if p.Age >= p.Life {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Mul(secs))
		live = append(live, p)
	}
	e.particles = live

	if !e.Emitting || e.Config.Frequency <= 0 {
		return
	}
	e.acc += dt
	for e.acc >= e.Config.Frequency {
		e.acc -= e.Config.Frequency
		n := e.Config.Quantity
		if n <= 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			e.spawn(geom.Pt(e.Config.X.pick(e.rng), e.Config.Y.pick(e.rng)))
		}
	}
}

// Explode emits n particles at once from (x, y).
func (e *Emitter) Explode(n int, x, y float64) {
	for i := 0; i < n; i++ {
		e.spawn(geom.Pt(x, y))
	}
}

func (e *Emitter) spawn(at geom.Point) {
	cfg := e.Config
	var vel geom.Point
	if cfg.Speed != (Range{}) {
		angle := e.rng.Float64() * 2 * math.Pi
		s := cfg.Speed.pick(e.rng)
		vel = geom.Pt(math.Cos(angle)*s, math.Sin(angle)*s)
	} else {
		vel = geom.Pt(cfg.SpeedX.pick(e.rng), cfg.SpeedY.pick(e.rng))
	}
	var tint color.Color
	if len(cfg.Tints) > 0 {
		tint = cfg.Tints[e.rng.Intn(len(cfg.Tints))]
	}
	e.particles = append(e.particles, Particle{Pos: at, Vel: vel, Life: cfg.Lifespan, Tint: tint})
}

// Stop halts continuous emission; live particles play out.
func (e *Emitter) Stop() { e.Emitting = false }

// Alive returns the number of live particles.
func (e *Emitter) Alive() int { return len(e.particles) }

// Particles returns the live particles.
func (e *Emitter) Particles() []Particle { return e.particles }

// Draw renders every particle with tex, scaled and faded over its life.
func (e *Emitter) Draw(dst, tex render.Image) {
	if tex == nil {
		return
	}
	cfg := e.Config
	for _, p := range e.particles {
		t := p.progress()
		a := cfg.AlphaStart + (cfg.AlphaEnd-cfg.AlphaStart)*t
		s := cfg.ScaleStart + (cfg.ScaleEnd-cfg.ScaleStart)*t
		if a <= 0.005 || s <= 0.005 {
			continue
		}
		render.DrawSprite(dst, tex, render.Sprite{
			X: p.Pos.X, Y: p.Pos.Y,
			ScaleX: s, ScaleY: s,
			Alpha: a,
			Tint:  p.Tint,
			Blend: cfg.Blend,
		})
	}
}
