// Package particles implements the bounded pool of short-lived visual effects.
package particles

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/forest-survival/internal/core"
)

// Cap is the maximum number of live particles. The oldest are evicted first.
const Cap = 150

// Particle is one effect instance. Velocity and gravity are expressed per
// 1/60 s frame and scaled by dt*60 on integration.
type Particle struct {
	Pos     core.Vec
	Vel     core.Vec
	Color   core.Color
	Life    float64 // seconds remaining
	MaxLife float64
	Size    float64
	Gravity float64
}

// Brightness maps remaining lifetime to a [0,1] fade.
func (p Particle) Brightness() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(p.Life/p.MaxLife, 0, 1)
}

// System is a fixed-capacity ring of particles.
type System struct {
	buf   [Cap]Particle
	start int
	n     int
	rng   *rand.Rand
}

// New creates an empty system with its own random stream.
func New(seed int64) *System {
	return &System{rng: rand.New(rand.NewSource(seed))}
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return s.n
}

func (s *System) push(p Particle) {
	if s.n == Cap {
		s.buf[s.start] = p
		s.start = (s.start + 1) % Cap
		return
	}
	s.buf[(s.start+s.n)%Cap] = p
	s.n++
}

func (s *System) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// EmitBurst scatters count particles radially from pos. Speed and lifetime
// carry random jitter; upward adds an extra lift to each particle.
func (s *System) EmitBurst(pos core.Vec, color core.Color, count int, spread, life, size float64, upward bool) {
	for i := 0; i < count; i++ {
		angle := s.uniform(0, 2*math.Pi)
		speed := s.uniform(0.3, 1) * spread / 60
		vel := core.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
		if upward {
			vel.Y -= s.uniform(0.5, 1.5)
		}
		l := life * s.uniform(0.7, 1.3)
		s.push(Particle{
			Pos:     pos,
			Vel:     vel,
			Color:   color,
			Life:    l,
			MaxLife: l,
			Size:    size,
			Gravity: 0.04,
		})
	}
}

// EmitBlood sprays a short red burst.
func (s *System) EmitBlood(pos core.Vec, count int) {
	for i := 0; i < count; i++ {
		angle := s.uniform(0, 2*math.Pi)
		speed := s.uniform(0.5, 2.5)
		l := s.uniform(0.25, 0.45)
		s.push(Particle{
			Pos:     pos,
			Vel:     core.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle)*speed - 0.5},
			Color:   core.ColorRed,
			Life:    l,
			MaxLife: l,
			Size:    s.uniform(2, 4),
			Gravity: 0.06,
		})
	}
}

// EmitFire adds one rising ember. It refuses once the pool is full so a
// burning campfire never evicts gameplay feedback.
func (s *System) EmitFire(pos core.Vec) bool {
	if s.n >= Cap {
		return false
	}
	color := core.ColorOrange
	if s.rng.Intn(3) == 0 {
		color = core.ColorBrightYellow
	}
	l := s.uniform(0.4, 0.8)
	s.push(Particle{
		Pos:     core.Vec{X: pos.X + s.uniform(-6, 6), Y: pos.Y + s.uniform(-3, 3)},
		Vel:     core.Vec{X: s.uniform(-0.3, 0.3), Y: s.uniform(-1.4, -0.6)},
		Color:   color,
		Life:    l,
		MaxLife: l,
		Size:    s.uniform(2, 5),
		Gravity: -0.04,
	})
	return true
}

// EmitHeal floats five green sparks upward.
func (s *System) EmitHeal(pos core.Vec) {
	for i := 0; i < 5; i++ {
		l := s.uniform(0.6, 1.0)
		s.push(Particle{
			Pos:     core.Vec{X: pos.X + s.uniform(-12, 12), Y: pos.Y + s.uniform(-8, 8)},
			Vel:     core.Vec{X: s.uniform(-0.2, 0.2), Y: s.uniform(-1.0, -0.4)},
			Color:   core.ColorBrightGreen,
			Life:    l,
			MaxLife: l,
			Size:    3,
			Gravity: -0.02,
		})
	}
}

// Tick integrates every particle by dt seconds and drops expired ones,
// keeping survivors in emission order.
func (s *System) Tick(dt float64) {
	k := dt * 60
	w := 0
	for r := 0; r < s.n; r++ {
		p := s.buf[(s.start+r)%Cap]
		p.Pos.X += p.Vel.X * k
		p.Pos.Y += p.Vel.Y * k
		p.Vel.Y += p.Gravity * k
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		s.buf[(s.start+w)%Cap] = p
		w++
	}
	s.n = w
}

// Particles returns the live particles, oldest first.
func (s *System) Particles() []Particle {
	out := make([]Particle, s.n)
	for i := 0; i < s.n; i++ {
		out[i] = s.buf[(s.start+i)%Cap]
	}
	return out
}

// Reset removes every particle.
func (s *System) Reset() {
	s.start, s.n = 0, 0
}
