// Package enemy implements the per-instance enemy state machine: patrol,
// chase, attack emission, knockback override and poison decay.
package enemy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/forest-survival/internal/core"
)

// AI tuning.
const (
	AlertRadius    = 210.0
	LeashFactor    = 1.6
	AttackRadius   = 58.0
	AttackCooldown = 1.6
	PatrolRange    = 140.0
	WaypointReach  = 8.0
	WaypointReroll = 0.007
	KnockbackDecay = 0.75 // per 1/60 s
	KnockbackMin   = 0.5
	PoisonDPS      = 6.0
)

// State is the AI state label.
type State uint8

const (
	Patrol State = iota
	Chase
)

func (s State) String() string {
	if s == Chase {
		return "chase"
	}
	return "patrol"
}

// Outcome is the discrete event an update reports to the simulation.
type Outcome uint8

const (
	None Outcome = iota
	Attack
	Dead
)

// Terrain is the collision query enemies move against.
type Terrain interface {
	WalkableAt(p core.Vec) bool
}

// Enemy is one live agent.
type Enemy struct {
	Kind      Kind
	HP        float64
	MaxHP     float64
	Atk       int
	Speed     float64
	Pos       core.Vec
	State     State
	Waypoint  core.Vec
	AttackCD  float64
	Flash     float64
	Knockback core.Vec
	Poison    float64 // seconds of poison left
}

// New spawns a kind at pos with hit points and attack scaled by mult.
func New(kind Kind, pos core.Vec, mult float64) *Enemy {
	t := kind.Template()
	hp := float64(int(float64(t.HP) * mult))
	return &Enemy{
		Kind:     kind,
		HP:       hp,
		MaxHP:    hp,
		Atk:      int(float64(t.Atk) * mult),
		Speed:    t.Speed,
		Pos:      pos,
		State:    Patrol,
		Waypoint: pos,
	}
}

// Alive reports whether the enemy still has hit points.
func (e *Enemy) Alive() bool {
	return e.HP > 0
}

// Knocked reports whether the knockback override is active.
func (e *Enemy) Knocked() bool {
	return math.Abs(e.Knockback.X) > KnockbackMin || math.Abs(e.Knockback.Y) > KnockbackMin
}

// TakeHit applies damage, a knockback impulse and poison seconds.
// It returns true when the hit kills the enemy.
func (e *Enemy) TakeHit(dmg float64, kb core.Vec, poison float64) bool {
	e.HP -= dmg
	e.Knockback = kb
	e.Flash = 0.15
	if poison > 0 {
		e.Poison += poison
	}
	return e.HP <= 0
}

// Update advances the agent by dt seconds toward target.
func (e *Enemy) Update(dt float64, target core.Vec, terrain Terrain, rng *rand.Rand) Outcome {
	e.AttackCD -= dt
	e.Flash -= dt

	if e.Poison > 0 {
		e.Poison -= dt
		e.HP -= PoisonDPS * dt
		if e.HP <= 0 {
			return Dead
		}
	}

	if e.Knocked() {
		e.move(e.Knockback.Scale(dt*60), terrain)
		e.Knockback = e.Knockback.Scale(math.Pow(KnockbackDecay, dt*60))
		return None
	}

	dist := core.Dist(e.Pos, target)
	switch {
	case e.State == Patrol && dist < AlertRadius:
		e.State = Chase
	case e.State == Chase && dist > AlertRadius*LeashFactor:
		e.State = Patrol
		e.Waypoint = e.Pos
	}

	step := e.Speed * 60 * dt
	if e.State == Chase {
		if dist > 5 {
			e.move(target.Sub(e.Pos).Scale(step/dist), terrain)
		}
		if dist < AttackRadius && e.AttackCD <= 0 {
			e.AttackCD = AttackCooldown
			return Attack
		}
		return None
	}

	// A tick either picks a new waypoint or walks toward the current one.
	wd := core.Dist(e.Pos, e.Waypoint)
	if wd < WaypointReach || rng.Float64() < WaypointReroll {
		e.Waypoint = core.Vec{
			X: e.Pos.X + (rng.Float64()*2-1)*PatrolRange,
			Y: e.Pos.Y + (rng.Float64()*2-1)*PatrolRange,
		}
	} else if wd > 0 {
		half := math.Min(step*0.5, wd)
		e.move(e.Waypoint.Sub(e.Pos).Scale(half/wd), terrain)
	}
	return None
}

// move commits each axis independently so walls allow sliding.
func (e *Enemy) move(d core.Vec, terrain Terrain) {
	if nx := (core.Vec{X: e.Pos.X + d.X, Y: e.Pos.Y}); terrain.WalkableAt(nx) {
		e.Pos.X = nx.X
	}
	if ny := (core.Vec{X: e.Pos.X, Y: e.Pos.Y + d.Y}); terrain.WalkableAt(ny) {
		e.Pos.Y = ny.Y
	}
}
