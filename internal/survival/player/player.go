// Package player holds the player's mutable state and its per-tick update:
// vitals, movement, pickup, traps, combat values, consumption, crafting,
// structures, farming and leveling.
package player

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/particles"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

// Tuning values. Speed is in tiles per second.
const (
	Speed            = 3.0
	SprintMult       = 1.65
	SprintMinStamina = 8.0
	SprintDrain      = 4.5

	HungerRate = 0.35
	ThirstRate = 0.55

	StarveDamage  = 0.6
	DehydrateDmg  = 1.0
	ShelterRegen  = 0.8
	HouseRegen    = 1.6
	FireRegen     = 0.3
	StaminaRegen  = 2.2
	StaminaDecay  = 0.12
	FireRadius    = 4.5 * world.TileSize
	ShelterRadius = 3 * world.TileSize
	HouseRadius   = 4 * world.TileSize
	TrapRadius    = 6 * world.TileSize
	TrapChance    = 0.0008
	FootstepEvery = 0.28

	MaxHPCap = 200
)

// Plot is one farm plot. Crop is items.None when empty.
type Plot struct {
	Crop       items.ID
	Stage      float64 // 0..1
	Water      float64 // 0..100
	Fertilized bool
}

// Player is the whole mutable state of the run's single player.
type Player struct {
	Name  string
	Color core.Color

	Pos    core.Vec
	Facing core.Vec

	HP      float64
	MaxHP   float64
	Hunger  float64
	Thirst  float64
	Stamina float64

	Level  int
	XP     int
	XPNext int

	Weapon       items.ID
	Armor        int
	PoisonStacks int
	Inv          items.Inventory

	Structures map[items.ID][]core.Vec
	Plots      map[core.Vec]*Plot

	GameTime float64
	Day      int
	Survived int
	Kills    int
	Crafted  int

	AttackCD   float64
	Combo      int
	ComboTimer float64
	Swing      float64
	Swinging   bool
	HitCD      float64
	Flash      float64

	Dead bool

	stepTimer float64
	nextCrop  int
}

// New creates a fresh level-1 player at pos.
func New(name string, color core.Color, pos core.Vec, startHP float64, weapon items.ID) *Player {
	p := &Player{
		Name:       name,
		Color:      color,
		Pos:        pos,
		Facing:     core.Vec{X: 0, Y: 1},
		HP:         startHP,
		MaxHP:      100,
		Hunger:     100,
		Thirst:     100,
		Stamina:    100,
		Level:      1,
		XPNext:     100,
		Weapon:     items.Fists,
		Inv:        items.Inventory{},
		Structures: make(map[items.ID][]core.Vec),
		Plots:      make(map[core.Vec]*Plot),
		Day:        1,
	}
	if p.HP > p.MaxHP {
		p.MaxHP = p.HP
	}
	if items.IsWeapon(weapon) && weapon != items.Fists {
		p.Inv.Add(weapon, 1)
		p.Weapon = weapon
	}
	return p
}

// NextStage returns the player that enters the following stage: progression,
// inventory and gear carry over, vitals are restored and placed structures
// stay behind in the old world.
func (p *Player) NextStage(spawn core.Vec) *Player {
	n := New(p.Name, p.Color, spawn, p.MaxHP, items.Fists)
	n.Level = p.Level
	n.XP = p.XP
	n.XPNext = p.XPNext
	n.MaxHP = p.MaxHP
	n.HP = p.MaxHP
	n.Kills = p.Kills
	n.Crafted = p.Crafted
	n.Survived = p.Survived
	n.Inv = p.Inv.Clone()
	n.Weapon = p.Weapon
	n.Armor = p.Armor
	n.PoisonStacks = p.PoisonStacks
	return n
}

// Cell returns the grid cell under the player.
func (p *Player) Cell() world.Cell {
	return world.CellAt(p.Pos)
}

// TimeOfDay returns the position in the current day, in [0,10).
func (p *Player) TimeOfDay() float64 {
	return math.Mod(p.GameTime, 10)
}

// IsNight reports whether night-time spawning applies.
func (p *Player) IsNight() bool {
	return p.TimeOfDay() > 6
}

// Near reports whether any placed structure of kind lies within radius.
func (p *Player) Near(kind items.ID, radius float64) bool {
	for _, s := range p.Structures[kind] {
		if core.Dist(p.Pos, s) < radius {
			return true
		}
	}
	return false
}

// NearLight reports whether a campfire or torch lights the player's position.
func (p *Player) NearLight() bool {
	return p.Near(items.Campfire, 5*world.TileSize) || p.Near(items.Torch, 3*world.TileSize)
}

// Report describes what happened during one Update.
type Report struct {
	NewDay bool
	Died   bool
	Moved  bool
	Picked []items.Stack
	Trap   bool
}

// Update advances the player by dt seconds. nm scales hunger and thirst decay.
func (p *Player) Update(dt float64, in core.InputFrame, nm float64, w *world.Grid, fx *particles.System, rng *rand.Rand) Report {
	var r Report
	if p.Dead {
		return r
	}

	p.GameTime += dt / 15
	if day := int(p.GameTime/10) + 1; day != p.Day {
		p.Day = day
		p.Survived++
		r.NewDay = true
	}

	p.updateVitals(dt, nm)
	if p.HP <= 0 {
		p.Dead = true
		r.Died = true
		return r
	}

	p.updateTimers(dt)
	r.Moved = p.move(dt, in, w, fx)

	for _, c := range p.Cell().Neighbors4() {
		for _, s := range w.PopDrops(c) {
			p.Inv.Add(s.ID, s.Qty)
			r.Picked = append(r.Picked, s)
		}
	}

	traps := p.Structures[items.Trap]
	for i, t := range traps {
		if core.Dist(p.Pos, t) < TrapRadius && rng.Float64() < TrapChance {
			p.Inv.Add(items.Meat, 1)
			p.Structures[items.Trap] = append(traps[:i:i], traps[i+1:]...)
			r.Trap = true
			break
		}
	}

	p.clampVitals()
	return r
}

func (p *Player) updateVitals(dt, nm float64) {
	p.Hunger -= nm * HungerRate * dt
	p.Thirst -= nm * ThirstRate * dt

	nearFire := p.Near(items.Campfire, FireRadius)
	nearShelter := p.Near(items.Shelter, ShelterRadius)
	nearHouse := p.Near(items.House, HouseRadius)

	if nearFire || nearShelter || nearHouse {
		p.Stamina += StaminaRegen * dt
	} else {
		p.Stamina -= StaminaDecay * dt
	}

	switch {
	case nearHouse:
		p.HP += HouseRegen * dt
	case nearShelter:
		p.HP += ShelterRegen * dt
	}
	if nearFire {
		p.HP += FireRegen * dt
	}

	p.clampVitals()
	if p.Hunger <= 0 {
		p.HP -= StarveDamage * dt
	}
	if p.Thirst <= 0 {
		p.HP -= DehydrateDmg * dt
	}
	p.clampVitals()
}

func (p *Player) clampVitals() {
	p.HP = core.ClampF(p.HP, 0, p.MaxHP)
	p.Hunger = core.ClampF(p.Hunger, 0, 100)
	p.Thirst = core.ClampF(p.Thirst, 0, 100)
	p.Stamina = core.ClampF(p.Stamina, 0, 100)
}

func (p *Player) updateTimers(dt float64) {
	p.Flash = math.Max(0, p.Flash-dt)
	p.HitCD = math.Max(0, p.HitCD-dt)
	p.AttackCD = math.Max(0, p.AttackCD-dt)
	p.ComboTimer -= dt
	if p.ComboTimer <= 0 {
		p.ComboTimer = 0
		p.Combo = 0
	}
	if p.Swinging {
		p.Swing += dt * 9
		if p.Swing >= 1 {
			p.Swinging = false
			p.Swing = 0
		}
	}
}

func (p *Player) move(dt float64, in core.InputFrame, w *world.Grid, fx *particles.System) bool {
	if !in.Moving() {
		p.stepTimer = 0
		return false
	}
	dir := core.Vec{X: in.MoveX, Y: in.MoveY}
	dir = dir.Scale(1 / dir.Len())
	p.Facing = dir

	step := Speed * world.TileSize * dt
	if in.Sprint && p.Stamina > SprintMinStamina {
		step *= SprintMult
		p.Stamina -= SprintDrain * dt
	}

	if nx := (core.Vec{X: p.Pos.X + dir.X*step, Y: p.Pos.Y}); w.WalkableAt(nx) {
		p.Pos.X = nx.X
	}
	if ny := (core.Vec{X: p.Pos.X, Y: p.Pos.Y + dir.Y*step}); w.WalkableAt(ny) {
		p.Pos.Y = ny.Y
	}

	p.stepTimer -= dt
	if p.stepTimer <= 0 {
		p.stepTimer = FootstepEvery
		if fx != nil {
			fx.EmitBurst(core.Vec{X: p.Pos.X, Y: p.Pos.Y + 10}, w.TileAt(p.Pos).Color(), 3, 20, 0.3, 2, false)
		}
	}
	return true
}
