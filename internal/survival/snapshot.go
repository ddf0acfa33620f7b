package survival

import (
	"math"

	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
	"github.com/vovakirdan/forest-survival/internal/survival/enemy"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/particles"
	"github.com/vovakirdan/forest-survival/internal/survival/player"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

// Window is a rectangle of tiles.
type Window struct {
	X, Y, W, H int
}

// Contains reports whether c lies inside the window.
func (w Window) Contains(c world.Cell) bool {
	return c.X >= w.X && c.X < w.X+w.W && c.Y >= w.Y && c.Y < w.Y+w.H
}

// PlayerView is the drawable player state.
type PlayerView struct {
	Name         string
	Color        core.Color
	Pos          core.Vec
	Facing       core.Vec
	HP, MaxHP    float64
	Hunger       float64
	Thirst       float64
	Stamina      float64
	Level        int
	XP, XPNext   int
	Weapon       items.ID
	Armor        int
	PoisonStacks int
	Combo        int
	Swinging     bool
	Flash        bool
	Dead         bool
	Kills        int
}

// EnemyView is the drawable state of one enemy.
type EnemyView struct {
	Kind      enemy.Kind
	Pos       core.Vec
	HP, MaxHP float64
	State     enemy.State
	Flash     bool
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Frame     uint64
	StageID   int
	StageName string
	Score     int

	Day       int
	TimeOfDay float64
	Night     bool
	Darkness  float64 // 0..190, alpha of the night overlay

	Camera     core.Vec
	Window     Window
	Tiles      [][]world.Tile // Window.H rows of Window.W tiles
	Objects    map[world.Cell]world.Object
	Drops      map[world.Cell][]items.Stack
	Structures map[items.ID][]core.Vec
	Plots      map[core.Vec]player.Plot
	Particles  []particles.Particle
	Enemies    []EnemyView
	Player     PlayerView

	Notifications []Notification
	Missions      []campaign.MissionStatus

	Overlay Overlay
	Cursor  int
	Paused  bool
	Phase   Phase
	Intro   float64
}

// Darkness returns the night overlay alpha for time of day t in [0,10).
// Standing near a light source takes 90 off.
func Darkness(t float64, lit bool) float64 {
	var a float64
	switch {
	case t < 5:
		a = 0
	case t < 6:
		a = (t - 5) * 110
	case t < 9:
		a = math.Min(190, 110+(t-6)*30)
	default:
		a = (10 - t) * 65
	}
	if lit {
		a -= 90
	}
	return math.Max(0, a)
}

func (g *Game) window() Window {
	x := int(math.Floor(g.camera.X / world.TileSize))
	y := int(math.Floor(g.camera.Y / world.TileSize))
	w := int(math.Ceil(g.viewW/world.TileSize)) + 1
	h := int(math.Ceil(g.viewH/world.TileSize)) + 1
	return Window{X: x, Y: y, W: min(w, world.W-x), H: min(h, world.H-y)}
}

// Snapshot captures the current frame.
func (g *Game) Snapshot() Snapshot {
	p := g.player
	stage := g.campaign.Current()
	win := g.window()

	s := Snapshot{
		Frame:      g.frame,
		StageID:    stage.ID,
		StageName:  stage.Name,
		Score:      g.Score(),
		Day:        p.Day,
		TimeOfDay:  p.TimeOfDay(),
		Night:      p.IsNight(),
		Darkness:   Darkness(p.TimeOfDay(), p.NearLight()),
		Camera:     g.camera,
		Window:     win,
		Tiles:      make([][]world.Tile, win.H),
		Objects:    make(map[world.Cell]world.Object),
		Drops:      make(map[world.Cell][]items.Stack),
		Structures: make(map[items.ID][]core.Vec, len(p.Structures)),
		Plots:      make(map[core.Vec]player.Plot, len(p.Plots)),
		Particles:  g.fx.Particles(),
		Player: PlayerView{
			Name:         p.Name,
			Color:        p.Color,
			Pos:          p.Pos,
			Facing:       p.Facing,
			HP:           p.HP,
			MaxHP:        p.MaxHP,
			Hunger:       p.Hunger,
			Thirst:       p.Thirst,
			Stamina:      p.Stamina,
			Level:        p.Level,
			XP:           p.XP,
			XPNext:       p.XPNext,
			Weapon:       p.EquippedWeapon(),
			Armor:        p.Armor,
			PoisonStacks: p.PoisonStacks,
			Combo:        p.Combo,
			Swinging:     p.Swinging,
			Flash:        p.Flash > 0,
			Dead:         p.Dead,
			Kills:        p.Kills,
		},
		Notifications: g.Notifications(),
		Missions:      g.campaign.Status(),
		Overlay:       g.overlay,
		Cursor:        g.cursor,
		Paused:        g.paused,
		Phase:         g.phase,
		Intro:         g.intro,
	}

	for row := range s.Tiles {
		s.Tiles[row] = make([]world.Tile, win.W)
		for col := range s.Tiles[row] {
			s.Tiles[row][col] = g.world.Tile(win.X+col, win.Y+row)
		}
	}
	for c, o := range g.world.Objects() {
		if win.Contains(c) {
			s.Objects[c] = o
		}
	}
	for c, d := range g.world.Drops() {
		if win.Contains(c) {
			s.Drops[c] = d
		}
	}
	for kind, list := range p.Structures {
		s.Structures[kind] = append([]core.Vec(nil), list...)
	}
	for pos, pl := range p.Plots {
		s.Plots[pos] = *pl
	}
	for _, e := range g.enemies {
		s.Enemies = append(s.Enemies, EnemyView{
			Kind:  e.Kind,
			Pos:   e.Pos,
			HP:    e.HP,
			MaxHP: e.MaxHP,
			State: e.State,
			Flash: e.Flash > 0,
		})
	}
	return s
}
