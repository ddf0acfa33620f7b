// Package survival runs one forest survival session: it owns the world, the
// player, enemies, particles and the campaign, advances them once per tick
// and draws the result into a core.Screen.
package survival

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/forest-survival/internal/audio"
	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/savegame"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
	"github.com/vovakirdan/forest-survival/internal/survival/enemy"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/particles"
	"github.com/vovakirdan/forest-survival/internal/survival/player"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

// Overlay is a modal panel drawn over the map.
type Overlay uint8

const (
	OverlayNone Overlay = iota
	OverlayInventory
	OverlayCraft
	OverlayStageClear
	OverlayGameClear
)

// Phase tells the platform what the session wants next.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseGameClear
	PhaseStageSelect // the player left the stage-clear screen for stage select
)

// SaveStore persists save records.
type SaveStore interface {
	StoreSave(savegame.Record) error
}

// Options configure a session. Zero values fall back to the defaults of
// config.DefaultForestConfig.
type Options struct {
	Name   string
	Color  core.Color
	Weapon items.ID

	Runtime    core.RuntimeConfig
	Sim        config.SimConfig
	Difficulty config.DifficultyPreset
	Tier       config.DifficultyTier
	Stages     []campaign.Stage
	Progress   campaign.Progress
	StageID    int

	ProgressSaver campaign.ProgressSaver
	Saves         SaveStore
	Sink          audio.Sink
	Logger        *log.Logger
}

// Game is one running session.
type Game struct {
	opts   Options
	sim    config.SimConfig
	logger *log.Logger
	sink   audio.Sink
	rng    *rand.Rand

	baseSeed  int64
	worldSeed int64
	world     *world.Grid
	player    *player.Player
	enemies   []*enemy.Enemy
	fx        *particles.System
	campaign  *campaign.Campaign
	rules     config.Rules

	camera  core.Vec
	viewW   float64
	viewH   float64
	spawnCD float64
	intro   float64
	frame   uint64

	notes   []Notification
	overlay Overlay
	cursor  int
	paused  bool
	phase   Phase
}

// New builds a session and starts the requested stage, which must be
// unlocked in opts.Progress.
func New(opts Options) (*Game, error) {
	g, err := newGame(opts)
	if err != nil {
		return nil, err
	}
	id := opts.StageID
	if id == 0 {
		id = g.campaign.Current().ID
	}
	if err := g.campaign.Start(id); err != nil {
		return nil, fmt.Errorf("survival: %w", err)
	}
	g.loadStage(g.campaign.Current(), nil)
	return g, nil
}

func newGame(opts Options) (*Game, error) {
	defaults := config.DefaultForestConfig()
	if opts.Sim == (config.SimConfig{}) {
		opts.Sim = defaults.Sim
	}
	if opts.Tier.ID == "" {
		preset := opts.Difficulty
		if preset == "" {
			preset = config.DifficultyNormal
		}
		tier, err := defaults.Tier(preset)
		if err != nil {
			return nil, fmt.Errorf("survival: %w", err)
		}
		opts.Tier = tier
	}
	if len(opts.Stages) == 0 {
		stages, err := campaign.StagesFromConfig(defaults.Stages)
		if err != nil {
			return nil, fmt.Errorf("survival: %w", err)
		}
		opts.Stages = stages
	}
	if opts.Name == "" {
		opts.Name = "Survivor"
	}
	if opts.Color == core.ColorDefault {
		opts.Color = core.ColorBrightYellow
	}
	if !items.IsWeapon(opts.Weapon) {
		opts.Weapon = items.Fists
	}
	if opts.Runtime.ScreenW == 0 {
		opts.Runtime = core.DefaultConfig()
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano() % 100000
	}
	if opts.Runtime.MaxDelta == 0 {
		opts.Runtime.MaxDelta = opts.Sim.MaxDelta()
	}
	if opts.Sink == nil {
		opts.Sink = audio.NopSink{}
	}

	g := &Game{
		opts:     opts,
		sim:      opts.Sim,
		logger:   opts.Logger,
		sink:     opts.Sink,
		rng:      rand.New(rand.NewSource(opts.Runtime.Seed)),
		baseSeed: opts.Runtime.Seed,
		fx:       particles.New(opts.Runtime.Seed),
		campaign: campaign.New(opts.Stages, opts.Progress, opts.ProgressSaver),
	}
	g.Resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	return g, nil
}

// loadStage generates the stage's world and places a player in it. prev
// carries progression across stages; nil starts a fresh player.
func (g *Game) loadStage(stage campaign.Stage, prev *player.Player) {
	g.worldSeed = g.baseSeed + stage.SeedOffset
	g.world = world.Generate(g.worldSeed)
	g.rules = config.Resolve(g.opts.Tier, stage.Config)

	spawn := g.world.SpawnPoint()
	if prev != nil {
		g.player = prev.NextStage(spawn)
	} else {
		g.player = player.New(g.opts.Name, g.opts.Color, spawn, g.rules.StartHP, g.opts.Weapon)
	}
	g.resetSession()
	g.spawnEnemies()
	for _, line := range stage.Intro {
		g.notifyFor(line, g.sim.IntroSeconds)
	}
	g.logf("stage started", "stage", stage.ID, "seed", g.worldSeed, "enemies", g.rules.EnemyCount)
}

func (g *Game) resetSession() {
	g.enemies = nil
	g.fx.Reset()
	g.notes = nil
	g.overlay = OverlayNone
	g.cursor = 0
	g.paused = false
	g.phase = PhasePlaying
	g.spawnCD = g.sim.FirstSpawnDelay
	g.intro = g.sim.IntroSeconds
	g.camera = g.cameraTarget()
}

func (g *Game) logf(msg string, kv ...any) {
	if g.logger != nil {
		g.logger.Info(msg, kv...)
	}
}

func (g *Game) logErr(msg string, err error, kv ...any) {
	if g.logger != nil {
		g.logger.Error(msg, append(kv, "error", err)...)
	}
}

// Resize sets the terminal size the camera frames. Each tile is two columns
// wide; the top two and bottom three rows are HUD.
func (g *Game) Resize(w, h int) {
	g.opts.Runtime.ScreenW, g.opts.Runtime.ScreenH = w, h
	g.viewW = float64(max(1, w/2)) * world.TileSize
	g.viewH = float64(max(1, h-hudRows)) * world.TileSize
}

// Step advances the session by the wall-clock delta dt, clamped to the
// configured maximum. Paused sessions and open overlays consume input only.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	d := core.ClampDelta(dt, g.opts.Runtime.MaxDelta).Seconds()

	switch {
	case g.phase == PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.Restart()
		}
		return g.result()
	case g.overlay == OverlayStageClear || g.overlay == OverlayGameClear:
		g.handleClearInput(in)
		return g.result()
	}

	if in.Has(core.ActionBack) {
		if g.overlay != OverlayNone {
			g.overlay = OverlayNone
		} else {
			g.paused = !g.paused
		}
	}
	if in.Has(core.ActionPause) && g.overlay == OverlayNone {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if in.Has(core.ActionInventory) {
		g.toggleOverlay(OverlayInventory)
	}
	if in.Has(core.ActionCraft) {
		g.toggleOverlay(OverlayCraft)
	}
	if g.overlay != OverlayNone {
		g.handleMenuInput(in)
		return g.result()
	}

	g.handleActions(in)
	if g.phase == PhasePlaying && g.overlay == OverlayNone {
		g.tick(in, d)
	}
	return g.result()
}

func (g *Game) toggleOverlay(o Overlay) {
	g.sink.Play(audio.Click)
	if g.overlay == o {
		g.overlay = OverlayNone
		return
	}
	g.overlay = o
	g.cursor = 0
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State()}
}

// State reports score and terminal status.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.phase == PhaseGameOver || g.phase == PhaseGameClear,
		Paused:   g.paused,
	}
}

// Score rates the run so far.
func (g *Game) Score() int {
	p := g.player
	if p == nil {
		return 0
	}
	cleared := len(g.campaign.Progress().CompletedStageIDs)
	return p.Kills*10 + p.Crafted*5 + p.Survived*25 + (p.Level-1)*50 + cleared*200
}

// Phase returns what the session wants next.
func (g *Game) Phase() Phase { return g.phase }

// Stage returns the active stage.
func (g *Game) Stage() campaign.Stage { return g.campaign.Current() }

// Campaign exposes mission bookkeeping.
func (g *Game) Campaign() *campaign.Campaign { return g.campaign }

// Player exposes the player.
func (g *Game) Player() *player.Player { return g.player }

// World exposes the active grid.
func (g *Game) World() *world.Grid { return g.world }

// Enemies returns the live enemy list.
func (g *Game) Enemies() []*enemy.Enemy { return g.enemies }

// WorldSeed returns the seed the active grid was generated from.
func (g *Game) WorldSeed() int64 { return g.worldSeed }

// Restart replays the active stage with a fresh player.
func (g *Game) Restart() {
	stage := g.campaign.Current()
	if err := g.campaign.Start(stage.ID); err != nil {
		g.logErr("restart", err)
		return
	}
	g.loadStage(stage, nil)
}

// tick runs one simulation step. Player precedes enemies, enemies precede
// mission checks, and mission checks precede culling.
func (g *Game) tick(in core.InputFrame, dt float64) {
	g.frame++
	g.intro = math.Max(0, g.intro-dt)
	p := g.player

	survived := p.Survived
	rep := p.Update(dt, in, g.rules.VitalMult, g.world, g.fx, g.rng)
	p.GrowPlots(dt)
	if rep.Died || p.Dead {
		g.die()
		return
	}
	for _, s := range rep.Picked {
		g.notify(fmt.Sprintf("+%d %s", s.Qty, s.ID))
		g.sink.Play(audio.Pickup)
	}
	if rep.Trap {
		g.notify("Your trap caught something! +1 Meat")
		g.sink.Play(audio.Pickup)
	}
	if p.Survived > survived {
		g.campaign.Record(campaign.Survived, p.Survived-survived)
		g.notify(fmt.Sprintf("Day %d dawns", p.Day))
	}
	if rep.Moved && g.frame%22 == 0 {
		g.sink.Play(footstepFor(g.world.TileAt(p.Pos)))
	}

	g.followCamera(dt)
	g.emitFires()

	g.spawnCD -= dt
	if g.spawnCD <= 0 {
		g.spawnCD = g.sim.SpawnInterval
		g.spawnEnemies()
	}

	g.updateEnemies(dt)
	if g.phase != PhasePlaying {
		return
	}
	g.checkMissions()
	g.cull()

	g.fx.Tick(dt)
	g.expireNotes(dt)
	g.warn()
}

func footstepFor(t world.Tile) audio.Effect {
	switch t {
	case world.Rock:
		return audio.StepStone
	case world.Mud, world.Sand:
		return audio.StepDirt
	}
	return audio.StepGrass
}

func (g *Game) die() {
	g.player.Dead = true
	g.phase = PhaseGameOver
	g.sink.Play(audio.Death)
	g.notify("You died")
	g.logf("player died", "stage", g.campaign.Current().ID, "day", g.player.Day, "kills", g.player.Kills)
}

func (g *Game) cameraTarget() core.Vec {
	p := g.player
	if p == nil {
		return core.Vec{}
	}
	maxX := math.Max(0, world.W*world.TileSize-g.viewW)
	maxY := math.Max(0, world.H*world.TileSize-g.viewH)
	return core.Vec{
		X: core.ClampF(p.Pos.X-g.viewW/2, 0, maxX),
		Y: core.ClampF(p.Pos.Y-g.viewH/2, 0, maxY),
	}
}

// followCamera eases toward the clamped follow target at a rate
// proportional to dt.
func (g *Game) followCamera(dt float64) {
	k := math.Min(1, g.sim.CameraRate*dt)
	target := g.cameraTarget()
	g.camera = g.camera.Add(target.Sub(g.camera).Scale(k))
}

// emitFires keeps visible campfires smoking. The particle pool refuses
// emission once full.
func (g *Game) emitFires() {
	if g.frame%3 != 0 {
		return
	}
	for _, pos := range g.player.Structures[items.Campfire] {
		if g.inView(pos) {
			g.fx.EmitFire(pos)
		}
	}
}

func (g *Game) inView(pos core.Vec) bool {
	return pos.X >= g.camera.X && pos.X < g.camera.X+g.viewW &&
		pos.Y >= g.camera.Y && pos.Y < g.camera.Y+g.viewH
}

func (g *Game) checkMissions() {
	done, err := g.campaign.CheckCompletion(g.player)
	if err != nil {
		g.logErr("save progress", err, "stage", g.campaign.Current().ID)
		g.notify("Could not save progress")
	}
	if !done {
		return
	}
	stage := g.campaign.Current()
	g.overlay = OverlayStageClear
	g.sink.Play(audio.LevelUp)
	g.notify(fmt.Sprintf("Stage %d cleared!", stage.ID))
	g.logf("stage cleared", "stage", stage.ID, "level", g.player.Level)
}

// handleClearInput drives the stage-clear and game-clear screens, which
// accept input while the simulation is frozen.
func (g *Game) handleClearInput(in core.InputFrame) {
	switch {
	case g.overlay == OverlayGameClear:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) {
			g.sink.Play(audio.Click)
			g.phase = PhaseGameClear
		}
	case in.Has(core.ActionConfirm):
		g.sink.Play(audio.Click)
		g.advance()
	case in.Has(core.ActionBack):
		g.sink.Play(audio.Click)
		g.overlay = OverlayNone
		g.phase = PhaseStageSelect
	}
}

func (g *Game) advance() {
	if _, ok := g.campaign.Next(); !ok {
		g.overlay = OverlayGameClear
		g.logf("campaign complete", "score", g.Score())
		return
	}
	prev := g.player
	next, err := g.campaign.Advance()
	if err != nil {
		g.logErr("advance stage", err)
		g.notify("Could not save progress")
		if next.ID == 0 {
			return
		}
	}
	g.loadStage(next, prev)
}

// SelectStage moves the current player into an unlocked stage.
func (g *Game) SelectStage(id int) error {
	if err := g.campaign.Start(id); err != nil {
		return fmt.Errorf("survival: %w", err)
	}
	g.loadStage(g.campaign.Current(), g.player)
	return nil
}
