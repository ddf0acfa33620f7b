package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forest-survival/internal/audio"
	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/storage"
	"github.com/vovakirdan/forest-survival/internal/survival"
)

// GameModel is the Bubble Tea model for one running session.
type GameModel struct {
	game   *survival.Game
	deps   Deps
	screen *core.Screen
	keys   *KeyMapper
	help   help.Model
	mixer  *audio.Mixer
	pcm    []int16

	tickRate int
	last     time.Time
	runID    string

	scoreSaved bool
	showHelp   bool
	quitting   bool
	backToMenu bool
	toStages   bool
}

// NewGameModel wraps game for display. mixer receives the game's cues and
// may be nil.
func NewGameModel(game *survival.Game, deps Deps, mixer *audio.Mixer) GameModel {
	cfg := deps.Runtime
	if cfg.ScreenW == 0 {
		cfg = core.DefaultConfig()
	}
	if mixer == nil {
		mixer = audio.NewMixer(deps.Bank)
	}
	game.Resize(cfg.ScreenW, max(1, cfg.ScreenH-1))
	return GameModel{
		game:     game,
		deps:     deps,
		screen:   core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		keys:     NewKeyMapper(DefaultLatch),
		help:     help.New(),
		mixer:    mixer,
		tickRate: cfg.TickRate,
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m *GameModel) resize(w, h int) {
	m.deps.Runtime.ScreenW, m.deps.Runtime.ScreenH = w, h
	m.screen.Resize(w, max(1, h-1))
	m.game.Resize(w, max(1, h-1))
}

// handleKey processes keyboard input. Platform keys are handled here; the
// rest is queued for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys.Keys()
	switch {
	case key.Matches(msg, k.ToggleSFX):
		m.mixer.ToggleSFX()
		return m, nil
	case key.Matches(msg, k.ToggleBGM):
		m.mixer.ToggleBGM()
		return m, nil
	case key.Matches(msg, k.SFXDown, k.SFXUp, k.BGMDown, k.BGMUp):
		m.stepVolume(msg)
		return m, nil
	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, k.Snapshot):
		m.saveScreenshot()
		return m, nil
	}

	// Leave for the title from terminal screens.
	if key.Matches(msg, k.Back) && m.game.Phase() == survival.PhaseGameOver {
		m.backToMenu = true
		return m, nil
	}

	if _, quit := m.keys.Press(msg, time.Now()); quit {
		m.recordScore()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the last
// tick and mixes the same span of audio.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.toStages {
		return m, nil
	}
	dt := time.Second / time.Duration(max(1, m.tickRate))
	if !m.last.IsZero() {
		dt = now.Sub(m.last)
	}
	m.last = now

	wasOver := m.game.Phase() == survival.PhaseGameOver
	m.game.Step(m.keys.Frame(now), dt)
	m.mixAudio(dt)

	switch m.game.Phase() {
	case survival.PhaseGameOver:
		m.recordScore()
	case survival.PhaseGameClear:
		m.recordScore()
		m.backToMenu = true
		return m, nil
	case survival.PhaseStageSelect:
		m.toStages = true
		return m, nil
	case survival.PhasePlaying:
		if wasOver {
			m.scoreSaved = false
			m.runID = ""
			m.keys.Reset()
		}
	}
	return m, tickCmd(m.tickRate)
}

func (m *GameModel) mixAudio(dt time.Duration) {
	n := int(dt.Seconds() * audio.SampleRate)
	if n <= 0 {
		return
	}
	if cap(m.pcm) < n {
		m.pcm = make([]int16, n)
	}
	m.mixer.Mix(m.pcm[:n])
}

// recordScore saves the run's score once per run.
func (m *GameModel) recordScore() {
	if m.scoreSaved || m.deps.Store == nil {
		return
	}
	m.scoreSaved = true
	state := m.game.State()
	if state.Score <= 0 {
		return
	}
	p := m.game.Player()
	runID, err := m.deps.Store.SaveScore(storage.ScoreEntry{
		RunID:      m.runID,
		Player:     p.Name,
		Difficulty: m.difficulty(),
		StageID:    m.game.Stage().ID,
		Day:        p.Day,
		Kills:      p.Kills,
		Score:      state.Score,
	})
	if err != nil {
		m.deps.logger().Error("could not save score", "error", err)
		return
	}
	m.runID = runID
	m.deps.logger().Info("run recorded", "run", runID, "score", state.Score, "stage", m.game.Stage().ID)
}

func (m GameModel) difficulty() string {
	rec := m.game.Record()
	if rec.Difficulty == "" {
		return string(config.DifficultyNormal)
	}
	return rec.Difficulty
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".forest", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("stage%d_%s.txt", m.game.Stage().ID, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.logger().Warn("screenshot failed", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

// statusLine shows the key help and the sound channels.
func (m GameModel) statusLine() string {
	m.help.Width = max(0, m.screen.Width()-24)
	var b strings.Builder
	b.WriteString(m.help.View(m.keys.Keys()))
	sfx, bgm, sfxOn, bgmOn := m.mixer.Levels()
	b.WriteString("  sfx:" + onOff(sfxOn) + " music:" + onOff(bgmOn))
	fmt.Fprintf(&b, " vol:%.0f/%.0f", sfx*100, bgm*100)
	if e, n := m.mixer.Last(); n > 0 && sfxOn {
		b.WriteString(" ♪" + e.String())
	}
	return b.String()
}

// VolumeStep is how much one volume key press changes a channel.
const VolumeStep = 0.1

func (m GameModel) stepVolume(msg tea.KeyMsg) {
	k := m.keys.Keys()
	sfx, bgm, _, _ := m.mixer.Levels()
	switch {
	case key.Matches(msg, k.SFXDown):
		m.mixer.SetSFXVolume(sfx - VolumeStep)
	case key.Matches(msg, k.SFXUp):
		m.mixer.SetSFXVolume(sfx + VolumeStep)
	case key.Matches(msg, k.BGMDown):
		m.mixer.SetBGMVolume(bgm - VolumeStep)
	case key.Matches(msg, k.BGMUp):
		m.mixer.SetBGMVolume(bgm + VolumeStep)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Game returns the wrapped session.
func (m GameModel) Game() *survival.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the run ended and the title should show.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsStageSelect returns true if the player left a cleared stage for the
// stage list.
func (m GameModel) WantsStageSelect() bool {
	return m.toStages
}

// Run starts a local session on the terminal: title, stages, scores and play.
// begin skips the title with the given choice; ChoiceNone shows it.
func Run(deps Deps, settings Settings, begin TitleChoice) error {
	model := NewSessionModel(deps, settings)
	if begin != ChoiceNone {
		model = model.Begin(begin)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
