package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forest-survival/internal/audio"
	"github.com/vovakirdan/forest-survival/internal/survival"
)

type view int

const (
	viewTitle view = iota
	viewGame
	viewStages
	viewScores
)

// SessionModel manages one player's full flow: title -> game, stages or
// scores -> title. It is the top-level model for local and SSH play.
type SessionModel struct {
	deps     Deps
	settings Settings
	view     view

	menu   MenuModel
	stages StageSelectModel
	scores ScoreboardModel
	game   *GameModel

	// carried is a session waiting on stage select after a stage clear.
	carried *survival.Game
	mixer   *audio.Mixer

	notice   string
	quitting bool
}

// NewSessionModel creates a session on the title screen.
func NewSessionModel(deps Deps, settings Settings) SessionModel {
	m := SessionModel{
		deps:     deps,
		settings: settings,
		mixer:    audio.NewMixer(deps.Bank),
	}
	m.showTitle()
	return m
}

func (m *SessionModel) size() (int, int) {
	rt := m.deps.Runtime
	if rt.ScreenW == 0 {
		return 80, 24
	}
	return rt.ScreenW, rt.ScreenH
}

func (m *SessionModel) showTitle() {
	w, h := m.size()
	m.view = viewTitle
	m.game = nil
	m.carried = nil
	m.menu = NewMenuModel(m.deps.Config, m.settings, m.deps.hasSave(), w, h)
}

func (m *SessionModel) showStages(carried *survival.Game) {
	w, h := m.size()
	stages, err := m.deps.stages()
	if err != nil {
		m.notice = err.Error()
		m.showTitle()
		return
	}
	progress := m.deps.progress()
	if carried != nil {
		progress = carried.Campaign().Progress()
	}
	m.view = viewStages
	m.game = nil
	m.carried = carried
	m.stages = NewStageSelectModel(stages, progress, w, h)
}

func (m *SessionModel) play(game *survival.Game) tea.Cmd {
	gm := NewGameModel(game, m.deps, m.mixer)
	m.game = &gm
	m.carried = nil
	m.view = viewGame
	m.notice = ""
	return gm.Init()
}

// Begin applies a title choice before the title is shown. New Game starts
// at settings.StageID, or the campaign's current stage when it is zero.
func (m SessionModel) Begin(choice TitleChoice) SessionModel {
	m.menu.choice = choice
	if choice == ChoiceNewGame {
		next, _ := m.start(m.settings.StageID)
		return next.(SessionModel)
	}
	next, _ := m.updateTitle(nil)
	return next.(SessionModel)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.deps.Runtime.ScreenW = wsm.Width
		m.deps.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewStages:
		return m.updateStages(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateTitle(msg)
}

func (m SessionModel) updateTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	var cmd tea.Cmd
	if msg != nil {
		var next tea.Model
		next, cmd = m.menu.Update(msg)
		if mm, ok := next.(MenuModel); ok {
			m.menu = mm
		}
	}

	choice := m.menu.Choice()
	if choice == ChoiceNone {
		return m, cmd
	}
	if msg != nil {
		m.settings = m.menu.Settings()
	}
	m.notice = ""

	switch choice {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceContinue:
		game, err := m.deps.continueGame(m.mixer)
		if err != nil {
			m.deps.logger().Warn("could not continue", "error", err)
			m.notice = "Could not load the save: " + err.Error()
			m.showTitle()
			return m, nil
		}
		return m, m.play(game)
	case ChoiceNewGame:
		return m.start(0)
	case ChoiceStages:
		m.showStages(nil)
	case ChoiceScores:
		w, h := m.size()
		m.scores = NewScoreboardModel(m.deps.Store, w, h)
		m.view = viewScores
	}
	return m, nil
}

// start begins a fresh run; stageID 0 resumes the campaign's current stage.
func (m SessionModel) start(stageID int) (tea.Model, tea.Cmd) {
	s := m.settings
	s.StageID = stageID
	game, err := m.deps.newGame(s, m.mixer)
	if err != nil {
		m.deps.logger().Error("could not start game", "error", err)
		m.notice = "Could not start: " + err.Error()
		m.showTitle()
		return m, nil
	}
	m.deps.logger().Info("run started", "player", s.Name, "difficulty", s.Difficulty, "stage", game.Stage().ID)
	return m, m.play(game)
}

func (m SessionModel) updateStages(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	next, cmd := m.stages.Update(msg)
	if sm, ok := next.(StageSelectModel); ok {
		m.stages = sm
	}

	if m.stages.Back() {
		m.showTitle()
		return m, nil
	}
	id := m.stages.Selected()
	if id == 0 {
		return m, cmd
	}
	if m.carried != nil {
		game := m.carried
		if err := game.SelectStage(id); err != nil {
			m.notice = err.Error()
			m.showStages(game)
			return m, nil
		}
		return m, m.play(game)
	}
	return m.start(id)
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}
	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.showTitle()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.WantsStageSelect():
		m.showStages(m.game.Game())
		return m, nil
	case m.game.BackToMenu():
		m.showTitle()
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	var out string
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewStages:
		out = m.stages.View()
	case viewScores:
		return m.scores.View()
	default:
		out = m.menu.View()
	}
	if m.notice != "" {
		w, _ := m.size()
		out += "\n" + centerText(selectedStyle.Render(m.notice), w) + "\n"
	}
	return out
}
