package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/storage"
)

// maxScores caps how many runs one tier tab loads.
const maxScores = 100

// scoreKeys are the bindings of the leaderboard screen.
type scoreKeys struct {
	Scroll key.Binding
	Tier   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Tier, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreKeys() scoreKeys {
	return scoreKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Tier:   key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"), key.WithHelp("←/→", "tier")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreTab is one difficulty filter; the empty id lists every run.
type scoreTab struct {
	ID    string
	Title string
}

var scoreTabs = []scoreTab{
	{"", "All"},
	{string(config.DifficultyEasy), "Easy"},
	{string(config.DifficultyNormal), "Normal"},
	{string(config.DifficultyHard), "Hard"},
	{string(config.DifficultyHell), "Hell"},
}

// scoreColumn is a leaderboard column; columns with a higher drop rank
// disappear first on narrow terminals.
type scoreColumn struct {
	title string
	width int
	drop  int
	cell  func(rank int, e storage.ScoreEntry) string
}

var scoreColumns = []scoreColumn{
	{"#", 4, 0, func(rank int, _ storage.ScoreEntry) string { return strconv.Itoa(rank) }},
	{"Player", 14, 0, func(_ int, e storage.ScoreEntry) string { return e.Player }},
	{"Score", 7, 0, func(_ int, e storage.ScoreEntry) string { return strconv.Itoa(e.Score) }},
	{"Stage", 5, 0, func(_ int, e storage.ScoreEntry) string { return strconv.Itoa(e.StageID) }},
	{"Day", 4, 1, func(_ int, e storage.ScoreEntry) string { return strconv.Itoa(e.Day) }},
	{"Kills", 5, 1, func(_ int, e storage.ScoreEntry) string { return strconv.Itoa(e.Kills) }},
	{"Tier", 7, 2, func(_ int, e storage.ScoreEntry) string { return e.Difficulty }},
	{"When", 12, 3, func(_ int, e storage.ScoreEntry) string { return e.CreatedAt.Format("Jan 02 15:04") }},
}

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22")).Padding(0, 1)
	boardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("22")).Padding(0, 1)
)

// ScoreboardModel shows the shared leaderboard filtered by difficulty tier.
type ScoreboardModel struct {
	store   *storage.Store
	tab     int
	scores  []storage.ScoreEntry
	stats   map[string]*storage.RunStats
	columns []scoreColumn
	table   table.Model
	help    help.Model
	keys    scoreKeys
	width   int
	height  int
	back    bool
	quit    bool
}

// NewScoreboardModel creates the leaderboard; a nil store shows an empty board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		help:   help.New(),
		keys:   newScoreKeys(),
		width:  width,
		height: height,
	}
	if store != nil {
		if stats, err := store.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.layout()
	m.load()
	return m
}

// layout rebuilds the table for the current terminal size.
func (m *ScoreboardModel) layout() {
	m.columns = fitColumns(m.width - 6)
	cols := make([]table.Column, len(m.columns))
	for i, c := range m.columns {
		cols[i] = table.Column{Title: c.title, Width: c.width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
	m.help.Width = m.width
}

// fitColumns drops the least important columns until the table fits width.
func fitColumns(width int) []scoreColumn {
	for level := 3; level >= 0; level-- {
		var kept []scoreColumn
		total := 0
		for _, c := range scoreColumns {
			if c.drop <= level {
				kept = append(kept, c)
				total += c.width + 2
			}
		}
		if total <= width || level == 0 {
			return kept
		}
	}
	return nil
}

// load fetches the runs of the selected tier into the table.
func (m *ScoreboardModel) load() {
	m.scores = nil
	if m.store != nil {
		if scores, err := m.store.TopScores(scoreTabs[m.tab].ID, maxScores); err == nil {
			m.scores = scores
		}
	}
	rows := make([]table.Row, len(m.scores))
	for i, e := range m.scores {
		row := make(table.Row, len(m.columns))
		for j, c := range m.columns {
			row[j] = c.cell(i+1, e)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, m.keys.Tier):
			step := 1
			switch msg.String() {
			case "left", "h", "shift+tab":
				step = len(scoreTabs) - 1
			}
			m.tab = (m.tab + step) % len(scoreTabs)
			m.load()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.back || m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("L E A D E R B O A R D"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(scoreTabs))
	for i, t := range scoreTabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(t.Title)
		} else {
			tabs[i] = tabStyle.Render(t.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.scores) == 0 {
		body = mutedStyle.Italic(true).Padding(1, 4).
			Render("No runs recorded yet.\nSurvive a few days to set a high score!")
	}
	b.WriteString(centerText(boardStyle.Render(body), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// summary folds the per-tier stats of the selected tab into one line.
func (m ScoreboardModel) summary() string {
	var sum storage.RunStats
	id := scoreTabs[m.tab].ID
	for tier, s := range m.stats {
		if id != "" && tier != id {
			continue
		}
		total := float64(sum.Runs)*sum.AvgScore + float64(s.Runs)*s.AvgScore
		sum.Runs += s.Runs
		sum.AvgScore = total / float64(sum.Runs)
		sum.HighScore = max(sum.HighScore, s.HighScore)
		sum.BestStage = max(sum.BestStage, s.BestStage)
		sum.TotalKills += s.TotalKills
		if s.LastPlayed.After(sum.LastPlayed) {
			sum.LastPlayed = s.LastPlayed
		}
	}
	if sum.Runs == 0 {
		return "no runs in this tier"
	}
	return fmt.Sprintf("%d runs  best %d  avg %.0f  furthest stage %d  %d kills  last %s",
		sum.Runs, sum.HighScore, sum.AvgScore, sum.BestStage, sum.TotalKills, sum.LastPlayed.Format("Jan 02"))
}

// IsGoingBack reports that the player left for the title screen.
func (m ScoreboardModel) IsGoingBack() bool { return m.back }

// IsQuitting reports that the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quit }
