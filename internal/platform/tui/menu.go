package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

// TitleChoice is what the player picked on the title screen.
type TitleChoice int

const (
	ChoiceNone TitleChoice = iota
	ChoiceContinue
	ChoiceNewGame
	ChoiceStages
	ChoiceScores
	ChoiceQuit
)

type menuRow int

const (
	rowName menuRow = iota
	rowDifficulty
	rowWeapon
	rowContinue
	rowNewGame
	rowStages
	rowScores
	rowQuit
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var difficultyOrder = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyHell,
}

// MenuModel is the title screen: character setup and the way into play.
type MenuModel struct {
	rows    []menuRow
	cursor  int
	width   int
	height  int
	name    textinput.Model
	diff    int
	weapon  int
	tiers   map[config.DifficultyPreset]config.DifficultyTier
	choice  TitleChoice
	editing bool
}

// NewMenuModel creates the title screen. canContinue adds the Continue entry.
func NewMenuModel(cfg config.ForestConfig, s Settings, canContinue bool, width, height int) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "Survivor"
	ti.CharLimit = 16
	ti.Width = 16
	ti.Prompt = ""
	ti.SetValue(s.Name)

	rows := []menuRow{rowName, rowDifficulty, rowWeapon}
	if canContinue {
		rows = append(rows, rowContinue)
	}
	rows = append(rows, rowNewGame, rowStages, rowScores, rowQuit)

	m := MenuModel{
		rows:   rows,
		width:  width,
		height: height,
		name:   ti,
		diff:   1,
		tiers:  make(map[config.DifficultyPreset]config.DifficultyTier),
	}
	for _, t := range cfg.Difficulties {
		m.tiers[t.ID] = t
	}
	for i, d := range difficultyOrder {
		if d == s.Difficulty {
			m.diff = i
		}
	}
	for i, w := range items.StartWeapons {
		if w == s.Weapon {
			m.weapon = i
		}
	}
	// Start on the first action, not the setup rows.
	for i, r := range rows {
		if r >= rowContinue {
			m.cursor = i
			break
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateName(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab", "up", "down":
		m.editing = false
		m.name.Blur()
		return m, nil
	case "ctrl+c":
		m.choice = ChoiceQuit
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row := m.rows[m.cursor]
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ChoiceQuit
	case MenuActionUp:
		m.cursor = (m.cursor + len(m.rows) - 1) % len(m.rows)
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(m.rows)
	case MenuActionLeft:
		m.cycle(row, -1)
	case MenuActionRight:
		m.cycle(row, 1)
	case MenuActionScoreboard:
		m.choice = ChoiceScores
	case MenuActionSelect:
		switch row {
		case rowName:
			m.editing = true
			return m, m.name.Focus()
		case rowDifficulty, rowWeapon:
			m.cycle(row, 1)
		case rowContinue:
			m.choice = ChoiceContinue
		case rowNewGame:
			m.choice = ChoiceNewGame
		case rowStages:
			m.choice = ChoiceStages
		case rowScores:
			m.choice = ChoiceScores
		case rowQuit:
			m.choice = ChoiceQuit
		}
	}
	return m, nil
}

func (m *MenuModel) cycle(row menuRow, step int) {
	switch row {
	case rowDifficulty:
		n := len(difficultyOrder)
		m.diff = (m.diff + n + step) % n
	case rowWeapon:
		n := len(items.StartWeapons)
		m.weapon = (m.weapon + n + step) % n
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("F O R E S T   S U R V I V A L"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render("Survive the woods. Clear every stage."), m.width))
	b.WriteString("\n\n")

	for i, r := range m.rows {
		line := m.rowText(r)
		if r == rowContinue || (r == rowNewGame && m.rows[i-1] != rowContinue) {
			b.WriteString("\n")
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line + " <")
		} else {
			line = "  " + line + "  "
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(mutedStyle.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) rowText(r menuRow) string {
	switch r {
	case rowName:
		if m.editing {
			return "Name: " + m.name.View()
		}
		return "Name: " + m.Settings().Name
	case rowDifficulty:
		d := difficultyOrder[m.diff]
		if t, ok := m.tiers[d]; ok && t.Name != "" {
			return fmt.Sprintf("Difficulty: < %s >", t.Name)
		}
		return fmt.Sprintf("Difficulty: < %s >", d)
	case rowWeapon:
		w := items.StartWeapons[m.weapon]
		st, _ := items.WeaponStats(w)
		return fmt.Sprintf("Weapon: < %s (dmg %d) >", w, st.Damage)
	case rowContinue:
		return "Continue"
	case rowNewGame:
		return "New Game"
	case rowStages:
		return "Stages"
	case rowScores:
		return "Scores"
	case rowQuit:
		return "Quit"
	}
	return ""
}

// Settings returns the choices made so far.
func (m MenuModel) Settings() Settings {
	name := strings.TrimSpace(m.name.Value())
	if name == "" {
		name = "Survivor"
	}
	return Settings{
		Name:       name,
		Difficulty: difficultyOrder[m.diff],
		Weapon:     items.StartWeapons[m.weapon],
	}
}

// Choice returns what was picked, or ChoiceNone.
func (m MenuModel) Choice() TitleChoice {
	return m.choice
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
