package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
)

var (
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	clearedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	descStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// StageSelectModel lists the campaign with each stage's lock state.
type StageSelectModel struct {
	stages   []campaign.Stage
	progress campaign.Progress
	cursor   int
	width    int
	height   int
	selected int
	back     bool
	notice   string
}

// NewStageSelectModel creates the stage list with the cursor on the highest
// unlocked stage.
func NewStageSelectModel(stages []campaign.Stage, progress campaign.Progress, width, height int) StageSelectModel {
	m := StageSelectModel{
		stages:   stages,
		progress: progress,
		width:    width,
		height:   height,
	}
	for i, s := range stages {
		if s.ID <= progress.MaxUnlocked() {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m StageSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stage list.
func (m StageSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m StageSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.stages) == 0 {
		if MapKeyToMenuAction(msg) != MenuActionNone {
			m.back = true
		}
		return m, nil
	}
	m.notice = ""
	switch MapKeyToMenuAction(msg) {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.stages)-1 {
			m.cursor++
		}
	case MenuActionBack, MenuActionQuit:
		m.back = true
	case MenuActionSelect:
		s := m.stages[m.cursor]
		if !m.unlocked(s.ID) {
			m.notice = fmt.Sprintf("Stage %d is locked. Clear stage %d first.", s.ID, m.progress.MaxUnlocked())
			return m, nil
		}
		m.selected = s.ID
	}
	return m, nil
}

func (m StageSelectModel) unlocked(id int) bool {
	return id >= 1 && id <= m.progress.MaxUnlocked()
}

// View renders the stage list.
func (m StageSelectModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S T A G E S"), m.width))
	b.WriteString("\n\n")

	for i, s := range m.stages {
		var status string
		switch {
		case m.progress.Completed(s.ID):
			status = clearedStyle.Render("cleared")
		case m.unlocked(s.ID):
			status = "open"
		default:
			status = lockedStyle.Render("locked")
		}
		line := fmt.Sprintf("%d. %-18s %s", s.ID, s.Name, status)
		switch {
		case i == m.cursor:
			line = selectedStyle.Render("> ") + line
		case !m.unlocked(s.ID):
			line = "  " + lockedStyle.Render(fmt.Sprintf("%d. %-18s", s.ID, s.Name)) + " " + status
		default:
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.stages) > 0 {
		s := m.stages[m.cursor]
		b.WriteString("\n")
		if s.Subtitle != "" {
			b.WriteString(centerText(s.Subtitle, m.width))
			b.WriteString("\n")
		}
		if s.Description != "" {
			b.WriteString(centerText(descStyle.Render(s.Description), m.width))
			b.WriteString("\n")
		}
		for _, ms := range s.Missions {
			b.WriteString(centerText(mutedStyle.Render("- "+ms.Name), m.width))
			b.WriteString("\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(centerText(selectedStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen stage id, or 0.
func (m StageSelectModel) Selected() int {
	return m.selected
}

// Back returns true if the player left the list.
func (m StageSelectModel) Back() bool {
	return m.back
}
