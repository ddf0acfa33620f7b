package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	if strings.Trim(s.String(), " \n") != "" {
		t.Error("new screen should be all spaces")
	}
}

func TestScreenSetOutOfBounds(t *testing.T) {
	s := NewScreen(10, 4)
	s.SetCell(3, 2, '♠', ColorGreen)
	if got := s.GetCell(3, 2); got.Rune != '♠' || got.Color != ColorGreen {
		t.Errorf("GetCell(3, 2) = %+v, expected green tree", got)
	}

	// Offscreen world cells are clipped, not wrapped.
	s.Set(-1, 0, 'X')
	s.Set(10, 0, 'X')
	s.Set(0, 4, 'X')
	if strings.Contains(s.String(), "X") {
		t.Error("out of bounds writes should be ignored")
	}
	if s.Get(-1, 0) != ' ' || s.GetCell(99, 99) != blank {
		t.Error("out of bounds reads should return a blank cell")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColor(0, 0, "~~~~", ColorBlue)
	s.Clear()
	if s.GetCell(1, 0) != blank {
		t.Errorf("after Clear got %+v", s.GetCell(1, 0))
	}
}

func TestScreenDrawTextClipsAndCounts(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawTextColor(8, 0, "wood x5", ColorBrown)
	if s.Row(0) != "        wood" {
		t.Errorf("Row(0) = %q", s.Row(0))
	}

	// One cell per rune, not per byte.
	s.DrawTextColor(0, 1, "♣ ♥", ColorDefault)
	if s.Get(0, 1) != '♣' || s.Get(2, 1) != '♥' {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
	if s.Row(-1) != strings.Repeat(" ", 12) {
		t.Error("out of range row should be blank")
	}
}

func TestScreenDrawTextCenteredColor(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCenteredColor(1, "DAY 3", ColorBrightYellow)
	if got := s.Row(1); got != "       DAY 3        " {
		t.Errorf("Row(1) = %q", got)
	}
	if s.GetCell(7, 1).Color != ColorBrightYellow {
		t.Error("centered text should carry its color")
	}
}

func TestScreenPanel(t *testing.T) {
	s := NewScreen(10, 6)
	for y := range 6 {
		s.DrawTextColor(0, y, strings.Repeat(".", 10), ColorGreen)
	}

	r := NewRect(1, 1, 6, 4)
	s.DrawRect(r, ' ')
	s.DrawBoxColor(r, ColorWhite)

	expected := strings.Join([]string{
		"..........",
		".┌────┐...",
		".│    │...",
		".│    │...",
		".└────┘...",
		"..........",
	}, "\n")
	if s.String() != expected {
		t.Errorf("panel:\n%s\nexpected:\n%s", s.String(), expected)
	}
	if s.GetCell(1, 1).Color != ColorWhite {
		t.Error("border should use the panel color")
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColor(0, 0, "HP 100", ColorRed)
	s.DrawTextColor(0, 8, "bottom", ColorDefault)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "HP 100") {
		t.Errorf("Row(0) = %q", s.Row(0))
	}

	s.Resize(16, 9)
	if !strings.HasPrefix(s.Row(0), "HP 100") || strings.TrimSpace(s.Row(8)) != "" {
		t.Error("growing should keep content and blank new rows")
	}
}

func TestScreenDrawBar(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawBar(0, 0, 10, 0.5, ColorRed)
	if s.Row(0) != "█████░░░░░" {
		t.Errorf("half bar = %q", s.Row(0))
	}
	if s.GetCell(6, 0).Color != ColorDarkGray {
		t.Error("empty segment should be dark gray")
	}

	s.DrawBar(0, 0, 10, 3, ColorRed)
	if s.Row(0) != "██████████" {
		t.Errorf("overfull bar = %q", s.Row(0))
	}
	s.DrawBar(0, 0, 10, -1, ColorRed)
	if s.Row(0) != "░░░░░░░░░░" {
		t.Errorf("negative bar = %q", s.Row(0))
	}
}
