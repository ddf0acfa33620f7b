package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forest-survival/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMovementLatch(t *testing.T) {
	km := NewKeyMapper(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	km.Press(runeKey('d'), t0)
	if in := km.Frame(t0.Add(10 * time.Millisecond)); in.MoveX != 1 || in.MoveY != 0 {
		t.Fatalf("held right: got move (%v,%v), want (1,0)", in.MoveX, in.MoveY)
	}
	if in := km.Frame(t0.Add(90 * time.Millisecond)); in.MoveX != 1 {
		t.Errorf("latch should still hold at 90ms, got MoveX %v", in.MoveX)
	}
	if in := km.Frame(t0.Add(101 * time.Millisecond)); in.Moving() {
		t.Errorf("latch should expire after 100ms, got (%v,%v)", in.MoveX, in.MoveY)
	}
}

func TestRepeatsExtendLatch(t *testing.T) {
	km := NewKeyMapper(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	for i := range 5 {
		km.Press(runeKey('s'), t0.Add(time.Duration(i)*60*time.Millisecond))
	}
	if in := km.Frame(t0.Add(320 * time.Millisecond)); in.MoveY != 1 {
		t.Errorf("repeated presses should keep moving, got MoveY %v", in.MoveY)
	}
}

func TestOppositeDirectionReplaces(t *testing.T) {
	km := NewKeyMapper(0)
	t0 := time.Unix(1000, 0)

	km.Press(runeKey('d'), t0)
	km.Press(runeKey('a'), t0.Add(time.Millisecond))
	if in := km.Frame(t0.Add(2 * time.Millisecond)); in.MoveX != -1 {
		t.Errorf("MoveX = %v, want -1", in.MoveX)
	}
}

func TestDiagonalCombinesAxes(t *testing.T) {
	km := NewKeyMapper(0)
	t0 := time.Unix(1000, 0)

	km.Press(tea.KeyMsg{Type: tea.KeyUp}, t0)
	km.Press(tea.KeyMsg{Type: tea.KeyLeft}, t0)
	in := km.Frame(t0.Add(time.Millisecond))
	if in.MoveX != -1 || in.MoveY != -1 {
		t.Errorf("got (%v,%v), want (-1,-1)", in.MoveX, in.MoveY)
	}
}

func TestSprintModifier(t *testing.T) {
	km := NewKeyMapper(0)
	t0 := time.Unix(1000, 0)

	km.Press(runeKey('W'), t0)
	in := km.Frame(t0.Add(time.Millisecond))
	if in.MoveY != -1 || !in.Sprint {
		t.Errorf("shifted W: got MoveY %v sprint %v, want -1 and sprint", in.MoveY, in.Sprint)
	}

	km.Reset()
	km.Press(tea.KeyMsg{Type: tea.KeyShiftRight}, t0)
	if in := km.Frame(t0.Add(time.Millisecond)); in.MoveX != 1 || !in.Sprint {
		t.Errorf("shift+right: got MoveX %v sprint %v", in.MoveX, in.Sprint)
	}

	km.Reset()
	km.Press(runeKey('w'), t0)
	if in := km.Frame(t0.Add(time.Millisecond)); in.Sprint {
		t.Error("lowercase w should not sprint")
	}
}

func TestOneShotActions(t *testing.T) {
	km := NewKeyMapper(0)
	t0 := time.Unix(1000, 0)

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionAttack},
		{runeKey('e'), core.ActionInteract},
		{runeKey('f'), core.ActionEat},
		{runeKey('g'), core.ActionDrink},
		{runeKey('b'), core.ActionPlace},
		{runeKey('v'), core.ActionFarm},
		{runeKey('i'), core.ActionInventory},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionInventory},
		{runeKey('c'), core.ActionCraft},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey('p'), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyF5}, core.ActionSave},
		{runeKey('r'), core.ActionRestart},
	}

	for _, tt := range tests {
		got, quit := km.Press(tt.msg, t0)
		if quit {
			t.Errorf("%q: unexpected quit", tt.msg.String())
		}
		if got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.msg.String(), got, tt.want)
		}
		if in := km.Frame(t0); !in.Has(tt.want) {
			t.Errorf("%q: frame missing %v", tt.msg.String(), tt.want)
		}
		if in := km.Frame(t0); in.Has(tt.want) {
			t.Errorf("%q: action should last one frame", tt.msg.String())
		}
	}
}

func TestVerticalKeysDriveMenus(t *testing.T) {
	km := NewKeyMapper(0)
	t0 := time.Unix(1000, 0)

	if a, _ := km.Press(runeKey('w'), t0); a != core.ActionUp {
		t.Errorf("w: got %v, want ActionUp", a)
	}
	if a, _ := km.Press(tea.KeyMsg{Type: tea.KeyDown}, t0); a != core.ActionDown {
		t.Errorf("down: got %v, want ActionDown", a)
	}
	in := km.Frame(t0)
	if !in.Has(core.ActionUp) || !in.Has(core.ActionDown) {
		t.Error("frame should carry both menu steps")
	}
}

func TestQuitKeys(t *testing.T) {
	km := NewKeyMapper(0)
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		if _, quit := km.Press(msg, time.Now()); !quit {
			t.Errorf("%q should quit", msg.String())
		}
	}
}

func TestResetDropsEverything(t *testing.T) {
	km := NewKeyMapper(0)
	t0 := time.Unix(1000, 0)
	km.Press(runeKey('d'), t0)
	km.Press(tea.KeyMsg{Type: tea.KeySpace}, t0)
	km.Reset()
	in := km.Frame(t0)
	if in.Moving() || in.Has(core.ActionAttack) {
		t.Errorf("reset frame should be empty, got %+v", in)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('h'), MenuActionLeft},
		{runeKey('l'), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
