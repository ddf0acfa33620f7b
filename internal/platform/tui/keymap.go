package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forest-survival/internal/core"
)

// DefaultLatch is how long a movement key counts as held after its last
// press. Terminals report repeats, not releases.
const DefaultLatch = 180 * time.Millisecond

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Attack    key.Binding
	Interact  key.Binding
	Eat       key.Binding
	Drink     key.Binding
	Place     key.Binding
	Farm      key.Binding
	Inventory key.Binding
	Craft     key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Pause     key.Binding
	Save      key.Binding
	Restart   key.Binding
	ToggleSFX key.Binding
	ToggleBGM key.Binding
	SFXDown   key.Binding
	SFXUp     key.Binding
	BGMDown   key.Binding
	BGMUp     key.Binding
	Snapshot  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Attack, k.Interact, k.Inventory, k.Craft, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Attack, k.Interact, k.Eat, k.Drink},
		{k.Place, k.Farm, k.Inventory, k.Craft},
		{k.Confirm, k.Back, k.Pause, k.Save},
		{k.ToggleSFX, k.SFXDown, k.SFXUp, k.ToggleBGM, k.BGMDown, k.BGMUp},
		{k.Restart, k.Snapshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "W", "shift+up"),
			key.WithHelp("w/↑", "up (shift: sprint)"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "S", "shift+down"),
			key.WithHelp("s/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "A", "shift+left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "D", "shift+right"),
			key.WithHelp("d/→", "right"),
		),
		Attack:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "attack")),
		Interact:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "chop/mine")),
		Eat:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "eat")),
		Drink:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "drink")),
		Place:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "place")),
		Farm:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "farm")),
		Inventory: key.NewBinding(key.WithKeys("i", "tab"), key.WithHelp("i", "inventory")),
		Craft:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "craft")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Save:      key.NewBinding(key.WithKeys("f5", "ctrl+s"), key.WithHelp("f5", "save")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		ToggleSFX: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sfx on/off")),
		ToggleBGM: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "music on/off")),
		SFXDown:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "sfx quieter")),
		SFXUp:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "sfx louder")),
		BGMDown:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "music quieter")),
		BGMUp:     key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("=", "music louder")),
		Snapshot:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "screenshot")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages into input frames. Movement
// keys latch their axis for a short window so a stream of key repeats reads
// as a held key; every other key is a one-shot action for the next frame.
type KeyMapper struct {
	keys  GameKeyMap
	latch time.Duration

	moveX, moveY   float64
	untilX, untilY time.Time
	sprintUntil    time.Time

	pending core.InputFrame
}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper(latch time.Duration) *KeyMapper {
	if latch <= 0 {
		latch = DefaultLatch
	}
	return &KeyMapper{
		keys:    DefaultGameKeyMap(),
		latch:   latch,
		pending: core.NewInputFrame(),
	}
}

// Keys returns the bindings for help rendering.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// Press records a key pressed at now. It returns the discrete action the key
// maps to, which may be ActionNone, and whether it is a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time) (core.Action, bool) {
	k := km.keys
	if key.Matches(msg, k.Quit) {
		return core.ActionQuit, true
	}

	sprint := isShifted(msg.String())
	switch {
	case key.Matches(msg, k.Up):
		km.hold(0, -1, now, sprint)
		return km.queue(core.ActionUp), false
	case key.Matches(msg, k.Down):
		km.hold(0, 1, now, sprint)
		return km.queue(core.ActionDown), false
	case key.Matches(msg, k.Left):
		km.hold(-1, 0, now, sprint)
		return core.ActionNone, false
	case key.Matches(msg, k.Right):
		km.hold(1, 0, now, sprint)
		return core.ActionNone, false
	}

	bindings := []struct {
		b key.Binding
		a core.Action
	}{
		{k.Attack, core.ActionAttack},
		{k.Interact, core.ActionInteract},
		{k.Eat, core.ActionEat},
		{k.Drink, core.ActionDrink},
		{k.Place, core.ActionPlace},
		{k.Farm, core.ActionFarm},
		{k.Inventory, core.ActionInventory},
		{k.Craft, core.ActionCraft},
		{k.Confirm, core.ActionConfirm},
		{k.Back, core.ActionBack},
		{k.Pause, core.ActionPause},
		{k.Save, core.ActionSave},
		{k.Restart, core.ActionRestart},
	}
	for _, e := range bindings {
		if key.Matches(msg, e.b) {
			return km.queue(e.a), false
		}
	}
	return core.ActionNone, false
}

func (km *KeyMapper) queue(a core.Action) core.Action {
	km.pending.Set(a)
	return a
}

// hold latches one axis. Pressing the opposite direction replaces it.
func (km *KeyMapper) hold(dx, dy float64, now time.Time, sprint bool) {
	until := now.Add(km.latch)
	if dx != 0 {
		km.moveX, km.untilX = dx, until
	}
	if dy != 0 {
		km.moveY, km.untilY = dy, until
	}
	if sprint {
		km.sprintUntil = until
	}
}

// Frame returns the input of a tick at now and clears the one-shot actions.
func (km *KeyMapper) Frame(now time.Time) core.InputFrame {
	in := km.pending.Clone()
	if now.Before(km.untilX) {
		in.MoveX = km.moveX
	}
	if now.Before(km.untilY) {
		in.MoveY = km.moveY
	}
	in.Sprint = in.Moving() && now.Before(km.sprintUntil)
	km.pending.Clear()
	return in
}

// Reset drops latched movement and queued actions.
func (km *KeyMapper) Reset() {
	km.untilX, km.untilY, km.sprintUntil = time.Time{}, time.Time{}, time.Time{}
	km.pending.Clear()
}

func isShifted(k string) bool {
	switch k {
	case "W", "A", "S", "D", "shift+up", "shift+down", "shift+left", "shift+right":
		return true
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
