package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - menu navigation
	ActionDown             // S, Down arrow - menu navigation
	ActionAttack           // Space - swing the equipped weapon
	ActionInteract         // E - chop, mine or pick at the facing cell
	ActionEat              // F - eat the best food in the pack
	ActionDrink            // G - drink from adjacent water
	ActionPlace            // B - place the first owned structure
	ActionFarm             // V - harvest, water, fertilize or plant
	ActionInventory        // I, Tab - toggle inventory overlay
	ActionCraft            // C - toggle crafting overlay
	ActionConfirm          // Enter - confirm selection in overlays and menus
	ActionBack             // Escape - close overlay / go back
	ActionPause            // P - pause/unpause the simulation
	ActionSave             // F5, Ctrl+S - write the save slot
	ActionRestart          // R - restart after game over
	ActionQuit             // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionAttack:
		return "Attack"
	case ActionInteract:
		return "Interact"
	case ActionEat:
		return "Eat"
	case ActionDrink:
		return "Drink"
	case ActionPlace:
		return "Place"
	case ActionFarm:
		return "Farm"
	case ActionInventory:
		return "Inventory"
	case ActionCraft:
		return "Craft"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionSave:
		return "Save"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the polled input state for one simulation tick:
// movement axes, the sprint modifier and the discrete presses of this frame.
type InputFrame struct {
	MoveX  float64 // -1 left, +1 right
	MoveY  float64 // -1 up, +1 down
	Sprint bool

	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Moving reports whether any movement axis is non-zero.
func (f InputFrame) Moving() bool {
	return f.MoveX != 0 || f.MoveY != 0
}

// Clear resets axes and actions for the next frame.
func (f *InputFrame) Clear() {
	f.MoveX, f.MoveY, f.Sprint = 0, 0, false
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.MoveX, clone.MoveY, clone.Sprint = f.MoveX, f.MoveY, f.Sprint
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
