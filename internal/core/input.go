package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, Up arrow: move the build cursor up
	ActionDown               // S, Down arrow: move the build cursor down
	ActionLeft               // A, Left arrow: move the build cursor left
	ActionRight              // D, Right arrow: move the build cursor right
	ActionConfirm            // Enter, Space: build the selected tower
	ActionSelectTower        // 1..9: select a tower type, see InputFrame.TowerSlot
	ActionBack               // B, Escape: go back to the menu
	ActionRestart            // R: restart after game over
	ActionQuit               // Q, Ctrl+C: exit
	ActionPause              // P: pause/unpause
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
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionSelectTower:
		return "SelectTower"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one platform tick.
type InputFrame struct {
	Actions   map[Action]bool
	TowerSlot int // 1-based tower slot for ActionSelectTower
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

// SelectTower records a tower slot selection.
func (f *InputFrame) SelectTower(slot int) {
	f.Set(ActionSelectTower)
	f.TowerSlot = slot
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.TowerSlot = 0
}
