package core

import "fmt"

// ActionType tags the variant of an Action.
type ActionType string

const (
	ActionNone       ActionType = "NONE"
	ActionBuildTower ActionType = "BUILD_TOWER"
)

// Action is the player's input for one step.
type Action struct {
	Type      ActionType `json:"type"`
	TowerType TowerType  `json:"towerType,omitempty"`
	Position  *Position  `json:"position,omitempty"`
}

// NoAction returns the NONE action.
func NoAction() Action {
	return Action{Type: ActionNone}
}

// BuildTower returns a BUILD_TOWER action.
func BuildTower(t TowerType, pos Position) Action {
	return Action{Type: ActionBuildTower, TowerType: t, Position: &pos}
}

// Validate checks the shape of the action. Whether the build can actually
// happen is decided by the tower manager.
func (a Action) Validate() error {
	switch a.Type {
	case ActionNone:
		return nil
	case ActionBuildTower:
		if a.TowerType == "" {
			return fmt.Errorf("%w: BUILD_TOWER requires towerType", ErrInvalidAction)
		}
		if a.Position == nil {
			return fmt.Errorf("%w: BUILD_TOWER requires position", ErrInvalidAction)
		}
		return nil
	case "":
		return fmt.Errorf("%w: missing type", ErrInvalidAction)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Type)
	}
}
