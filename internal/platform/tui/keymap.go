package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/towerdef/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// slot is the 1-based tower slot for ActionSelectTower.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, slot int) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, 0
	case "w", "up", "k":
		return core.ActionUp, 0
	case "s", "down", "j":
		return core.ActionDown, 0
	case "a", "left", "h":
		return core.ActionLeft, 0
	case "d", "right", "l":
		return core.ActionRight, 0
	case "enter", " ":
		return core.ActionConfirm, 0
	case "b", "esc":
		return core.ActionBack, 0
	case "p":
		return core.ActionPause, 0
	case "r":
		return core.ActionRestart, 0
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return core.ActionSelectTower, int(key[0] - '0')
	}
	return core.ActionNone, 0
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, slot := km.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionQuit:
		return true
	case core.ActionSelectTower:
		frame.SelectTower(slot)
	default:
		frame.Set(action)
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
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
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
