// Package tui provides the Bubble Tea front-end: the mode and map menu, the
// game loop, the results board and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/towerdef/internal/core"
)

// idleTickRate paces a paused or finished game. Nothing moves, so the loop
// only has to pick up restart, unpause and back keys.
const idleTickRate = 10

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval returns the delay before the next tick for a game in state st.
func tickInterval(tickRate int, st core.GameState) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	if (st.Paused || st.GameOver) && tickRate > idleTickRate {
		tickRate = idleTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next tick for a game in state st.
func tickCmd(tickRate int, st core.GameState) tea.Cmd {
	return tea.Tick(tickInterval(tickRate, st), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
