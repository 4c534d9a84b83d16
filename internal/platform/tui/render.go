package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/towerdef/internal/core"
)

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// boardStyles maps core.Color to lipgloss styles. Towers and enemies use the
// plain palette; the terrain and alert colors are tuned for the board.
var boardStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	// Breach cell and blocked cursor
	core.ColorRed:           fg("1").Bold(true),
	core.ColorGreen:         fg("2"),
	core.ColorYellow:        fg("3"),
	core.ColorBlue:          fg("4"),
	core.ColorMagenta:       fg("5"),
	core.ColorCyan:          fg("6"),
	core.ColorWhite:         fg("7"),
	core.ColorBrightRed:     fg("9").Bold(true),
	core.ColorBrightGreen:   fg("10"),
	// Build cursor and messages
	core.ColorBrightYellow:  fg("11").Bold(true),
	core.ColorBrightBlue:    fg("12"),
	core.ColorBrightMagenta: fg("13"),
	core.ColorBrightCyan:    fg("14"),
	core.ColorBrightWhite:   fg("15"),
	core.ColorOrange:        fg("208"),
	core.ColorGray:          fg("245"),
	core.ColorDarkGray:      fg("238"),
	// Path band
	core.ColorBrown:         fg("130").Background(lipgloss.Color("52")),
}

// overlayColors stay lit while the board is dimmed: HUD, messages and the
// pause and game-over panels are drawn with them.
var overlayColors = map[core.Color]bool{
	core.ColorBrightRed:    true,
	core.ColorBrightYellow: true,
	core.ColorBrightCyan:   true,
	core.ColorBrightWhite:  true,
	core.ColorGray:         true,
}

// dimmedStyles is boardStyles with everything but the overlay faint.
var dimmedStyles = func() map[core.Color]lipgloss.Style {
	out := make(map[core.Color]lipgloss.Style, len(boardStyles))
	for c, s := range boardStyles {
		if overlayColors[c] {
			out[c] = s
			continue
		}
		out[c] = s.Faint(true)
	}
	return out
}()

// RenderBoard renders the game screen for its state: a paused or finished
// game is drawn faint so the overlay panel stands out.
func RenderBoard(s *core.Screen, st core.GameState) string {
	if st.Paused || st.GameOver {
		return renderCells(s, dimmedStyles)
	}
	return renderCells(s, boardStyles)
}

// renderCells groups adjacent cells with the same color to keep the number
// of escape sequences down.
func renderCells(s *core.Screen, styles map[core.Color]lipgloss.Style) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
