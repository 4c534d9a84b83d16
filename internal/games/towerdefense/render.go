package towerdefense

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	platformcore "github.com/vovakirdan/towerdef/internal/core"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
)

// Layout constants, in terminal cells.
const (
	cellW     = 3 // Characters per map cell
	hudHeight = 2
	footerH   = 4
	overlayW  = 36
)

var healthGlyphs = []rune("▁▂▃▄▅▆▇█")

// MinScreenSize returns the terminal size needed to draw the map.
func (g *Game) MinScreenSize() (w, h int) {
	return max(g.gameMap.Columns()*cellW, 60), g.gameMap.Rows() + hudHeight + footerH
}

// Render draws the HUD, the map with towers and enemies, and the footer.
func (g *Game) Render(dst *platformcore.Screen) {
	minW, minH := g.MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", platformcore.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", minW, minH), platformcore.ColorGray)
		return
	}

	ox := (dst.Width() - g.gameMap.Columns()*cellW) / 2
	oy := hudHeight

	area := platformcore.NewRect(ox, oy, g.gameMap.Columns()*cellW, g.gameMap.Rows())

	g.renderHUD(dst)
	g.renderGrid(dst, ox, oy)
	g.renderTowers(dst, ox, oy)
	g.renderEnemies(dst, area)
	g.renderCursor(dst, ox, oy)
	g.renderFooter(dst, oy+g.gameMap.Rows())

	s := g.engine.State()
	switch {
	case s.GameOver:
		mid := oy + g.gameMap.Rows()/2
		drawPanel(dst, platformcore.NewRect((dst.Width()-overlayW)/2, mid-2, overlayW, 5))
		dst.DrawTextCentered(mid-1, "  GAME OVER  ", platformcore.ColorBrightRed)
		dst.DrawTextCentered(mid, fmt.Sprintf("  Reached wave %d in %s  ", s.WaveNumber, formatTime(s.GameTime)), platformcore.ColorBrightWhite)
		dst.DrawTextCentered(mid+1, "  R restart  Q quit  ", platformcore.ColorGray)
	case g.paused:
		dst.DrawTextCentered(oy+g.gameMap.Rows()/2, "  PAUSED  ", platformcore.ColorBrightYellow)
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	s := g.engine.State()
	waves := g.engine.Waves()

	parts := []string{
		fmt.Sprintf("Wave %d", s.WaveNumber),
		fmt.Sprintf("$%d", s.Money),
	}
	if g.cfg.LivesEnabled() {
		parts = append(parts, fmt.Sprintf("Lives %d", s.Lives))
	}
	if waves.State() == core.WaveWaiting {
		parts = append(parts, fmt.Sprintf("Next wave in %.0fs", math.Ceil(waves.TimeToNextWave())))
	} else {
		parts = append(parts, fmt.Sprintf("Spawning %d", waves.Remaining()))
	}
	parts = append(parts, formatTime(s.GameTime))

	dst.DrawTextColored(1, 0, strings.ToUpper(g.title)+" TD", platformcore.ColorBrightCyan)
	stats := strings.Join(parts, "  ")
	dst.DrawTextColored(dst.Width()-len([]rune(stats))-1, 0, stats, platformcore.ColorBrightWhite)
}

func (g *Game) renderGrid(dst *platformcore.Screen, ox, oy int) {
	for row := 0; row < g.gameMap.Rows(); row++ {
		for col := 0; col < g.gameMap.Columns(); col++ {
			x, y := ox+col*cellW, oy+row
			if g.gameMap.IsPath(g.gameMap.CellCenter(col, row)) {
				dst.DrawTextColored(x, y, "░░░", platformcore.ColorBrown)
			} else {
				dst.SetColored(x+1, y, '·', platformcore.ColorDarkGray)
			}
		}
	}

	end := g.gameMap.Path.End()
	cx, cy := g.gameMap.CellOf(end)
	dst.DrawTextColored(ox+cx*cellW, oy+cy, "▓▓▓", platformcore.ColorRed)
}

func (g *Game) renderTowers(dst *platformcore.Screen, ox, oy int) {
	for _, t := range g.engine.State().Towers {
		cx, cy := g.gameMap.CellOf(t.Position)
		c := g.towerColors[t.Type]
		glyph := towerGlyph(t.Type)
		if g.engine.Towers().CooldownFraction(t) > 0 {
			glyph = unicode.ToLower(glyph)
		}
		dst.SetColored(ox+cx*cellW+1, oy+cy, glyph, c)
	}
}

func (g *Game) renderEnemies(dst *platformcore.Screen, area platformcore.Rect) {
	type cellEnemies struct {
		lead  *core.Enemy
		count int
	}
	cells := make(map[platformcore.GridPoint]*cellEnemies)
	var order []platformcore.GridPoint

	for _, e := range g.engine.State().Enemies {
		cx, cy := g.gameMap.CellOf(e.Position)
		p := platformcore.GridPoint{Col: cx, Row: cy}
		ce, ok := cells[p]
		if !ok {
			ce = &cellEnemies{}
			cells[p] = ce
			order = append(order, p)
		}
		ce.count++
		if ce.lead == nil || e.PathProgress > ce.lead.PathProgress {
			ce.lead = e
		}
	}

	for _, p := range order {
		ce := cells[p]
		x, y := area.X+p.Col*cellW, area.Y+p.Row
		if !area.Contains(x, y) {
			continue
		}
		c := g.enemyColors[ce.lead.Type]
		dst.SetColored(x, y, healthGlyph(ce.lead.HealthFraction()), platformcore.ColorBrightRed)
		dst.SetColored(x+1, y, enemyGlyph(ce.lead.Type), c)
		if ce.count > 1 {
			n := min(ce.count, 9)
			dst.SetColored(x+2, y, rune('0'+n), platformcore.ColorBrightWhite)
		} else {
			dst.SetColored(x+2, y, ' ', platformcore.ColorDefault)
		}
	}
}

func (g *Game) renderCursor(dst *platformcore.Screen, ox, oy int) {
	if g.engine.State().GameOver {
		return
	}
	x, y := ox+g.cursor.Col*cellW, oy+g.cursor.Row
	c := platformcore.ColorBrightYellow
	if g.engine.CanBuild(g.SelectedTower(), g.CursorPosition()) != nil {
		c = platformcore.ColorRed
	}
	dst.SetColored(x, y, '[', c)
	dst.SetColored(x+2, y, ']', c)
}

func (g *Game) renderFooter(dst *platformcore.Screen, top int) {
	s := g.engine.State()

	x := 1
	for i, t := range g.cfg.Towers {
		marker := " "
		if i == g.selected {
			marker = ">"
		}
		label := fmt.Sprintf("%s%d %s $%d", marker, i+1, t.Type, t.Cost)
		if s.WaveNumber < t.UnlockWave {
			label += fmt.Sprintf(" (w%d)", t.UnlockWave)
		}
		c := g.towerColors[t.Type]
		if s.WaveNumber < t.UnlockWave || s.Money < t.Cost {
			c = platformcore.ColorGray
		}
		dst.DrawTextColored(x, top+1, label, c)
		x += len([]rune(label)) + 2
	}

	if g.message != "" {
		dst.DrawTextColored(1, top+2, g.message, platformcore.ColorBrightYellow)
	}
	dst.DrawTextColored(1, top+3, "arrows move  1-9 tower  enter build  p pause  q quit", platformcore.ColorGray)
}

// drawPanel blanks r and frames it.
func drawPanel(dst *platformcore.Screen, r platformcore.Rect) {
	blank := strings.Repeat(" ", max(r.W-2, 0))
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		dst.DrawText(r.X+1, y, blank)
	}
	dst.DrawBox(r, platformcore.ColorGray)
}

func towerGlyph(t core.TowerType) rune {
	return glyph(string(t), 'T')
}

func enemyGlyph(t core.EnemyType) rune {
	return unicode.ToLower(glyph(string(t), 'e'))
}

func glyph(name string, fallback rune) rune {
	for _, r := range name {
		return unicode.ToUpper(r)
	}
	return fallback
}

func healthGlyph(fraction float64) rune {
	idx := int(math.Ceil(fraction*float64(len(healthGlyphs)))) - 1
	return healthGlyphs[platformcore.Clamp(idx, 0, len(healthGlyphs)-1)]
}

func formatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
