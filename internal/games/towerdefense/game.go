// Package towerdefense provides the playable tower defense game: a build
// cursor, tower selection and wall-clock stepping around the simulation core.
package towerdefense

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/towerdef/internal/config"
	platformcore "github.com/vovakirdan/towerdef/internal/core"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
	"github.com/vovakirdan/towerdef/internal/registry"
)

// Mode identifiers.
const (
	ModeClassic = "classic"
	ModeLives   = "lives"
)

// DefaultLives is used by the lives mode when the config sets none.
const DefaultLives = 20

func init() {
	registry.Register(registry.ModeInfo{
		ID:          ModeClassic,
		Title:       "Classic",
		Description: "The first enemy to reach the end of the path ends the game",
	}, factory(ModeClassic, "Classic"))
	registry.Register(registry.ModeInfo{
		ID:          ModeLives,
		Title:       "Lives",
		Description: "Each enemy reaching the end costs a life",
	}, factory(ModeLives, "Lives"))
}

func factory(id, title string) registry.Factory {
	return func(s registry.Setup) (registry.Game, error) {
		cfg, err := Configure(id, s.Config, s.Difficulty)
		if err != nil {
			return nil, err
		}
		return New(id, title, cfg, time.Now)
	}
}

// ModeConfig adjusts cfg to the rules of a mode: classic ends on the first
// breach, lives falls back to DefaultLives when the config sets none.
func ModeConfig(mode string, cfg config.Config) (config.Config, error) {
	switch mode {
	case ModeClassic:
		cfg.InitialLives = 0
	case ModeLives:
		if cfg.InitialLives <= 0 {
			cfg.InitialLives = DefaultLives
		}
	default:
		return cfg, fmt.Errorf("unknown mode %q", mode)
	}
	return cfg, nil
}

// Configure applies the mode rules and then the difficulty preset, so the
// preset scales the lives the mode settled on.
func Configure(mode string, cfg config.Config, preset config.DifficultyPreset) (config.Config, error) {
	cfg, err := ModeConfig(mode, cfg)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// messageTicks is how long a feedback message stays on screen.
const messageTicks = 90

// Game implements registry.Game on top of a wall-clock engine.
type Game struct {
	id    string
	title string
	cfg   config.Config

	gameMap *core.Map
	engine  *core.Engine

	towerColors map[core.TowerType]platformcore.Color
	enemyColors map[core.EnemyType]platformcore.Color

	screenW int
	screenH int

	cursor   platformcore.GridPoint
	selected int // Index into cfg.Towers
	paused   bool

	message    string
	messageTTL int
}

// New creates a game for an already validated config. now is the wall clock
// that paces the simulation.
func New(id, title string, cfg config.Config, now func() time.Time) (*Game, error) {
	m, err := core.NewMap(cfg.Map)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", cfg.Map.Name, err)
	}
	engine, err := core.NewEngine(cfg, m, core.WithTiming(core.TimingWallClock), core.WithClock(now))
	if err != nil {
		return nil, err
	}

	g := &Game{
		id:          id,
		title:       title,
		cfg:         cfg,
		gameMap:     m,
		engine:      engine,
		towerColors: make(map[core.TowerType]platformcore.Color, len(cfg.Towers)),
		enemyColors: make(map[core.EnemyType]platformcore.Color, len(cfg.Enemies)),
	}
	for _, t := range cfg.Towers {
		g.towerColors[t.Type] = platformcore.ParseColor(t.Color)
	}
	for _, e := range cfg.Enemies {
		g.enemyColors[e.Type] = platformcore.ParseColor(e.Color)
	}
	g.resetCursor()
	return g, nil
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Engine exposes the simulation for inspection.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Reset starts a new game on the same map.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.engine.Reset()
	g.paused = false
	g.selected = 0
	g.message = ""
	g.messageTTL = 0
	g.resetCursor()
}

// resetCursor puts the cursor on the first buildable cell.
func (g *Game) resetCursor() {
	g.cursor = platformcore.GridPoint{}
	if len(g.gameMap.BuildableCells) > 0 {
		cx, cy := g.gameMap.CellOf(g.gameMap.BuildableCells[0])
		g.cursor = platformcore.GridPoint{Col: cx, Row: cy}
	}
}

// Step handles the frame's input and advances the simulation.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.engine.State().GameOver {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
		if !g.paused {
			g.engine.ResetClock()
		}
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.handleCursor(in)
	if in.Has(platformcore.ActionSelectTower) {
		g.selectTower(in.TowerSlot)
	}

	action := core.NoAction()
	if in.Has(platformcore.ActionConfirm) {
		action = core.BuildTower(g.SelectedTower(), g.CursorPosition())
	}

	res, err := g.engine.Step(action)
	if err != nil {
		g.setMessage(describeError(err))
		// The rejected build does not stop time.
		if action.Type != core.ActionNone && !errors.Is(err, core.ErrGameOver) {
			res, _ = g.engine.Step(core.NoAction())
		}
	}
	g.applyEvents(res)
	if g.messageTTL > 0 {
		g.messageTTL--
		if g.messageTTL == 0 {
			g.message = ""
		}
	}

	return platformcore.StepResult{State: g.State(), Message: g.message}
}

func (g *Game) handleCursor(in platformcore.InputFrame) {
	cols, rows := g.gameMap.Columns(), g.gameMap.Rows()
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor = g.cursor.Move(0, -1, cols, rows)
	case in.Has(platformcore.ActionDown):
		g.cursor = g.cursor.Move(0, 1, cols, rows)
	case in.Has(platformcore.ActionLeft):
		g.cursor = g.cursor.Move(-1, 0, cols, rows)
	case in.Has(platformcore.ActionRight):
		g.cursor = g.cursor.Move(1, 0, cols, rows)
	}
}

func (g *Game) selectTower(slot int) {
	if slot < 1 || slot > len(g.cfg.Towers) {
		return
	}
	g.selected = slot - 1
	t := g.cfg.Towers[g.selected]
	if wave := g.engine.State().WaveNumber; wave < t.UnlockWave {
		g.setMessage(fmt.Sprintf("%s unlocks at wave %d", t.Type, t.UnlockWave))
	}
}

func (g *Game) applyEvents(res core.StepResult) {
	for _, ev := range res.Events {
		switch ev.Type {
		case core.EventWaveStarted:
			g.setMessage(fmt.Sprintf("Wave %d incoming!", ev.Wave))
		case core.EventTowerBuilt:
			g.setMessage(fmt.Sprintf("Built %s", ev.TowerType))
		case core.EventEnemyBreached:
			if g.cfg.LivesEnabled() {
				g.setMessage(fmt.Sprintf("A %s got through!", ev.EnemyType))
			}
		}
	}
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.messageTTL = messageTicks
}

// describeError turns an engine error into player feedback.
func describeError(err error) string {
	switch {
	case errors.Is(err, core.ErrInsufficientFunds):
		return "Not enough money"
	case errors.Is(err, core.ErrNotBuildable):
		return "Can't build there"
	case errors.Is(err, core.ErrOccupied):
		return "A tower is already there"
	case errors.Is(err, core.ErrTowerLocked):
		return "Tower is still locked"
	case errors.Is(err, core.ErrGameOver):
		return "Game over"
	default:
		return err.Error()
	}
}

// SelectedTower returns the tower type that Confirm builds.
func (g *Game) SelectedTower() core.TowerType {
	if len(g.cfg.Towers) == 0 {
		return ""
	}
	return g.cfg.Towers[g.selected].Type
}

// Cursor returns the cursor cell.
func (g *Game) Cursor() platformcore.GridPoint {
	return g.cursor
}

// CursorPosition returns the pixel center of the cursor cell.
func (g *Game) CursorPosition() core.Position {
	return g.gameMap.CellCenter(g.cursor.Col, g.cursor.Row)
}

// State returns the platform status.
func (g *Game) State() platformcore.GameState {
	s := g.engine.State()
	return platformcore.GameState{
		Wave:     s.WaveNumber,
		Money:    s.Money,
		Lives:    s.Lives,
		GameOver: s.GameOver,
		Paused:   g.paused,
	}
}

// Summary describes the game for the results history.
func (g *Game) Summary() platformcore.Summary {
	s := g.engine.State()
	return platformcore.Summary{
		Mode:        g.id,
		Map:         g.gameMap.Name,
		Wave:        s.WaveNumber,
		GameTime:    s.GameTime,
		TowersBuilt: g.engine.TowersBuilt(),
	}
}
