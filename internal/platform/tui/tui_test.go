package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/towerdef/internal/config"
	"github.com/vovakirdan/towerdef/internal/core"
	_ "github.com/vovakirdan/towerdef/internal/games/towerdefense"
	"github.com/vovakirdan/towerdef/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg          tea.KeyMsg
		expected     core.Action
		expectedSlot int
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, 0},
		{runeKey("a"), core.ActionLeft, 0},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, 0},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, 0},
		{runeKey("p"), core.ActionPause, 0},
		{runeKey("3"), core.ActionSelectTower, 3},
		{runeKey("0"), core.ActionNone, 0},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, 0},
	}
	for _, tt := range tests {
		action, slot := km.MapKey(tt.msg)
		if action != tt.expected || slot != tt.expectedSlot {
			t.Errorf("MapKey(%s) = %v/%d, expected %v/%d", tt.msg, action, slot, tt.expected, tt.expectedSlot)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("2"), &frame) {
		t.Error("tower selection reported as quit")
	}
	if !frame.Has(core.ActionSelectTower) || frame.TowerSlot != 2 {
		t.Errorf("frame = %+v, expected tower slot 2", frame)
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should request quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%s) = %v, expected %v", tt.msg, got, tt.expected)
		}
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog(config.DefaultConfig(), filepath.Join("..", "..", "games", "towerdefense", "maps", "testdata", "maps"))

	if len(c.Maps) < 4 {
		t.Fatalf("expected default plus built-in maps, got %d", len(c.Maps))
	}
	if c.Maps[0].ID != DefaultMapID {
		t.Errorf("first map = %s, expected %s", c.Maps[0].ID, DefaultMapID)
	}
	if c.Index("spiral") == 0 {
		t.Error("spiral map missing from catalog")
	}
	if c.Index("alpha") == 0 {
		t.Error("maps directory not scanned")
	}
	if c.Index("missing") != 0 {
		t.Error("unknown map should fall back to index 0")
	}

	game, err := c.NewGame("lives", c.Index("spiral"))
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	if got := game.Summary().Map; got != "Spiral" {
		t.Errorf("Summary().Map = %s, expected Spiral", got)
	}
	if game.State().Lives <= 0 {
		t.Errorf("lives mode started with %d lives", game.State().Lives)
	}

	if _, err := c.NewGame("nope", 0); err == nil {
		t.Error("NewGame() with unknown mode should fail")
	}
}

func TestMenuSelection(t *testing.T) {
	c := NewCatalog(config.DefaultConfig(), "")
	m := NewMenuModel(c, nil, core.DefaultConfig(), 0)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if cmd == nil {
		t.Error("selection should end the menu program")
	}
	mode, idx, ok := m.Selected()
	if !ok {
		t.Fatal("Selected() reported no selection")
	}
	// Modes are sorted by ID: classic, lives.
	if mode != "lives" || idx != 1 {
		t.Errorf("Selected() = %s/%d, expected lives/1", mode, idx)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := next.(MenuModel).mapIndex; got != len(c.Maps)-1 {
		t.Errorf("map index after wrapping = %d, expected %d", got, len(c.Maps)-1)
	}
}

// stubGame ends after a fixed number of steps.
type stubGame struct {
	steps  int
	endAt  int
	resets int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	if g.steps < g.endAt {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Wave: g.steps, GameOver: g.steps >= g.endAt}
}

func (g *stubGame) Summary() core.Summary {
	return core.Summary{Mode: "stub", Map: "flat", Wave: g.steps, GameTime: 12.5, TowersBuilt: 1}
}

func TestGameModelSavesResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	game := &stubGame{endAt: 3}
	var model tea.Model = NewGameModel(game, store, core.DefaultConfig())
	for range 6 {
		model, _ = model.Update(TickMsg{})
	}

	if !model.(GameModel).State().GameOver {
		t.Fatal("game should be over")
	}
	results, err := store.TopResults("stub", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 saved result, got %d", len(results))
	}
	if results[0].Wave != 3 || results[0].Map != "flat" || results[0].GameTime != 12.5 {
		t.Errorf("saved result = %+v", results[0])
	}

	// Restart then finish again saves a second row.
	model, _ = model.Update(runeKey("r"))
	for range 6 {
		model, _ = model.Update(TickMsg{})
	}
	if game.resets != 1 {
		t.Errorf("resets = %d, expected 1", game.resets)
	}
	if results, _ = store.TopResults("stub", 10); len(results) != 2 {
		t.Errorf("expected 2 saved results after restart, got %d", len(results))
	}
}

func TestGameModelBackOnlyWhenStopped(t *testing.T) {
	game := &stubGame{endAt: 100}
	var model tea.Model = NewGameModel(game, nil, core.DefaultConfig())
	model, _ = model.Update(TickMsg{})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(GameModel).BackToMenu() {
		t.Error("back should be ignored while the game runs")
	}

	game.endAt = 1
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(GameModel).BackToMenu() {
		t.Error("back should be accepted after game over")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0:00"},
		{59.9, "0:59"},
		{125, "2:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.expected {
			t.Errorf("formatDuration(%v) = %s, expected %s", tt.seconds, got, tt.expected)
		}
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate     int
		state    core.GameState
		expected time.Duration
	}{
		{30, core.GameState{}, time.Second / 30},
		{0, core.GameState{}, time.Second / 30},
		{30, core.GameState{Paused: true}, time.Second / idleTickRate},
		{30, core.GameState{GameOver: true}, time.Second / idleTickRate},
		{5, core.GameState{GameOver: true}, time.Second / 5},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.rate, tt.state); got != tt.expected {
			t.Errorf("tickInterval(%d, %+v) = %v, expected %v", tt.rate, tt.state, got, tt.expected)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "░░░", core.ColorBrown)
	s.DrawTextColored(0, 1, "GAME OVER", core.ColorBrightRed)

	for _, st := range []core.GameState{{}, {GameOver: true}} {
		out := RenderBoard(s, st)
		for _, want := range []string{"░░░", "GAME OVER"} {
			if !strings.Contains(out, want) {
				t.Errorf("RenderBoard(%+v) missing %q:\n%s", st, want, out)
			}
		}
	}

	if !dimmedStyles[core.ColorBrown].GetFaint() {
		t.Error("path style not dimmed for a stopped game")
	}
	if dimmedStyles[core.ColorBrightRed].GetFaint() {
		t.Error("overlay style dimmed for a stopped game")
	}
	if boardStyles[core.ColorBrown].GetFaint() {
		t.Error("path style dimmed for a running game")
	}
}

func TestCatalogDifficulty(t *testing.T) {
	c := NewCatalog(config.DefaultConfig(), "")
	c.Difficulty = config.DifficultyEasy

	game, err := c.NewGame("lives", 0)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	game.Reset(core.DefaultConfig())
	if got := game.State().Lives; got != 25 {
		t.Errorf("Lives = %d, expected 25 (20 + easy bonus)", got)
	}
}
