package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/towerdef/internal/core"
	"github.com/vovakirdan/towerdef/internal/registry"
	"github.com/vovakirdan/towerdef/internal/storage"
)

// MenuModel is the Bubble Tea model for the mode and map picker.
type MenuModel struct {
	modes          []registry.ModeInfo
	catalog        Catalog
	cursor         int // Selected mode
	mapIndex       int // Selected map in the catalog
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       bool
	openScoreboard bool // True if user pressed Tab for the results board
}

// NewMenuModel creates a new menu model. mapIndex preselects a map.
func NewMenuModel(catalog Catalog, store *storage.Store, cfg core.RuntimeConfig, mapIndex int) MenuModel {
	if mapIndex < 0 || mapIndex >= len(catalog.Maps) {
		mapIndex = 0
	}
	return MenuModel{
		modes:     registry.List(),
		catalog:   catalog,
		mapIndex:  mapIndex,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if n := len(m.catalog.Maps); n > 0 {
			m.mapIndex = (m.mapIndex - 1 + n) % n
		}

	case MenuActionRight:
		if n := len(m.catalog.Maps); n > 0 {
			m.mapIndex = (m.mapIndex + 1) % n
		}

	case MenuActionSelect:
		if len(m.modes) > 0 {
			m.selected = true
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  T O W E R   D E F E N S E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, mode := range m.modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+mode.Title, m.width))
		b.WriteString("\n")
	}
	if len(m.modes) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.modes[m.cursor].Description, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Map: < %s >", m.mapName()), m.width))
	b.WriteString("\n")
	if best := m.bestWave(); best > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best wave: %d", best), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Mode  |  Left/Right: Map  |  Enter: Play  |  Tab: Results  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) mapName() string {
	if len(m.catalog.Maps) == 0 {
		return "-"
	}
	return m.catalog.Maps[m.mapIndex].Name
}

func (m MenuModel) bestWave() int {
	if m.store == nil || len(m.modes) == 0 || len(m.catalog.Maps) == 0 {
		return 0
	}
	best, err := m.store.BestWave(m.modes[m.cursor].ID, m.mapName())
	if err != nil {
		return 0
	}
	return best
}

// Selected returns the chosen mode ID and map index.
func (m MenuModel) Selected() (mode string, mapIndex int, ok bool) {
	if !m.selected || len(m.modes) == 0 {
		return "", 0, false
	}
	return m.modes[m.cursor].ID, m.mapIndex, true
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the results board.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Mode            string
	MapIndex        int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(catalog Catalog, store *storage.Store, cfg core.RuntimeConfig, mapIndex int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(catalog, store, cfg, mapIndex),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), MapIndex: m.mapIndex}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting():
		result.Quit = true
	default:
		mode, idx, ok := m.Selected()
		if !ok {
			result.Quit = true
			break
		}
		result.Mode = mode
		result.MapIndex = idx
	}
	return result, nil
}
