package tui

import (
	"github.com/vovakirdan/towerdef/internal/config"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/maps"
	"github.com/vovakirdan/towerdef/internal/registry"
)

// DefaultMapID names the map carried by the game config itself.
const DefaultMapID = "default"

// MapChoice is one selectable map.
type MapChoice struct {
	ID     string
	Name   string
	Config config.MapConfig
}

// Catalog lists the playable maps and builds games from a mode and map.
type Catalog struct {
	Base       config.Config
	Difficulty config.DifficultyPreset
	Maps       []MapChoice
}

// NewCatalog collects the config's own map, the built-in maps and any maps
// found under dir. Invalid map files are skipped. Later maps never shadow
// earlier ones with the same ID.
func NewCatalog(base config.Config, dir string) Catalog {
	c := Catalog{Base: base}
	c.add(MapChoice{ID: DefaultMapID, Name: base.Map.Name, Config: base.Map})

	if builtin, err := maps.Builtin().LoadAll(); err == nil {
		for _, m := range builtin {
			c.add(MapChoice{ID: m.ID, Name: m.Config.Name, Config: m.Config})
		}
	}
	if dir != "" {
		if custom, err := maps.NewLoader(dir).LoadAll(); err == nil {
			for _, m := range custom {
				c.add(MapChoice{ID: m.ID, Name: m.Config.Name, Config: m.Config})
			}
		}
	}
	return c
}

func (c *Catalog) add(m MapChoice) {
	for _, existing := range c.Maps {
		if existing.ID == m.ID {
			return
		}
	}
	if m.Name == "" {
		m.Name = m.ID
	}
	c.Maps = append(c.Maps, m)
}

// Index returns the position of a map ID, or 0 when it is unknown.
func (c Catalog) Index(id string) int {
	for i, m := range c.Maps {
		if m.ID == id {
			return i
		}
	}
	return 0
}

// NewGame creates a game for mode on the map at index.
func (c Catalog) NewGame(mode string, index int) (registry.Game, error) {
	cfg := c.Base
	if index >= 0 && index < len(c.Maps) {
		cfg.Map = c.Maps[index].Config
	}
	return registry.Create(mode, registry.Setup{Config: cfg, Difficulty: c.Difficulty})
}
