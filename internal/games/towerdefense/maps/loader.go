// Package maps loads custom tower defense maps from YAML files.
// This package depends on core but core does not depend on maps.
package maps

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/towerdef/internal/config"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// File is the on-disk map format.
type File struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Width     float64        `yaml:"width"`
	Height    float64        `yaml:"height"`
	CellSize  float64        `yaml:"cell_size"`
	Waypoints []config.Point `yaml:"waypoints"`
}

// Map is a loaded and validated map definition.
type Map struct {
	ID       string
	Config   config.MapConfig
	FilePath string
}

// Build constructs the simulation map.
func (m Map) Build() (*core.Map, error) {
	return core.NewMap(m.Config)
}

// Entry is the outcome of loading one file, kept for listings.
type Entry struct {
	Map  Map
	Path string
	Err  error
}

// Loader handles loading maps from a file tree.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// Builtin returns a loader for the maps compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{fsys: sub, root: "builtin"}
}

// Scan loads every map file and reports per-file results, sorted by path.
func (l *Loader) Scan() ([]Entry, error) {
	var entries []Entry

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}
		m, err := l.LoadFile(p)
		entries = append(entries, Entry{Map: m, Path: path.Join(l.root, p), Err: err})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// LoadAll returns every valid map sorted by ID. Invalid files are skipped.
func (l *Loader) LoadAll() ([]Map, error) {
	entries, err := l.Scan()
	if err != nil {
		return nil, err
	}

	var out []Map
	for _, e := range entries {
		if e.Err == nil {
			out = append(out, e.Map)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadFile loads and validates a single map file relative to the loader root.
func (l *Loader) LoadFile(p string) (Map, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Map{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	m, err := Parse(data)
	if err != nil {
		return Map{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if m.ID == "" {
		m.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
		if m.Config.Name == "" {
			m.Config.Name = m.ID
		}
	}
	m.FilePath = path.Join(l.root, p)
	return m, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}
	for _, m := range all {
		if m.ID == id {
			return m, nil
		}
	}
	return Map{}, fmt.Errorf("map not found: %s", id)
}

// Parse decodes a map file and checks its geometry with the map builder.
func Parse(data []byte) (Map, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Map{}, err
	}

	cfg := config.MapConfig{
		Name:      f.Name,
		Width:     f.Width,
		Height:    f.Height,
		CellSize:  f.CellSize,
		Waypoints: f.Waypoints,
	}
	if cfg.Name == "" {
		cfg.Name = f.ID
	}
	if _, err := core.NewMap(cfg); err != nil {
		return Map{}, err
	}
	return Map{ID: f.ID, Config: cfg}, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Resolve finds a map by ID in dir (when set) and then among the built-in
// maps. The empty ID and "default" select fallback unchanged.
func Resolve(id, dir string, fallback config.MapConfig) (config.MapConfig, error) {
	if id == "" || id == "default" {
		return fallback, nil
	}
	if dir != "" {
		if m, err := NewLoader(dir).LoadByID(id); err == nil {
			return m.Config, nil
		}
	}
	m, err := Builtin().LoadByID(id)
	if err != nil {
		return config.MapConfig{}, err
	}
	return m.Config, nil
}
