// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the tower defense simulation.
package config

// EnemyType identifies an enemy kind (e.g. "basic", "fast", "tank").
type EnemyType string

// TowerType identifies a tower kind (e.g. "archer", "cannon", "sniper").
type TowerType string

// Config is the complete, immutable tuning table for one game.
// It is loaded once at startup and passed by value into every simulation
// component constructor.
type Config struct {
	InitialMoney   int           `yaml:"initial_money"`
	InitialLives   int           `yaml:"initial_lives"`    // 0 = first breach ends the game
	FixedDeltaTime float64       `yaml:"fixed_delta_time"` // Seconds per step in fixed-step mode
	Map            MapConfig     `yaml:"map"`
	Enemies        []EnemyConfig `yaml:"enemies"` // Sequence order is spawn priority
	Towers         []TowerConfig `yaml:"towers"`  // Sequence order is display order
	Waves          WavesConfig   `yaml:"waves"`
}

// Point is a pixel coordinate as written in configuration files.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// MapConfig defines the grid and the authored path corners.
// Waypoints use the top-left corner of their cell; every corner must be a
// multiple of CellSize and consecutive corners must share one axis.
type MapConfig struct {
	Name      string  `yaml:"name"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	CellSize  float64 `yaml:"cell_size"`
	Waypoints []Point `yaml:"waypoints"`
}

// EnemyConfig defines the base stats of an enemy type.
type EnemyConfig struct {
	Type   EnemyType `yaml:"type"`
	Health float64   `yaml:"health"`
	Speed  float64   `yaml:"speed"`  // Pixels per second
	Reward int       `yaml:"reward"` // Money granted on kill
	Color  string    `yaml:"color"`
}

// TowerConfig defines the stats and price of a tower type.
type TowerConfig struct {
	Type           TowerType `yaml:"type"`
	Range          float64   `yaml:"range"` // Pixels
	Damage         float64   `yaml:"damage"`
	AttackCooldown float64   `yaml:"attack_cooldown"` // Seconds between attacks
	Cost           int       `yaml:"cost"`
	UnlockWave     int       `yaml:"unlock_wave"`
	Color          string    `yaml:"color"`
}

// WaveComposition maps an enemy type to the number of enemies in a wave.
type WaveComposition map[EnemyType]int

// Total returns the number of enemies in the wave.
func (w WaveComposition) Total() int {
	total := 0
	for _, n := range w {
		total += n
	}
	return total
}

// WavesConfig defines wave timing, the authored wave list and the growth
// applied to waves beyond the authored list.
type WavesConfig struct {
	WaveDelay          float64           `yaml:"wave_delay"`  // Seconds between waves
	SpawnDelay         float64           `yaml:"spawn_delay"` // Seconds between spawns
	GrowthFactor       float64           `yaml:"growth_factor"`
	HealthGrowthFactor float64           `yaml:"health_growth_factor"`
	SpeedGrowthFactor  float64           `yaml:"speed_growth_factor"`
	SpeedLimit         float64           `yaml:"speed_limit"`
	List               []WaveComposition `yaml:"list"`
}

// Enemy returns the configuration of an enemy type.
func (c Config) Enemy(t EnemyType) (EnemyConfig, bool) {
	for _, e := range c.Enemies {
		if e.Type == t {
			return e, true
		}
	}
	return EnemyConfig{}, false
}

// Tower returns the configuration of a tower type.
func (c Config) Tower(t TowerType) (TowerConfig, bool) {
	for _, tw := range c.Towers {
		if tw.Type == t {
			return tw, true
		}
	}
	return TowerConfig{}, false
}

// EnemyOrder returns enemy types in spawn priority order.
func (c Config) EnemyOrder() []EnemyType {
	order := make([]EnemyType, len(c.Enemies))
	for i, e := range c.Enemies {
		order[i] = e.Type
	}
	return order
}

// LivesEnabled reports whether the game tracks lives instead of ending on
// the first breach.
func (c Config) LivesEnabled() bool {
	return c.InitialLives > 0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}
