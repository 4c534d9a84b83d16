package core

import (
	"testing"
	"time"

	"github.com/vovakirdan/towerdef/internal/config"
)

// testConfig is a small game: a straight three-cell path along the top row
// of a 4x2 grid, one enemy type and two tower types.
func testConfig() config.Config {
	return config.Config{
		InitialMoney:   20,
		FixedDeltaTime: 1,
		Map: config.MapConfig{
			Name:      "straight",
			Width:     200,
			Height:    100,
			CellSize:  50,
			Waypoints: []config.Point{{X: 0, Y: 0}, {X: 100, Y: 0}},
		},
		Enemies: []config.EnemyConfig{
			{Type: "basic", Health: 40, Speed: 50, Reward: 3},
		},
		Towers: []config.TowerConfig{
			{Type: "archer", Range: 125, Damage: 10, AttackCooldown: 1, Cost: 20},
			{Type: "cannon", Range: 75, Damage: 75, AttackCooldown: 2, Cost: 35, UnlockWave: 2},
		},
		Waves: config.WavesConfig{
			WaveDelay:          10,
			SpawnDelay:         1,
			GrowthFactor:       1.5,
			HealthGrowthFactor: 2,
			SpeedGrowthFactor:  1.5,
			SpeedLimit:         100,
			List: []config.WaveComposition{
				{"basic": 1},
				{"basic": 2},
			},
		},
	}
}

func mustMap(t *testing.T, cfg config.MapConfig) *Map {
	t.Helper()
	m, err := NewMap(cfg)
	if err != nil {
		t.Fatalf("NewMap() error = %v", err)
	}
	return m
}

func mustEngine(t *testing.T, cfg config.Config, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, mustMap(t, cfg.Map), opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// fakeClock is a manually advanced wall clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func approx(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
