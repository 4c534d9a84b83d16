package config

import (
	_ "embed"
)

//go:embed defaults/towerdef.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		InitialMoney:   40,
		InitialLives:   0,
		FixedDeltaTime: 0.1,
		Map: MapConfig{
			Name:     "default",
			Width:    900,
			Height:   600,
			CellSize: 50,
			Waypoints: []Point{
				{X: 50, Y: 0},
				{X: 50, Y: 300},
				{X: 200, Y: 300},
				{X: 200, Y: 450},
				{X: 350, Y: 450},
				{X: 350, Y: 100},
				{X: 800, Y: 100},
				{X: 800, Y: 250},
				{X: 500, Y: 250},
				{X: 500, Y: 500},
				{X: 700, Y: 500},
				{X: 700, Y: 550},
			},
		},
		Enemies: []EnemyConfig{
			{Type: "tank", Health: 150, Speed: 40, Reward: 2, Color: "black"},
			{Type: "basic", Health: 40, Speed: 60, Reward: 2, Color: "darkgray"},
			{Type: "fast", Health: 30, Speed: 90, Reward: 2, Color: "greenyellow"},
		},
		Towers: []TowerConfig{
			{Type: "archer", Range: 125, Damage: 10, AttackCooldown: 1, Cost: 20, UnlockWave: 0, Color: "lightgreen"},
			{Type: "cannon", Range: 75, Damage: 75, AttackCooldown: 2, Cost: 35, UnlockWave: 4, Color: "white"},
			{Type: "sniper", Range: 175, Damage: 75, AttackCooldown: 3, Cost: 50, UnlockWave: 7, Color: "indianred"},
		},
		Waves: WavesConfig{
			WaveDelay:          12,
			SpawnDelay:         1,
			GrowthFactor:       1.1,
			HealthGrowthFactor: 1.2,
			SpeedGrowthFactor:  1.1,
			SpeedLimit:         250,
			List: []WaveComposition{
				{"basic": 2, "fast": 0, "tank": 0},
				{"basic": 5, "fast": 0, "tank": 0},
				{"basic": 5, "fast": 2, "tank": 0},
				{"basic": 5, "fast": 3, "tank": 1},
				{"basic": 2, "fast": 4, "tank": 2},
				{"basic": 2, "fast": 6, "tank": 3},
				{"basic": 2, "fast": 8, "tank": 3},
				{"basic": 0, "fast": 6, "tank": 6},
				{"basic": 0, "fast": 7, "tank": 7},
				{"basic": 0, "fast": 6, "tank": 9},
			},
		},
	}
}
