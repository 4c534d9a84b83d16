package config

import "math"

// ApplyPreset adjusts starting resources for a difficulty preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.InitialMoney = int(math.Ceil(float64(cfg.InitialMoney) * 1.5))
		if cfg.LivesEnabled() {
			cfg.InitialLives += 5
		}
	case DifficultyHard:
		cfg.InitialMoney = int(math.Floor(float64(cfg.InitialMoney) * 0.75))
		if cfg.LivesEnabled() {
			cfg.InitialLives = max(1, cfg.InitialLives/2)
		}
	}
}
