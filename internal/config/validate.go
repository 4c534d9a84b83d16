package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for values the simulation cannot run
// with. Map geometry is validated separately when the map is built.
func (c Config) Validate() error {
	var errs []error

	if c.InitialMoney < 0 {
		errs = append(errs, fmt.Errorf("initial_money must be >= 0, got %d", c.InitialMoney))
	}
	if c.InitialLives < 0 {
		errs = append(errs, fmt.Errorf("initial_lives must be >= 0, got %d", c.InitialLives))
	}
	if c.FixedDeltaTime <= 0 {
		errs = append(errs, fmt.Errorf("fixed_delta_time must be > 0, got %g", c.FixedDeltaTime))
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 || c.Map.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("map dimensions must be > 0, got %gx%g cell %g",
			c.Map.Width, c.Map.Height, c.Map.CellSize))
	}

	if len(c.Enemies) == 0 {
		errs = append(errs, errors.New("at least one enemy type is required"))
	}
	seenEnemies := make(map[EnemyType]bool)
	for _, e := range c.Enemies {
		if e.Type == "" {
			errs = append(errs, errors.New("enemy type must not be empty"))
			continue
		}
		if seenEnemies[e.Type] {
			errs = append(errs, fmt.Errorf("duplicate enemy type %q", e.Type))
		}
		seenEnemies[e.Type] = true
		if e.Health <= 0 || e.Speed <= 0 {
			errs = append(errs, fmt.Errorf("enemy %q: health and speed must be > 0", e.Type))
		}
		if e.Reward < 0 {
			errs = append(errs, fmt.Errorf("enemy %q: reward must be >= 0", e.Type))
		}
	}

	if len(c.Towers) == 0 {
		errs = append(errs, errors.New("at least one tower type is required"))
	}
	seenTowers := make(map[TowerType]bool)
	for _, t := range c.Towers {
		if t.Type == "" {
			errs = append(errs, errors.New("tower type must not be empty"))
			continue
		}
		if seenTowers[t.Type] {
			errs = append(errs, fmt.Errorf("duplicate tower type %q", t.Type))
		}
		seenTowers[t.Type] = true
		if t.Range <= 0 || t.Damage <= 0 || t.AttackCooldown <= 0 {
			errs = append(errs, fmt.Errorf("tower %q: range, damage and attack_cooldown must be > 0", t.Type))
		}
		if t.Cost < 0 || t.UnlockWave < 0 {
			errs = append(errs, fmt.Errorf("tower %q: cost and unlock_wave must be >= 0", t.Type))
		}
	}

	w := c.Waves
	if w.WaveDelay <= 0 || w.SpawnDelay <= 0 {
		errs = append(errs, errors.New("waves: wave_delay and spawn_delay must be > 0"))
	}
	if w.GrowthFactor < 1 || w.HealthGrowthFactor < 1 || w.SpeedGrowthFactor < 1 {
		errs = append(errs, errors.New("waves: growth factors must be >= 1"))
	}
	if w.SpeedLimit <= 0 {
		errs = append(errs, errors.New("waves: speed_limit must be > 0"))
	}
	if len(w.List) == 0 {
		errs = append(errs, errors.New("waves: list must contain at least one wave"))
	}
	for i, wave := range w.List {
		for t, n := range wave {
			if !seenEnemies[t] {
				errs = append(errs, fmt.Errorf("waves: wave %d references unknown enemy type %q", i+1, t))
			}
			if n < 0 {
				errs = append(errs, fmt.Errorf("waves: wave %d has negative count for %q", i+1, t))
			}
		}
	}

	return errors.Join(errs...)
}
