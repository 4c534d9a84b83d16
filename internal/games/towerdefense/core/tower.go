package core

import (
	"fmt"
	"math"

	"github.com/vovakirdan/towerdef/internal/config"
)

// Tower is a placed tower. Type and position never change once built.
type Tower struct {
	Type           TowerType `json:"type"`
	Position       Position  `json:"position"`
	AttackCooldown float64   `json:"attackCooldown"` // Seconds until the next shot
}

// Attack records one shot fired during a tower update.
type Attack struct {
	Tower  *Tower
	Target *Enemy
	Damage float64
}

// TowerManager validates placement and resolves tower attacks.
type TowerManager struct {
	gameMap *Map
	stats   map[TowerType]config.TowerConfig
}

// NewTowerManager creates a tower manager bound to an immutable map.
func NewTowerManager(m *Map, cfg config.Config) *TowerManager {
	stats := make(map[TowerType]config.TowerConfig, len(cfg.Towers))
	for _, t := range cfg.Towers {
		stats[t.Type] = t
	}
	return &TowerManager{gameMap: m, stats: stats}
}

// Cost returns the price of a tower type.
func (tm *TowerManager) Cost(t TowerType) (int, bool) {
	s, ok := tm.stats[t]
	return s.Cost, ok
}

// CanBuild checks every build precondition without changing anything.
func (tm *TowerManager) CanBuild(towers []*Tower, t TowerType, pos Position, money, wave int) error {
	stats, ok := tm.stats[t]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTowerType, t)
	}
	if !tm.gameMap.IsBuildable(pos) {
		return fmt.Errorf("%w: (%g,%g)", ErrNotBuildable, pos.X, pos.Y)
	}
	for _, tw := range towers {
		if tw.Position == pos {
			return fmt.Errorf("%w: (%g,%g)", ErrOccupied, pos.X, pos.Y)
		}
	}
	if wave < stats.UnlockWave {
		return fmt.Errorf("%w: %s unlocks at wave %d", ErrTowerLocked, t, stats.UnlockWave)
	}
	if money < stats.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, t, stats.Cost, money)
	}
	return nil
}

// Build places a tower and returns the new tower list and remaining money.
// On error neither towers nor money change.
func (tm *TowerManager) Build(towers []*Tower, t TowerType, pos Position, money, wave int) ([]*Tower, int, error) {
	if err := tm.CanBuild(towers, t, pos, money, wave); err != nil {
		return towers, money, err
	}
	stats := tm.stats[t]
	towers = append(towers, &Tower{
		Type:           t,
		Position:       pos,
		AttackCooldown: stats.AttackCooldown,
	})
	return towers, money - stats.Cost, nil
}

// Update decays every cooldown, floored at zero, then lets each ready tower
// hit the in-range enemy with the highest path progress. Ties go to the
// enemy that comes first in enemies.
func (tm *TowerManager) Update(dt float64, towers []*Tower, enemies []*Enemy) []Attack {
	for _, tw := range towers {
		tw.AttackCooldown = math.Max(0, tw.AttackCooldown-dt)
	}

	var attacks []Attack
	for _, tw := range towers {
		if tw.AttackCooldown > 0 {
			continue
		}
		stats := tm.stats[tw.Type]
		target := tm.findTarget(tw, stats.Range, enemies)
		if target == nil {
			continue
		}
		target.CurrentHealth -= stats.Damage
		tw.AttackCooldown = stats.AttackCooldown
		attacks = append(attacks, Attack{Tower: tw, Target: target, Damage: stats.Damage})
	}
	return attacks
}

func (tm *TowerManager) findTarget(tw *Tower, rng float64, enemies []*Enemy) *Enemy {
	var target *Enemy
	for _, e := range enemies {
		if tw.Position.DistanceTo(e.Position) > rng {
			continue
		}
		if target == nil || e.PathProgress > target.PathProgress {
			target = e
		}
	}
	return target
}

// CooldownFraction returns the remaining cooldown relative to the base
// cooldown of the tower type, in [0,1].
func (tm *TowerManager) CooldownFraction(tw *Tower) float64 {
	base := tm.stats[tw.Type].AttackCooldown
	if base <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, tw.AttackCooldown/base))
}

// InRange reports whether p lies within the range of tw.
func (tm *TowerManager) InRange(tw *Tower, p Position) bool {
	return tw.Position.DistanceTo(p) <= tm.stats[tw.Type].Range
}
