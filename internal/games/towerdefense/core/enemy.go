package core

import (
	"fmt"
	"math"

	"github.com/vovakirdan/towerdef/internal/config"
)

// Enemy is a live enemy walking the path.
type Enemy struct {
	Type                 EnemyType `json:"type"`
	FullHealth           float64   `json:"fullHealth"`
	CurrentHealth        float64   `json:"currentHealth"`
	CurrentSpeed         float64   `json:"currentSpeed"`
	Position             Position  `json:"position"`
	Direction            Direction `json:"direction"`
	CurrentWaypointIndex int       `json:"currentWaypointIndex"` // Index of the target waypoint
	PathProgress         float64   `json:"pathProgress"`         // Fraction of the path covered, in [0,1]
}

// HealthFraction returns current health relative to full health, in [0,1].
func (e *Enemy) HealthFraction() float64 {
	if e.FullHealth <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, e.CurrentHealth/e.FullHealth))
}

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool {
	return e.CurrentHealth > 0
}

// Finished reports whether the enemy has reached the end of the path.
func (e *Enemy) Finished() bool {
	return e.PathProgress >= 1
}

// EnemyReport summarizes one enemy update.
type EnemyReport struct {
	Reward   int      // Money earned from kills
	Killed   []*Enemy // Removed with health <= 0
	Breached []*Enemy // Removed after reaching the end of the path
}

// EnemyManager spawns enemies and moves them along the path.
type EnemyManager struct {
	gameMap    *Map
	stats      map[EnemyType]config.EnemyConfig
	speedLimit float64
}

// NewEnemyManager creates an enemy manager bound to an immutable map.
func NewEnemyManager(m *Map, cfg config.Config) *EnemyManager {
	stats := make(map[EnemyType]config.EnemyConfig, len(cfg.Enemies))
	for _, e := range cfg.Enemies {
		stats[e.Type] = e
	}
	return &EnemyManager{
		gameMap:    m,
		stats:      stats,
		speedLimit: cfg.Waves.SpeedLimit,
	}
}

// Spawn appends a new enemy of the given type at the first waypoint.
// Health is scaled by healthMul; speed is scaled by speedMul and capped by
// the configured speed limit.
func (em *EnemyManager) Spawn(enemies []*Enemy, t EnemyType, healthMul, speedMul float64) ([]*Enemy, error) {
	stats, ok := em.stats[t]
	if !ok {
		return enemies, fmt.Errorf("spawn %q: unknown enemy type", t)
	}

	speed := stats.Speed * speedMul
	if em.speedLimit > 0 {
		speed = math.Min(speed, em.speedLimit)
	}
	health := stats.Health * healthMul
	start := em.gameMap.Path.Waypoints[0]

	return append(enemies, &Enemy{
		Type:                 t,
		FullHealth:           health,
		CurrentHealth:        health,
		CurrentSpeed:         speed,
		Position:             start.Position,
		Direction:            start.NextDirection,
		CurrentWaypointIndex: 1,
	}), nil
}

// Reward returns the money granted for killing an enemy of type t.
func (em *EnemyManager) Reward(t EnemyType) int {
	return em.stats[t].Reward
}

// Update removes finished and dead enemies and advances the rest.
// Finished enemies are removed without reward; dead ones credit their
// reward. The surviving enemies keep their relative order.
func (em *EnemyManager) Update(dt float64, enemies []*Enemy) ([]*Enemy, EnemyReport) {
	var report EnemyReport
	alive := enemies[:0]
	for _, e := range enemies {
		switch {
		case e.Finished():
			report.Breached = append(report.Breached, e)
		case e.CurrentHealth <= 0:
			report.Reward += em.Reward(e.Type)
			report.Killed = append(report.Killed, e)
		default:
			em.move(e, dt)
			alive = append(alive, e)
		}
	}
	// Drop references held past the new length.
	for i := len(alive); i < len(enemies); i++ {
		enemies[i] = nil
	}
	return alive, report
}

// move advances e along its current segment. Segments are axis-aligned, so
// reaching the target waypoint is detected on the single moving axis. An
// enemy snaps to at most one waypoint per tick.
func (em *EnemyManager) move(e *Enemy, dt float64) {
	waypoints := em.gameMap.Path.Waypoints
	if e.CurrentWaypointIndex >= len(waypoints) {
		return
	}

	e.Position = e.Position.Add(e.Direction, e.CurrentSpeed*dt)

	target := waypoints[e.CurrentWaypointIndex].Position
	reached := false
	switch {
	case e.Direction.DX > 0:
		reached = e.Position.X >= target.X
	case e.Direction.DX < 0:
		reached = e.Position.X <= target.X
	case e.Direction.DY > 0:
		reached = e.Position.Y >= target.Y
	case e.Direction.DY < 0:
		reached = e.Position.Y <= target.Y
	}
	if reached {
		e.Position = target
		e.Direction = waypoints[e.CurrentWaypointIndex].NextDirection
		e.CurrentWaypointIndex++
	}

	e.PathProgress = em.progress(e)
}

// progress recomputes the covered fraction from the last passed waypoint.
func (em *EnemyManager) progress(e *Enemy) float64 {
	path := em.gameMap.Path
	if path.Length <= 0 {
		return 1
	}
	last := path.Waypoints[e.CurrentWaypointIndex-1]
	p := (last.DistanceFromStart + e.Position.DistanceTo(last.Position)) / path.Length
	return math.Min(p, 1)
}
