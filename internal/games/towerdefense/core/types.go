// Package core provides the deterministic tower defense simulation: the map
// and path model, the enemy, tower and wave managers, and the engine that
// steps them. This package is UI-agnostic and performs no I/O.
package core

import (
	"math"

	"github.com/vovakirdan/towerdef/internal/config"
)

// EnemyType identifies an enemy kind.
type EnemyType = config.EnemyType

// TowerType identifies a tower kind.
type TowerType = config.TowerType

// Position is a pixel coordinate. Positions produced by the map are always
// cell-centered.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pos is shorthand for creating a Position.
func Pos(x, y float64) Position {
	return Position{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance between two positions.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Add returns p offset by d scaled by step.
func (p Position) Add(d Direction, step float64) Position {
	return Position{X: p.X + float64(d.DX)*step, Y: p.Y + float64(d.DY)*step}
}

// Direction is an axis-aligned unit step. Exactly one of DX/DY is nonzero,
// except for the terminal waypoint whose direction is zero.
type Direction struct {
	DX int `json:"dx"` // -1 left, 1 right
	DY int `json:"dy"` // -1 up, 1 down
}

// DirectionBetween returns the per-axis sign of the vector from -> to.
func DirectionBetween(from, to Position) Direction {
	return Direction{DX: sign(to.X - from.X), DY: sign(to.Y - from.Y)}
}

// IsZero reports whether the direction has no movement.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// String returns an arrow for the direction.
func (d Direction) String() string {
	switch d {
	case Direction{DX: 1}:
		return ">"
	case Direction{DX: -1}:
		return "<"
	case Direction{DY: 1}:
		return "v"
	case Direction{DY: -1}:
		return "^"
	case Direction{}:
		return "."
	default:
		return "?"
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
