package core

import (
	"math"

	"github.com/vovakirdan/towerdef/internal/config"
)

// Waypoint is an authored path corner, centered in its cell.
type Waypoint struct {
	Position          Position  `json:"position"`
	NextDirection     Direction `json:"nextDirection"`     // Toward the next waypoint; zero for the last one
	DistanceFromStart float64   `json:"distanceFromStart"` // Cumulative path length up to this corner
}

// Path is the walkable route enemies follow.
//
// Segments between consecutive waypoints are strictly horizontal or
// vertical. Enemy movement relies on this: progress along a segment is
// monotonic on a single axis, so reaching a waypoint is detected by
// comparing one coordinate against the direction sign.
type Path struct {
	Waypoints []Waypoint `json:"waypoints"`
	AllCells  []Position `json:"allCells"` // Every cell on the path, in path order
	Length    float64    `json:"length"`   // Total length in pixels
}

// Start returns the first waypoint position.
func (p Path) Start() Position {
	return p.Waypoints[0].Position
}

// End returns the last waypoint position.
func (p Path) End() Position {
	return p.Waypoints[len(p.Waypoints)-1].Position
}

// Map is the static grid. It is built once and never mutated, so it is
// shared by reference between all simulation components.
type Map struct {
	Name           string     `json:"name"`
	Width          float64    `json:"width"`
	Height         float64    `json:"height"`
	CellSize       float64    `json:"cellSize"`
	Path           Path       `json:"path"`
	BuildableCells []Position `json:"buildableCells"`

	pathCells map[Position]struct{}
	buildable map[Position]struct{}
}

// NewMap builds the path and the buildable cells from the authored corners.
// Corners use the top-left convention of their cell. Misaligned,
// out-of-bounds or diagonal corners are rejected with a ValidationError.
func NewMap(cfg config.MapConfig) (*Map, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.CellSize <= 0 {
		return nil, invalid(CodeInvalidGeometry, "map %gx%g with cell size %g", cfg.Width, cfg.Height, cfg.CellSize)
	}
	if len(cfg.Waypoints) < 2 {
		return nil, invalid(CodeTooFewWaypoints, "path needs at least 2 waypoints, got %d", len(cfg.Waypoints))
	}

	corners := make([]Position, len(cfg.Waypoints))
	for i, p := range cfg.Waypoints {
		corners[i] = Position{X: p.X, Y: p.Y}
	}
	if err := validateCorners(corners, cfg); err != nil {
		return nil, err
	}

	m := &Map{
		Name:     cfg.Name,
		Width:    cfg.Width,
		Height:   cfg.Height,
		CellSize: cfg.CellSize,
	}
	m.Path = m.buildPath(corners)

	m.pathCells = make(map[Position]struct{}, len(m.Path.AllCells))
	for _, c := range m.Path.AllCells {
		m.pathCells[c] = struct{}{}
	}
	m.BuildableCells = m.calculateBuildableCells()
	m.buildable = make(map[Position]struct{}, len(m.BuildableCells))
	for _, c := range m.BuildableCells {
		m.buildable[c] = struct{}{}
	}

	return m, nil
}

// validateCorners checks grid alignment, bounds and axis alignment.
func validateCorners(corners []Position, cfg config.MapConfig) error {
	for i, c := range corners {
		if !isMultiple(c.X, cfg.CellSize) || !isMultiple(c.Y, cfg.CellSize) {
			return invalid(CodeMisalignedWaypoint,
				"waypoint %d (%g,%g) is not a multiple of cell size %g", i, c.X, c.Y, cfg.CellSize)
		}
		// The whole corner cell must fit, not just its top-left.
		if c.X < 0 || c.Y < 0 || c.X+cfg.CellSize > cfg.Width || c.Y+cfg.CellSize > cfg.Height {
			return invalid(CodeOutOfBounds,
				"waypoint %d (%g,%g) is outside the %gx%g map", i, c.X, c.Y, cfg.Width, cfg.Height)
		}
		if i == 0 {
			continue
		}
		prev := corners[i-1]
		sameX := prev.X == c.X
		sameY := prev.Y == c.Y
		if sameX == sameY {
			return invalid(CodeDiagonalSegment,
				"waypoints %d (%g,%g) and %d (%g,%g) must share exactly one axis",
				i-1, prev.X, prev.Y, i, c.X, c.Y)
		}
	}
	return nil
}

func isMultiple(v, cell float64) bool {
	q := v / cell
	return q == math.Trunc(q)
}

// buildPath links all corners: every intermediate cell is filled at
// cell-size spacing and each waypoint gets its cumulative distance.
func (m *Map) buildPath(corners []Position) Path {
	half := m.CellSize / 2
	center := func(p Position) Position {
		return Position{X: p.X + half, Y: p.Y + half}
	}

	waypoints := make([]Waypoint, len(corners))
	cells := make([]Position, 0, len(corners))
	distance := 0.0

	for i, curr := range corners {
		waypoints[i] = Waypoint{
			Position:          center(curr),
			DistanceFromStart: distance,
		}
		if i == len(corners)-1 {
			cells = append(cells, center(curr))
			break
		}

		next := corners[i+1]
		dir := DirectionBetween(curr, next)
		segment := curr.DistanceTo(next)
		waypoints[i].NextDirection = dir

		cells = append(cells, center(curr))
		between := int(math.Round(segment/m.CellSize)) - 1
		for j := 0; j < between; j++ {
			cells = append(cells, center(curr.Add(dir, m.CellSize*float64(j+1))))
		}
		distance += segment
	}

	return Path{
		Waypoints: waypoints,
		AllCells:  cells,
		Length:    distance,
	}
}

// calculateBuildableCells returns every whole grid cell not on the path,
// column by column.
func (m *Map) calculateBuildableCells() []Position {
	cols, rows := m.Columns(), m.Rows()
	cells := make([]Position, 0, cols*rows)
	for cx := 0; cx < cols; cx++ {
		for cy := 0; cy < rows; cy++ {
			cell := m.CellCenter(cx, cy)
			if _, onPath := m.pathCells[cell]; !onPath {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// Columns returns the number of whole cells horizontally.
func (m *Map) Columns() int {
	return int(m.Width / m.CellSize)
}

// Rows returns the number of whole cells vertically.
func (m *Map) Rows() int {
	return int(m.Height / m.CellSize)
}

// CellCenter returns the center of the cell at grid coordinates (cx, cy).
func (m *Map) CellCenter(cx, cy int) Position {
	return Position{
		X: float64(cx)*m.CellSize + m.CellSize/2,
		Y: float64(cy)*m.CellSize + m.CellSize/2,
	}
}

// CellOf returns the grid coordinates of the cell containing p.
func (m *Map) CellOf(p Position) (cx, cy int) {
	return int(math.Floor(p.X / m.CellSize)), int(math.Floor(p.Y / m.CellSize))
}

// IsBuildable reports whether p is exactly the center of a buildable cell.
func (m *Map) IsBuildable(p Position) bool {
	_, ok := m.buildable[p]
	return ok
}

// IsPath reports whether p is exactly the center of a path cell.
func (m *Map) IsPath(p Position) bool {
	_, ok := m.pathCells[p]
	return ok
}
