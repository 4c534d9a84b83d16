package core

import (
	"errors"
	"fmt"
)

// Player action errors. The engine rejects the whole step when one of these
// is returned; callers should test with errors.Is.
var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrUnknownTowerType  = errors.New("unknown tower type")
	ErrNotBuildable      = errors.New("position is not buildable")
	ErrOccupied          = errors.New("position already has a tower")
	ErrTowerLocked       = errors.New("tower type is not unlocked yet")
	ErrInsufficientFunds = errors.New("insufficient money")
	ErrGameOver          = errors.New("game is over")
)

// Validation error codes reported while building a map.
const (
	CodeTooFewWaypoints    = "TOO_FEW_WAYPOINTS"
	CodeInvalidGeometry    = "INVALID_GEOMETRY"
	CodeMisalignedWaypoint = "MISALIGNED_WAYPOINT"
	CodeOutOfBounds        = "OUT_OF_BOUNDS"
	CodeDiagonalSegment    = "DIAGONAL_SEGMENT"
	CodeEmptyWaveList      = "EMPTY_WAVE_LIST"
	CodeUnknownEnemyType   = "UNKNOWN_ENEMY_TYPE"
)

// ValidationError contains details about a configuration failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) ValidationError {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
