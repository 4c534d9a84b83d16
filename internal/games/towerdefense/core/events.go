package core

// EventType identifies something that happened during a step.
type EventType string

const (
	EventWaveStarted   EventType = "WaveStarted"
	EventEnemySpawned  EventType = "EnemySpawned"
	EventEnemyKilled   EventType = "EnemyKilled"
	EventEnemyBreached EventType = "EnemyBreached"
	EventTowerBuilt    EventType = "TowerBuilt"
	EventGameOver      EventType = "GameOver"
)

// Event is a single occurrence during a step. Only the fields relevant to
// the event type are set.
type Event struct {
	Type      EventType `json:"type"`
	Wave      int       `json:"wave,omitempty"`
	EnemyType EnemyType `json:"enemyType,omitempty"`
	TowerType TowerType `json:"towerType,omitempty"`
	Position  *Position `json:"position,omitempty"`
	Reward    int       `json:"reward,omitempty"`
}

// StepResult contains the outcome of a single step.
type StepResult struct {
	DeltaTime float64 `json:"deltaTime"`
	Events    []Event `json:"events,omitempty"`
}

// HasEvent reports whether the result contains an event of type t.
func (r StepResult) HasEvent(t EventType) bool {
	for _, e := range r.Events {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Count returns the number of events of type t.
func (r StepResult) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}
