package core

// GameState is the single mutable root of a game. The engine owns it and
// mutates it in place on every step.
type GameState struct {
	GameTime   float64  `json:"gameTime"` // Seconds simulated
	WaveNumber int      `json:"waveNumber"`
	Money      int      `json:"money"`
	Lives      int      `json:"lives"` // Only tracked when lives are enabled
	GameOver   bool     `json:"gameOver"`
	Enemies    []*Enemy `json:"enemies"`
	Towers     []*Tower `json:"towers"`
}

func newGameState(money, lives int) *GameState {
	return &GameState{
		Money:   money,
		Lives:   lives,
		Enemies: []*Enemy{},
		Towers:  []*Tower{},
	}
}

// Snapshot returns a deep copy that later steps will not modify.
func (s *GameState) Snapshot() GameState {
	out := *s
	out.Enemies = make([]*Enemy, len(s.Enemies))
	for i, e := range s.Enemies {
		c := *e
		out.Enemies[i] = &c
	}
	out.Towers = make([]*Tower, len(s.Towers))
	for i, t := range s.Towers {
		c := *t
		out.Towers[i] = &c
	}
	return out
}

// TowerAt returns the tower placed at p, if any.
func (s *GameState) TowerAt(p Position) *Tower {
	for _, t := range s.Towers {
		if t.Position == p {
			return t
		}
	}
	return nil
}
