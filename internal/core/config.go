package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to fit the terminal and to pace wall-clock stepping.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Steps per second driven by the platform (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	Wave     int  // Latest started wave, used as the score
	Money    int  // Money available to build towers
	Lives    int  // Lives left, 0 when the mode does not track lives
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State   GameState
	Message string // Feedback for the player, such as a rejected build
}

// Summary describes a game for the results history.
type Summary struct {
	Mode        string
	Map         string
	Wave        int
	GameTime    float64 // Simulated seconds
	TowersBuilt int
}
