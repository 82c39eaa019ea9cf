package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 50)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultTickRate matches the 20 ms frame the tank simulation is tuned for.
const DefaultTickRate = 50

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: DefaultTickRate,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickMillis returns the simulated wall time of one tick in milliseconds.
func (c RuntimeConfig) TickMillis() int {
	if c.TickRate <= 0 {
		return 1000 / DefaultTickRate
	}
	ms := 1000 / c.TickRate
	if ms < 1 {
		ms = 1
	}
	return ms
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    float64 // Current score, may be negative
	Stage    int     // Current stage, 1-based
	Lives    int     // Remaining player lives
	Ticks    int     // Simulation ticks elapsed this round
	GameOver bool    // Whether the game has ended
	Reason   string  // Why the round ended, empty while running
	Paused   bool    // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
