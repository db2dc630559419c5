package core

// RuntimeConfig describes the surface a shell renders into.
// The simulation itself runs in field units and never reads these values.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second the shell targets (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState summarises the game for the platform layer.
// Returned by Game.State() so shells can react to game over without
// reaching into the simulation.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
}

// StepResult is returned after each simulated frame.
// Contains the updated game state and the events that occurred this frame.
type StepResult struct {
	State     GameState
	Hit       bool // Ball was deflected by the paddle
	Ended     bool // Game over was reached during this frame
	Restarted bool // A fresh game was started during this frame
}
