package core

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // terminal width in cells
	ScreenH  int   // terminal height in cells
	TickRate int   // simulation ticks per second
	Seed     int64 // board seed; 0 is resolved to a time seed by the platform
}

// DefaultConfig returns an 80x24, 30 tick configuration.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score     int
	Moves     int // accepted swaps so far
	BestCombo int
	Busy      bool // a cascade is still resolving
	GameOver  bool
	Paused    bool
}

// StepResult is returned by every simulation tick.
type StepResult struct {
	State GameState
}
