package core

import "time"

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to size its viewport and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int           // Screen width in characters
	ScreenH  int           // Screen height in characters
	TickRate int           // Target ticks per second (default 60)
	Seed     int64         // World seed; 0 means use current time in platform layer
	MaxDelta time.Duration // Upper bound applied to every tick's elapsed time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
		MaxDelta: 50 * time.Millisecond,
	}
}

// ClampDelta bounds a wall-clock delta to [0, max].
// A non-positive max disables the upper bound.
func ClampDelta(dt, max time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if max > 0 && dt > max {
		return max
	}
	return dt
}

// GameState represents the current state of a run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended (death or campaign cleared)
	Paused   bool // Whether the simulation is frozen
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
