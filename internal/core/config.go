package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score      int    // Collectibles picked up in won levels
	GameOver   bool   // Whether the campaign has ended
	Paused     bool   // Whether the game is paused
	LevelID    string // Level currently playing
	LevelIndex int    // Zero-based position of the level in the campaign
	LevelCount int    // Number of levels in the campaign
	Status     string // "playing", "won" or "lost" for the current attempt
	Deaths     int    // Deaths on the current level
	CoinsLeft  int    // Collectibles remaining on the current level
}

// EventKind identifies what happened during a step.
type EventKind int

const (
	EventLevelFinished EventKind = iota + 1
)

// Event is emitted by Game.Step for the platform to record.
type Event struct {
	Kind    EventKind
	LevelID string
	Status  string  // Final status of the attempt: "won" or "lost"
	Elapsed float64 // Simulated seconds spent in the attempt, lingering included
	Deaths  int     // Deaths on the level so far, this attempt included
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
