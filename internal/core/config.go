package core

// RuntimeConfig is passed to the game at reset.
type RuntimeConfig struct {
	ScreenW  int // viewport width in cells
	ScreenH  int // viewport height in cells
	TickRate int // simulation ticks per second
}

// DefaultConfig returns an 80×24 viewport at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the status the platform shows around the game.
type GameState struct {
	Level    string // current level ID
	Deaths   int
	Unlocked int  // abilities held
	Complete bool // level exit reached
	Paused   bool
}
