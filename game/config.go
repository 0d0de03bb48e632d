package game

import (
	"fmt"
	"log/slog"

	"snake-autopilot/ai"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
)

// Defaults match the classic board: 25x12, snake at (2,2) heading down
const (
	DefaultWidth  = 25
	DefaultHeight = 12
)

type Config struct {
	Grid           types.Grid
	Start          types.Point
	StartDirection types.Direction
	Strategy       ai.Kind
	AIEnabled      bool
	// Seed drives food placement; equal seeds replay equal games
	Seed uint64

	Store manager.HighScoreStore
	// StatsFile keeps the session history as JSON; empty keeps it in memory
	StatsFile string
	Logger    *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Grid:           types.Grid{Width: DefaultWidth, Height: DefaultHeight},
		Start:          types.Point{X: 2, Y: 2},
		StartDirection: types.Down,
		Strategy:       ai.KindAStar,
		AIEnabled:      true,
	}
}

func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if !c.Grid.InBounds(c.Start) {
		return fmt.Errorf("start %v outside %dx%d grid", c.Start, c.Grid.Width, c.Grid.Height)
	}
	if _, err := ai.NewStrategy(c.Strategy); err != nil {
		return err
	}
	return nil
}
