package game

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"snake-autopilot/ai"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
	"snake-autopilot/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	eaten []int
	over  []manager.CollisionType
}

func (r *recorder) FoodEaten(score int) { r.eaten = append(r.eaten, score) }

func (r *recorder) GameOver(_ int, cause manager.CollisionType) { r.over = append(r.over, cause) }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Store = store.NewMemoryStore(0)
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func newTestGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	g, err := NewGame(context.Background(), cfg)
	require.NoError(t, err)
	return g
}

func TestNewGameDefaults(t *testing.T) {
	g := newTestGame(t, testConfig())

	assert.Equal(t, []types.Point{{X: 2, Y: 2}}, g.Snake.Body)
	assert.Equal(t, types.Down, g.Snake.Direction)
	assert.Equal(t, ai.KindAStar, g.Strategy())
	assert.True(t, g.AIEnabled)
	assert.False(t, g.Over)
	assert.NotEmpty(t, g.UUID)
	assert.True(t, g.Grid.InBounds(g.Food))
	assert.NotEqual(t, g.Snake.Head(), g.Food)
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = types.Grid{Width: 5, Height: 5}
	_, err := NewGame(context.Background(), cfg)
	assert.ErrorIs(t, err, ai.ErrNoClosedTour)

	cfg = testConfig()
	cfg.Grid = types.Grid{Width: 0, Height: 4}
	_, err = NewGame(context.Background(), cfg)
	assert.ErrorIs(t, err, types.ErrInvalidGrid)

	cfg = testConfig()
	cfg.Start = types.Point{X: 40, Y: 0}
	_, err = NewGame(context.Background(), cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Strategy = ai.Kind(7)
	_, err = NewGame(context.Background(), cfg)
	assert.ErrorIs(t, err, ai.ErrUnknownStrategy)
}

func TestAutopilotEatsAndSurvives(t *testing.T) {
	for _, kind := range []ai.Kind{ai.KindAStar, ai.KindBFS} {
		cfg := testConfig()
		cfg.Strategy = kind
		g := newTestGame(t, cfg)
		rec := &recorder{}
		g.AddListener(rec)

		require.NoError(t, Run(context.Background(), g, 300, 0), kind.String())
		assert.Greater(t, g.Score(), 0, kind.String())
		assert.Len(t, rec.eaten, g.Score())
		assert.Equal(t, g.Score()+1, g.Snake.Length)
		if !g.Over {
			assert.Equal(t, 300, g.Steps)
		}
	}
}

func TestManualModeHitsWall(t *testing.T) {
	cfg := testConfig()
	cfg.AIEnabled = false
	cfg.Grid = types.Grid{Width: 6, Height: 4}
	cfg.Start = types.Point{X: 1, Y: 1}
	cfg.StartDirection = types.Right
	g := newTestGame(t, cfg)
	g.Food = types.Point{X: 0, Y: 3}
	rec := &recorder{}
	g.AddListener(rec)

	// reversal is refused, the snake keeps going right
	assert.False(t, g.Steer(types.Left))

	require.NoError(t, Run(context.Background(), g, 0, 0))
	assert.True(t, g.Over)
	assert.Equal(t, manager.WallCollision, g.Cause)
	assert.Equal(t, 5, g.Steps)
	assert.Equal(t, []manager.CollisionType{manager.WallCollision}, rec.over)

	// no more ticks after the session ended
	require.NoError(t, g.Update(context.Background()))
	assert.Equal(t, 5, g.Steps)
	assert.False(t, g.Steer(types.Up))
}

func TestEatingGrowsAndPersistsHighScore(t *testing.T) {
	ctx := context.Background()
	highScores := store.NewMemoryStore(0)
	cfg := testConfig()
	cfg.Store = highScores
	cfg.AIEnabled = false
	cfg.Grid = types.Grid{Width: 6, Height: 4}
	cfg.Start = types.Point{X: 0, Y: 0}
	cfg.StartDirection = types.Right
	g := newTestGame(t, cfg)

	g.Food = types.Point{X: 1, Y: 0}
	require.NoError(t, g.Update(ctx))
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, 2, g.Snake.Length)
	assert.Equal(t, 1, g.Snake.Len())
	assert.NotContains(t, g.Snake.Body, g.Food)

	g.Food = types.Point{X: 0, Y: 3}
	require.NoError(t, g.Update(ctx))
	assert.Equal(t, 2, g.Snake.Len())

	for !g.Over {
		require.NoError(t, g.Update(ctx))
	}
	assert.Equal(t, manager.WallCollision, g.Cause)
	assert.Equal(t, 1, g.HighScore())
	saved, err := highScores.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.Equal(t, 1, g.GamesPlayed())
	records := g.Stats().Records()
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].MaxScore)
	assert.Equal(t, "wall", records[0].Cause)
	assert.Equal(t, g.Steps, records[0].Steps)

	require.NoError(t, g.Reset())
	assert.False(t, g.Over)
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 1, g.HighScore())
	assert.Equal(t, []types.Point{{X: 0, Y: 0}}, g.Snake.Body)
}

func TestHighScoreLoadedFromStore(t *testing.T) {
	cfg := testConfig()
	cfg.Store = store.NewMemoryStore(12)
	g := newTestGame(t, cfg)
	assert.Equal(t, 12, g.HighScore())
}

func TestStrategyAndModeToggles(t *testing.T) {
	g := newTestGame(t, testConfig())

	g.ToggleStrategy()
	assert.Equal(t, ai.KindBFS, g.Strategy())
	g.ToggleStrategy()
	assert.Equal(t, ai.KindAStar, g.Strategy())
	require.NoError(t, g.SetStrategy(ai.KindBFS))
	assert.Error(t, g.SetStrategy(ai.Kind(5)))
	assert.Equal(t, ai.KindBFS, g.Strategy())

	assert.False(t, g.Steer(types.Right), "AI is driving")
	g.ToggleAI()
	assert.False(t, g.AIEnabled)
	assert.True(t, g.Steer(types.Right))
}

func TestSeededGamesReplay(t *testing.T) {
	a := newTestGame(t, testConfig())
	b := newTestGame(t, testConfig())

	for i := 0; i < 150 && !a.Over; i++ {
		require.NoError(t, a.Update(context.Background()))
		require.NoError(t, b.Update(context.Background()))
		require.Equal(t, a.Snake.Body, b.Snake.Body, "tick %d", i)
		require.Equal(t, a.Food, b.Food, "tick %d", i)
	}
}

func TestFallbackSurvivesUnreachableFood(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = types.Grid{Width: 4, Height: 4}
	cfg.Start = types.Point{X: 0, Y: 0}
	cfg.StartDirection = types.Right
	g := newTestGame(t, cfg)

	// food off the board: every search fails, the cycle drives
	g.Food = types.Point{X: -1, Y: -1}
	cycle := g.FallbackCycle()
	for i := 1; i <= 3*cycle.Len(); i++ {
		require.NoError(t, g.Update(context.Background()))
		require.False(t, g.Over, "tick %d", i)
		require.True(t, g.LastDecision.Fallback)
		require.Equal(t, cycle.At(i), g.Snake.Head(), "tick %d", i)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	g := newTestGame(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, Run(ctx, g, 0, time.Hour), context.Canceled)
	assert.ErrorIs(t, Run(ctx, g, 0, 0), context.Canceled)
	assert.Equal(t, 0, g.Steps)
}

func TestApplyCommands(t *testing.T) {
	cfg := testConfig()
	cfg.AIEnabled = false
	cfg.Grid = types.Grid{Width: 6, Height: 4}
	cfg.Start = types.Point{X: 1, Y: 1}
	cfg.StartDirection = types.Right
	g := newTestGame(t, cfg)

	tests := []struct {
		cmd  Command
		quit bool
	}{
		{CmdBFS, false},
		{CmdDown, false},
		{CmdToggleStrategy, false},
		{CmdNone, false},
		{CmdQuit, true},
	}
	for _, tt := range tests {
		quit, err := g.Apply(tt.cmd)
		require.NoError(t, err)
		assert.Equal(t, tt.quit, quit)
	}
	assert.Equal(t, types.Down, g.Snake.Direction)
	assert.Equal(t, ai.KindAStar, g.Strategy())

	// restart is ignored while the session runs
	_, err := g.Apply(CmdRestart)
	require.NoError(t, err)
	id := g.UUID

	g.Food = types.Point{X: 5, Y: 0}
	require.NoError(t, Run(context.Background(), g, 0, 0))
	require.True(t, g.Over)
	assert.Equal(t, id, g.UUID)

	_, err = g.Apply(CmdRestart)
	require.NoError(t, err)
	assert.False(t, g.Over)
	assert.NotEqual(t, id, g.UUID)

	_, err = g.Apply(CmdToggleAI)
	require.NoError(t, err)
	assert.True(t, g.AIEnabled)
}

func TestStuckNavigatorEndsSession(t *testing.T) {
	highScores := store.NewMemoryStore(0)
	cfg := testConfig()
	cfg.Store = highScores
	cfg.Grid = types.Grid{Width: 2, Height: 2}
	cfg.Start = types.Point{X: 0, Y: 0}
	g := newTestGame(t, cfg)
	rec := &recorder{}
	g.AddListener(rec)

	// the body covers the board and the food is unreachable
	g.Snake.Body = []types.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	g.Snake.Length = 4
	g.Snake.Direction = types.Up
	g.Food = types.Point{X: -1, Y: -1}
	g.stateMgr.AddPoint()

	err := g.Update(context.Background())
	require.ErrorIs(t, err, ai.ErrFallbackExhausted)
	assert.True(t, g.Over)
	assert.Equal(t, manager.Stuck, g.Cause)
	assert.Equal(t, []manager.CollisionType{manager.Stuck}, rec.over)

	records := g.Stats().Records()
	require.Len(t, records, 1)
	assert.Equal(t, "stuck", records[0].Cause)
	saved, err := highScores.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
}

func TestTwoCellSnakeTurnsInsteadOfCrashing(t *testing.T) {
	cfg := testConfig()
	cfg.Strategy = ai.KindBFS
	cfg.Grid = types.Grid{Width: 4, Height: 4}
	g := newTestGame(t, cfg)

	g.Snake.Body = []types.Point{{X: 3, Y: 1}, {X: 2, Y: 1}}
	g.Snake.Length = 2
	g.Snake.Direction = types.Right
	g.Food = types.Point{X: 1, Y: 1}

	require.NoError(t, g.Update(context.Background()))
	assert.False(t, g.Over)
	assert.False(t, g.LastDecision.Fallback)
	assert.Contains(t, []types.Point{{X: 3, Y: 0}, {X: 3, Y: 2}}, g.Snake.Head())
}
