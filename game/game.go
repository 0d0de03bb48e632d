package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"snake-autopilot/ai"
	"snake-autopilot/game/entity"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"

	"github.com/google/uuid"
)

// Listener receives session events, e.g. to play sounds
type Listener interface {
	FoodEaten(score int)
	GameOver(score int, cause manager.CollisionType)
}

// Game is one snake on one board. Update advances it by a single tick;
// it must only be called from one goroutine.
type Game struct {
	UUID      string
	Grid      types.Grid
	Snake     *entity.Snake
	Food      types.Point
	AIEnabled bool
	Over      bool
	Cause     manager.CollisionType
	Steps     int
	StartTime time.Time

	// LastDecision is the navigator's answer for the latest AI tick
	LastDecision ai.Decision

	cfg          Config
	nav          *ai.Navigator
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager
	statsMgr     *manager.StatsManager
	listeners    []Listener
	log          *slog.Logger
}

func NewGame(ctx context.Context, cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	nav, err := ai.NewNavigator(cfg.Grid, cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("navigator: %w", err)
	}
	collisionMgr := manager.NewCollisionManager(cfg.Grid)
	statsMgr, err := manager.NewStatsManager(cfg.StatsFile)
	if err != nil {
		return nil, err
	}

	g := &Game{
		Grid:         cfg.Grid,
		Snake:        entity.NewSnake(cfg.Start, cfg.StartDirection),
		AIEnabled:    cfg.AIEnabled,
		cfg:          cfg,
		nav:          nav,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(cfg.Grid, cfg.Seed, collisionMgr),
		stateMgr:     manager.NewStateManager(cfg.Store, logger),
		statsMgr:     statsMgr,
		log:          logger,
	}

	if err := g.stateMgr.LoadStats(ctx); err != nil {
		logger.Warn("high score unavailable, starting from zero", "error", err)
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset starts a new session on the same board, keeping the high score
func (g *Game) Reset() error {
	g.UUID = uuid.New().String()
	g.Snake.Reset(g.cfg.Start, g.cfg.StartDirection)
	g.nav.Reset()
	g.stateMgr.ResetScore()
	g.Over = false
	g.Cause = manager.NoCollision
	g.Steps = 0
	g.StartTime = time.Now()
	g.LastDecision = ai.Decision{}

	food, err := g.foodMgr.GenerateFood(g.Snake)
	if err != nil {
		return fmt.Errorf("place food: %w", err)
	}
	g.Food = food

	g.log.Info("session started",
		"session", g.UUID,
		"grid", fmt.Sprintf("%dx%d", g.Grid.Width, g.Grid.Height),
		"strategy", g.nav.Kind().String(),
		"ai", g.AIEnabled)
	return nil
}

// Update runs one tick: decide, move, resolve collisions, eat.
// An error means the navigator broke an invariant; the session is over.
func (g *Game) Update(ctx context.Context) error {
	if g.Over {
		return nil
	}
	g.Steps++

	if g.AIEnabled {
		d, err := g.nav.Decide(ai.Situation{
			Body:    g.Snake.Body,
			Heading: g.Snake.Direction,
			Target:  g.Food,
			Growing: g.Snake.Growing(),
		})
		if err != nil {
			g.log.Error("navigation failed", "session", g.UUID, "step", g.Steps, "error", err)
			g.endGame(ctx, manager.Stuck)
			return fmt.Errorf("navigate: %w", err)
		}
		if d.Fallback {
			g.log.Debug("following fallback cycle", "session", g.UUID, "step", g.Steps, "cell", d.Step.String())
		}
		g.Snake.SetDirection(d.Heading)
		g.LastDecision = d
	}

	next := g.Snake.NextHead()
	g.Snake.Advance(next)

	if cause := g.collisionMgr.Check(g.Snake); cause != manager.NoCollision {
		g.endGame(ctx, cause)
		return nil
	}

	if g.collisionMgr.IsFoodCollision(next, g.Food) {
		g.Snake.Grow()
		score := g.stateMgr.AddPoint()
		for _, l := range g.listeners {
			l.FoodEaten(score)
		}

		food, err := g.foodMgr.GenerateFood(g.Snake)
		if errors.Is(err, manager.ErrBoardFull) {
			g.endGame(ctx, manager.BoardFull)
			return nil
		}
		if err != nil {
			return fmt.Errorf("place food: %w", err)
		}
		g.Food = food
	}
	return nil
}

func (g *Game) endGame(ctx context.Context, cause manager.CollisionType) {
	g.Over = true
	g.Cause = cause

	record, err := g.stateMgr.FinishGame(ctx)
	if err != nil {
		g.log.Error("high score not saved", "session", g.UUID, "error", err)
	}
	g.statsMgr.AddGame(manager.SessionResult{
		Start:    g.StartTime,
		End:      time.Now(),
		Score:    g.Score(),
		Steps:    g.Steps,
		Strategy: g.nav.Kind().String(),
		Cause:    cause,
	})
	g.log.Info("session over",
		"session", g.UUID,
		"cause", cause.String(),
		"score", g.Score(),
		"high_score", g.HighScore(),
		"record", record,
		"steps", g.Steps)

	for _, l := range g.listeners {
		l.GameOver(g.Score(), cause)
	}
}

func (g *Game) AddListener(l Listener) {
	g.listeners = append(g.listeners, l)
}

// Steer applies a manual heading change; ignored while the AI drives
func (g *Game) Steer(dir types.Direction) bool {
	if g.AIEnabled || g.Over {
		return false
	}
	return g.Snake.SetDirection(dir)
}

func (g *Game) ToggleAI() {
	g.AIEnabled = !g.AIEnabled
	g.log.Info("mode changed", "session", g.UUID, "ai", g.AIEnabled)
}

func (g *Game) Strategy() ai.Kind {
	return g.nav.Kind()
}

func (g *Game) SetStrategy(kind ai.Kind) error {
	if err := g.nav.SetKind(kind); err != nil {
		return err
	}
	g.log.Info("strategy changed", "session", g.UUID, "strategy", kind.String())
	return nil
}

func (g *Game) ToggleStrategy() {
	// Next always yields a known kind
	_ = g.SetStrategy(g.nav.Kind().Next())
}

// FallbackCycle exposes the navigator's tour for drawing
func (g *Game) FallbackCycle() *ai.Cycle {
	return g.nav.Cycle()
}

func (g *Game) Score() int {
	return g.stateMgr.GetScore()
}

func (g *Game) HighScore() int {
	return g.stateMgr.GetHighScore()
}

func (g *Game) AverageScore() float64 {
	return g.stateMgr.AverageScore()
}

func (g *Game) GamesPlayed() int {
	return len(g.stateMgr.GetScoreHistory())
}

// Stats is the history of finished sessions, including earlier runs when
// it is file backed
func (g *Game) Stats() *manager.StatsManager {
	return g.statsMgr
}

func (g *Game) SaveStats() error {
	return g.statsMgr.Save()
}

// ElapsedTime returns the current session duration in seconds
func (g *Game) ElapsedTime() float64 {
	return time.Since(g.StartTime).Seconds()
}
