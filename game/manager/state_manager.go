package manager

import (
	"context"
	"fmt"
	"log/slog"
)

// HighScoreStore persists the best score across sessions
type HighScoreStore interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, score int) error
}

// StateManager keeps the running score, the scores of finished games and
// the all-time high score.
type StateManager struct {
	store        HighScoreStore
	log          *slog.Logger
	score        int
	highScore    int
	scoreHistory []int
}

func NewStateManager(store HighScoreStore, logger *slog.Logger) *StateManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateManager{
		store:        store,
		log:          logger,
		scoreHistory: make([]int, 0),
	}
}

// LoadStats reads the high score. A failed read leaves it at zero.
func (sm *StateManager) LoadStats(ctx context.Context) error {
	if sm.store == nil {
		return nil
	}
	high, err := sm.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load high score: %w", err)
	}
	sm.highScore = high
	return nil
}

// AddPoint increments the running score and returns it
func (sm *StateManager) AddPoint() int {
	sm.score++
	return sm.score
}

// FinishGame records the score and persists it when it beats the high score
func (sm *StateManager) FinishGame(ctx context.Context) (bool, error) {
	sm.scoreHistory = append(sm.scoreHistory, sm.score)
	if sm.score <= sm.highScore {
		return false, nil
	}
	sm.highScore = sm.score
	sm.log.Info("new high score", "score", sm.score)
	if sm.store == nil {
		return true, nil
	}
	if err := sm.store.Save(ctx, sm.highScore); err != nil {
		return true, fmt.Errorf("save high score: %w", err)
	}
	return true, nil
}

func (sm *StateManager) ResetScore() {
	sm.score = 0
}

func (sm *StateManager) GetScore() int {
	return sm.score
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

func (sm *StateManager) GetScoreHistory() []int {
	return sm.scoreHistory
}

// AverageScore over finished games, zero before the first one
func (sm *StateManager) AverageScore() float64 {
	if len(sm.scoreHistory) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sm.scoreHistory {
		sum += s
	}
	return float64(sum) / float64(len(sm.scoreHistory))
}
