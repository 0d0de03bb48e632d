package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// GroupSize records of one compression level fold into a single record of
// the next level
const GroupSize = 100

// SessionResult is what a finished session reports
type SessionResult struct {
	Start    time.Time
	End      time.Time
	Score    int
	Steps    int
	Strategy string
	Cause    CollisionType
}

// GameRecord is a single session (CompressionIndex 0) or a group of
// sessions folded together.
type GameRecord struct {
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Strategy         string    `json:"strategy,omitempty"` // single sessions only
	Cause            string    `json:"cause,omitempty"`    // single sessions only
	Steps            int       `json:"steps"`
	CompressionIndex int       `json:"compressionIndex"`
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MedianScore      float64   `json:"medianScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"`
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
}

// StatsManager keeps the history of finished sessions, optionally backed by
// a JSON file
type StatsManager struct {
	mu    sync.RWMutex
	games []GameRecord
	path  string
}

// NewStatsManager loads the history at path. An empty path keeps the
// history in memory; a missing file starts an empty one.
func NewStatsManager(path string) (*StatsManager, error) {
	sm := &StatsManager{games: make([]GameRecord, 0), path: path}
	if path == "" {
		return sm, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return sm, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}
	if err := json.Unmarshal(data, &sm.games); err != nil {
		return nil, fmt.Errorf("parse stats %s: %w", path, err)
	}
	return sm, nil
}

func (sm *StatsManager) AddGame(r SessionResult) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	duration := r.End.Sub(r.Start).Seconds()
	sm.games = append(sm.games, GameRecord{
		StartTime:       r.Start,
		EndTime:         r.End,
		Strategy:        r.Strategy,
		Cause:           r.Cause.String(),
		Steps:           r.Steps,
		GamesCount:      1,
		AverageScore:    float64(r.Score),
		MedianScore:     float64(r.Score),
		MaxScore:        r.Score,
		MinScore:        r.Score,
		AverageDuration: duration,
		MaxDuration:     duration,
		MinDuration:     duration,
	})
	sm.groupGames()
}

// groupGames folds every full run of GroupSize records of one level into a
// record of the next level, cascading upwards
func (sm *StatsManager) groupGames() {
	sort.SliceStable(sm.games, func(i, j int) bool {
		if sm.games[i].CompressionIndex != sm.games[j].CompressionIndex {
			return sm.games[i].CompressionIndex < sm.games[j].CompressionIndex
		}
		return sm.games[i].StartTime.Before(sm.games[j].StartTime)
	})

	for level := 0; ; level++ {
		var records, rest []GameRecord
		for _, g := range sm.games {
			if g.CompressionIndex == level {
				records = append(records, g)
			} else {
				rest = append(rest, g)
			}
		}
		if len(records) < GroupSize {
			return
		}

		var folded []GameRecord
		for i := 0; i < len(records); i += GroupSize {
			if i+GroupSize > len(records) {
				folded = append(folded, records[i:]...)
				break
			}
			folded = append(folded, fold(records[i:i+GroupSize], level+1))
		}
		sm.games = append(rest, folded...)
	}
}

func fold(group []GameRecord, level int) GameRecord {
	out := GameRecord{
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}
	var totalScore, totalDuration float64
	medians := make([]float64, 0, len(group))
	for _, g := range group {
		out.MaxScore = max(out.MaxScore, g.MaxScore)
		out.MinScore = min(out.MinScore, g.MinScore)
		out.MaxDuration = max(out.MaxDuration, g.MaxDuration)
		out.MinDuration = min(out.MinDuration, g.MinDuration)
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		out.Steps += g.Steps
		out.GamesCount += g.GamesCount
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}
	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	out.MedianScore = median(medians)
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// Records returns a copy of the history
func (sm *StatsManager) Records() []GameRecord {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]GameRecord, len(sm.games))
	copy(out, sm.games)
	return out
}

func (sm *StatsManager) GamesPlayed() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	total := 0
	for _, g := range sm.games {
		total += g.GamesCount
	}
	return total
}

func (sm *StatsManager) AverageScore() float64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	var total float64
	var games int
	for _, g := range sm.games {
		total += g.AverageScore * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// MedianScore weights each record's median by its game count
func (sm *StatsManager) MedianScore() float64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	var all []float64
	for _, g := range sm.games {
		for i := 0; i < g.GamesCount; i++ {
			all = append(all, g.MedianScore)
		}
	}
	return median(all)
}

func (sm *StatsManager) MaxScore() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	best := 0
	for _, g := range sm.games {
		best = max(best, g.MaxScore)
	}
	return best
}

// AverageDuration is in seconds
func (sm *StatsManager) AverageDuration() float64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	var total float64
	var games int
	for _, g := range sm.games {
		total += g.AverageDuration * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// Save writes the history as JSON; a no-op for an in-memory history
func (sm *StatsManager) Save() error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(sm.path), 0o755); err != nil {
		return fmt.Errorf("create stats dir: %w", err)
	}
	data, err := json.MarshalIndent(sm.games, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := os.WriteFile(sm.path, data, 0o644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
