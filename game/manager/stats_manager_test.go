package manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func session(i, score int) SessionResult {
	start := epoch.Add(time.Duration(i) * time.Minute)
	return SessionResult{
		Start:    start,
		End:      start.Add(time.Duration(score+1) * time.Second),
		Score:    score,
		Steps:    10 * (score + 1),
		Strategy: "A*",
		Cause:    WallCollision,
	}
}

func TestStatsSingleGames(t *testing.T) {
	sm, err := NewStatsManager("")
	require.NoError(t, err)
	assert.Equal(t, 0, sm.GamesPlayed())
	assert.Zero(t, sm.AverageScore())
	assert.Zero(t, sm.MedianScore())

	for i, score := range []int{4, 1, 7} {
		sm.AddGame(session(i, score))
	}

	assert.Equal(t, 3, sm.GamesPlayed())
	assert.InDelta(t, 4.0, sm.AverageScore(), 1e-9)
	assert.InDelta(t, 4.0, sm.MedianScore(), 1e-9)
	assert.Equal(t, 7, sm.MaxScore())
	assert.InDelta(t, 5.0, sm.AverageDuration(), 1e-9)

	records := sm.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "wall", records[0].Cause)
	assert.Equal(t, "A*", records[0].Strategy)
	assert.Equal(t, 50, records[0].Steps)
}

func TestStatsGroupsFullRuns(t *testing.T) {
	sm, err := NewStatsManager("")
	require.NoError(t, err)

	for i := 0; i < GroupSize; i++ {
		sm.AddGame(session(i, i))
	}
	records := sm.Records()
	require.Len(t, records, 1)
	group := records[0]
	assert.Equal(t, 1, group.CompressionIndex)
	assert.Equal(t, GroupSize, group.GamesCount)
	assert.Equal(t, 0, group.MinScore)
	assert.Equal(t, GroupSize-1, group.MaxScore)
	assert.InDelta(t, 49.5, group.AverageScore, 1e-9)
	assert.InDelta(t, 49.5, group.MedianScore, 1e-9)
	assert.Equal(t, epoch, group.StartTime)
	assert.Empty(t, group.Cause)

	sm.AddGame(session(GroupSize, 3))
	assert.Len(t, sm.Records(), 2)
	assert.Equal(t, GroupSize+1, sm.GamesPlayed())
	assert.Equal(t, GroupSize-1, sm.MaxScore())
}

func TestStatsFilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "stats.json")

	sm, err := NewStatsManager(path)
	require.NoError(t, err)
	sm.AddGame(session(0, 5))
	sm.AddGame(session(1, 9))
	require.NoError(t, sm.Save())

	reloaded, err := NewStatsManager(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.GamesPlayed())
	assert.Equal(t, 9, reloaded.MaxScore())

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = NewStatsManager(path)
	assert.Error(t, err)
}
