package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAnalysisRoundTrip(t *testing.T) {
	s := openTest(t)

	_, err := s.LoadAnalysis("pos", "negascout/blend/1", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	a := Analysis{
		Notation:  "pos",
		Settings:  "negascout/blend/1",
		Algorithm: "negascout",
		Evaluator: "blend",
		Depth:     6,
		Move:      "d3",
		HasMove:   true,
		Score:     12,
		Nodes:     4000,
		PV:        []string{"d3", "c5"},
	}
	require.NoError(t, s.SaveAnalysis(a))

	got, err := s.LoadAnalysis("pos", "negascout/blend/1", 6)
	require.NoError(t, err)
	assert.Equal(t, "d3", got.Move)
	assert.Equal(t, 12, got.Score)
	assert.Equal(t, []string{"d3", "c5"}, got.PV)
	assert.False(t, got.SavedAt.IsZero())

	// Deeper lookups miss; other settings miss.
	_, err = s.LoadAnalysis("pos", "negascout/blend/1", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.LoadAnalysis("pos", "negascout/blend/2", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalysisKeepsDeeper(t *testing.T) {
	s := openTest(t)

	deep := Analysis{Notation: "p", Settings: "a/e", Depth: 8, Move: "f5"}
	shallow := Analysis{Notation: "p", Settings: "a/e", Depth: 3, Move: "c4"}
	require.NoError(t, s.SaveAnalysis(deep))
	require.NoError(t, s.SaveAnalysis(shallow))

	got, err := s.LoadAnalysis("p", "a/e", 1)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Depth)
	assert.Equal(t, "f5", got.Move)

	deeper := Analysis{Notation: "p", Settings: "a/e", Depth: 9, Move: "e6"}
	require.NoError(t, s.SaveAnalysis(deeper))
	got, err = s.LoadAnalysis("p", "a/e", 1)
	require.NoError(t, err)
	assert.Equal(t, "e6", got.Move)
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Zero(t, stats.GamesPlayed)

	results := []GameRecord{
		{Black: "alpha", White: "beta", Winner: "black", BlackStones: 40, WhiteStones: 24, Duration: time.Second},
		{Black: "beta", White: "alpha", Winner: "black", BlackStones: 33, WhiteStones: 31, Duration: time.Second},
		{Black: "alpha", White: "beta", Winner: "draw", BlackStones: 32, WhiteStones: 32, Duration: time.Second},
	}
	for i, r := range results {
		rec, err := s.RecordGame(r)
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), rec.ID)
	}

	stats, err = s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.GamesPlayed)
	assert.Equal(t, 2, stats.BlackWins)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 3*time.Second, stats.TotalTime)
	assert.Equal(t, PlayerStats{Wins: 1, Losses: 1, Draws: 1}, *stats.ByPlayer["alpha"])
	assert.InDelta(t, 1.5, stats.Score("beta"), 1e-9)
	assert.Zero(t, stats.Score("nobody"))

	games, err := s.Games(0)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "beta", games[1].Black)

	games, err = s.Games(2)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestRecordGameConcurrent(t *testing.T) {
	s := openTest(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RecordGame(GameRecord{Black: "a", White: "b", Winner: "white"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 8, stats.GamesPlayed)
	assert.Equal(t, 8, stats.ByPlayer["b"].Wins)
}

func TestOpenOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveAnalysis(Analysis{Notation: "x", Settings: "a/e", Depth: 2}))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.LoadAnalysis("x", "a/e", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Depth)
}

func TestDataPaths(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvDataDir, filepath.Join(root, "data"))

	dataDir, err := GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data"), dataDir)

	dbDir, err := GetDatabaseDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data", "db"), dbDir)

	info, err := os.Stat(dbDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
