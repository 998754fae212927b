package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/othelloplay/internal/eval"
	"github.com/hailam/othelloplay/internal/storage"
)

func TestMatch(t *testing.T) {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	greedy := testConfig(NegaAlpha, 1)
	greedy.Evaluator = eval.KindSimple
	scout := testConfig(NegaScout, 2)

	res, err := Match(context.Background(),
		Player{Name: "greedy", Config: greedy},
		Player{Name: "scout", Config: scout},
		MatchOptions{Games: 4, Parallel: 2, OpeningMoves: 4, Seed: 7, Store: store},
	)
	require.NoError(t, err)
	require.Len(t, res.Records, 4)

	for i, rec := range res.Records {
		if i%2 == 0 {
			assert.Equal(t, "greedy", rec.Black)
			assert.Equal(t, "scout", rec.White)
		} else {
			assert.Equal(t, "scout", rec.Black)
			assert.Equal(t, "greedy", rec.White)
		}
		assert.LessOrEqual(t, rec.BlackStones+rec.WhiteStones, 64)
		assert.Len(t, rec.Opening, 4)
		assert.Equal(t, rec.Opening, rec.Moves[:len(rec.Opening)])
		assert.NotZero(t, rec.ID)
	}
	// Paired games share their opening.
	assert.Equal(t, res.Records[0].Opening, res.Records[1].Opening)
	assert.Equal(t, res.Records[2].Opening, res.Records[3].Opening)

	assert.Equal(t, 4, res.Wins("greedy")+res.Wins("scout")+res.Draws())
	assert.InDelta(t, 4.0, res.Score("greedy")+res.Score("scout"), 1e-9)

	stats, err := store.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.GamesPlayed)
	assert.Equal(t, res.Wins("greedy"), stats.ByPlayer["greedy"].Wins)
	assert.Equal(t, res.Draws(), stats.Draws)

	games, err := store.Games(0)
	require.NoError(t, err)
	assert.Len(t, games, 4)
}

func TestMatchSameNames(t *testing.T) {
	cfg := testConfig(NegaAlpha, 1)
	res, err := Match(context.Background(), Player{Config: cfg}, Player{Config: cfg},
		MatchOptions{Games: 2, Parallel: 1, OpeningMoves: 2})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "negaalpha/blend#1", res.Records[0].Black)
	assert.Equal(t, "negaalpha/blend#2", res.Records[0].White)
}

func TestMatchInvalid(t *testing.T) {
	cfg := testConfig(NegaAlpha, 1)
	_, err := Match(context.Background(), Player{Config: cfg}, Player{Config: cfg}, MatchOptions{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad := cfg
	bad.Depth = -3
	_, err = Match(context.Background(), Player{Config: bad}, Player{Config: cfg}, MatchOptions{Games: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
