package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameAutoPass(t *testing.T) {
	b, err := FromBits(A1.Bit(), B1.Bit())
	require.NoError(t, err)

	g := NewGameFrom(NewState(b, White))
	assert.Equal(t, Black, g.Turn())
	assert.Equal(t, []Square{Pass}, g.History())

	_, err = g.Winner()
	assert.ErrorIs(t, err, ErrGameNotOver)

	require.NoError(t, g.Play(C1))
	assert.True(t, g.IsOver())

	black, white := g.Score()
	assert.Equal(t, 3, black)
	assert.Equal(t, 0, white)

	winner, err := g.Winner()
	require.NoError(t, err)
	assert.Equal(t, BlackWins, winner)
	assert.Equal(t, []Square{Pass, C1}, g.History())
}

func TestGameRejectsIllegal(t *testing.T) {
	g := NewGame()

	assert.ErrorIs(t, g.Play(E5), ErrIllegalMove)
	assert.Empty(t, g.History())
	assert.Equal(t, Black, g.Turn())

	require.NoError(t, g.Play(D3))
	assert.Equal(t, White, g.Turn())
	assert.Equal(t, []Square{D3}, g.History())
}

func TestGamePlayout(t *testing.T) {
	g := NewGame()
	for !g.IsOver() {
		moves := g.State().LegalMoves()
		require.NotEmpty(t, moves)
		require.NoError(t, g.Play(moves[0]))
	}

	black, white := g.Score()
	assert.LessOrEqual(t, black+white, 64)

	winner, err := g.Winner()
	require.NoError(t, err)
	switch {
	case black > white:
		assert.Equal(t, BlackWins, winner)
	case white > black:
		assert.Equal(t, WhiteWins, winner)
	default:
		assert.Equal(t, Draw, winner)
	}
}
