package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableProbeStore(t *testing.T) {
	tt := NewTableEntries[int](1000)
	assert.Equal(t, uint64(512), tt.Size())

	key := [2]uint64{1, 2}
	_, ok := tt.Probe(42, key)
	assert.False(t, ok)

	tt.Store(42, key, 3, -17, LowerBound, 7, true)
	e, ok := tt.Probe(42, key)
	require.True(t, ok)
	assert.Equal(t, int32(-17), e.Score)
	assert.Equal(t, int16(3), e.Depth)
	assert.Equal(t, LowerBound, e.Bound)
	assert.Equal(t, 7, e.BestMove)
	assert.True(t, e.HasMove)

	assert.InDelta(t, 50.0, tt.HitRate(), 0.001)
}

func TestTableIgnoresDepthZero(t *testing.T) {
	tt := NewTableEntries[int](16)
	tt.Store(5, [2]uint64{}, 0, 1, Exact, 0, false)
	_, ok := tt.Probe(5, [2]uint64{})
	assert.False(t, ok)
	assert.Zero(t, tt.Stats().Stores)
}

func TestTableVerify(t *testing.T) {
	tt := NewTableEntries[int](16)
	tt.Store(9, [2]uint64{1, 1}, 2, 10, Exact, 0, false)

	_, ok := tt.Probe(9, [2]uint64{2, 2})
	assert.False(t, ok)
	assert.Equal(t, uint64(1), tt.Stats().Collisions)

	tt.SetVerify(false)
	_, ok = tt.Probe(9, [2]uint64{2, 2})
	assert.True(t, ok)
}

func TestTableReplacement(t *testing.T) {
	tests := []struct {
		name      string
		policy    Replacement
		newSearch bool
		wantDepth int16
	}{
		{"deeper keeps deep entry", ReplaceDeeper, false, 6},
		{"deeper replaces old search", ReplaceDeeper, true, 2},
		{"always replaces", ReplaceAlways, false, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt := NewTableEntries[int](16)
			tt.SetReplacement(tc.policy)

			tt.Store(3, [2]uint64{}, 6, 1, Exact, 0, false)
			if tc.newSearch {
				tt.NewSearch()
			}
			// Same slot, different position.
			tt.Store(3+16, [2]uint64{}, 2, 1, Exact, 0, false)

			e := tt.entries[3]
			assert.Equal(t, tc.wantDepth, e.Depth)
		})
	}
}

func TestTableClear(t *testing.T) {
	tt := NewTableEntries[int](64)
	for i := uint64(0); i < 64; i++ {
		tt.Store(i, [2]uint64{i}, 1, 0, Exact, 0, false)
	}
	assert.Equal(t, 1000, tt.HashFull())

	tt.NewSearch()
	assert.Zero(t, tt.HashFull())

	tt.Clear()
	_, ok := tt.Probe(1, [2]uint64{1})
	assert.False(t, ok)
	assert.Equal(t, TableStats{Probes: 1}, tt.Stats())
}

func TestRoundDownToPowerOf2(t *testing.T) {
	tests := []struct{ in, want uint64 }{
		{1, 1}, {2, 2}, {3, 2}, {1023, 512}, {1024, 1024}, {1 << 40, 1 << 40},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, roundDownToPowerOf2(tc.in), "%d", tc.in)
	}
}
