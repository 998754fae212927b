package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallTree is
//
//	root
//	├── a: b1=3  b2=12  (values for the side to move at the leaves)
//	├── b: c1=2  c2=4
//	└── c: d1=14 d2=1
//
// The leaf values are scored for the root side after two plies, so the
// root picks the child whose worst reply is best: a (3).
func smallTree() (*treeState, map[string]int) {
	t := newTree()
	ids := map[string]int{}
	ids["a"] = t.add(0, 0)
	ids["b"] = t.add(0, 0)
	ids["c"] = t.add(0, 0)
	t.add(ids["a"], 3)
	t.add(ids["a"], 12)
	t.add(ids["b"], 2)
	t.add(ids["b"], 4)
	t.add(ids["c"], 14)
	t.add(ids["c"], 1)
	return t, ids
}

func TestSearchSmallTree(t *testing.T) {
	for _, f := range treeSearchers {
		t.Run(f.name, func(t *testing.T) {
			tree, ids := smallTree()
			s := f.make(treeEval)

			res, err := s.Search(tree, 2)
			require.NoError(t, err)
			assert.True(t, res.HasMove)
			assert.Equal(t, ids["a"], res.Move)
			assert.Equal(t, 3, res.Score)
			assert.Equal(t, 2, res.Depth)
			assert.Equal(t, ids["a"], res.PV[0])
			assert.Zero(t, tree.cur)
			assert.Empty(t, tree.path)
		})
	}
}

func TestSearchRandomTreesAgree(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		tree := randomTree(seed, 5, 4)
		want := minimax(tree, 5)

		for _, f := range treeSearchers {
			res, err := f.make(treeEval).Search(tree, 5)
			require.NoError(t, err)
			assert.Equal(t, want, res.Score, "seed %d %s", seed, f.name)
			assert.Zero(t, tree.cur)
		}
	}
}

func TestSearchShallowerThanTree(t *testing.T) {
	tree := randomTree(7, 6, 3)
	for depth := 1; depth <= 6; depth++ {
		want := minimax(tree, depth)
		for _, f := range treeSearchers {
			res, err := f.make(treeEval).Search(tree, depth)
			require.NoError(t, err)
			assert.Equal(t, want, res.Score, "depth %d %s", depth, f.name)
		}
	}
}

func TestNegaMaxLeavesEqualPerft(t *testing.T) {
	tree := randomTree(3, 4, 3)
	res, err := NewNegaMax[*treeState, int](treeEval).Search(tree, 4)
	require.NoError(t, err)

	n, err := Perft[*treeState, int](tree, 4)
	require.NoError(t, err)
	assert.Equal(t, n, res.Leaves)
	assert.Equal(t, uint64(81), res.Leaves)
	assert.Equal(t, uint64(1+3+9+27+81), res.Nodes)
}

func TestPruningVisitsFewerNodes(t *testing.T) {
	tree := randomTree(11, 6, 5)

	full, err := NewNegaMax[*treeState, int](treeEval).Search(tree, 6)
	require.NoError(t, err)
	pruned, err := NewNegaAlpha[*treeState, int](treeEval).Search(tree, 6)
	require.NoError(t, err)

	assert.Equal(t, full.Score, pruned.Score)
	assert.Less(t, pruned.Leaves, full.Leaves)
	assert.Positive(t, pruned.Cutoffs)
}

func TestSearchInvalidParameters(t *testing.T) {
	for _, f := range treeSearchers {
		t.Run(f.name, func(t *testing.T) {
			tree, _ := smallTree()
			s := f.make(treeEval)

			_, err := s.Search(tree, 0)
			assert.ErrorIs(t, err, ErrInvalidSearchParameters)
			_, err = s.Search(tree, -3)
			assert.ErrorIs(t, err, ErrInvalidSearchParameters)
			_, err = s.Search(tree, MaxDepth+1)
			assert.ErrorIs(t, err, ErrInvalidSearchParameters)
			_, err = s.SearchWindow(tree, 2, 5, 5)
			assert.ErrorIs(t, err, ErrInvalidSearchParameters)
			_, err = s.SearchWindow(tree, 2, 6, 5)
			assert.ErrorIs(t, err, ErrInvalidSearchParameters)
		})
	}
}

func TestSearchTerminalRoot(t *testing.T) {
	for _, f := range treeSearchers {
		t.Run(f.name, func(t *testing.T) {
			tree := newTree()
			tree.nodes[0].value = 42

			res, err := f.make(treeEval).Search(tree, 3)
			require.NoError(t, err)
			assert.False(t, res.HasMove)
			assert.Equal(t, 42, res.Score)
			assert.Empty(t, res.PV)
		})
	}
}

func TestSearchRootPass(t *testing.T) {
	for _, f := range treeSearchers {
		t.Run(f.name, func(t *testing.T) {
			// The root must pass. The opponent then chooses between x, worth
			// 5 to the root side, and y, worth -2.
			tree := newTree()
			after := tree.addPass(0, 0)
			x := tree.add(after, 0)
			y := tree.add(after, 0)
			tree.add(x, -5)
			tree.add(y, 2)

			res, err := f.make(treeEval).Search(tree, 3)
			require.NoError(t, err)
			assert.True(t, res.HasMove)
			assert.Equal(t, treePass, res.Move)
			assert.Equal(t, -2, res.Score)
			assert.Equal(t, minimax(tree, 3), res.Score)
			assert.Zero(t, tree.cur)
		})
	}
}

func TestSearchPassConsumesDepth(t *testing.T) {
	// At depth 1 the pass leads straight to the horizon.
	tree := newTree()
	tree.addPass(0, 9)

	res, err := NewNegaMax[*treeState, int](treeEval).Search(tree, 1)
	require.NoError(t, err)
	assert.Equal(t, -9, res.Score)
	assert.Equal(t, uint64(1), res.Leaves)
}

func TestSearchEvaluatorError(t *testing.T) {
	boom := errors.New("boom")

	for _, f := range treeSearchers {
		t.Run(f.name, func(t *testing.T) {
			tree := randomTree(5, 4, 3)
			calls := 0
			eval := EvaluatorFunc[*treeState](func(s *treeState) (int, error) {
				calls++
				if calls == 10 {
					return 0, boom
				}
				return s.nodes[s.cur].value, nil
			})

			_, err := f.make(eval).Search(tree, 4)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEvaluation)
			assert.ErrorIs(t, err, boom)
			assert.Zero(t, tree.cur)
			assert.Empty(t, tree.path)
		})
	}
}

func TestSearchStop(t *testing.T) {
	tree := randomTree(9, 5, 4)
	var s *NegaAlpha[*treeState, int]
	calls := 0
	eval := EvaluatorFunc[*treeState](func(st *treeState) (int, error) {
		calls++
		if calls == 20 {
			s.Stop()
		}
		return st.nodes[st.cur].value, nil
	})
	s = NewNegaAlpha[*treeState, int](eval)

	_, err := s.Search(tree, 5)
	assert.ErrorIs(t, err, ErrStopped)
	assert.Zero(t, tree.cur)

	// The next search starts clean.
	res, err := s.Search(tree, 2)
	require.NoError(t, err)
	assert.Equal(t, minimax(tree, 2), res.Score)
}

func TestSearchWindowFailSoft(t *testing.T) {
	tree, _ := smallTree()

	// The true value 3 lies above the window: the result is a lower bound.
	res, err := NewNegaAlpha[*treeState, int](treeEval).SearchWindow(tree, 2, -10, 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score, 1)
	assert.LessOrEqual(t, res.Score, 3)

	// Below the window: an upper bound.
	res, err = NewNegaScout[*treeState, int](treeEval).SearchWindow(tree, 2, 5, 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Score, 5)
	assert.GreaterOrEqual(t, res.Score, 3)
}

func TestOrderEvaluatorChangesOrderOnly(t *testing.T) {
	tree := randomTree(13, 5, 4)
	want := minimax(tree, 5)

	reverse := EvaluatorFunc[*treeState](func(s *treeState) (int, error) {
		return -s.nodes[s.cur].value, nil
	})
	res, err := NewNegaAlpha[*treeState, int](treeEval, WithOrderEvaluator[*treeState, int](reverse)).Search(tree, 5)
	require.NoError(t, err)
	assert.Equal(t, want, res.Score)
	assert.Positive(t, res.OrderEvals)
}

func TestNames(t *testing.T) {
	for _, f := range treeSearchers {
		assert.Equal(t, f.name, f.make(treeEval).Name())
	}
}
