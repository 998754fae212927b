package search

// NegaMax is the exhaustive fixed-depth negamax search. It visits every node
// of the tree in generation order and serves as the reference the pruning
// searchers are checked against.
type NegaMax[S GameState[M], M comparable] struct {
	core[S, M]
}

// NewNegaMax creates a NegaMax searcher.
func NewNegaMax[S GameState[M], M comparable](eval Evaluator[S], opts ...Option[S, M]) *NegaMax[S, M] {
	n := &NegaMax[S, M]{}
	n.setup(eval, opts)
	return n
}

// Name identifies the algorithm.
func (n *NegaMax[S, M]) Name() string { return "negamax" }

// Search runs the search to maxDepth plies.
func (n *NegaMax[S, M]) Search(state S, maxDepth int) (Result[M], error) {
	return n.SearchWindow(state, maxDepth, -Infinity, Infinity)
}

// SearchWindow validates the window and runs the search. The window does not
// affect the exhaustive search.
func (n *NegaMax[S, M]) SearchWindow(state S, maxDepth, alpha, beta int) (Result[M], error) {
	return n.searchRoot(state, maxDepth, alpha, beta, rootMode{}, func(depth, ply, _, _ int) (int, error) {
		return n.negamax(state, depth, ply)
	})
}

func (n *NegaMax[S, M]) negamax(s S, depth, ply int) (int, error) {
	if err := n.enter(ply); err != nil {
		return 0, err
	}
	if depth == 0 {
		return n.leaf(s)
	}

	moves := s.LegalMoves()
	if len(moves) == 0 {
		if s.IsTerminal() {
			return n.leaf(s)
		}
		return n.passNode(s, ply, func() (int, error) {
			return n.negamax(s, depth-1, ply+1)
		})
	}

	best := -Infinity
	for i, m := range moves {
		if err := s.Play(m); err != nil {
			return 0, err
		}
		v, err := n.negamax(s, depth-1, ply+1)
		s.Undo()
		if err != nil {
			return 0, err
		}
		if v = -v; i == 0 || v > best {
			best = v
			n.updatePV(ply, m)
		}
	}
	return best, nil
}
