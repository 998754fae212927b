package search

// NegaAlpha is negamax with fail-soft alpha-beta pruning and move ordering.
// It returns the same root score as NegaMax.
type NegaAlpha[S GameState[M], M comparable] struct {
	core[S, M]
}

// NewNegaAlpha creates a NegaAlpha searcher.
func NewNegaAlpha[S GameState[M], M comparable](eval Evaluator[S], opts ...Option[S, M]) *NegaAlpha[S, M] {
	n := &NegaAlpha[S, M]{}
	n.setup(eval, opts)
	return n
}

// Name identifies the algorithm.
func (n *NegaAlpha[S, M]) Name() string { return "negaalpha" }

// Search runs a full-window search to maxDepth plies.
func (n *NegaAlpha[S, M]) Search(state S, maxDepth int) (Result[M], error) {
	return n.SearchWindow(state, maxDepth, -Infinity, Infinity)
}

// SearchWindow runs the search inside (alpha, beta).
func (n *NegaAlpha[S, M]) SearchWindow(state S, maxDepth, alpha, beta int) (Result[M], error) {
	mode := rootMode{order: true, prune: true}
	return n.searchRoot(state, maxDepth, alpha, beta, mode, func(depth, ply, alpha, beta int) (int, error) {
		return n.negaAlpha(state, depth, ply, alpha, beta)
	})
}

func (n *NegaAlpha[S, M]) negaAlpha(s S, depth, ply, alpha, beta int) (int, error) {
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
			return n.negaAlpha(s, depth-1, ply+1, -beta, -alpha)
		})
	}

	var zero M
	moves, err := n.orderMoves(s, moves, zero, false)
	if err != nil {
		return 0, err
	}

	best := -Infinity
	for i, m := range moves {
		if err := s.Play(m); err != nil {
			return 0, err
		}
		v, err := n.negaAlpha(s, depth-1, ply+1, -beta, -alpha)
		s.Undo()
		if err != nil {
			return 0, err
		}

		if v = -v; i == 0 || v > best {
			best = v
			if v > alpha {
				alpha = v
				n.updatePV(ply, m)
			}
		}
		if alpha >= beta {
			n.cutoffs++
			break
		}
	}
	return best, nil
}
