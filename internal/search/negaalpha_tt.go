package search

// NegaAlphaTT is NegaAlpha with a transposition table. The table supplies
// the first move to try and settles or narrows nodes it already knows to a
// sufficient depth. The table outlives a single search; use Table to share
// or clear it.
type NegaAlphaTT[S GameState[M], M comparable] struct {
	core[S, M]
}

// NewNegaAlphaTT creates a NegaAlphaTT searcher.
func NewNegaAlphaTT[S GameState[M], M comparable](eval Evaluator[S], opts ...Option[S, M]) *NegaAlphaTT[S, M] {
	n := &NegaAlphaTT[S, M]{}
	n.setup(eval, opts)
	n.ensureTable()
	return n
}

// Name identifies the algorithm.
func (n *NegaAlphaTT[S, M]) Name() string { return "negaalpha-tt" }

// Table returns the transposition table of the searcher.
func (n *NegaAlphaTT[S, M]) Table() *Table[M] { return n.tt }

// Search runs a full-window search to maxDepth plies.
func (n *NegaAlphaTT[S, M]) Search(state S, maxDepth int) (Result[M], error) {
	return n.SearchWindow(state, maxDepth, -Infinity, Infinity)
}

// SearchWindow runs the search inside (alpha, beta).
func (n *NegaAlphaTT[S, M]) SearchWindow(state S, maxDepth, alpha, beta int) (Result[M], error) {
	mode := rootMode{order: true, prune: true, table: true}
	return n.searchRoot(state, maxDepth, alpha, beta, mode, func(depth, ply, alpha, beta int) (int, error) {
		return n.negaAlphaTT(state, depth, ply, alpha, beta)
	})
}

func (n *NegaAlphaTT[S, M]) negaAlphaTT(s S, depth, ply, alpha, beta int) (int, error) {
	if err := n.enter(ply); err != nil {
		return 0, err
	}
	if depth == 0 {
		return n.leaf(s)
	}

	ttMove, hasTT, score, cut := n.probe(s, depth, &alpha, &beta)
	if cut {
		return score, nil
	}

	moves := s.LegalMoves()
	if len(moves) == 0 {
		if s.IsTerminal() {
			return n.leaf(s)
		}
		v, err := n.passNode(s, ply, func() (int, error) {
			return n.negaAlphaTT(s, depth-1, ply+1, -beta, -alpha)
		})
		if err != nil {
			return 0, err
		}
		n.store(s, depth, v, alpha, beta, s.PassMove(), true)
		return v, nil
	}

	moves, err := n.orderMoves(s, moves, ttMove, hasTT)
	if err != nil {
		return 0, err
	}

	alphaOrig := alpha
	best, bestMove := -Infinity, moves[0]
	for i, m := range moves {
		if err := s.Play(m); err != nil {
			return 0, err
		}
		v, err := n.negaAlphaTT(s, depth-1, ply+1, -beta, -alpha)
		s.Undo()
		if err != nil {
			return 0, err
		}

		if v = -v; i == 0 || v > best {
			best, bestMove = v, m
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

	n.store(s, depth, best, alphaOrig, beta, bestMove, true)
	return best, nil
}
