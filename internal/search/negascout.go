package search

// NegaScout is principal variation search over the transposition table. The
// first move of a node is searched with the full window and the others with a
// null window, re-searched when they land strictly inside (alpha, beta).
type NegaScout[S GameState[M], M comparable] struct {
	core[S, M]
}

// NewNegaScout creates a NegaScout searcher. Probes are ignored; see
// NewNegaScoutMPC.
func NewNegaScout[S GameState[M], M comparable](eval Evaluator[S], opts ...Option[S, M]) *NegaScout[S, M] {
	n := &NegaScout[S, M]{}
	n.setup(eval, opts)
	n.probes = nil
	n.ensureTable()
	return n
}

// Name identifies the algorithm.
func (n *NegaScout[S, M]) Name() string { return "negascout" }

// Table returns the transposition table of the searcher.
func (n *NegaScout[S, M]) Table() *Table[M] { return n.tt }

// Search runs a full-window search to maxDepth plies.
func (n *NegaScout[S, M]) Search(state S, maxDepth int) (Result[M], error) {
	return n.SearchWindow(state, maxDepth, -Infinity, Infinity)
}

// SearchWindow runs the search inside (alpha, beta).
func (n *NegaScout[S, M]) SearchWindow(state S, maxDepth, alpha, beta int) (Result[M], error) {
	mode := rootMode{order: true, prune: true, table: true, scout: true}
	return n.searchRoot(state, maxDepth, alpha, beta, mode, func(depth, ply, alpha, beta int) (int, error) {
		return n.scout(state, depth, ply, alpha, beta)
	})
}

func (n *NegaScout[S, M]) scout(s S, depth, ply, alpha, beta int) (int, error) {
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
			return n.scout(s, depth-1, ply+1, -beta, -alpha)
		})
		if err != nil {
			return 0, err
		}
		n.store(s, depth, v, alpha, beta, s.PassMove(), true)
		return v, nil
	}

	if len(n.probes) > 0 {
		v, pruned, err := n.multiProbeCut(s, depth, ply, alpha, beta)
		if err != nil || pruned {
			return v, err
		}
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
		var v int
		if i == 0 {
			v, err = n.scout(s, depth-1, ply+1, -beta, -alpha)
			v = -v
		} else {
			v, err = n.scout(s, depth-1, ply+1, -alpha-1, -alpha)
			v = -v
			if err == nil && alpha < v && v < beta {
				v, err = n.scout(s, depth-1, ply+1, -beta, -v)
				v = -v
			}
		}
		s.Undo()
		if err != nil {
			return 0, err
		}

		if i == 0 || v > best {
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
