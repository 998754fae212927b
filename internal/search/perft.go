package search

import "fmt"

// Perft counts the leaf nodes of the game tree to the given depth. A pass
// consumes one depth unit; two consecutive passes end the game and count as
// a single leaf. It is the standard check of move generation and of
// Play/Undo symmetry.
func Perft[S GameState[M], M comparable](state S, depth int) (uint64, error) {
	if depth < 0 {
		return 0, fmt.Errorf("%w: perft depth %d", ErrInvalidSearchParameters, depth)
	}
	return perft[S, M](state, depth, false)
}

func perft[S GameState[M], M comparable](s S, depth int, passed bool) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}

	moves := s.LegalMoves()
	if len(moves) == 0 {
		if passed {
			return 1, nil
		}
		if err := s.Play(s.PassMove()); err != nil {
			return 0, err
		}
		n, err := perft[S, M](s, depth-1, true)
		s.Undo()
		return n, err
	}

	// Bulk counting at depth 1
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var nodes uint64
	for _, m := range moves {
		if err := s.Play(m); err != nil {
			return 0, err
		}
		n, err := perft[S, M](s, depth-1, false)
		s.Undo()
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// Divide returns the perft count below each root move.
func Divide[S GameState[M], M comparable](state S, depth int) (map[M]uint64, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: divide depth %d", ErrInvalidSearchParameters, depth)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		moves = []M{state.PassMove()}
	}

	counts := make(map[M]uint64, len(moves))
	for _, m := range moves {
		if err := state.Play(m); err != nil {
			return nil, err
		}
		n, err := perft[S, M](state, depth-1, m == state.PassMove())
		state.Undo()
		if err != nil {
			return nil, err
		}
		counts[m] = n
	}
	return counts, nil
}
