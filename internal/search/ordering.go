package search

import "sort"

// ttMoveScore ranks the table move ahead of every evaluated move.
const ttMoveScore = Infinity + 1

type scoredMove[M comparable] struct {
	move  M
	score int
}

// orderMoves returns the moves sorted best first. The table move, when
// present, comes first; the rest are ranked by the order evaluator applied
// to the child state, negated to the mover's perspective. Ties keep the
// generation order.
func (c *core[S, M]) orderMoves(s S, moves []M, ttMove M, hasTT bool) ([]M, error) {
	if len(moves) < 2 {
		return moves, nil
	}

	scored := make([]scoredMove[M], len(moves))
	for i, m := range moves {
		scored[i].move = m
		if hasTT && m == ttMove {
			scored[i].score = ttMoveScore
			continue
		}
		if err := s.Play(m); err != nil {
			return nil, err
		}
		c.orderEvals++
		v, err := c.order.Evaluate(s)
		s.Undo()
		if err != nil {
			return nil, wrapEval(err)
		}
		scored[i].score = -v
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ordered := make([]M, len(scored))
	for i := range scored {
		ordered[i] = scored[i].move
	}
	return ordered, nil
}
