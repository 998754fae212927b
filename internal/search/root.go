package search

// nodeFunc searches a non-root node.
type nodeFunc func(depth, ply, alpha, beta int) (int, error)

// rootMode selects the root behaviour of a searcher.
type rootMode struct {
	order bool // rank the root moves
	prune bool // stop at a beta cutoff
	table bool // use the table for ordering and store the root result
	scout bool // null-window all but the first move
}

// searchRoot runs the root node of state. node searches the children; it
// operates on state, which searchRoot has mutated by the root move.
func (c *core[S, M]) searchRoot(state S, depth, alpha, beta int, mode rootMode, node nodeFunc) (Result[M], error) {
	var zero M

	if err := c.begin(depth, alpha, beta); err != nil {
		return Result[M]{}, err
	}
	if mode.table {
		c.ensureTable()
	}
	if err := c.enter(0); err != nil {
		return Result[M]{}, err
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		if state.IsTerminal() {
			v, err := c.leaf(state)
			if err != nil {
				return Result[M]{}, err
			}
			return c.result(depth, v, zero, false), nil
		}

		pass := state.PassMove()
		if err := state.Play(pass); err != nil {
			return Result[M]{}, err
		}
		v, err := node(depth-1, 1, -beta, -alpha)
		state.Undo()
		if err != nil {
			return Result[M]{}, err
		}
		c.updatePV(0, pass)
		if mode.table {
			c.store(state, depth, -v, alpha, beta, pass, true)
		}
		return c.result(depth, -v, pass, true), nil
	}

	var ttMove M
	hasTT := false
	if mode.table {
		if entry, ok := c.tt.Probe(state.Hash(), state.Key()); ok {
			ttMove, hasTT = entry.BestMove, entry.HasMove
		}
	}
	if mode.order {
		var err error
		if moves, err = c.orderMoves(state, moves, ttMove, hasTT); err != nil {
			return Result[M]{}, err
		}
	}

	alphaOrig := alpha
	best, bestMove := -Infinity, moves[0]
	for i, m := range moves {
		if err := state.Play(m); err != nil {
			return Result[M]{}, err
		}
		var v int
		var err error
		if !mode.scout || i == 0 {
			v, err = node(depth-1, 1, -beta, -alpha)
			v = -v
		} else {
			v, err = node(depth-1, 1, -alpha-1, -alpha)
			v = -v
			if err == nil && alpha < v && v < beta {
				v, err = node(depth-1, 1, -beta, -v)
				v = -v
			}
		}
		state.Undo()
		if err != nil {
			return Result[M]{}, err
		}

		if i == 0 || v > best {
			best, bestMove = v, m
			c.updatePV(0, m)
			if v > alpha {
				alpha = v
			}
		}
		if mode.prune && alpha >= beta {
			c.cutoffs++
			break
		}
	}

	if mode.table {
		c.store(state, depth, best, alphaOrig, beta, bestMove, true)
	}
	return c.result(depth, best, bestMove, true), nil
}

// passNode plays the pass move on s, searches the opponent with one depth
// unit consumed and returns the negated value.
func (c *core[S, M]) passNode(s S, ply int, search func() (int, error)) (int, error) {
	pass := s.PassMove()
	if err := s.Play(pass); err != nil {
		return 0, err
	}
	v, err := search()
	s.Undo()
	if err != nil {
		return 0, err
	}
	c.updatePV(ply, pass)
	return -v, nil
}
