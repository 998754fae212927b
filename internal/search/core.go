package search

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// defaultTableMB is the table size of table-driven searchers built without
// WithTable or WithTableSize.
const defaultTableMB = 16

// core holds what every searcher shares: the evaluators, the counters of the
// running search and the principal variation table.
type core[S GameState[M], M comparable] struct {
	eval  Evaluator[S]
	order Evaluator[S]

	tt       *Table[M]
	ttSizeMB int
	probes   []Probe

	stopped atomic.Bool

	nodes      uint64
	leaves     uint64
	orderEvals uint64
	ttHits     uint64
	cutoffs    uint64
	probeCuts  uint64
	probeNodes uint64

	pv [][]M
}

func (c *core[S, M]) setup(eval Evaluator[S], opts []Option[S, M]) {
	c.eval = eval
	c.ttSizeMB = defaultTableMB
	for _, opt := range opts {
		opt(c)
	}
	if c.order == nil {
		c.order = eval
	}
}

// ensureTable allocates the table on first use.
func (c *core[S, M]) ensureTable() {
	if c.tt == nil {
		c.tt = NewTable[M](c.ttSizeMB)
	}
}

// Stop aborts the running search, which then returns ErrStopped.
func (c *core[S, M]) Stop() {
	c.stopped.Store(true)
}

// begin validates the parameters and resets the per-search state.
func (c *core[S, M]) begin(depth, alpha, beta int) error {
	if depth < 1 || depth > MaxDepth {
		return fmt.Errorf("%w: depth %d outside [1, %d]", ErrInvalidSearchParameters, depth, MaxDepth)
	}
	if alpha >= beta {
		return fmt.Errorf("%w: empty window (%d, %d)", ErrInvalidSearchParameters, alpha, beta)
	}

	c.stopped.Store(false)
	c.nodes, c.leaves, c.orderEvals = 0, 0, 0
	c.ttHits, c.cutoffs, c.probeCuts, c.probeNodes = 0, 0, 0, 0

	if cap(c.pv) < depth+2 {
		c.pv = make([][]M, depth+2)
	}
	c.pv = c.pv[:depth+2]
	for i := range c.pv {
		c.pv[i] = c.pv[i][:0]
	}
	return nil
}

// enter counts a node and clears its PV line.
func (c *core[S, M]) enter(ply int) error {
	if c.stopped.Load() {
		return ErrStopped
	}
	c.nodes++
	c.pv[ply] = c.pv[ply][:0]
	return nil
}

// leaf evaluates a horizon or terminal state.
func (c *core[S, M]) leaf(s S) (int, error) {
	c.leaves++
	v, err := c.eval.Evaluate(s)
	if err != nil {
		return 0, wrapEval(err)
	}
	return v, nil
}

func wrapEval(err error) error {
	if errors.Is(err, ErrEvaluation) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrEvaluation, err)
}

// updatePV makes m followed by the child line the PV of ply.
func (c *core[S, M]) updatePV(ply int, m M) {
	line := append(c.pv[ply][:0], m)
	c.pv[ply] = append(line, c.pv[ply+1]...)
}

// probe consults the table. It returns the stored best move for ordering and,
// when the entry is deep enough to settle the node, the score to return.
// Bounds that do not settle the node narrow the window in place.
func (c *core[S, M]) probe(s S, depth int, alpha, beta *int) (move M, hasMove bool, score int, cut bool) {
	entry, ok := c.tt.Probe(s.Hash(), s.Key())
	if !ok {
		return move, false, 0, false
	}
	move, hasMove = entry.BestMove, entry.HasMove
	if int(entry.Depth) < depth {
		return move, hasMove, 0, false
	}

	v := int(entry.Score)
	switch entry.Bound {
	case Exact:
		c.ttHits++
		return move, hasMove, v, true
	case LowerBound:
		if v > *alpha {
			c.ttHits++
			*alpha = v
		}
	case UpperBound:
		if v < *beta {
			c.ttHits++
			*beta = v
		}
	}
	if *alpha >= *beta {
		return move, hasMove, v, true
	}
	return move, hasMove, 0, false
}

// store records a node result with the bound implied by the window the node
// was searched with.
func (c *core[S, M]) store(s S, depth, score, alpha, beta int, best M, hasMove bool) {
	bound := Exact
	switch {
	case score <= alpha:
		bound = UpperBound
	case score >= beta:
		bound = LowerBound
	}
	c.tt.Store(s.Hash(), s.Key(), depth, score, bound, best, hasMove)
}

// result assembles the counters of the finished search.
func (c *core[S, M]) result(depth, score int, move M, hasMove bool) Result[M] {
	r := Result[M]{
		Move:       move,
		HasMove:    hasMove,
		Score:      score,
		Depth:      depth,
		Nodes:      c.nodes,
		Leaves:     c.leaves,
		OrderEvals: c.orderEvals,
		TTHits:     c.ttHits,
		Cutoffs:    c.cutoffs,
		ProbeCuts:  c.probeCuts,
		ProbeNodes: c.probeNodes,
	}
	if hasMove {
		r.PV = append([]M(nil), c.pv[0]...)
		if len(r.PV) == 0 || r.PV[0] != move {
			r.PV = []M{move}
		}
	}
	return r
}
