package search

// Probe is one shallow search tried by multi-probe cut. At a node with
// remaining depth of at least MinDepth, a null-window search of depth
// depth-Reduction is run around beta+Margin and alpha-Margin. When the
// shallow value clears the shifted bound the node is cut without the full
// search.
type Probe struct {
	MinDepth  int `json:"min_depth"`
	Reduction int `json:"reduction"`
	Margin    int `json:"margin"`
}

// NegaScoutMPC is NegaScout with multi-probe cut forward pruning. It trades
// exactness for speed: the score can differ from NegaScout's when a shallow
// probe mispredicts the deep value. With no probes, or margins larger than
// any evaluation, it returns the same score as NegaScout.
type NegaScoutMPC[S GameState[M], M comparable] struct {
	NegaScout[S, M]
}

// NewNegaScoutMPC creates a NegaScoutMPC searcher. Probes are set with
// WithProbes; probes whose reduction leaves no depth are dropped.
func NewNegaScoutMPC[S GameState[M], M comparable](eval Evaluator[S], opts ...Option[S, M]) *NegaScoutMPC[S, M] {
	n := &NegaScoutMPC[S, M]{}
	n.setup(eval, opts)
	valid := n.probes[:0]
	for _, p := range n.probes {
		if p.Reduction >= 1 && p.MinDepth > p.Reduction && p.Margin >= 0 {
			valid = append(valid, p)
		}
	}
	n.probes = valid
	n.ensureTable()
	return n
}

// Name identifies the algorithm.
func (n *NegaScoutMPC[S, M]) Name() string { return "negascout-mpc" }

// Probes returns the active probes.
func (n *NegaScoutMPC[S, M]) Probes() []Probe {
	return append([]Probe(nil), n.probes...)
}

// multiProbeCut tries the probes in order. It reports whether the node was
// pruned and, if so, the bound to return. A probe is skipped when its shifted
// bound would leave the score range. Probe searches reuse the node's ply, so
// they clear pv[ply] before the full search rebuilds it; their nodes are
// counted in probeNodes, not nodes.
func (n *NegaScout[S, M]) multiProbeCut(s S, depth, ply, alpha, beta int) (int, bool, error) {
	before := n.nodes
	defer func() {
		n.probeNodes += n.nodes - before
		n.nodes = before
	}()

	for _, p := range n.probes {
		if depth < p.MinDepth {
			continue
		}
		shallow := depth - p.Reduction

		if beta < Infinity-p.Margin {
			bound := beta + p.Margin
			v, err := n.scout(s, shallow, ply, bound-1, bound)
			if err != nil {
				return 0, false, err
			}
			if v >= bound {
				n.probeCuts++
				return beta, true, nil
			}
		}
		if alpha > -Infinity+p.Margin {
			bound := alpha - p.Margin
			v, err := n.scout(s, shallow, ply, bound, bound+1)
			if err != nil {
				return 0, false, err
			}
			if v <= bound {
				n.probeCuts++
				return alpha, true, nil
			}
		}
	}
	return 0, false, nil
}
