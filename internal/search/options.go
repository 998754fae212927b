package search

// Option configures a searcher.
type Option[S GameState[M], M comparable] func(*core[S, M])

// WithOrderEvaluator sets the evaluator used to rank children for move
// ordering. It defaults to the leaf evaluator.
func WithOrderEvaluator[S GameState[M], M comparable](order Evaluator[S]) Option[S, M] {
	return func(c *core[S, M]) {
		c.order = order
	}
}

// WithTable makes a table-driven searcher use an existing table instead of
// allocating its own. Other searchers ignore it.
func WithTable[S GameState[M], M comparable](tt *Table[M]) Option[S, M] {
	return func(c *core[S, M]) {
		c.tt = tt
	}
}

// WithTableSize sets the size in MB of the table a table-driven searcher
// allocates when none is supplied.
func WithTableSize[S GameState[M], M comparable](sizeMB int) Option[S, M] {
	return func(c *core[S, M]) {
		c.ttSizeMB = sizeMB
	}
}

// WithProbes sets the multi-probe cut probes, tried in order.
func WithProbes[S GameState[M], M comparable](probes ...Probe) Option[S, M] {
	return func(c *core[S, M]) {
		c.probes = append([]Probe(nil), probes...)
	}
}
