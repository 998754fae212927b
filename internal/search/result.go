package search

// Search constants
const (
	Infinity = 1 << 29
	MaxDepth = 128
)

// Result is the outcome of a search.
type Result[M comparable] struct {
	// Move is the best move at the root. It is the pass move when the side to
	// move has no placement but the game goes on.
	Move M
	// HasMove is false only when the root state is terminal.
	HasMove bool
	// Score is the minimax value from the root side's perspective.
	Score int
	Depth int

	Nodes      uint64 // nodes visited, root included
	Leaves     uint64 // evaluator calls at the horizon or at terminal states
	OrderEvals uint64 // evaluator calls made for move ordering
	TTHits     uint64 // probes that returned a value or narrowed the window
	Cutoffs    uint64 // beta cutoffs
	ProbeCuts  uint64 // multi-probe-cut prunings
	ProbeNodes uint64 // nodes of multi-probe-cut searches, not in Nodes

	// PV is the principal variation starting with Move.
	PV []M
}
