// Package search implements depth-bounded negamax searchers for two-player,
// zero-sum, perfect-information games.
//
// The searchers explore a GameState by push/pop mutation: every Play made
// during a search is matched by an Undo before the call that made it returns,
// including returns caused by cutoffs and errors. The caller's state is
// therefore unchanged when Search returns.
package search

// GameState is the capability a position must provide to be searchable.
type GameState[M comparable] interface {
	// LegalMoves returns the moves of the side to move. An empty result means
	// the side to move must pass, or that the game is over.
	LegalMoves() []M
	// Play applies a move (or PassMove) and hands the turn to the opponent.
	Play(m M) error
	// Undo reverts the most recent Play.
	Undo()
	// PassMove returns the move that passes the turn.
	PassMove() M
	// IsTerminal reports whether neither side has a legal move.
	IsTerminal() bool
	// Hash returns a 64-bit hash of the position including the side to move.
	Hash() uint64
	// Key returns a compact full encoding of the position used to verify
	// transposition table hits.
	Key() [2]uint64
}

// Evaluator scores a state from the perspective of its side to move.
// Positive scores favour the side to move.
type Evaluator[S any] interface {
	Evaluate(state S) (int, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc[S any] func(state S) (int, error)

// Evaluate calls f(state).
func (f EvaluatorFunc[S]) Evaluate(state S) (int, error) {
	return f(state)
}

// Searcher finds the best move of a state under a depth bound.
type Searcher[S GameState[M], M comparable] interface {
	// Search runs a full-window search to maxDepth plies.
	Search(state S, maxDepth int) (Result[M], error)
	// SearchWindow runs a search with an explicit (alpha, beta) window.
	SearchWindow(state S, maxDepth, alpha, beta int) (Result[M], error)
	// Stop aborts a running search from another goroutine.
	Stop()
	// Name identifies the algorithm.
	Name() string
}
