package search

import "errors"

var (
	// ErrInvalidSearchParameters is returned before recursion starts for a
	// depth outside [1, MaxDepth] or an empty window.
	ErrInvalidSearchParameters = errors.New("invalid search parameters")
	// ErrEvaluation wraps failures reported by an evaluator. The search that
	// hit the failure is aborted.
	ErrEvaluation = errors.New("evaluation failed")
)

// ErrStopped is returned by a search aborted with Stop.
var ErrStopped = errors.New("search stopped")
