package engine

import (
	"time"
)

// Limits constrain one Think call. Zero fields fall back to the engine
// config.
type Limits struct {
	Depth    int           // maximum depth
	MoveTime time.Duration // fixed time for this move, overrides the clock
	Remain   time.Duration // clock time left for the side to move
	Inc      time.Duration // increment per move
}

// timeManager handles time allocation for a search.
type timeManager struct {
	optimumTime time.Duration // target time for this move
	maximumTime time.Duration // hard limit, zero meaning none
	startTime   time.Time
}

// init allocates time for a move with the given number of empty cells left.
func (tm *timeManager) init(limits Limits, empties int) {
	tm.startTime = time.Now()

	if limits.MoveTime > 0 {
		tm.optimumTime = limits.MoveTime
		tm.maximumTime = limits.MoveTime
		return
	}
	if limits.Remain <= 0 {
		tm.optimumTime = 0
		tm.maximumTime = 0
		return
	}

	// Each side places about half of the remaining stones.
	movesToGo := empties/2 + 1
	base := limits.Remain/time.Duration(movesToGo) + limits.Inc*9/10
	tm.optimumTime = base

	// Maximum time: 5x optimum or 80% of remaining, whichever is smaller
	tm.maximumTime = min(base*5, limits.Remain*8/10)

	if tm.optimumTime < 10*time.Millisecond {
		tm.optimumTime = 10 * time.Millisecond
	}
	if tm.maximumTime < 20*time.Millisecond {
		tm.maximumTime = 20 * time.Millisecond
	}
	if tm.optimumTime > tm.maximumTime {
		tm.optimumTime = tm.maximumTime
	}
}

// elapsed returns the time elapsed since the search started.
func (tm *timeManager) elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// limited reports whether the search runs against a clock.
func (tm *timeManager) limited() bool {
	return tm.maximumTime > 0
}

// deadline returns the hard stop time.
func (tm *timeManager) deadline() time.Time {
	return tm.startTime.Add(tm.maximumTime)
}

// nextIteration reports whether there is time left to start another
// iteration: none is started once half the target time is used.
func (tm *timeManager) nextIteration() bool {
	if !tm.limited() {
		return true
	}
	e := tm.elapsed()
	return tm.optimumTime-e >= e
}
