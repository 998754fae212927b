package engine

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/othelloplay/internal/board"
)

// Info describes one finished iteration of a search.
type Info struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Square
	HashFull int // permille of the table in use, 0 without a table
}

// Reporter receives the progress of Think calls.
type Reporter interface {
	Start(notation string, limits Limits)
	Progress(info Info)
	Complete(result Result)
}

type nopReporter struct{}

func (nopReporter) Start(string, Limits) {}
func (nopReporter) Progress(Info)        {}
func (nopReporter) Complete(Result)      {}

// LogReporter writes search progress to a zerolog logger.
type LogReporter struct {
	Logger *zerolog.Logger // nil means the global logger
}

func (r LogReporter) logger() *zerolog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return &log.Logger
}

// Start logs the searched position.
func (r LogReporter) Start(notation string, limits Limits) {
	r.logger().Debug().
		Str("position", notation).
		Int("depth", limits.Depth).
		Dur("movetime", limits.MoveTime).
		Msg("search started")
}

// Progress logs one iteration.
func (r LogReporter) Progress(info Info) {
	r.logger().Debug().
		Int("depth", info.Depth).
		Int("score", info.Score).
		Uint64("nodes", info.Nodes).
		Dur("time", info.Time).
		Int("hashfull", info.HashFull).
		Str("pv", FormatMoves(info.PV)).
		Msg("iteration")
}

// Complete logs the chosen move.
func (r LogReporter) Complete(res Result) {
	ev := r.logger().Info().
		Int("depth", res.Depth).
		Int("score", res.Score).
		Uint64("nodes", res.Nodes).
		Dur("time", res.Elapsed).
		Bool("cached", res.Cached)
	if res.HasMove {
		ev = ev.Stringer("move", res.Move)
	}
	ev.Msg("search complete")
}

// FormatMoves joins moves in coordinate notation, e.g. "f5 d6 pass".
func FormatMoves(moves []board.Square) string {
	return strings.Join(lo.Map(moves, func(sq board.Square, _ int) string {
		return sq.String()
	}), " ")
}
