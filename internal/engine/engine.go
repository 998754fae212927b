// Package engine drives the searchers: iterative deepening under time and
// depth limits, configuration, the analysis cache and self-play matches.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/othelloplay/internal/board"
	"github.com/hailam/othelloplay/internal/eval"
	"github.com/hailam/othelloplay/internal/search"
	"github.com/hailam/othelloplay/internal/storage"
)

// Result is the outcome of a Think call.
type Result struct {
	search.Result[board.Square]
	Elapsed time.Duration
	Cached  bool // the result came from the analysis cache
}

// Engine is the Othello AI engine. Think calls are serialized; Stop may be
// called from any goroutine.
type Engine struct {
	cfg       Config
	evaluator eval.Evaluator
	searcher  Searcher
	tt        *Table // nil for algorithms without a table
	store     *storage.Storage
	cacheKey  string
	reporter  Reporter

	thinking sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates an engine from a config.
func New(cfg Config) (*Engine, error) {
	e := &Engine{reporter: nopReporter{}}
	if err := e.configure(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// configure builds the evaluator, table and searcher of cfg.
func (e *Engine) configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	evalOpts, err := cfg.evalOptions()
	if err != nil {
		return err
	}
	ev, err := eval.New(cfg.Evaluator, evalOpts)
	if err != nil {
		return err
	}

	var opts []SearchOption
	if cfg.OrderEvaluator != nil {
		order, err := eval.New(*cfg.OrderEvaluator, eval.Options{BlendThreshold: cfg.BlendThreshold})
		if err != nil {
			return err
		}
		opts = append(opts, search.WithOrderEvaluator[*board.State, board.Square](order))
	}

	var tt *Table
	if cfg.Algorithm.UsesTable() {
		hashMB := cfg.HashMB
		if hashMB == 0 {
			hashMB = DefaultConfig().HashMB
		}
		// Keep the old table when its size did not change.
		if e.tt != nil && e.cfg.HashMB == cfg.HashMB {
			tt = e.tt
		} else {
			tt = search.NewTable[board.Square](hashMB)
		}
		policy, _ := cfg.replacement()
		tt.SetReplacement(policy)
		tt.SetVerify(cfg.Verify)
		opts = append(opts, search.WithTable[*board.State, board.Square](tt))
	}
	if cfg.Algorithm == NegaScoutMPC {
		opts = append(opts, search.WithProbes[*board.State, board.Square](cfg.Probes...))
	}

	s, err := NewSearcher(cfg.Algorithm, ev, opts...)
	if err != nil {
		return err
	}
	key, err := cfg.CacheKey()
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.cacheKey = key
	e.evaluator = ev
	e.searcher = s
	e.tt = tt
	return nil
}

// Config returns the current settings.
func (e *Engine) Config() Config {
	return e.cfg
}

// Name identifies the configured algorithm and evaluator.
func (e *Engine) Name() string {
	return e.cfg.Name()
}

// Table returns the transposition table, or nil when the algorithm uses none.
func (e *Engine) Table() *Table {
	return e.tt
}

// SetStorage enables the analysis cache. Results of deterministic
// evaluators are looked up before searching and saved afterwards.
func (e *Engine) SetStorage(s *storage.Storage) {
	e.store = s
}

// SetReporter sets the progress sink. Nil disables reporting.
func (e *Engine) SetReporter(r Reporter) {
	if r == nil {
		r = nopReporter{}
	}
	e.reporter = r
}

// SetOption changes one setting by name and rebuilds the searcher.
// The names are those of the config file.
func (e *Engine) SetOption(name, value string) error {
	e.thinking.Lock()
	defer e.thinking.Unlock()

	cfg := e.cfg
	value = strings.TrimSpace(value)
	var err error
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "algorithm":
		cfg.Algorithm, err = ParseAlgorithm(value)
	case "evaluator":
		cfg.Evaluator, err = eval.ParseKind(value)
	case "order_evaluator":
		var k eval.Kind
		k, err = eval.ParseKind(value)
		cfg.OrderEvaluator = &k
	case "depth":
		cfg.Depth, err = strconv.Atoi(value)
	case "move_time_ms":
		cfg.MoveTimeMS, err = strconv.Atoi(value)
	case "hash_mb":
		cfg.HashMB, err = strconv.Atoi(value)
	case "replacement":
		cfg.Replacement = strings.ToLower(value)
	case "verify":
		cfg.Verify, err = strconv.ParseBool(value)
	case "blend_threshold":
		cfg.BlendThreshold, err = strconv.Atoi(value)
	case "noise":
		cfg.Noise, err = strconv.Atoi(value)
	case "seed":
		cfg.Seed, err = strconv.ParseUint(value, 10, 64)
	case "weights_file":
		cfg.WeightsFile = value
	default:
		return fmt.Errorf("%w: unknown option %q", ErrInvalidConfig, name)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
	}
	return e.configure(cfg)
}

// Think searches the state by iterative deepening and returns the result of
// the deepest finished iteration. The first iteration always completes;
// later ones are abandoned when ctx ends, the time runs out or Stop is
// called. The state is not modified.
func (e *Engine) Think(ctx context.Context, st *board.State, limits Limits) (Result, error) {
	e.thinking.Lock()
	defer e.thinking.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if limits.Depth <= 0 {
		limits.Depth = e.cfg.Depth
	}
	if limits.Depth <= 0 {
		limits.Depth = search.MaxDepth
	}
	limits.Depth = min(limits.Depth, search.MaxDepth)
	if limits.MoveTime <= 0 {
		limits.MoveTime = e.cfg.MoveTime()
	}

	state := st.Clone()
	notation := state.Notation()
	e.reporter.Start(notation, limits)

	if res, ok := e.lookup(notation, limits.Depth); ok {
		e.reporter.Complete(res)
		return res, nil
	}

	var tm timeManager
	tm.init(limits, state.Board().EmptyCount())

	var cancel context.CancelFunc
	if tm.limited() {
		ctx, cancel = context.WithDeadline(ctx, tm.deadline())
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
		cancel()
	}()

	if e.tt != nil {
		e.tt.NewSearch()
	}

	var best Result
	var watching bool
	var wg sync.WaitGroup
	done := make(chan struct{})
	defer wg.Wait()
	defer close(done)

	// The game is over within two plies per empty cell, passes included.
	horizon := 2 * state.Board().EmptyCount()

	for depth := 1; depth <= limits.Depth; depth++ {
		if depth > 1 {
			if ctx.Err() != nil || !tm.nextIteration() {
				break
			}
			if !watching {
				wg.Add(1)
				go func() {
					defer wg.Done()
					e.watch(ctx, done)
				}()
				watching = true
			}
		}

		r, err := e.searcher.Search(state, depth)
		if errors.Is(err, search.ErrStopped) {
			break
		}
		if err != nil {
			return Result{}, err
		}
		best = Result{Result: r, Elapsed: tm.elapsed()}

		info := Info{
			Depth: depth,
			Score: r.Score,
			Nodes: r.Nodes,
			Time:  best.Elapsed,
			PV:    r.PV,
		}
		if e.tt != nil {
			info.HashFull = e.tt.HashFull()
		}
		e.reporter.Progress(info)

		if !r.HasMove || depth >= horizon {
			break
		}
	}

	best.Elapsed = tm.elapsed()
	e.save(notation, best)
	e.reporter.Complete(best)
	return best, nil
}

// watch stops the searcher once ctx ends. Search clears the stop flag
// when it starts, so the flag is raised until done is closed.
func (e *Engine) watch(ctx context.Context, done <-chan struct{}) {
	select {
	case <-done:
		return
	case <-ctx.Done():
	}
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		e.searcher.Stop()
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the running Think call, which returns its deepest finished
// iteration. It has no effect when no Think call is running; to stop a
// search that may not have started yet, cancel the context given to Think.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Clear empties the transposition table.
func (e *Engine) Clear() {
	e.thinking.Lock()
	defer e.thinking.Unlock()
	if e.tt != nil {
		e.tt.Clear()
	}
}

// Perft counts the leaf states at depth plies.
func (e *Engine) Perft(st *board.State, depth int) (uint64, error) {
	return search.Perft[*board.State, board.Square](st.Clone(), depth)
}

// Evaluate returns the static evaluation of a state for its side to move.
func (e *Engine) Evaluate(st *board.State) (int, error) {
	return e.evaluator.Evaluate(st)
}

// cacheable reports whether results may be shared through storage. Noisy
// evaluators are not reproducible.
func (e *Engine) cacheable() bool {
	return e.store != nil && e.cfg.Noise == 0
}

func (e *Engine) lookup(notation string, depth int) (Result, bool) {
	if !e.cacheable() {
		return Result{}, false
	}
	a, err := e.store.LoadAnalysis(notation, e.cacheKey, depth)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn().Err(err).Msg("analysis lookup failed")
		}
		return Result{}, false
	}
	res, err := fromAnalysis(a)
	if err != nil {
		log.Warn().Err(err).Str("position", notation).Msg("discarding cached analysis")
		return Result{}, false
	}
	return res, true
}

func (e *Engine) save(notation string, res Result) {
	if !e.cacheable() || res.Depth == 0 {
		return
	}
	err := e.store.SaveAnalysis(storage.Analysis{
		Notation:  notation,
		Settings:  e.cacheKey,
		Algorithm: e.cfg.Algorithm.String(),
		Evaluator: e.cfg.Evaluator.String(),
		Depth:     res.Depth,
		Move:      res.Move.String(),
		HasMove:   res.HasMove,
		Score:     res.Score,
		Nodes:     res.Nodes,
		PV:        lo.Map(res.PV, func(sq board.Square, _ int) string { return sq.String() }),
	})
	if err != nil {
		log.Warn().Err(err).Msg("analysis save failed")
	}
}

func fromAnalysis(a storage.Analysis) (Result, error) {
	res := Result{Cached: true}
	res.Depth = a.Depth
	res.Score = a.Score
	res.Nodes = a.Nodes
	res.HasMove = a.HasMove
	if a.HasMove {
		m, err := board.ParseSquare(a.Move)
		if err != nil {
			return Result{}, err
		}
		res.Move = m
	}
	for _, s := range a.PV {
		m, err := board.ParseSquare(s)
		if err != nil {
			return Result{}, err
		}
		res.PV = append(res.PV, m)
	}
	return res, nil
}
