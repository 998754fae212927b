// Package protocol implements the line-based text protocol of the engine.
//
//	othello                            identify the engine and list its options
//	isready                            wait for a running search, answer readyok
//	newgame                            reset the position and the tables
//	position startpos [moves m1 ...]   set the initial position
//	position <cells> <side> [moves ...]  set a position in board notation
//	play <move>                        play one move, "pass" included
//	go [depth N] [movetime ms] [btime ms] [wtime ms] [binc ms] [winc ms] [algo name]
//	stop                               end the running search
//	perft N                            count leaf states per root move
//	moves                              list the legal moves
//	eval                               print the static evaluation
//	d                                  print the board
//	setoption name <name> value <v>    change an engine option
//	quit
package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/othelloplay/internal/board"
	"github.com/hailam/othelloplay/internal/engine"
	"github.com/hailam/othelloplay/internal/search"
)

// ErrSyntax is reported for malformed commands.
var ErrSyntax = errors.New("syntax error")

// Protocol reads commands and drives an engine. Searches run in the
// background; every other command waits for the running search to end,
// except stop and quit.
type Protocol struct {
	engine *engine.Engine
	state  *board.State

	outMu sync.Mutex
	out   io.Writer

	searchDone chan struct{}        // closed when the running search ends, nil when idle
	stopSearch context.CancelFunc // cancels the running search, nil when idle
	logs       engine.LogReporter
}

// New creates a protocol handler writing its answers to out. The handler
// becomes the progress reporter of eng.
func New(eng *engine.Engine, out io.Writer) *Protocol {
	p := &Protocol{
		engine: eng,
		state:  board.NewStartState(),
		out:    out,
	}
	eng.SetReporter(p)
	return p
}

// Run reads commands from in until quit, the end of the input or the end
// of ctx.
func (p *Protocol) Run(ctx context.Context, in io.Reader) error {
	defer p.finish()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !p.Handle(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Handle executes one command line. It returns false after quit.
func (p *Protocol) Handle(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	if cmd != "stop" && cmd != "quit" {
		p.wait()
	}

	var err error
	switch cmd {
	case "othello":
		p.handleHello()
	case "isready":
		p.println("readyok")
	case "newgame":
		p.handleNewGame()
	case "position":
		err = p.handlePosition(args)
	case "play":
		err = p.handlePlay(args)
	case "go":
		err = p.handleGo(ctx, args)
	case "stop":
		p.stop()
	case "perft":
		err = p.handlePerft(args)
	case "moves":
		p.println("moves " + engine.FormatMoves(p.state.LegalMoves()))
	case "eval":
		err = p.handleEval()
	case "d":
		p.printf("%s%s\n", p.state, p.state.Notation())
	case "setoption":
		err = p.handleSetOption(args)
	case "quit":
		p.finish()
		return false
	default:
		err = fmt.Errorf("%w: unknown command %q", ErrSyntax, cmd)
	}

	if err != nil {
		log.Warn().Err(err).Str("command", line).Msg("command failed")
		p.println("info string " + err.Error())
	}
	return true
}

// finish stops a running search and waits for it.
func (p *Protocol) finish() {
	p.stop()
	p.wait()
}

// stop cancels the context of the running search. The cancel holds even
// when the search goroutine has not entered Think yet.
func (p *Protocol) stop() {
	if p.stopSearch != nil {
		p.stopSearch()
	}
}

// wait blocks until the running search ends.
func (p *Protocol) wait() {
	if p.searchDone != nil {
		<-p.searchDone
		p.searchDone = nil
		p.stopSearch = nil
	}
}

func (p *Protocol) println(s string) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintln(p.out, s)
}

func (p *Protocol) printf(format string, args ...any) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// handleHello identifies the engine and lists the options.
func (p *Protocol) handleHello() {
	cfg := p.engine.Config()
	p.println("id name othelloplay")
	p.printf("option name algorithm type combo default %s %s\n", cfg.Algorithm,
		strings.Join(lo.Map(engine.Algorithms(), func(a engine.Algorithm, _ int) string { return "var " + a.String() }), " "))
	p.printf("option name evaluator type string default %s\n", cfg.Evaluator)
	p.printf("option name depth type spin default %d min 1 max %d\n", cfg.Depth, search.MaxDepth)
	p.printf("option name hash_mb type spin default %d min 1 max 4096\n", cfg.HashMB)
	p.printf("option name blend_threshold type spin default %d min 0 max 64\n", cfg.BlendThreshold)
	p.println("ok")
}

func (p *Protocol) handleNewGame() {
	p.engine.Clear()
	p.state = board.NewStartState()
}

// handlePosition parses and sets up a position:
//   - position startpos
//   - position startpos moves f5 d6
//   - position <64 cells> <side> moves c3
func (p *Protocol) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: position needs startpos or a board", ErrSyntax)
	}

	end := slices.Index(args, "moves")
	if end < 0 {
		end = len(args)
	}

	var st *board.State
	if args[0] == "startpos" {
		if end != 1 {
			return fmt.Errorf("%w: unexpected %q after startpos", ErrSyntax, args[1])
		}
		st = board.NewStartState()
	} else {
		var err error
		st, err = board.ParseState(strings.Join(args[:end], " "))
		if err != nil {
			return err
		}
	}

	if end < len(args) {
		if err := playMoves(st, args[end+1:]); err != nil {
			return err
		}
	}
	p.state = st
	return nil
}

func playMoves(st *board.State, moves []string) error {
	for _, s := range moves {
		sq, err := board.ParseSquare(s)
		if err != nil {
			return err
		}
		if err := st.Play(sq); err != nil {
			return err
		}
	}
	return nil
}

func (p *Protocol) handlePlay(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: play needs a move", ErrSyntax)
	}
	// Moves are applied to a copy so that a bad move leaves the position.
	st := p.state.Clone()
	if err := playMoves(st, args); err != nil {
		return err
	}
	p.state = st
	return nil
}

// handleGo starts a search in the background. Its result is written as
// "bestmove <move>", or "bestmove none" when the game is over.
func (p *Protocol) handleGo(ctx context.Context, args []string) error {
	var limits engine.Limits
	var remain, inc [2]time.Duration

	for i := 0; i < len(args); i++ {
		key := args[i]
		if i+1 >= len(args) {
			return fmt.Errorf("%w: %s needs a value", ErrSyntax, key)
		}
		i++
		val := args[i]

		if key == "algo" {
			if err := p.engine.SetOption("algorithm", val); err != nil {
				return err
			}
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s %q", ErrSyntax, key, val)
		}
		ms := time.Duration(n) * time.Millisecond
		switch key {
		case "depth":
			limits.Depth = n
		case "movetime":
			limits.MoveTime = ms
		case "btime":
			remain[board.Black] = ms
		case "wtime":
			remain[board.White] = ms
		case "binc":
			inc[board.Black] = ms
		case "winc":
			inc[board.White] = ms
		default:
			return fmt.Errorf("%w: unknown go parameter %q", ErrSyntax, key)
		}
	}
	side := p.state.Side()
	limits.Remain, limits.Inc = remain[side], inc[side]

	st := p.state.Clone()
	searchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.searchDone = done
	p.stopSearch = cancel

	go func() {
		defer close(done)
		defer cancel()

		res, err := p.engine.Think(searchCtx, st, limits)
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			// Stopped before the search began: answer from one ply.
			limits.Depth, limits.MoveTime = 1, 0
			res, err = p.engine.Think(ctx, st, limits)
		}
		if err != nil {
			log.Warn().Err(err).Msg("search failed")
			p.println("info string " + err.Error())
			p.println("bestmove none")
			return
		}
		if !res.HasMove {
			p.println("bestmove none")
			return
		}
		p.println("bestmove " + res.Move.String())
	}()
	return nil
}

// handlePerft counts the leaf states of every root move.
func (p *Protocol) handlePerft(args []string) error {
	depth := 5
	if len(args) > 0 {
		var err error
		if depth, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("%w: perft depth %q", ErrSyntax, args[0])
		}
	}

	start := time.Now()
	counts, err := search.Divide[*board.State, board.Square](p.state.Clone(), depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	moves := lo.Keys(counts)
	slices.Sort(moves)
	var nodes uint64
	for _, m := range moves {
		p.printf("%s: %d\n", m, counts[m])
		nodes += counts[m]
	}
	if len(moves) == 0 {
		nodes = 1
	}

	p.printf("Nodes: %d\n", nodes)
	p.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		p.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
	return nil
}

func (p *Protocol) handleEval() error {
	v, err := p.engine.Evaluate(p.state)
	if err != nil {
		return err
	}
	p.printf("eval %d\n", v)
	return nil
}

// handleSetOption parses "setoption name <name> value <value>".
func (p *Protocol) handleSetOption(args []string) error {
	var name, value []string
	var target *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target == nil {
				return fmt.Errorf("%w: setoption name <name> value <value>", ErrSyntax)
			}
			*target = append(*target, arg)
		}
	}
	if len(name) == 0 {
		return fmt.Errorf("%w: setoption needs a name", ErrSyntax)
	}
	return p.engine.SetOption(strings.Join(name, " "), strings.Join(value, " "))
}

// Start implements engine.Reporter.
func (p *Protocol) Start(notation string, limits engine.Limits) {
	p.logs.Start(notation, limits)
}

// Progress writes an info line for every finished iteration.
func (p *Protocol) Progress(info engine.Info) {
	p.logs.Progress(info)

	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("score %d", info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %d", uint64(float64(info.Nodes)/info.Time.Seconds())))
	}
	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}
	if len(info.PV) > 0 {
		parts = append(parts, "pv "+engine.FormatMoves(info.PV))
	}
	p.println("info " + strings.Join(parts, " "))
}

// Complete implements engine.Reporter.
func (p *Protocol) Complete(res engine.Result) {
	p.logs.Complete(res)
}
