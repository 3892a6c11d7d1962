package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chesscore/board"
	"chesscore/engine"
	"chesscore/game"
	"chesscore/internal/crosscheck"
)

func main() {
	uciLoop(os.Stdin, os.Stdout)
}

func uciLoop(in io.Reader, out io.Writer) {
	d := newUCIDriver(out)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if quit := d.handle(scanner.Text()); quit {
			return
		}
	}
}

// uciDriver translates UCI commands into game and engine calls. Search is
// synchronous, so "stop" has nothing to interrupt.
type uciDriver struct {
	game *game.Game
	out  io.Writer
	log  *log.Logger
}

func newUCIDriver(out io.Writer) *uciDriver {
	logger := log.New(out, "info string ", 0)
	g, err := game.New(game.WithLogger(logger))
	if err != nil {
		// the standard start position always parses
		panic(err)
	}
	return &uciDriver{game: g, out: out, log: logger}
}

// handle executes one command line and reports whether the loop should end.
func (d *uciDriver) handle(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 { // ignore blank lines
		return false
	}
	switch strings.ToLower(tokens[0]) {
	case "uci":
		fmt.Fprintln(d.out, "id name chesscore")
		fmt.Fprintln(d.out, "id author chesscore authors")
		fmt.Fprintf(d.out, "option name Depth type spin default %d min 1 max 10\n", engine.DefaultConfig().Depth)
		fmt.Fprintln(d.out, "uciok")
	case "isready":
		fmt.Fprintln(d.out, "readyok")
	case "ucinewgame":
		d.game.SetUpBoard()
	case "quit":
		return true
	case "stop":
	case "position":
		d.position(tokens[1:])
	case "go":
		d.goSearch(tokens[1:])
	case "setoption":
		d.setOption(tokens[1:])
	case "perft":
		d.perft(tokens[1:])
	case "d":
		pos := d.game.Position()
		fmt.Fprintln(d.out, pos.String())
	case "eval":
		pos := d.game.Position()
		d.log.Printf("eval %d (white %d)", engine.Evaluate(&pos), engine.WhiteScore(&pos))
	default:
		d.log.Println("Unknown command:", line)
	}
	return false
}

func (d *uciDriver) position(args []string) {
	if len(args) == 0 {
		d.log.Println("Malformed position command")
		return
	}
	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = board.StartFEN
	case "fen":
		i := slices.Index(rest, "moves")
		if i < 0 {
			i = len(rest)
		}
		fen = strings.Join(rest[:i], " ")
		rest = rest[i:]
	default:
		d.log.Println("Invalid position subcommand")
		return
	}
	if err := d.game.SetStateString(fen); err != nil {
		d.log.Println("Invalid fen position:", err)
		return
	}
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, mv := range rest[1:] {
		from, to, promo, err := board.ParseMove(mv)
		if err == nil {
			err = d.game.ApplyUserMovePromotion(from, to, promo)
		}
		if err != nil {
			d.log.Println("Move", mv, "not applied:", err)
			return
		}
	}
}

func (d *uciDriver) goSearch(args []string) {
	depth := d.game.Depth()
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				d.log.Println("Malformed go command option depth")
				continue
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 1 {
				d.log.Println("Malformed go command option; could not convert depth")
				continue
			}
			depth = n
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes":
			// fixed-depth search; time controls are accepted and ignored
			i++
		case "infinite":
		default:
			d.log.Println("Unknown go subcommand", args[i])
		}
	}

	pos := d.game.Position()
	s := engine.NewSearcher(engine.Config{Depth: depth})
	start := time.Now()
	best, score := s.BestMove(&pos)
	elapsed := time.Since(start)

	scoreStr := fmt.Sprintf("cp %d", score)
	if moves, ok := engine.MateDistance(score); ok {
		scoreStr = fmt.Sprintf("mate %d", moves)
	}
	if best != board.NullMove {
		fmt.Fprintf(d.out, "info depth %d score %s nodes %d time %d pv %s\n",
			depth, scoreStr, s.Stats.Nodes, elapsed.Milliseconds(), best)
	}
	fmt.Fprintln(d.out, "bestmove", best)
}

// setOption handles "setoption name Depth value N".
func (d *uciDriver) setOption(args []string) {
	if len(args) != 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		d.log.Println("Malformed setoption command")
		return
	}
	switch strings.ToLower(args[1]) {
	case "depth":
		n, err := strconv.Atoi(args[3])
		if err != nil || n < 1 {
			d.log.Println("Malformed setoption value", args[3])
			return
		}
		d.game.SetDepth(engine.Clamp(n, 1, 10))
	default:
		d.log.Println("Unknown option", args[1])
	}
}

func (d *uciDriver) perft(args []string) {
	if len(args) != 1 {
		d.log.Println("Malformed perft command")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		d.log.Println("Malformed perft depth", args[0])
		return
	}
	pos := d.game.Position()
	div := crosscheck.Keyed(board.PerftDivide(&pos, depth))
	moves := maps.Keys(div)
	slices.Sort(moves)
	var total uint64
	for _, m := range moves {
		fmt.Fprintf(d.out, "%s: %d\n", m, div[m])
		total += div[m]
	}
	fmt.Fprintf(d.out, "\nNodes searched: %d\n", total)
}
