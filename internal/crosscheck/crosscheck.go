// Package crosscheck validates the board package's move generator against
// an independent implementation, github.com/dylhunn/dragontoothmg.
package crosscheck

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chesscore/board"
)

// Perft counts leaf nodes with the oracle generator.
func Perft(pos *board.Position, depth int) uint64 {
	b := dragontoothmg.ParseFen(pos.FEN())
	return perft(&b, depth)
}

func perft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += perft(b, depth-1)
		unapply()
	}
	return nodes
}

// Divide returns the oracle's per-root-move leaf counts keyed by UCI move.
func Divide(pos *board.Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	b := dragontoothmg.ParseFen(pos.FEN())
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		out[m.String()] = perft(&b, depth-1)
		unapply()
	}
	return out
}

// LegalMoves returns the oracle's legal moves in sorted UCI form.
func LegalMoves(pos *board.Position) []string {
	b := dragontoothmg.ParseFen(pos.FEN())
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	slices.Sort(out)
	return out
}

// Mismatch is one root move on which the two generators disagree. A count
// of zero on either side means the move is missing there.
type Mismatch struct {
	Move string
	Got  uint64
	Want uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: got %d want %d", m.Move, m.Got, m.Want)
}

// Keyed converts a board divide map to UCI move keys.
func Keyed(div map[board.Move]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(div))
	for m, n := range div {
		out[m.String()] = n
	}
	return out
}

// Diff compares two divide maps and returns the differing moves in sorted
// order.
func Diff(got, want map[string]uint64) []Mismatch {
	keys := maps.Keys(got)
	for k := range want {
		if _, ok := got[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var out []Mismatch
	for _, k := range keys {
		if got[k] != want[k] {
			out = append(out, Mismatch{Move: k, Got: got[k], Want: want[k]})
		}
	}
	return out
}

// Compare runs a divide at depth with both generators and reports every
// disagreeing root move.
func Compare(pos *board.Position, depth int) []Mismatch {
	p := *pos
	return Diff(Keyed(board.PerftDivide(&p, depth)), Divide(pos, depth))
}

// Format renders mismatches one per line.
func Format(ms []Mismatch) string {
	var sb strings.Builder
	for _, m := range ms {
		sb.WriteString(m.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
