package engine

import (
	"chesscore/board"
)

const (
	// MateScore is the score of delivering mate at the root; a mate found n
	// plies from the root scores MateScore - n.
	MateScore = 100000
	// Infinity bounds the alpha-beta window.
	Infinity = 1000000

	// maxPly caps the mate-distance range used when reporting scores.
	maxPly = 256
)

// Config controls a search.
type Config struct {
	// Depth counts plies including the root move. Values below 1 are
	// treated as 1.
	Depth int
}

// DefaultConfig searches the root move plus three plies below it.
func DefaultConfig() Config { return Config{Depth: 4} }

// Searcher runs fixed-depth negamax searches. It is not safe for concurrent
// use; give each goroutine its own Searcher and Position.
type Searcher struct {
	Config Config
	Stats  Stats

	// one move buffer per ply
	bufs    [][]board.Move
	killers killerTable
}

// NewSearcher returns a Searcher with the given configuration.
func NewSearcher(cfg Config) *Searcher {
	return &Searcher{Config: cfg}
}

func (s *Searcher) bufFor(ply int) []board.Move {
	for len(s.bufs) <= ply {
		s.bufs = append(s.bufs, make([]board.Move, 0, 128))
	}
	return s.bufs[ply][:0]
}

// BestMove searches pos to the configured depth and returns the best move and
// its score from the side to move's perspective. Root children are built as
// independent successors and searched with alpha raised to the best score so
// far; ties keep the earliest generated move. With no
// legal moves it returns board.NullMove and 0, so callers check for the end
// of the game first.
func (s *Searcher) BestMove(pos *board.Position) (board.Move, int) {
	s.Stats = Stats{}
	s.killers.clear()
	depth := s.Config.Depth
	if depth < 1 {
		depth = 1
	}

	best, bestScore := board.NullMove, -Infinity
	for _, m := range pos.GenerateMoves() {
		child := pos.Successor(m)
		score := -s.Negamax(&child, depth-1, 1, -Infinity, -bestScore)
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	if best == board.NullMove {
		return board.NullMove, 0
	}
	return best, bestScore
}

// Negamax returns the alpha-beta score of pos from the side to move's
// perspective. ply is the distance from the root and shortens mate scores so
// that nearer mates score higher.
func (s *Searcher) Negamax(pos *board.Position, depth, ply, alpha, beta int) int {
	s.Stats.Nodes++
	if depth <= 0 {
		if pos.IsDrawBy50() {
			s.Stats.FiftyMove++
			return 0
		}
		s.Stats.Leaves++
		return Evaluate(pos)
	}

	moves := pos.GenerateMovesInto(s.bufFor(ply))
	s.bufs[ply] = moves
	if len(moves) == 0 {
		if pos.InCheck() {
			s.Stats.Mates++
			return -(MateScore - ply)
		}
		s.Stats.Stalemates++
		return 0
	}
	if pos.IsDrawBy50() {
		s.Stats.FiftyMove++
		return 0
	}

	orderMoves(pos, moves, s.killers.at(ply))

	best := -Infinity
	for _, m := range moves {
		u := pos.MakeMove(m)
		score := -s.Negamax(pos, depth-1, ply+1, -beta, -alpha)
		pos.UnmakeMove(m, u)

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.Stats.BetaCutoffs++
			if !m.IsCapture() && m.Promotion() == board.KindNone {
				s.killers.insert(m, ply)
			}
			return best
		}
	}
	return best
}

// Negamax searches pos with a throwaway Searcher.
func Negamax(pos *board.Position, depth, ply, alpha, beta int) int {
	var s Searcher
	return s.Negamax(pos, depth, ply, alpha, beta)
}

// MateDistance reports the number of moves (not plies) to mate encoded in
// score, negative when the side to move is being mated. ok is false for
// ordinary scores.
func MateDistance(score int) (moves int, ok bool) {
	plies := MateScore - Abs(score)
	if plies < 0 || plies > maxPly {
		return 0, false
	}
	moves = (plies + 1) / 2
	if score < 0 {
		moves = -moves
	}
	return moves, true
}
