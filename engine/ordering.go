package engine

import (
	"cmp"
	"slices"

	"chesscore/board"
)

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
var mvvLva = [7][7]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

// Captures and promotions always sort above quiet move heuristics.
const (
	promotionOffset = 2000
	captureOffset   = 1000
	killerOffset    = 500
)

type scoredMove struct {
	move  board.Move
	score int
}

func moveScore(pos *board.Position, m board.Move, killers [2]board.Move) int {
	score := 0
	if m.Promotion() == board.Queen {
		score += promotionOffset
	}
	if m.IsCapture() {
		victim := board.Pawn
		if !m.IsEnPassant() {
			victim = pos.PieceAt(m.To()).Kind
		}
		score += captureOffset + mvvLva[victim][pos.PieceAt(m.From()).Kind]
	}
	if score == 0 && m != board.NullMove {
		switch m {
		case killers[0]:
			score = killerOffset + 1
		case killers[1]:
			score = killerOffset
		}
	}
	return score
}

// orderMoves puts queen promotions and captures first, best victim first,
// then the ply's killer moves. The sort is stable so the remaining quiet
// moves keep generation order.
func orderMoves(pos *board.Position, moves []board.Move, killers [2]board.Move) {
	var buf [256]scoredMove
	scored := buf[:0]
	for _, m := range moves {
		scored = append(scored, scoredMove{m, moveScore(pos, m, killers)})
	}
	slices.SortStableFunc(scored, func(a, b scoredMove) int { return cmp.Compare(b.score, a.score) })
	for i := range scored {
		moves[i] = scored[i].move
	}
}
