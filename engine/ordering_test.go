package engine

import (
	"testing"

	"chesscore/board"
)

func TestOrderMovesCapturesFirst(t *testing.T) {
	// Pawn can take the queen or the knight; the rook can take the knight.
	pos := board.MustParseFEN("4k3/8/8/2q1n3/3P4/8/8/4RK2 w - - 0 1")
	moves := pos.GenerateMoves()
	orderMoves(&pos, moves, [2]board.Move{})

	want := []string{"d4c5", "d4e5", "e1e5"}
	for i, w := range want {
		if got := moves[i].String(); got != w {
			t.Fatalf("order[%d]: got %s want %s (all: %v)", i, got, w, moves)
		}
	}
	for _, m := range moves[len(want):] {
		if m.IsCapture() {
			t.Fatalf("capture %s ordered after quiet moves", m)
		}
	}
}

func TestOrderMovesKillersAfterCaptures(t *testing.T) {
	pos := board.MustParseFEN("4k3/8/8/2q1n3/3P4/8/8/4RK2 w - - 0 1")
	moves := pos.GenerateMoves()
	var killers killerTable
	for _, uci := range []string{"f1g1", "e1a1"} {
		for _, m := range moves {
			if m.String() == uci {
				killers.insert(m, 3)
			}
		}
	}
	orderMoves(&pos, moves, killers.at(3))

	want := []string{"d4c5", "d4e5", "e1e5", "e1a1", "f1g1"}
	for i, w := range want {
		if got := moves[i].String(); got != w {
			t.Fatalf("order[%d]: got %s want %s (all: %v)", i, got, w, moves)
		}
	}

	killers.insert(killers.at(3)[0], 3)
	if k := killers.at(3); k[0].String() != "e1a1" || k[1].String() != "f1g1" {
		t.Fatalf("reinserting the first killer shifted the table: %v", k)
	}
	killers.clear()
	if k := killers.at(3); k != [2]board.Move{} {
		t.Fatalf("clear left killers: %v", k)
	}
}
