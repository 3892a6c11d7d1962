package engine

import (
	"chesscore/board"
)

// killerTable keeps the last two quiet moves per ply that caused a beta cutoff.
type killerTable [maxPly + 1][2]board.Move

func (k *killerTable) insert(m board.Move, ply int) {
	if ply > maxPly {
		return
	}
	if m != k[ply][0] {
		k[ply][1] = k[ply][0]
		k[ply][0] = m
	}
}

func (k *killerTable) at(ply int) [2]board.Move {
	if ply > maxPly {
		return [2]board.Move{}
	}
	return k[ply]
}

// Clear the killer moves table.
func (k *killerTable) clear() {
	*k = killerTable{}
}
