package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Depth 0 is the position itself and counts as one node.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(p, depth, &pc)
}

// perftCtx keeps one move buffer per depth so the recursion does not allocate.
type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	if pc.bufs[depth] == nil {
		pc.bufs[depth] = make([]Move, 0, 256)
	}
	return pc.bufs[depth][:0]
}

func perftRec(p *Position, depth int, pc *perftCtx) uint64 {
	moves := p.GenerateMovesInto(pc.bufFor(depth))
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		u := p.MakeMove(m)
		nodes += perftRec(p, depth-1, pc)
		p.UnmakeMove(m, u)
	}
	return nodes
}

// PerftDivide returns, for each legal root move, the number of leaf nodes
// reachable from it at the given depth. Useful for debugging.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.GenerateMoves() {
		u := p.MakeMove(m)
		result[m] = Perft(p, depth-1)
		p.UnmakeMove(m, u)
	}
	return result
}
