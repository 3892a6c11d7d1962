package board

// Precomputed attack masks for knights and kings from each square.
var knightAttacks [64]uint64
var kingAttacks [64]uint64

// pawnAttacks[color][sq] gives the squares a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

// Ray directions. The first four walk towards higher square indices, so the
// nearest blocker on those rays is the lowest set bit; the last four walk
// downwards and use the highest set bit.
const (
	dirN = iota
	dirE
	dirNE
	dirNW
	dirS
	dirW
	dirSW
	dirSE
)

var dirSteps = [8][2]int{ // {file, rank}
	dirN:  {0, 1},
	dirE:  {1, 0},
	dirNE: {1, 1},
	dirNW: {-1, 1},
	dirS:  {0, -1},
	dirW:  {-1, 0},
	dirSW: {-1, -1},
	dirSE: {1, -1},
}

// rays[dir][sq] holds every square from sq towards the edge, excluding sq.
var rays [8][64]uint64

var orthogonalDirs = [4]int{dirN, dirE, dirS, dirW}
var diagonalDirs = [4]int{dirNE, dirNW, dirSW, dirSE}

func isOrthogonal(dir int) bool { return dir == dirN || dir == dirE || dir == dirS || dir == dirW }

// nearest returns the blocker closest to the ray origin.
func nearest(dir int, blockers uint64) Square {
	if dir < dirS {
		return lsb(blockers)
	}
	return msb(blockers)
}

func init() {
	initLeaperTables()
	initRays()
	initMagics()
}

func offsetTargets(sq Square, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		f := sq.File() + off[0]
		r := sq.Rank() + off[1]
		if f >= 0 && f < 8 && r >= 0 && r < 8 {
			mask |= bb(NewSquare(f, r))
		}
	}
	return mask
}

// initLeaperTables precomputes knight, king and pawn-capture bitboards.
func initLeaperTables() {
	knightOffsets := [][2]int{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingOffsets := [][2]int{
		{0, 1}, {1, 1}, {1, 0}, {1, -1},
		{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
	}
	for sq := Square(0); sq < 64; sq++ {
		knightAttacks[sq] = offsetTargets(sq, knightOffsets)
		kingAttacks[sq] = offsetTargets(sq, kingOffsets)
		pawnAttacks[White][sq] = offsetTargets(sq, [][2]int{{-1, 1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetTargets(sq, [][2]int{{-1, -1}, {1, -1}})
	}
}

func initRays() {
	for sq := Square(0); sq < 64; sq++ {
		for dir, step := range dirSteps {
			var ray uint64
			f, r := sq.File()+step[0], sq.Rank()+step[1]
			for f >= 0 && f < 8 && r >= 0 && r < 8 {
				ray |= bb(NewSquare(f, r))
				f += step[0]
				r += step[1]
			}
			rays[dir][sq] = ray
		}
	}
}

// slidingAttacks casts the given rays from sq, stopping at (and including)
// the first occupied square on each. Only used to fill the magic tables.
func slidingAttacks(sq Square, occ uint64, dirs [4]int) uint64 {
	var attacks uint64
	for _, dir := range dirs {
		ray := rays[dir][sq]
		if blockers := ray & occ; blockers != 0 {
			ray &^= rays[dir][nearest(dir, blockers)]
		}
		attacks |= ray
	}
	return attacks
}

// between returns the squares strictly between a and b when they share a
// rank, file or diagonal, and zero otherwise.
func between(a, b Square) uint64 {
	for dir := range rays {
		if rays[dir][a]&bb(b) != 0 {
			return rays[dir][a] &^ rays[dir][b] &^ bb(b)
		}
	}
	return 0
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) uint64 { return knightAttacks[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) uint64 { return kingAttacks[sq] }

// PawnAttacks returns the capture squares of a pawn of color c on sq.
func PawnAttacks(c Color, sq Square) uint64 { return pawnAttacks[c][sq] }

// QueenAttacks returns the queen attack set from sq for the given occupancy.
func QueenAttacks(sq Square, occ uint64) uint64 { return RookAttacks(sq, occ) | BishopAttacks(sq, occ) }
