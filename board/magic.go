package board

import (
	"fmt"
	"math/bits"
	"math/rand"
)

// magicEntry holds the magic bitboard data for one slider on one square:
// ((occ & mask) * magic) >> shift indexes table.
type magicEntry struct {
	mask  uint64
	magic uint64
	shift uint8
	table []uint64
}

var rookMagics [64]magicEntry
var bishopMagics [64]magicEntry

// magicSeed fixes the candidate stream so the tables are identical on every run.
const magicSeed = 0x5EED_C0DE

const maxMagicAttempts = 100_000_000

// initMagics searches a collision-free multiplier for every square and fills
// the attack tables. It runs once from the package init.
func initMagics() {
	rnd := rand.New(rand.NewSource(magicSeed))
	for sq := Square(0); sq < 64; sq++ {
		rookMagics[sq] = findMagic(rnd, sq, relevantMask(sq, orthogonalDirs), orthogonalDirs)
		bishopMagics[sq] = findMagic(rnd, sq, relevantMask(sq, diagonalDirs), diagonalDirs)
	}
}

// relevantMask returns the slider rays from sq without their final edge
// square, since a blocker there never changes the attack set.
func relevantMask(sq Square, dirs [4]int) uint64 {
	var mask uint64
	for _, dir := range dirs {
		ray := rays[dir][sq]
		if ray == 0 {
			continue
		}
		var edge Square
		if dir < dirS {
			edge = msb(ray)
		} else {
			edge = lsb(ray)
		}
		mask |= ray &^ bb(edge)
	}
	return mask
}

func findMagic(rnd *rand.Rand, sq Square, mask uint64, dirs [4]int) magicEntry {
	n := bits.OnesCount64(mask)
	size := 1 << n
	occs := make([]uint64, size)
	atts := make([]uint64, size)

	// Carry-rippler walk over every subset of mask, starting with the empty set.
	var subset uint64
	for i := 0; i < size; i++ {
		occs[i] = subset
		atts[i] = slidingAttacks(sq, subset, dirs)
		subset = (subset - mask) & mask
	}

	table := make([]uint64, size)
	used := make([]int, size)
	shift := uint8(64 - n)
	for attempt := 1; attempt <= maxMagicAttempts; attempt++ {
		candidate := rnd.Uint64() & rnd.Uint64() & rnd.Uint64()
		if bits.OnesCount64((mask*candidate)>>56) < 6 {
			continue
		}
		ok := true
		for i := 0; i < size; i++ {
			idx := (occs[i] * candidate) >> shift
			if used[idx] != attempt {
				used[idx] = attempt
				table[idx] = atts[i]
			} else if table[idx] != atts[i] {
				ok = false
				break
			}
		}
		if ok {
			return magicEntry{mask: mask, magic: candidate, shift: shift, table: table}
		}
	}
	panic(fmt.Sprintf("board: no magic multiplier found for %s", sq))
}

// RookAttacks returns the rook attack set from sq for the given occupancy.
func RookAttacks(sq Square, occ uint64) uint64 {
	m := &rookMagics[sq]
	return m.table[((occ&m.mask)*m.magic)>>m.shift]
}

// BishopAttacks returns the bishop attack set from sq for the given occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 {
	m := &bishopMagics[sq]
	return m.table[((occ&m.mask)*m.magic)>>m.shift]
}
