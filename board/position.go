package board

import (
	"math/bits"
	"strings"
)

// Position is the complete game state: one bitboard per (color, kind) plus
// the scalar fields FEN carries and the cached king squares.
//
// A Position is a plain value. Copying it yields an independent state, which
// is how Successor and concurrent callers isolate their work.
type Position struct {
	// pieces[color][kind]; pieces[c][KindNone] is always empty.
	pieces [2][7]uint64

	sideToMove     Color
	castlingRights CastlingRights

	// En passant target square (behind a pawn that just double-pushed), otherwise NoSquare.
	enPassantSquare Square

	// Half-moves since the last capture or pawn move, for the 50-move rule.
	halfmoveClock int

	// Starts at 1 and is incremented after Black's move.
	fullmoveNumber int

	friendlyKing Square
	enemyKing    Square
}

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the remaining castling permissions.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// HalfmoveClock returns the number of half-moves since the last capture or pawn move.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the full move counter.
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// FriendlyKingSquare returns the king square of the side to move.
func (p *Position) FriendlyKingSquare() Square { return p.friendlyKing }

// EnemyKingSquare returns the king square of the side not to move.
func (p *Position) EnemyKingSquare() Square { return p.enemyKing }

// KingSquare returns the king square of the given side.
func (p *Position) KingSquare(c Color) Square {
	if c == p.sideToMove {
		return p.friendlyKing
	}
	return p.enemyKing
}

// Bitboard returns the squares holding pieces of the given color and kind.
func (p *Position) Bitboard(c Color, k Kind) uint64 { return p.pieces[c][k] }

// ColorOccupancy returns the union of the six bitboards of one side.
func (p *Position) ColorOccupancy(c Color) uint64 {
	s := &p.pieces[c]
	return s[Pawn] | s[Knight] | s[Bishop] | s[Rook] | s[Queen] | s[King]
}

// Occupancy returns every occupied square.
func (p *Position) Occupancy() uint64 { return p.ColorOccupancy(White) | p.ColorOccupancy(Black) }

// kindAt returns the kind of the c-colored piece on sq, or KindNone.
func (p *Position) kindAt(c Color, sq Square) Kind {
	mask := bb(sq)
	for _, k := range kinds {
		if p.pieces[c][k]&mask != 0 {
			return k
		}
	}
	return KindNone
}

// PieceAt returns the piece on a square.
func (p *Position) PieceAt(sq Square) Piece {
	for _, c := range [2]Color{White, Black} {
		if k := p.kindAt(c, sq); k != KindNone {
			return Piece{c, k}
		}
	}
	return NoPiece
}

// put places a piece on an empty square.
func (p *Position) put(sq Square, pc Piece) {
	p.pieces[pc.Color][pc.Kind] |= bb(sq)
}

// locateKings refreshes the cached king squares from the bitboards.
func (p *Position) locateKings() {
	p.friendlyKing = lsb(p.pieces[p.sideToMove][King])
	p.enemyKing = lsb(p.pieces[p.sideToMove.Other()][King])
}

// Validate checks the structural invariants: no square claimed by two
// bitboards, exactly one king per side, cached king squares in sync, and no
// castling right without its king and rook at home.
func (p *Position) Validate() bool {
	var seen uint64
	for c := range p.pieces {
		if p.pieces[c][KindNone] != 0 {
			return false
		}
		for _, k := range kinds {
			b := p.pieces[c][k]
			if seen&b != 0 {
				return false
			}
			seen |= b
		}
	}
	for _, c := range [2]Color{White, Black} {
		if bits.OnesCount64(p.pieces[c][King]) != 1 {
			return false
		}
	}
	if p.friendlyKing != lsb(p.pieces[p.sideToMove][King]) || p.enemyKing != lsb(p.pieces[p.sideToMove.Other()][King]) {
		return false
	}
	for _, cs := range castleSides {
		if p.castlingRights&cs.right == 0 {
			continue
		}
		if p.pieces[cs.color][King]&bb(cs.kingFrom) == 0 || p.pieces[cs.color][Rook]&bb(cs.rookFrom) == 0 {
			return false
		}
	}
	return true
}

// Mirror returns the color-flipped position: every piece changes color and
// is reflected across the board's horizontal midline, the side to move and
// castling rights swap sides.
func (p *Position) Mirror() Position {
	var m Position
	for c := range p.pieces {
		for _, k := range kinds {
			m.pieces[1-c][k] = bits.ReverseBytes64(p.pieces[c][k])
		}
	}
	m.sideToMove = p.sideToMove.Other()
	cr := p.castlingRights
	m.castlingRights = (cr&(CastleWhiteKing|CastleWhiteQueen))<<2 | (cr&(CastleBlackKing|CastleBlackQueen))>>2
	m.enPassantSquare = NoSquare
	if p.enPassantSquare != NoSquare {
		m.enPassantSquare = p.enPassantSquare.Flip()
	}
	m.halfmoveClock = p.halfmoveClock
	m.fullmoveNumber = p.fullmoveNumber
	m.locateKings()
	return m
}

// String renders the board as an 8x8 diagram, rank 8 first, followed by the FEN.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteRune(p.PieceAt(NewSquare(file, rank)).Rune())
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(p.FEN())
	return sb.String()
}
