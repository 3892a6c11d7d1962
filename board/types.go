package board

import (
	"fmt"
	"math/bits"
)

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Kind is a colorless piece type. KindNone marks an empty square.
type Kind uint8

const (
	KindNone Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// kinds lists the six real piece kinds in bitboard order.
var kinds = [6]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

// Piece pairs a side with a piece kind.
type Piece struct {
	Color Color
	Kind  Kind
}

// NoPiece is returned for empty squares.
var NoPiece = Piece{Kind: KindNone}

// IsNone reports whether p denotes an empty square.
func (p Piece) IsNone() bool { return p.Kind == KindNone }

// Rune returns the FEN letter of the piece, uppercase for White.
func (p Piece) Rune() rune {
	r := kindLetters[p.Kind]
	if p.Color == White && p.Kind != KindNone {
		r -= 'a' - 'A'
	}
	return r
}

func (p Piece) String() string { return string(p.Rune()) }

var kindLetters = [7]rune{'.', 'p', 'n', 'b', 'r', 'q', 'k'}

// pieceFromRune converts a FEN letter to a Piece. ok is false for unknown letters.
func pieceFromRune(r rune) (p Piece, ok bool) {
	color := White
	if r >= 'a' && r <= 'z' {
		color = Black
		r -= 'a' - 'A'
	}
	switch r {
	case 'P':
		return Piece{color, Pawn}, true
	case 'N':
		return Piece{color, Knight}, true
	case 'B':
		return Piece{color, Bishop}, true
	case 'R':
		return Piece{color, Rook}, true
	case 'Q':
		return Piece{color, Queen}, true
	case 'K':
		return Piece{color, King}, true
	}
	return NoPiece, false
}

// CastlingRights is a bit set of the four castling permissions.
type CastlingRights uint8

const (
	CastleWhiteKing CastlingRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen

	CastleNone CastlingRights = 0
	CastleAll                 = CastleWhiteKing | CastleWhiteQueen | CastleBlackKing | CastleBlackQueen
)

// Square is a board index, a1 = 0 through h8 = 63.
type Square int

// NoSquare is the sentinel for "no en-passant target".
const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A1 Square = 0
	B1 Square = 1
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	B8 Square = 57
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// NewSquare builds a square from a zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// File returns the zero-based file (a = 0).
func (s Square) File() int { return int(s) & 7 }

// Rank returns the zero-based rank (rank 1 = 0).
func (s Square) Rank() int { return int(s) >> 3 }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// Flip mirrors the square vertically (a1 <-> a8).
func (s Square) Flip() Square { return s ^ 56 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare converts algebraic notation such as "e4" to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// lsb returns the lowest set square of a non-empty mask.
func lsb(mask uint64) Square { return Square(bits.TrailingZeros64(mask)) }

// msb returns the highest set square of a non-empty mask.
func msb(mask uint64) Square { return Square(63 - bits.LeadingZeros64(mask)) }

// Squares lists the set squares of a bitboard, lowest first.
func Squares(mask uint64) []Square {
	out := make([]Square, 0, bits.OnesCount64(mask))
	for mask != 0 {
		out = append(out, popLSB(&mask))
	}
	return out
}
