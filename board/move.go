package board

import (
	"errors"
	"fmt"
	"strings"
)

// Move encodes a chess move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	moveFlagShift    = 12 // 5 bits
	movePromoteShift = 17 // 3 bits
)

// MoveFlag marks the special properties of a move.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagDoublePush
	FlagEnPassant
	FlagCastleKing
	FlagCastleQueen

	FlagNone   MoveFlag = 0
	FlagCastle          = FlagCastleKing | FlagCastleQueen
)

// NullMove is the zero Move; it never matches a generated move.
const NullMove Move = 0

// promotionKinds is the emission order of promotion choices.
var promotionKinds = [4]Kind{Queen, Knight, Rook, Bishop}

// NewMove constructs a Move value from components.
func NewMove(from, to Square, flags MoveFlag) Move {
	return Move(uint32(from&0x3F)<<moveFromShift |
		uint32(to&0x3F)<<moveToShift |
		uint32(flags&0x1F)<<moveFlagShift)
}

// NewPromotion constructs a pawn move that promotes to kind.
func NewPromotion(from, to Square, flags MoveFlag, kind Kind) Move {
	return NewMove(from, to, flags) | Move(uint32(kind&7)<<movePromoteShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// Flags returns the special move flags.
func (m Move) Flags() MoveFlag { return MoveFlag((uint32(m) >> moveFlagShift) & 0x1F) }

// Promotion returns the promotion kind, or KindNone.
func (m Move) Promotion() Kind { return Kind((uint32(m) >> movePromoteShift) & 7) }

func (m Move) IsCapture() bool    { return m.Flags()&FlagCapture != 0 }
func (m Move) IsDoublePush() bool { return m.Flags()&FlagDoublePush != 0 }
func (m Move) IsEnPassant() bool  { return m.Flags()&FlagEnPassant != 0 }
func (m Move) IsCastle() bool     { return m.Flags()&FlagCastle != 0 }
func (m Move) IsPromotion() bool  { return m.Promotion() != KindNone }

// String produces the long algebraic form used by UCI (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.Promotion(); promo != KindNone {
		s += string(kindLetters[promo])
	}
	return s
}

// ParseMove splits a UCI move string (e2e4, e7e8q) into its squares and
// promotion kind. It does not check legality; see Position.ApplyMove.
func ParseMove(movestr string) (from, to Square, promo Kind, err error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) < 4 || len(movestr) > 5 {
		return NoSquare, NoSquare, KindNone, errors.New("invalid move length")
	}
	if from, err = ParseSquare(movestr[0:2]); err != nil {
		return NoSquare, NoSquare, KindNone, err
	}
	if to, err = ParseSquare(movestr[2:4]); err != nil {
		return NoSquare, NoSquare, KindNone, err
	}
	if len(movestr) == 5 {
		switch movestr[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return NoSquare, NoSquare, KindNone, fmt.Errorf("invalid promotion piece %q", movestr[4])
		}
	}
	return from, to, promo, nil
}
