package board

import (
	"math/bits"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Position.
//
// Only the placement field is mandatory. Missing trailing fields default to
// White to move, all castling rights, no en-passant square, a half-move
// clock of 0 and full-move number 1. Castling rights whose king or rook is
// not on its home square are dropped. The position must hold exactly one king
// per side and the side not to move must not be in check.
func ParseFEN(fen string) (Position, error) {
	var p Position
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return p, &FENError{Field: "placement", Reason: "empty string"}
	}
	if len(fields) > 6 {
		return p, &FENError{Field: "position", Value: fen, Reason: "too many fields"}
	}
	field := func(i int, def string) string {
		if i < len(fields) {
			return fields[i]
		}
		return def
	}

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return p, &FENError{Field: "placement", Value: fields[0], Reason: "need 8 ranks"}
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc, ok := pieceFromRune(ch)
			if !ok {
				return p, &FENError{Field: "placement", Value: string(ch), Reason: "unrecognized piece character"}
			}
			if file >= 8 {
				return p, &FENError{Field: "placement", Value: rankStr, Reason: "too many squares in rank"}
			}
			p.put(NewSquare(file, rank), pc)
			file++
		}
		if file != 8 {
			return p, &FENError{Field: "placement", Value: rankStr, Reason: "rank does not have 8 columns"}
		}
	}
	for _, c := range [2]Color{White, Black} {
		switch n := bits.OnesCount64(p.pieces[c][King]); {
		case n == 0:
			return p, &FENError{Field: "placement", Value: fields[0], Reason: c.String() + " king is missing"}
		case n > 1:
			return p, &FENError{Field: "placement", Value: fields[0], Reason: "more than one " + c.String() + " king"}
		}
	}
	if (p.pieces[White][Pawn]|p.pieces[Black][Pawn])&(rankMask(0)|rankMask(7)) != 0 {
		return p, &FENError{Field: "placement", Value: fields[0], Reason: "pawn on first or last rank"}
	}

	// 2. Side to move
	switch side := field(1, "w"); side {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return p, &FENError{Field: "side", Value: side, Reason: "must be 'w' or 'b'"}
	}

	// 3. Castling rights
	castling := field(2, "KQkq")
	if castling != "-" {
		for _, ch := range castling {
			switch ch {
			case 'K':
				p.castlingRights |= CastleWhiteKing
			case 'Q':
				p.castlingRights |= CastleWhiteQueen
			case 'k':
				p.castlingRights |= CastleBlackKing
			case 'q':
				p.castlingRights |= CastleBlackQueen
			default:
				return p, &FENError{Field: "castling", Value: castling, Reason: "invalid castling character"}
			}
		}
	}
	for _, cs := range castleSides {
		if p.pieces[cs.color][King]&bb(cs.kingFrom) == 0 || p.pieces[cs.color][Rook]&bb(cs.rookFrom) == 0 {
			p.castlingRights &^= cs.right
		}
	}

	// 4. En passant target square
	p.enPassantSquare = NoSquare
	if ep := field(3, "-"); ep != "-" {
		sq, err := ParseSquare(ep)
		if err != nil {
			return p, &FENError{Field: "en passant", Value: ep, Reason: "not a square"}
		}
		wantRank := 5
		if p.sideToMove == Black {
			wantRank = 2
		}
		if sq.Rank() != wantRank {
			return p, &FENError{Field: "en passant", Value: ep, Reason: "target on wrong rank"}
		}
		// The pawn that just double-pushed passed over sq from origin.
		victim := epVictim(p.sideToMove, sq)
		origin := sq + (sq - victim)
		occ := p.Occupancy()
		switch {
		case occ&bb(sq) != 0:
			return p, &FENError{Field: "en passant", Value: ep, Reason: "target square is occupied"}
		case p.pieces[p.sideToMove.Other()][Pawn]&bb(victim) == 0:
			return p, &FENError{Field: "en passant", Value: ep, Reason: "no pawn in front of target"}
		case occ&bb(origin) != 0:
			return p, &FENError{Field: "en passant", Value: ep, Reason: "pawn start square is occupied"}
		}
		p.enPassantSquare = sq
	}

	// 5. Halfmove clock
	var err error
	if p.halfmoveClock, err = strconv.Atoi(field(4, "0")); err != nil || p.halfmoveClock < 0 {
		return p, &FENError{Field: "halfmove", Value: field(4, "0"), Reason: "not a non-negative number"}
	}

	// 6. Fullmove number
	if p.fullmoveNumber, err = strconv.Atoi(field(5, "1")); err != nil || p.fullmoveNumber < 1 {
		return p, &FENError{Field: "fullmove", Value: field(5, "1"), Reason: "not a positive number"}
	}

	p.locateKings()
	if p.IsSquareAttacked(p.enemyKing, p.sideToMove) {
		return p, &FENError{Field: "position", Value: fen, Reason: "side not to move is in check"}
	}
	return p, nil
}

// MustParseFEN is ParseFEN for trusted input; it panics on error.
func MustParseFEN(fen string) Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// FEN produces the FEN string representation of the current state.
func (p *Position) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc.IsNone() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteRune(pc.Rune())
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// 2. Side to move
	if p.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	// 3. Castling rights
	if p.castlingRights == CastleNone {
		sb.WriteByte('-')
	} else {
		for i, ch := range "KQkq" {
			if p.castlingRights&(1<<i) != 0 {
				sb.WriteRune(ch)
			}
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(p.enPassantSquare.String())
	sb.WriteByte(' ')

	// 5-6. Clocks
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}

// rankMask returns the eight squares of a zero-based rank.
func rankMask(rank int) uint64 { return uint64(0xFF) << (8 * uint(rank)) }
