package board

import "math/bits"

// castleSide describes one castling move: where king and rook start and end,
// which squares must be empty and which the king crosses (and so must not be
// attacked).
type castleSide struct {
	color    Color
	right    CastlingRights
	flag     MoveFlag
	kingFrom Square
	kingTo   Square
	rookFrom Square
	rookTo   Square
	empty    uint64
	path     uint64
}

var castleSides = [4]castleSide{
	{White, CastleWhiteKing, FlagCastleKing, E1, G1, H1, F1, bb(F1) | bb(G1), bb(F1) | bb(G1)},
	{White, CastleWhiteQueen, FlagCastleQueen, E1, C1, A1, D1, bb(B1) | bb(C1) | bb(D1), bb(D1) | bb(C1)},
	{Black, CastleBlackKing, FlagCastleKing, E8, G8, H8, F8, bb(F8) | bb(G8), bb(F8) | bb(G8)},
	{Black, CastleBlackQueen, FlagCastleQueen, E8, C8, A8, D8, bb(B8) | bb(C8) | bb(D8), bb(D8) | bb(C8)},
}

// genContext is the attack/check/pin state of one generation pass. It is
// built fresh for every call and never stored.
type genContext struct {
	us, them Color
	own      uint64
	opp      uint64
	occ      uint64
	king     Square

	// attacked holds every square the opponent hits, computed with our king
	// lifted off the board so it cannot shelter behind itself.
	attacked uint64

	checkers    uint64
	inCheck     bool
	doubleCheck bool

	// checkMask is the set of squares that resolve a single check: the
	// checker itself plus, for sliders, the squares between it and our king.
	checkMask uint64

	pinned uint64
	pinRay [64]uint64

	capturesOnly bool
}

// newGenContext computes attack map, checks and pins for the side to move.
func (p *Position) newGenContext(capturesOnly bool) genContext {
	var ctx genContext
	ctx.capturesOnly = capturesOnly
	ctx.us = p.sideToMove
	ctx.them = ctx.us.Other()
	ctx.own = p.ColorOccupancy(ctx.us)
	ctx.opp = p.ColorOccupancy(ctx.them)
	ctx.occ = ctx.own | ctx.opp
	ctx.king = p.friendlyKing

	ctx.attacked = p.attackMap(ctx.them, ctx.occ&^bb(ctx.king))
	p.scanKingRays(&ctx)

	// Leapers: a checking knight or pawn can only be captured, never blocked.
	enemy := &p.pieces[ctx.them]
	leapers := knightAttacks[ctx.king]&enemy[Knight] | pawnAttacks[ctx.us][ctx.king]&enemy[Pawn]
	ctx.checkers |= leapers
	ctx.checkMask |= leapers

	ctx.inCheck = ctx.checkers != 0
	ctx.doubleCheck = bits.OnesCount64(ctx.checkers) > 1
	return ctx
}

// attackMap returns every square attacked by side 'by' under the given occupancy.
func (p *Position) attackMap(by Color, occ uint64) uint64 {
	s := &p.pieces[by]
	var attacks uint64

	pawns := s[Pawn]
	if by == White {
		attacks |= (pawns&^fileMask(0))<<7 | (pawns&^fileMask(7))<<9
	} else {
		attacks |= (pawns&^fileMask(0))>>9 | (pawns&^fileMask(7))>>7
	}
	for n := s[Knight]; n != 0; {
		attacks |= knightAttacks[popLSB(&n)]
	}
	for d := s[Bishop] | s[Queen]; d != 0; {
		attacks |= BishopAttacks(popLSB(&d), occ)
	}
	for o := s[Rook] | s[Queen]; o != 0; {
		attacks |= RookAttacks(popLSB(&o), occ)
	}
	attacks |= kingAttacks[lsb(s[King])]
	return attacks
}

// scanKingRays walks the eight rays out of our king. An enemy slider that is
// the first piece on a matching ray gives check; one that sits behind exactly
// one of our pieces pins it to the ray.
func (p *Position) scanKingRays(ctx *genContext) {
	enemy := &p.pieces[ctx.them]
	for dir := range rays {
		ray := rays[dir][ctx.king]
		blockers := ray & ctx.occ
		if blockers == 0 {
			continue
		}
		sliders := enemy[Bishop] | enemy[Queen]
		if isOrthogonal(dir) {
			sliders = enemy[Rook] | enemy[Queen]
		}
		if ray&sliders == 0 {
			continue
		}

		first := nearest(dir, blockers)
		if bb(first)&ctx.opp != 0 {
			if bb(first)&sliders != 0 {
				ctx.checkers |= bb(first)
				ctx.checkMask |= between(ctx.king, first) | bb(first)
			}
			continue
		}

		beyond := rays[dir][first] & ctx.occ
		if beyond == 0 {
			continue
		}
		second := nearest(dir, beyond)
		if bb(second)&sliders != 0 {
			ctx.pinned |= bb(first)
			ctx.pinRay[first] = between(ctx.king, second) | bb(second)
		}
	}
}

// restrict applies the pin and check masks to a piece's destination set.
func (ctx *genContext) restrict(from Square, targets uint64) uint64 {
	if ctx.pinned&bb(from) != 0 {
		targets &= ctx.pinRay[from]
	}
	if ctx.inCheck {
		targets &= ctx.checkMask
	}
	if ctx.capturesOnly {
		targets &= ctx.opp
	}
	return targets
}

// GenerateMoves generates all legal moves for the side to move.
// It allocates a new slice; prefer GenerateMovesInto to reuse buffers in hot paths.
func (p *Position) GenerateMoves() []Move { return p.GenerateMovesInto(make([]Move, 0, 64)) }

// GenerateMovesInto appends all legal moves for the side to move into dst and returns it.
// The dst slice is truncated (len=0) and reused when capacity suffices.
func (p *Position) GenerateMovesInto(dst []Move) []Move { return p.generate(dst[:0], false) }

// GenerateCaptures returns only the legal captures, including en passant and
// capturing promotions.
func (p *Position) GenerateCaptures() []Move { return p.GenerateCapturesInto(make([]Move, 0, 32)) }

// GenerateCapturesInto is the buffer-reusing form of GenerateCaptures.
func (p *Position) GenerateCapturesInto(dst []Move) []Move { return p.generate(dst[:0], true) }

func (p *Position) generate(moves []Move, capturesOnly bool) []Move {
	ctx := p.newGenContext(capturesOnly)

	moves = p.genKingMoves(moves, &ctx)
	if ctx.doubleCheck {
		return moves
	}
	moves = p.genSliderMoves(moves, &ctx)
	moves = p.genKnightMoves(moves, &ctx)
	moves = p.genPawnMoves(moves, &ctx)
	return moves
}

// appendTargets emits one move per destination bit, lowest square first.
func appendTargets(moves []Move, from Square, targets, opp uint64) []Move {
	for targets != 0 {
		to := popLSB(&targets)
		flags := FlagNone
		if bb(to)&opp != 0 {
			flags = FlagCapture
		}
		moves = append(moves, NewMove(from, to, flags))
	}
	return moves
}

func (p *Position) genKingMoves(moves []Move, ctx *genContext) []Move {
	targets := kingAttacks[ctx.king] &^ ctx.own &^ ctx.attacked
	if ctx.capturesOnly {
		targets &= ctx.opp
	}
	moves = appendTargets(moves, ctx.king, targets, ctx.opp)

	if ctx.inCheck || ctx.capturesOnly {
		return moves
	}
	for i := range castleSides {
		cs := &castleSides[i]
		if cs.color != ctx.us || p.castlingRights&cs.right == 0 || ctx.king != cs.kingFrom {
			continue
		}
		if p.pieces[ctx.us][Rook]&bb(cs.rookFrom) == 0 {
			continue
		}
		if ctx.occ&cs.empty != 0 || ctx.attacked&cs.path != 0 {
			continue
		}
		moves = append(moves, NewMove(cs.kingFrom, cs.kingTo, cs.flag))
	}
	return moves
}

func (p *Position) genSliderMoves(moves []Move, ctx *genContext) []Move {
	own := &p.pieces[ctx.us]
	for pieces := own[Bishop] | own[Rook] | own[Queen]; pieces != 0; {
		from := popLSB(&pieces)
		var targets uint64
		if (own[Rook]|own[Queen])&bb(from) != 0 {
			targets |= RookAttacks(from, ctx.occ)
		}
		if (own[Bishop]|own[Queen])&bb(from) != 0 {
			targets |= BishopAttacks(from, ctx.occ)
		}
		moves = appendTargets(moves, from, ctx.restrict(from, targets&^ctx.own), ctx.opp)
	}
	return moves
}

func (p *Position) genKnightMoves(moves []Move, ctx *genContext) []Move {
	for knights := p.pieces[ctx.us][Knight]; knights != 0; {
		from := popLSB(&knights)
		moves = appendTargets(moves, from, ctx.restrict(from, knightAttacks[from]&^ctx.own), ctx.opp)
	}
	return moves
}

// appendPawnMoves emits one move, or four promotion moves when the pawn
// reaches the last rank.
func appendPawnMoves(moves []Move, from, to Square, flags MoveFlag) []Move {
	if to.Rank() == 0 || to.Rank() == 7 {
		for _, k := range promotionKinds {
			moves = append(moves, NewPromotion(from, to, flags, k))
		}
		return moves
	}
	return append(moves, NewMove(from, to, flags))
}

func (p *Position) genPawnMoves(moves []Move, ctx *genContext) []Move {
	forward, startRank := 8, 1
	if ctx.us == Black {
		forward, startRank = -8, 6
	}
	for pawns := p.pieces[ctx.us][Pawn]; pawns != 0; {
		from := popLSB(&pawns)

		// Pushes: single onto an empty square, double from the start rank
		// through two empty squares. Each destination is masked on its own.
		var pushes uint64
		one := from + Square(forward)
		if ctx.occ&bb(one) == 0 {
			pushes |= bb(one)
			two := one + Square(forward)
			if from.Rank() == startRank && ctx.occ&bb(two) == 0 {
				pushes |= bb(two)
			}
		}
		if !ctx.capturesOnly {
			pushes = ctx.restrict(from, pushes)
			for pushes != 0 {
				to := popLSB(&pushes)
				flags := FlagNone
				if to-from == Square(2*forward) {
					flags = FlagDoublePush
				}
				moves = appendPawnMoves(moves, from, to, flags)
			}
		}

		captures := ctx.restrict(from, pawnAttacks[ctx.us][from]&ctx.opp)
		for captures != 0 {
			moves = appendPawnMoves(moves, from, popLSB(&captures), FlagCapture)
		}

		if p.enPassantSquare != NoSquare && pawnAttacks[ctx.us][from]&bb(p.enPassantSquare) != 0 {
			if p.enPassantLegal(ctx, from) {
				moves = append(moves, NewMove(from, p.enPassantSquare, FlagCapture|FlagEnPassant))
			}
		}
	}
	return moves
}

// enPassantLegal applies pin and check masks to an en-passant capture. The
// victim is not on the destination square, so a check by the victim pawn is
// resolved by the capture even though the target is off the check mask.
// The capture also removes two pieces from one rank at once, which can
// uncover a slider; that case is settled by recomputing slider attacks on
// the resulting occupancy.
func (p *Position) enPassantLegal(ctx *genContext, from Square) bool {
	ep := p.enPassantSquare
	victim := ep - 8
	if ctx.us == Black {
		victim = ep + 8
	}
	if ctx.pinned&bb(from) != 0 && ctx.pinRay[from]&bb(ep) == 0 {
		return false
	}
	if ctx.inCheck && ctx.checkMask&(bb(ep)|bb(victim)) == 0 {
		return false
	}
	occ := ctx.occ&^bb(from)&^bb(victim) | bb(ep)
	enemy := &p.pieces[ctx.them]
	if RookAttacks(ctx.king, occ)&(enemy[Rook]|enemy[Queen]) != 0 {
		return false
	}
	if BishopAttacks(ctx.king, occ)&(enemy[Bishop]|enemy[Queen]) != 0 {
		return false
	}
	return true
}

// ==========================
// Attack queries
// ==========================

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, by, p.Occupancy()) != 0
}

// attackersTo returns the pieces of side 'by' that attack sq under occ.
func (p *Position) attackersTo(sq Square, by Color, occ uint64) uint64 {
	s := &p.pieces[by]
	return pawnAttacks[by.Other()][sq]&s[Pawn] |
		knightAttacks[sq]&s[Knight] |
		kingAttacks[sq]&s[King] |
		BishopAttacks(sq, occ)&(s[Bishop]|s[Queen]) |
		RookAttacks(sq, occ)&(s[Rook]|s[Queen])
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Checkers() != 0
}

// Checkers returns the enemy pieces currently giving check.
func (p *Position) Checkers() uint64 {
	return p.attackersTo(p.friendlyKing, p.sideToMove.Other(), p.Occupancy())
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	var buf [64]Move
	return len(p.GenerateMovesInto(buf[:0])) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (p *Position) InCheckmate() bool { return p.InCheck() && !p.HasLegalMoves() }

// InStalemate reports whether the side to move is stalemated.
func (p *Position) InStalemate() bool { return !p.InCheck() && !p.HasLegalMoves() }

// IsDrawBy50 reports a 50-move rule draw (the clock counts half-moves).
func (p *Position) IsDrawBy50() bool { return p.halfmoveClock >= 100 }

// fileMask returns the eight squares of a zero-based file.
func fileMask(file int) uint64 { return 0x0101010101010101 << uint(file) }
