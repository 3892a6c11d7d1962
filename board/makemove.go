package board

// Undo holds what MakeMove overwrites and UnmakeMove cannot recompute.
type Undo struct {
	Captured       Kind
	CastlingRights CastlingRights
	EnPassant      Square
	HalfmoveClock  int
}

// castleMask[sq] is the set of rights that survive a move touching sq.
var castleMask = func() (m [64]CastlingRights) {
	for i := range m {
		m[i] = CastleAll
	}
	m[E1] &^= CastleWhiteKing | CastleWhiteQueen
	m[H1] &^= CastleWhiteKing
	m[A1] &^= CastleWhiteQueen
	m[E8] &^= CastleBlackKing | CastleBlackQueen
	m[H8] &^= CastleBlackKing
	m[A8] &^= CastleBlackQueen
	return m
}()

func castleSideFor(us Color, m Move) *castleSide {
	i := 0
	if us == Black {
		i = 2
	}
	if m.Flags()&FlagCastleQueen != 0 {
		i++
	}
	return &castleSides[i]
}

// epVictim returns the square of the pawn removed by an en-passant capture
// onto ep by side us.
func epVictim(us Color, ep Square) Square {
	if us == White {
		return ep - 8
	}
	return ep + 8
}

// MakeMove applies a legal move in place and returns the data needed to undo it.
// Passing a move that was not generated for this position corrupts the state.
func (p *Position) MakeMove(m Move) Undo {
	us, them := p.sideToMove, p.sideToMove.Other()
	from, to := m.From(), m.To()
	fromBB, toBB := bb(from), bb(to)
	undo := Undo{
		CastlingRights: p.castlingRights,
		EnPassant:      p.enPassantSquare,
		HalfmoveClock:  p.halfmoveClock,
	}

	moving := p.kindAt(us, from)

	switch {
	case m.IsEnPassant():
		undo.Captured = Pawn
		p.pieces[them][Pawn] &^= bb(epVictim(us, to))
	case m.IsCapture():
		undo.Captured = p.kindAt(them, to)
		p.pieces[them][undo.Captured] &^= toBB
	}

	p.pieces[us][moving] &^= fromBB
	if promo := m.Promotion(); promo != KindNone {
		p.pieces[us][promo] |= toBB
	} else {
		p.pieces[us][moving] |= toBB
	}

	if m.IsCastle() {
		cs := castleSideFor(us, m)
		if moving != King || from != cs.kingFrom || to != cs.kingTo {
			panic("board: castle flag on a move that is not a castling king move: " + m.String())
		}
		p.pieces[us][Rook] = p.pieces[us][Rook]&^bb(cs.rookFrom) | bb(cs.rookTo)
	}

	p.castlingRights &= castleMask[from] & castleMask[to]

	p.enPassantSquare = NoSquare
	if m.IsDoublePush() {
		p.enPassantSquare = (from + to) / 2
	}

	if moving == Pawn || undo.Captured != KindNone {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == Black {
		p.fullmoveNumber++
	}

	if moving == King {
		p.friendlyKing = to
	}
	p.friendlyKing, p.enemyKing = p.enemyKing, p.friendlyKing
	p.sideToMove = them
	return undo
}

// UnmakeMove reverts a move previously applied with MakeMove. Moves must be
// unmade in reverse order of making.
func (p *Position) UnmakeMove(m Move, u Undo) {
	them := p.sideToMove
	us := them.Other()
	from, to := m.From(), m.To()
	fromBB, toBB := bb(from), bb(to)

	p.sideToMove = us
	p.friendlyKing, p.enemyKing = p.enemyKing, p.friendlyKing

	if promo := m.Promotion(); promo != KindNone {
		p.pieces[us][promo] &^= toBB
		p.pieces[us][Pawn] |= fromBB
	} else {
		moving := p.kindAt(us, to)
		p.pieces[us][moving] = p.pieces[us][moving]&^toBB | fromBB
		if moving == King {
			p.friendlyKing = from
		}
	}

	if m.IsCastle() {
		cs := castleSideFor(us, m)
		p.pieces[us][Rook] = p.pieces[us][Rook]&^bb(cs.rookTo) | bb(cs.rookFrom)
	}

	if u.Captured != KindNone {
		sq := to
		if m.IsEnPassant() {
			sq = epVictim(us, to)
		}
		p.pieces[them][u.Captured] |= bb(sq)
	}

	p.castlingRights = u.CastlingRights
	p.enPassantSquare = u.EnPassant
	p.halfmoveClock = u.HalfmoveClock
	if us == Black {
		p.fullmoveNumber--
	}
}

// Successor returns a copy of the position with m applied. The receiver is
// not modified.
func (p *Position) Successor(m Move) Position {
	next := *p
	next.MakeMove(m)
	return next
}

// FindMove returns the legal move matching from, to and promo. A promo of
// KindNone matches a queen promotion when the move promotes.
func (p *Position) FindMove(from, to Square, promo Kind) (Move, bool) {
	if from == to || !from.Valid() || !to.Valid() {
		return NullMove, false
	}
	for _, m := range p.GenerateMoves() {
		if m.From() != from || m.To() != to {
			continue
		}
		if !m.IsPromotion() {
			return m, true
		}
		want := promo
		if want == KindNone {
			want = Queen
		}
		if m.Promotion() == want {
			return m, true
		}
	}
	return NullMove, false
}

// ApplyMove validates a user move against the legal move list and makes it.
// A missing promotion piece defaults to a queen.
func (p *Position) ApplyMove(from, to Square, promo Kind) (Move, error) {
	m, ok := p.FindMove(from, to, promo)
	if !ok {
		return NullMove, &IllegalMoveError{From: from, To: to}
	}
	p.MakeMove(m)
	return m, nil
}

// Apply makes a move given in UCI notation and returns a closure that undoes
// it. It panics on malformed or illegal input; use ApplyUCI for user input.
func (p *Position) Apply(s string) func() {
	from, to, promo, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	m, ok := p.FindMove(from, to, promo)
	if !ok {
		panic(&IllegalMoveError{From: from, To: to})
	}
	u := p.MakeMove(m)
	return func() { p.UnmakeMove(m, u) }
}

// ApplyUCI parses a move like "e2e4" or "e7e8q" and applies it.
func (p *Position) ApplyUCI(s string) (Move, error) {
	from, to, promo, err := ParseMove(s)
	if err != nil {
		return NullMove, err
	}
	return p.ApplyMove(from, to, promo)
}
