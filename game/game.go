// Package game is the narrow surface a front end drives: it answers
// highlight and drop queries for one square at a time, applies user moves,
// runs the engine for the computer side and reports the end of the game.
package game

import (
	"errors"
	"fmt"
	"io"
	"log"

	"chesscore/board"
	"chesscore/engine"
)

// ErrEngineTurn is returned when a user move is submitted while the engine
// owns the side to move.
var ErrEngineTurn = errors.New("game: side to move is engine-controlled")

// Game owns one Position and the legal move list cached for it.
type Game struct {
	pos     board.Position
	initial string
	moves   []board.Move

	aiEnabled bool
	aiColor   board.Color

	searcher *engine.Searcher
	logger   *log.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithDepth sets the engine search depth.
func WithDepth(depth int) Option {
	return func(g *Game) { g.searcher.Config.Depth = depth }
}

// WithAIColor hands the given side to the engine.
func WithAIColor(c board.Color) Option {
	return func(g *Game) { g.SetAIColor(c) }
}

// WithStartFEN replaces the standard initial position used by SetUpBoard.
func WithStartFEN(fen string) Option {
	return func(g *Game) { g.initial = fen }
}

// WithLogger sets where engine moves are reported.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New returns a Game set up on its initial position. It fails only when a
// WithStartFEN option carries an invalid FEN.
func New(opts ...Option) (*Game, error) {
	g := &Game{
		initial:  board.StartFEN,
		searcher: engine.NewSearcher(engine.DefaultConfig()),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	pos, err := board.ParseFEN(g.initial)
	if err != nil {
		return nil, fmt.Errorf("game: initial position: %w", err)
	}
	g.pos = pos
	g.refresh()
	return g, nil
}

// refresh regenerates the cached legal move list.
func (g *Game) refresh() {
	g.moves = g.pos.GenerateMovesInto(g.moves)
}

// SetUpBoard resets the game to its initial position. If the engine owns the
// side to move it plays immediately.
func (g *Game) SetUpBoard() {
	g.pos = board.MustParseFEN(g.initial)
	g.refresh()
	g.playEngine()
}

// EndTurn regenerates the move list and, if the engine owns the side to
// move and the game is not over, plays the engine's move.
func (g *Game) EndTurn() {
	g.refresh()
	g.playEngine()
}

func (g *Game) playEngine() {
	if !g.engineToMove() || len(g.moves) == 0 || g.pos.IsDrawBy50() {
		return
	}
	m, score := g.searcher.BestMove(&g.pos)
	g.pos.MakeMove(m)
	g.refresh()
	g.logger.Printf("engine plays %s score %d nodes %d", m, score, g.searcher.Stats.Nodes)
}

func (g *Game) engineToMove() bool {
	return g.aiEnabled && g.pos.SideToMove() == g.aiColor
}

// SetAIColor hands c to the engine.
func (g *Game) SetAIColor(c board.Color) {
	g.aiEnabled = true
	g.aiColor = c
}

// ClearAI returns both sides to user control.
func (g *Game) ClearAI() { g.aiEnabled = false }

// AIColor reports the engine's side and whether an engine is playing.
func (g *Game) AIColor() (board.Color, bool) { return g.aiColor, g.aiEnabled }

// SetDepth changes the engine search depth.
func (g *Game) SetDepth(depth int) { g.searcher.Config.Depth = depth }

// Depth returns the engine search depth.
func (g *Game) Depth() int { return g.searcher.Config.Depth }

// Stats returns the counters of the last engine search.
func (g *Game) Stats() engine.Stats { return g.searcher.Stats }

// Position returns a copy of the current position.
func (g *Game) Position() board.Position { return g.pos }

// PieceAt returns the piece on sq for display.
func (g *Game) PieceAt(sq board.Square) board.Piece { return g.pos.PieceAt(sq) }

// SideToMove reports whose turn it is.
func (g *Game) SideToMove() board.Color { return g.pos.SideToMove() }

// Moves returns the legal moves of the side to move.
func (g *Game) Moves() []board.Move {
	out := make([]board.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// LegalMoves returns the destinations reachable from a square, lowest first.
// Promotion choices collapse into a single destination.
func (g *Game) LegalMoves(from board.Square) []board.Square {
	var targets uint64
	for _, m := range g.moves {
		if m.From() == from {
			targets |= 1 << uint(m.To())
		}
	}
	return board.Squares(targets)
}

// IsLegal reports whether some legal move goes from one square to the other.
func (g *Game) IsLegal(from, to board.Square) bool {
	for _, m := range g.moves {
		if m.From() == from && m.To() == to {
			return true
		}
	}
	return false
}

// ApplyUserMove plays a user move, promoting to a queen when the move
// promotes. The position is unchanged on error. The caller ends the turn.
func (g *Game) ApplyUserMove(from, to board.Square) error {
	return g.ApplyUserMovePromotion(from, to, board.KindNone)
}

// ApplyUserMovePromotion is ApplyUserMove with an explicit promotion piece.
func (g *Game) ApplyUserMovePromotion(from, to board.Square, promo board.Kind) error {
	if g.engineToMove() {
		return ErrEngineTurn
	}
	if _, err := g.pos.ApplyMove(from, to, promo); err != nil {
		return err
	}
	g.refresh()
	return nil
}

// BestMove runs the engine on the current position without playing the move.
func (g *Game) BestMove() board.Move {
	m, _ := g.searcher.BestMove(&g.pos)
	return m
}

// IsInCheck reports whether the side to move is in check.
func (g *Game) IsInCheck() bool { return g.pos.InCheck() }

// HasLegalMoves reports whether the side to move can move.
func (g *Game) HasLegalMoves() bool { return len(g.moves) > 0 }

// CheckForWinner returns the winning side once the side to move is mated.
func (g *Game) CheckForWinner() (board.Color, bool) {
	if len(g.moves) == 0 && g.pos.InCheck() {
		return g.pos.SideToMove().Other(), true
	}
	return board.White, false
}

// CheckForDraw reports stalemate or a fifty-move draw.
func (g *Game) CheckForDraw() bool {
	if len(g.moves) == 0 && !g.pos.InCheck() {
		return true
	}
	return g.pos.IsDrawBy50()
}

// StateString returns the current position as FEN.
func (g *Game) StateString() string { return g.pos.FEN() }

// InitialStateString returns the FEN SetUpBoard starts from.
func (g *Game) InitialStateString() string { return g.initial }

// SetStateString replaces the current position. On error the previous
// position is kept.
func (g *Game) SetStateString(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("game: set state: %w", err)
	}
	g.pos = pos
	g.refresh()
	return nil
}
