package engine_test

import (
	"testing"

	"chesscore/board"
	"chesscore/engine"
)

var symmetryFENs = []string{
	board.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 b - - 0 10",
}

func mustParse(t testing.TB, fen string) board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func TestEvaluateStartIsBalanced(t *testing.T) {
	pos := mustParse(t, board.StartFEN)
	if got := engine.Evaluate(&pos); got != 0 {
		t.Fatalf("Evaluate(start): got %d want 0", got)
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	for _, fen := range symmetryFENs {
		pos := mustParse(t, fen)
		mirror := pos.Mirror()
		if got, want := engine.WhiteScore(&mirror), -engine.WhiteScore(&pos); got != want {
			t.Fatalf("WhiteScore(mirror of %s): got %d want %d", fen, got, want)
		}
		if got, want := engine.Evaluate(&mirror), engine.Evaluate(&pos); got != want {
			t.Fatalf("Evaluate(mirror of %s): got %d want %d", fen, got, want)
		}
	}
}

func TestEvaluateMaterial(t *testing.T) {
	// White is a queen up; Black to move sees the deficit.
	pos := mustParse(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if got := engine.Evaluate(&pos); got >= -800 {
		t.Fatalf("Evaluate for the side a queen down: got %d want < -800", got)
	}
	if got := engine.WhiteScore(&pos); got <= 800 {
		t.Fatalf("WhiteScore a queen up: got %d want > 800", got)
	}
}

func TestNegamaxSymmetry(t *testing.T) {
	for _, fen := range symmetryFENs {
		pos := mustParse(t, fen)
		mirror := pos.Mirror()
		got := engine.Negamax(&mirror, 2, 0, -engine.Infinity, engine.Infinity)
		want := engine.Negamax(&pos, 2, 0, -engine.Infinity, engine.Infinity)
		if got != want {
			t.Fatalf("Negamax(mirror of %s): got %d want %d", fen, got, want)
		}
	}
}

func TestNegamaxTerminalScores(t *testing.T) {
	mated := mustParse(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if got, want := engine.Negamax(&mated, 3, 0, -engine.Infinity, engine.Infinity), -engine.MateScore; got != want {
		t.Fatalf("mated at root: got %d want %d", got, want)
	}
	if got, want := engine.Negamax(&mated, 1, 4, -engine.Infinity, engine.Infinity), -(engine.MateScore - 4); got != want {
		t.Fatalf("mated at ply 4: got %d want %d", got, want)
	}

	stalemate := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if got := engine.Negamax(&stalemate, 3, 0, -engine.Infinity, engine.Infinity); got != 0 {
		t.Fatalf("stalemate: got %d want 0", got)
	}

	fifty := mustParse(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 100 80")
	if got := engine.Negamax(&fifty, 2, 0, -engine.Infinity, engine.Infinity); got != 0 {
		t.Fatalf("fifty-move draw: got %d want 0", got)
	}
}

func TestNegamaxLeavesPositionUnchanged(t *testing.T) {
	for _, fen := range symmetryFENs {
		pos := mustParse(t, fen)
		engine.Negamax(&pos, 3, 0, -engine.Infinity, engine.Infinity)
		if got := pos.FEN(); got != fen {
			t.Fatalf("position changed by search: got %q want %q", got, fen)
		}
	}
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	for _, depth := range []int{2, 3, 4} {
		pos := mustParse(t, "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1")
		s := engine.NewSearcher(engine.Config{Depth: depth})
		m, score := s.BestMove(&pos)
		if score != engine.MateScore-1 {
			t.Fatalf("depth %d: score got %d want %d (move %s)", depth, score, engine.MateScore-1, m)
		}
		child := pos.Successor(m)
		if !child.InCheckmate() {
			t.Fatalf("depth %d: %s does not mate", depth, m)
		}
		if s.Stats.Nodes == 0 || s.Stats.Mates == 0 {
			t.Fatalf("depth %d: stats not collected: %+v", depth, s.Stats)
		}
	}
}

func TestBestMoveWinsHangingQueen(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	m, score := engine.NewSearcher(engine.Config{Depth: 2}).BestMove(&pos)
	if got := m.String(); got != "d1d5" {
		t.Fatalf("best move: got %s want d1d5", got)
	}
	if score < 300 {
		t.Fatalf("score after winning the queen: got %d want >= 300", score)
	}
}

func TestBestMoveNoLegalMoves(t *testing.T) {
	pos := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	m, score := engine.NewSearcher(engine.DefaultConfig()).BestMove(&pos)
	if m != board.NullMove || score != 0 {
		t.Fatalf("terminal root: got %s %d want 0000 0", m, score)
	}
}

func TestBestMoveDepthFloor(t *testing.T) {
	pos := mustParse(t, board.StartFEN)
	s := engine.NewSearcher(engine.Config{Depth: 0})
	m, _ := s.BestMove(&pos)
	if m == board.NullMove {
		t.Fatalf("depth 0 search returned no move")
	}
	if got, want := s.Stats.Leaves, uint64(20); got != want {
		t.Fatalf("depth 0 treated as 1: leaves got %d want %d", got, want)
	}
}

func TestBestMoveMatchesFullWindowScores(t *testing.T) {
	for _, fen := range symmetryFENs {
		pos := mustParse(t, fen)
		want := -engine.Infinity
		for _, m := range pos.GenerateMoves() {
			child := pos.Successor(m)
			if score := -engine.Negamax(&child, 1, 1, -engine.Infinity, engine.Infinity); score > want {
				want = score
			}
		}

		s := engine.NewSearcher(engine.Config{Depth: 2})
		m, got := s.BestMove(&pos)
		if got != want {
			t.Fatalf("%s: BestMove score got %d want %d", fen, got, want)
		}
		child := pos.Successor(m)
		if score := -engine.Negamax(&child, 1, 1, -engine.Infinity, engine.Infinity); score != got {
			t.Fatalf("%s: %s full-window score got %d want %d", fen, m, score, got)
		}
		if s.Stats.BetaCutoffs == 0 {
			t.Fatalf("%s: no cutoffs below the root at depth 2", fen)
		}
	}
}

func TestFiftyMoveDrawAtLeaves(t *testing.T) {
	// White is a queen up, but every move reaches the hundredth half-move.
	pos := mustParse(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 99 80")
	s := engine.NewSearcher(engine.Config{Depth: 1})
	if _, score := s.BestMove(&pos); score != 0 {
		t.Fatalf("depth 1 score: got %d want 0", score)
	}
	if s.Stats.FiftyMove == 0 || s.Stats.Leaves != 0 {
		t.Fatalf("leaves not scored as draws: %+v", s.Stats)
	}

	drawn := mustParse(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 100 80")
	if got := engine.Negamax(&drawn, 0, 0, -engine.Infinity, engine.Infinity); got != 0 {
		t.Fatalf("depth 0 fifty-move draw: got %d want 0", got)
	}
}

func TestMateDistance(t *testing.T) {
	cases := []struct {
		score int
		moves int
		ok    bool
	}{
		{engine.MateScore - 1, 1, true},
		{engine.MateScore - 3, 2, true},
		{-(engine.MateScore - 2), -1, true},
		{-(engine.MateScore - 4), -2, true},
		{150, 0, false},
		{-900, 0, false},
	}
	for _, tc := range cases {
		moves, ok := engine.MateDistance(tc.score)
		if moves != tc.moves || ok != tc.ok {
			t.Fatalf("MateDistance(%d): got %d %v want %d %v", tc.score, moves, ok, tc.moves, tc.ok)
		}
	}
}

func TestGenericHelpers(t *testing.T) {
	if got := engine.Abs(-7); got != 7 {
		t.Fatalf("Abs(-7): got %d want 7", got)
	}
	if got := engine.Abs(int8(-3)); got != 3 {
		t.Fatalf("Abs(int8(-3)): got %d want 3", got)
	}
	if got := engine.Clamp(12, 1, 10); got != 10 {
		t.Fatalf("Clamp(12, 1, 10): got %d want 10", got)
	}
	if got := engine.Clamp(-1.5, 0.0, 1.0); got != 0 {
		t.Fatalf("Clamp(-1.5, 0, 1): got %v want 0", got)
	}
}

func BenchmarkBestMove_Start(b *testing.B) {
	pos := mustParse(b, board.StartFEN)
	s := engine.NewSearcher(engine.DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.BestMove(&pos)
	}
}

func BenchmarkEvaluate_Kiwipete(b *testing.B) {
	pos := mustParse(b, symmetryFENs[1])
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Evaluate(&pos)
	}
}
