package board_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chesscore/board"
)

func mustParse(t testing.TB, fen string) board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

// uciMoves returns the legal moves in sorted UCI form.
func uciMoves(moves []board.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func hasMove(moves []board.Move, s string) bool {
	for _, m := range moves {
		if m.String() == s {
			return true
		}
	}
	return false
}

func TestLegalMoveSets(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want []string
	}{
		{
			name: "rook check, king may not step along the ray",
			fen:  "4k3/4r3/8/8/8/8/8/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1", "e1f2"},
		},
		{
			name: "double check allows king moves only",
			fen:  "4k3/8/8/8/8/5n2/6B1/r3K3 w - - 0 1",
			want: []string{"e1e2", "e1f2"},
		},
		{
			name: "pinned knight has no moves",
			fen:  "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1", "e1f2"},
		},
		{
			name: "pinned rook slides along the pin",
			fen:  "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1", "e1f2", "e2e3", "e2e4", "e2e5", "e2e6", "e2e7"},
		},
		{
			name: "diagonally pinned pawn may only capture the pinner",
			fen:  "4k3/8/8/8/8/6b1/5P2/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1e2", "e1f1", "f2g3"},
		},
		{
			name: "check blocked or checker captured",
			fen:  "4k3/4r3/8/8/8/8/R7/4K3 w - - 0 1",
			want: []string{"a2e2", "e1d1", "e1d2", "e1f1", "e1f2"},
		},
		{
			name: "knight check cannot be blocked",
			fen:  "4k3/8/8/8/8/3n4/8/R3K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1e2", "e1f1"},
		},
		{
			name: "four promotions per destination",
			fen:  "1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			want: []string{
				"a7a8b", "a7a8n", "a7a8q", "a7a8r",
				"a7b8b", "a7b8n", "a7b8q", "a7b8r",
				"h1g1", "h1g2", "h1h2",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			got := uciMoves(pos.GenerateMoves())
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("legal moves mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckDetection(t *testing.T) {
	pos := mustParse(t, "4k3/4r3/8/8/8/8/8/4K3 w - - 0 1")
	if !pos.InCheck() {
		t.Fatalf("InCheck: got false want true")
	}
	if got, want := pos.Checkers(), uint64(1)<<52; got != want { // e7
		t.Fatalf("Checkers: got %#x want %#x", got, want)
	}

	pos = mustParse(t, "4k3/8/8/8/8/5n2/6B1/r3K3 w - - 0 1")
	if got := len(board.Squares(pos.Checkers())); got != 2 {
		t.Fatalf("double check checkers: got %d want 2", got)
	}

	pos = mustParse(t, board.StartFEN)
	if pos.InCheck() {
		t.Fatalf("start position reported in check")
	}
	e4, _ := board.ParseSquare("e4")
	if pos.IsSquareAttacked(e4, board.White) {
		t.Fatalf("e4 should not be attacked by white at the start")
	}
	e3, _ := board.ParseSquare("e3")
	if !pos.IsSquareAttacked(e3, board.White) {
		t.Fatalf("e3 should be attacked by white at the start")
	}
}

func TestCastlingLegality(t *testing.T) {
	cases := []struct {
		name       string
		fen        string
		king, long bool
	}{
		{"both sides free", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", true, true},
		{"f1 attacked", "r3kr2/8/8/8/8/8/8/R3K2R w KQq - 0 1", false, true},
		{"d1 attacked", "r2rk3/8/8/8/8/8/8/R3K2R w KQ - 0 1", true, false},
		{"b1 attacked only", "1r2k2r/8/8/8/8/8/8/R3K2R w KQk - 0 1", true, true},
		{"in check", "r3k2r/8/8/8/8/8/4q3/R3K2R w KQkq - 0 1", false, false},
		{"path blocked", "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", false, false},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", false, false},
		{"destination attacked", "r3k2r/8/8/8/8/8/7b/R3K2R w KQkq - 0 1", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			moves := pos.GenerateMoves()
			if got := hasMove(moves, "e1g1"); got != tc.king {
				t.Fatalf("e1g1 legal: got %v want %v", got, tc.king)
			}
			if got := hasMove(moves, "e1c1"); got != tc.long {
				t.Fatalf("e1c1 legal: got %v want %v", got, tc.long)
			}
			for _, m := range moves {
				if m.IsCastle() && m.From() != board.E1 {
					t.Fatalf("castle flag on %s", m)
				}
			}
		})
	}
}

func TestEnPassantLegality(t *testing.T) {
	// Both pawns leave the fifth rank and uncover the rook.
	pos := mustParse(t, "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	if hasMove(pos.GenerateMoves(), "e5d6") {
		t.Fatalf("en passant exposing the king along the rank was generated")
	}

	// The double-pushed pawn gives check; capturing it en passant resolves it.
	pos = mustParse(t, "8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1")
	if !pos.InCheck() {
		t.Fatalf("black should be in check from d4")
	}
	moves := pos.GenerateMoves()
	if !hasMove(moves, "e4d3") {
		t.Fatalf("en passant capture of the checking pawn missing: %v", uciMoves(moves))
	}
	for _, m := range moves {
		if m.String() == "e4d3" && !m.IsEnPassant() {
			t.Fatalf("e4d3 not flagged en passant")
		}
	}

	// A bishop behind the captured pawn does not pin anything.
	pos = mustParse(t, "8/8/8/1k1pP3/8/8/8/K6B w - d6 0 1")
	if !hasMove(pos.GenerateMoves(), "e5d6") {
		t.Fatalf("en passant with no pin was not generated")
	}
	pos = mustParse(t, "8/6b1/8/3pP3/8/8/8/K6k w - d6 0 1")
	if hasMove(pos.GenerateMoves(), "e5d6") {
		t.Fatalf("en passant by a pawn pinned on the long diagonal was generated")
	}
}

func TestGenerateCaptures(t *testing.T) {
	pos := mustParse(t, board.StartFEN)
	if got := len(pos.GenerateCaptures()); got != 0 {
		t.Fatalf("start captures: got %d want 0", got)
	}

	pos = mustParse(t, kiwipete)
	caps := pos.GenerateCaptures()
	if len(caps) != 8 {
		t.Fatalf("kiwipete captures: got %d want %d", len(caps), 8)
	}
	var fromAll []board.Move
	for _, m := range pos.GenerateMoves() {
		if m.IsCapture() {
			fromAll = append(fromAll, m)
		}
	}
	if diff := cmp.Diff(uciMoves(fromAll), uciMoves(caps)); diff != "" {
		t.Fatalf("captures differ from filtered legal list (-all +captures):\n%s", diff)
	}

	// Capture-promotions are included, quiet promotions are not.
	pos = mustParse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	want := []string{"a7b8b", "a7b8n", "a7b8q", "a7b8r"}
	if diff := cmp.Diff(want, uciMoves(pos.GenerateCaptures())); diff != "" {
		t.Fatalf("promotion captures (-want +got):\n%s", diff)
	}
}

func TestGenerateMovesIntoReusesBuffer(t *testing.T) {
	pos := mustParse(t, kiwipete)
	buf := make([]board.Move, 7, 256)
	got := pos.GenerateMovesInto(buf)
	if len(got) != 48 {
		t.Fatalf("GenerateMovesInto: got %d moves want 48", len(got))
	}
	if &got[0] != &buf[0] {
		t.Fatalf("GenerateMovesInto did not reuse the buffer")
	}
	if diff := cmp.Diff(uciMoves(pos.GenerateMoves()), uciMoves(got)); diff != "" {
		t.Fatalf("buffered and allocated generation differ:\n%s", diff)
	}
}

func TestMateAndStalemate(t *testing.T) {
	cases := []struct {
		name      string
		fen       string
		mate      bool
		stalemate bool
	}{
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, false},
		{"queen stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false, true},
		{"start", board.StartFEN, false, false},
		{"back rank", "6k1/5ppp/8/8/8/8/8/R5K1 b - - 0 1", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			if got := pos.InCheckmate(); got != tc.mate {
				t.Fatalf("InCheckmate: got %v want %v", got, tc.mate)
			}
			if got := pos.InStalemate(); got != tc.stalemate {
				t.Fatalf("InStalemate: got %v want %v", got, tc.stalemate)
			}
			if got := pos.HasLegalMoves(); got == (tc.mate || tc.stalemate) {
				t.Fatalf("HasLegalMoves: got %v", got)
			}
		})
	}
}
