package rules

import (
	"chessbot/src/base"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustMove(t *testing.T, s string) base.Move {
	t.Helper()
	mv, err := base.ParseUCIMove(s)
	if err != nil {
		t.Fatalf("ParseUCIMove(%q): %v", s, err)
	}
	return mv
}

func play(t *testing.T, r *ChessRules, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if err := r.Push(mustMove(t, s)); err != nil {
			t.Fatalf("Push(%s): %v", s, err)
		}
	}
}

func TestInitialPosition(t *testing.T) {
	r := NewChessRules()
	if r.FEN() != base.FEN_START_GAME {
		t.Errorf("FEN() = %q, want %q", r.FEN(), base.FEN_START_GAME)
	}
	if r.Turn() != base.White {
		t.Errorf("Turn() = %v, want white", r.Turn())
	}
	if got := len(r.LegalMoves()); got != 20 {
		t.Errorf("len(LegalMoves()) = %d, want 20", got)
	}
	if r.Status() != base.Pass || r.Ply() != 0 {
		t.Errorf("Status() = %v, Ply() = %d", r.Status(), r.Ply())
	}
	mb := r.Mailbox()
	e1, _ := base.SquareFromAlgebraic("e1")
	e4, _ := base.SquareFromAlgebraic("e4")
	d8, _ := base.SquareFromAlgebraic("d8")
	if mb[e1] != base.WKing || mb[d8] != base.BQueen || mb[e4] != base.EmptyPiece {
		t.Errorf("unexpected mailbox: e1=%v d8=%v e4=%v", mb[e1], mb[d8], mb[e4])
	}
}

func TestPushAlternatesTurn(t *testing.T) {
	r := NewChessRules()
	want := base.White
	for _, s := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		if r.Turn() != want {
			t.Fatalf("before %s: Turn() = %v, want %v", s, r.Turn(), want)
		}
		play(t, r, s)
		want = want.Other()
	}
	if r.Ply() != 4 {
		t.Errorf("Ply() = %d, want 4", r.Ply())
	}
}

func TestPushIllegal(t *testing.T) {
	r := NewChessRules()
	err := r.Push(mustMove(t, "e2e5"))
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("Push(e2e5) = %v, want ErrIllegalMove", err)
	}
	if r.FEN() != base.FEN_START_GAME || r.Ply() != 0 {
		t.Errorf("illegal push mutated position: %s", r.FEN())
	}
}

func TestPopRestores(t *testing.T) {
	r := NewChessRules()
	play(t, r, "e2e4")
	afterE4 := r.FEN()
	play(t, r, "e7e5")
	if err := r.Pop(); err != nil {
		t.Fatal(err)
	}
	if r.FEN() != afterE4 {
		t.Errorf("FEN after pop = %q, want %q", r.FEN(), afterE4)
	}
	if err := r.Pop(); err != nil {
		t.Fatal(err)
	}
	if err := r.Pop(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Pop() on root = %v, want ErrEmptyHistory", err)
	}
	if r.FEN() != base.FEN_START_GAME {
		t.Errorf("FEN = %q, want start", r.FEN())
	}
}

func TestCheckmate(t *testing.T) {
	r := NewChessRules()
	play(t, r, "f2f3", "e7e5", "g2g4", "d8h4")
	if !r.IsCheck() || !r.IsCheckmate() || r.IsStalemate() {
		t.Errorf("check=%v mate=%v stalemate=%v", r.IsCheck(), r.IsCheckmate(), r.IsStalemate())
	}
	if r.Status() != base.Checkmate {
		t.Errorf("Status() = %v", r.Status())
	}
	sq, ok := r.KingSquare(base.White)
	if !ok || sq.String() != "e1" {
		t.Errorf("KingSquare(white) = %v,%v", sq, ok)
	}
	if len(r.LegalMoves()) != 0 {
		t.Errorf("mated side has legal moves")
	}
}

func TestStalemate(t *testing.T) {
	r := NewChessRules()
	play(t, r,
		"e2e3", "a7a5", "d1h5", "a8a6", "h5a5", "h7h5", "h2h4", "a6h6",
		"a5c7", "f7f6", "c7d7", "e8f7", "d7b7", "d8d3", "b7b8", "d3h7",
		"b8c8", "f7g6", "c8e6")
	if !r.IsStalemate() || r.IsCheckmate() || r.IsCheck() {
		t.Errorf("check=%v mate=%v stalemate=%v", r.IsCheck(), r.IsCheckmate(), r.IsStalemate())
	}
	if r.Status() != base.Stalemate {
		t.Errorf("Status() = %v", r.Status())
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	r, err := NewChessRulesFromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	a7, _ := base.SquareFromAlgebraic("a7")
	a8, _ := base.SquareFromAlgebraic("a8")
	if err := r.Push(base.Move{From: a7, To: a8}); err != nil {
		t.Fatalf("Push(a7a8): %v", err)
	}
	if got := r.Mailbox()[a8]; got != base.WQueen {
		t.Errorf("a8 = %v, want white queen", got)
	}

	r.Reset()
	if err := r.Push(base.Move{From: a7, To: a8, Promo: base.PromoteKnight}); err != nil {
		t.Fatalf("Push(a7a8n): %v", err)
	}
	if got := r.Mailbox()[a8]; got != base.WKnight {
		t.Errorf("a8 = %v, want white knight", got)
	}
}

func TestLegalMovesContainsPromotions(t *testing.T) {
	r, err := NewChessRulesFromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var promos []string
	for _, mv := range r.LegalMoves() {
		if mv.Promo != base.NoPromotion {
			promos = append(promos, mv.String())
		}
	}
	want := map[string]bool{"a7a8q": true, "a7a8r": true, "a7a8b": true, "a7a8n": true}
	got := map[string]bool{}
	for _, p := range promos {
		got[p] = true
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("promotion moves mismatch (-want +got):\n%s", diff)
	}
}

func TestResetReturnsToRoot(t *testing.T) {
	r := NewChessRules()
	play(t, r, "d2d4", "d7d5")
	r.Reset()
	if r.FEN() != base.FEN_START_GAME || r.Ply() != 0 {
		t.Errorf("after Reset: %s ply=%d", r.FEN(), r.Ply())
	}
}

func TestRootPositionInCheck(t *testing.T) {
	r, err := NewChessRulesFromFEN("4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsCheck() || r.IsCheckmate() || r.IsStalemate() {
		t.Errorf("check=%v mate=%v stalemate=%v", r.IsCheck(), r.IsCheckmate(), r.IsStalemate())
	}
	if r.Status() != base.Check {
		t.Errorf("Status() = %v, want check", r.Status())
	}

	play(t, r, "e1e2")
	if r.IsCheck() {
		t.Error("check reported after the king stepped out")
	}
	r.Reset()
	if !r.IsCheck() {
		t.Error("Reset lost the root check")
	}
}

func TestRootPositionCheckmate(t *testing.T) {
	r, err := NewChessRulesFromFEN("k7/8/8/8/8/8/5PPP/r5K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsCheckmate() || r.Status() != base.Checkmate {
		t.Errorf("mate=%v status=%v", r.IsCheckmate(), r.Status())
	}
}

func TestRootPositionQuiet(t *testing.T) {
	// the side not to move being attacked is not a check for the side to move
	r, err := NewChessRulesFromFEN("4k3/8/8/8/8/8/8/4R1K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if r.IsCheck() || r.Status() != base.Pass {
		t.Errorf("check=%v status=%v", r.IsCheck(), r.Status())
	}
}
