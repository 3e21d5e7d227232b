package game

import (
	"chessbot/src/base"
	"chessbot/src/logx"
	"chessbot/src/rules"
	"chessbot/src/view"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type oracleCall struct {
	FEN        string
	Difficulty int
}

// fakeOracle answers with a fixed queue of moves, or the first legal move.
type fakeOracle struct {
	calls   []oracleCall
	replies []string
	err     error
	rules   *rules.ChessRules
}

func (f *fakeOracle) BestMove(fen string, difficulty int) (base.Move, error) {
	f.calls = append(f.calls, oracleCall{FEN: fen, Difficulty: difficulty})
	if f.err != nil {
		return base.Move{}, f.err
	}
	if len(f.replies) > 0 {
		s := f.replies[0]
		f.replies = f.replies[1:]
		return base.ParseUCIMove(s)
	}
	return f.rules.LegalMoves()[0], nil
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *rules.ChessRules, *fakeOracle) {
	t.Helper()
	r := rules.NewChessRules()
	o := &fakeOracle{rules: r}
	opts = append([]Option{WithWindowSize(520, 400)}, opts...)
	return NewController(r, o, logx.NewNop(), opts...), r, o
}

func sq(t *testing.T, s string) base.Square {
	t.Helper()
	v, err := base.SquareFromAlgebraic(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func clickMove(t *testing.T, c *Controller, from, to string) {
	t.Helper()
	c.HandleAction(SelectSquare{Square: sq(t, from)})
	c.HandleAction(SelectSquare{Square: sq(t, to)})
}

func TestInitialState(t *testing.T) {
	c, _, _ := newTestController(t)
	if c.State() != WaitingForFirstSquare {
		t.Errorf("State() = %v", c.State())
	}
	if c.Turn() != base.White || c.Difficulty() != base.DefaultDifficulty || c.Flipped() {
		t.Errorf("turn=%v difficulty=%d flipped=%v", c.Turn(), c.Difficulty(), c.Flipped())
	}
	if _, ok := c.LastMove(); ok {
		t.Error("LastMove set on a fresh game")
	}
}

func TestSelectThenLegalMove(t *testing.T) {
	c, r, _ := newTestController(t)

	c.HandleAction(SelectSquare{Square: sq(t, "e2")})
	if c.State() != WaitingForSecondSquare {
		t.Fatalf("State() after first click = %v", c.State())
	}
	if sel, ok := c.Selection(); !ok || sel != sq(t, "e2") {
		t.Fatalf("Selection() = %v,%v", sel, ok)
	}

	c.HandleAction(SelectSquare{Square: sq(t, "e4")})
	if c.Turn() != base.Black {
		t.Errorf("Turn() = %v, want black", c.Turn())
	}
	last, ok := c.LastMove()
	if !ok || last.String() != "e2e4" {
		t.Errorf("LastMove() = %v,%v want e2e4", last, ok)
	}
	if _, ok := c.Selection(); ok {
		t.Error("selection not cleared after move")
	}
	if !strings.HasPrefix(r.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq") {
		t.Errorf("FEN = %s", r.FEN())
	}
	if len(c.History()) != r.Ply() {
		t.Errorf("history %d != ply %d", len(c.History()), r.Ply())
	}
}

func TestSelectThenIllegalMove(t *testing.T) {
	c, r, _ := newTestController(t)
	clickMove(t, c, "e2", "e5")

	if r.FEN() != base.FEN_START_GAME {
		t.Errorf("position changed: %s", r.FEN())
	}
	if c.Turn() != base.White {
		t.Errorf("Turn() = %v", c.Turn())
	}
	if _, ok := c.Selection(); ok {
		t.Error("selection not cleared after illegal move")
	}
	if len(c.History()) != 0 {
		t.Errorf("history = %v", c.History())
	}
	if c.State() != WaitingForFirstSquare {
		t.Errorf("State() = %v", c.State())
	}
}

func TestTurnAlternates(t *testing.T) {
	c, _, _ := newTestController(t)
	moves := [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}, {"b8", "c6"}, {"f1", "b5"}}
	want := base.White
	for _, m := range moves {
		if c.Turn() != want {
			t.Fatalf("before %v: Turn() = %v, want %v", m, c.Turn(), want)
		}
		clickMove(t, c, m[0], m[1])
		want = want.Other()
	}
	if len(c.History()) != len(moves) {
		t.Errorf("len(history) = %d", len(c.History()))
	}
}

func TestUndoTwoPlies(t *testing.T) {
	c, r, _ := newTestController(t)
	clickMove(t, c, "e2", "e4")
	clickMove(t, c, "e7", "e5")

	c.HandleAction(ClickButton{Button: view.ButtonUndo})
	if len(c.History()) != 0 || r.Ply() != 0 {
		t.Errorf("history=%d ply=%d", len(c.History()), r.Ply())
	}
	if _, ok := c.LastMove(); ok {
		t.Error("LastMove set after undoing everything")
	}
	if r.FEN() != base.FEN_START_GAME {
		t.Errorf("FEN = %s", r.FEN())
	}
}

func TestUndoSinglePly(t *testing.T) {
	c, r, _ := newTestController(t)
	clickMove(t, c, "d2", "d4")
	c.HandleAction(ClickButton{Button: view.ButtonUndo})
	if r.FEN() != base.FEN_START_GAME || len(c.History()) != 0 {
		t.Errorf("FEN = %s history=%v", r.FEN(), c.History())
	}
}

func TestUndoThreePliesLeavesOne(t *testing.T) {
	c, _, _ := newTestController(t)
	clickMove(t, c, "e2", "e4")
	clickMove(t, c, "e7", "e5")
	clickMove(t, c, "g1", "f3")

	c.HandleAction(ClickButton{Button: view.ButtonUndo})
	last, ok := c.LastMove()
	if !ok || last.String() != "e2e4" {
		t.Errorf("LastMove() = %v,%v want e2e4", last, ok)
	}
	if c.Turn() != base.Black {
		t.Errorf("Turn() = %v", c.Turn())
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	c, r, _ := newTestController(t)
	c.HandleAction(SelectSquare{Square: sq(t, "e2")})
	c.HandleAction(ClickButton{Button: view.ButtonUndo})
	if r.FEN() != base.FEN_START_GAME || len(c.History()) != 0 {
		t.Errorf("undo on empty history changed state")
	}
	if _, ok := c.Selection(); ok {
		t.Error("undo did not clear selection")
	}
}

func TestFlipInvolutive(t *testing.T) {
	c, r, _ := newTestController(t)
	clickMove(t, c, "e2", "e4")
	before := c.Layout()
	fen := r.FEN()

	c.HandleAction(ClickButton{Button: view.ButtonFlip})
	if !c.Flipped() {
		t.Fatal("flip did not toggle orientation")
	}
	flipped := c.Layout()
	if flipped.SquareRect(sq(t, "a1")) == before.SquareRect(sq(t, "a1")) {
		t.Error("flip did not change the mapping")
	}

	c.HandleAction(ClickButton{Button: view.ButtonFlip})
	after := c.Layout()
	for i := 0; i < 64; i++ {
		if before.SquareRect(base.Square(i)) != after.SquareRect(base.Square(i)) {
			t.Fatalf("square %d mapping differs after double flip", i)
		}
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("layout differs after double flip (-before +after):\n%s", diff)
	}
	if r.FEN() != fen || len(c.History()) != 1 {
		t.Error("flip touched the position")
	}
}

func TestToggleAIOnlySideToMove(t *testing.T) {
	c, _, _ := newTestController(t)
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	if !c.AIEnabled(base.White) || c.AIEnabled(base.Black) {
		t.Errorf("white=%v black=%v", c.AIEnabled(base.White), c.AIEnabled(base.Black))
	}
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	if c.AIEnabled(base.White) || c.AIEnabled(base.Black) {
		t.Errorf("second toggle: white=%v black=%v", c.AIEnabled(base.White), c.AIEnabled(base.Black))
	}
}

func TestToggleAIClearsSelection(t *testing.T) {
	c, _, _ := newTestController(t)
	c.HandleAction(SelectSquare{Square: sq(t, "e2")})
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	if _, ok := c.Selection(); ok {
		t.Error("selection survived while the side to move is AI controlled")
	}
	if c.State() != AwaitingOracle {
		t.Errorf("State() = %v", c.State())
	}
	c.HandleAction(SelectSquare{Square: sq(t, "e2")})
	if _, ok := c.Selection(); ok {
		t.Error("selection accepted on an AI turn")
	}
}

func TestResetKeepsDifficulty(t *testing.T) {
	c, r, _ := newTestController(t, WithDifficulty(33))
	clickMove(t, c, "e2", "e4")
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	c.HandleAction(ClickButton{Button: view.ButtonReset})

	if r.FEN() != base.FEN_START_GAME || len(c.History()) != 0 {
		t.Errorf("reset did not restore the start: %s", r.FEN())
	}
	if c.AIEnabled(base.White) || c.AIEnabled(base.Black) {
		t.Error("reset kept an AI flag")
	}
	if _, ok := c.LastMove(); ok {
		t.Error("reset kept last move")
	}
	if c.Difficulty() != 33 {
		t.Errorf("Difficulty() = %d, want 33", c.Difficulty())
	}
}

func TestDragSliderClamps(t *testing.T) {
	c, _, _ := newTestController(t)
	track := view.SliderTrack(520, 400)

	tests := []struct {
		x    int
		want int
	}{
		{x: track.X, want: 1},
		{x: track.X + track.W, want: 50},
		{x: -500, want: 1},
		{x: 100000, want: 50},
		{x: track.X + track.W/2, want: 26},
	}
	for _, tt := range tests {
		c.HandleAction(DragSlider{X: tt.x})
		if c.Difficulty() != tt.want {
			t.Errorf("DragSlider(%d) difficulty = %d, want %d", tt.x, c.Difficulty(), tt.want)
		}
	}
}

func TestDragSliderUsesCurrentWindow(t *testing.T) {
	c, _, _ := newTestController(t)
	c.HandleAction(Resize{W: 920, H: 800})
	track := view.SliderTrack(920, 800)
	c.HandleAction(DragSlider{X: track.X})
	if c.Difficulty() != 1 {
		t.Errorf("Difficulty() = %d, want 1 at the left end of the resized track", c.Difficulty())
	}
}

func TestSetDifficultyClamps(t *testing.T) {
	c, _, _ := newTestController(t)
	c.HandleAction(SetDifficulty{Value: 0})
	if c.Difficulty() != 1 {
		t.Errorf("Difficulty() = %d", c.Difficulty())
	}
	c.HandleAction(SetDifficulty{Value: 77})
	if c.Difficulty() != 50 {
		t.Errorf("Difficulty() = %d", c.Difficulty())
	}
	c2, _, _ := newTestController(t, WithDifficulty(-4))
	if c2.Difficulty() != 1 {
		t.Errorf("WithDifficulty(-4) = %d", c2.Difficulty())
	}
}

func TestOracleDrivesWhite(t *testing.T) {
	c, r, o := newTestController(t)
	c.HandleAction(SetDifficulty{Value: 10})
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	o.replies = []string{"d2d4"}

	if err := c.DriveOracleIfNeeded(); err != nil {
		t.Fatal(err)
	}
	want := []oracleCall{{FEN: base.FEN_START_GAME, Difficulty: 10}}
	if diff := cmp.Diff(want, o.calls); diff != "" {
		t.Errorf("oracle calls mismatch (-want +got):\n%s", diff)
	}
	last, ok := c.LastMove()
	if !ok || last.String() != "d2d4" {
		t.Errorf("LastMove() = %v,%v", last, ok)
	}
	if r.Turn() != base.Black || c.State() != WaitingForFirstSquare {
		t.Errorf("turn=%v state=%v", r.Turn(), c.State())
	}

	// black is human: nothing more to do
	if err := c.DriveOracleIfNeeded(); err != nil {
		t.Fatal(err)
	}
	if len(o.calls) != 1 {
		t.Errorf("oracle called on a human turn")
	}
}

func TestOracleNotCalledForHuman(t *testing.T) {
	c, _, o := newTestController(t)
	if err := c.DriveOracleIfNeeded(); err != nil {
		t.Fatal(err)
	}
	if len(o.calls) != 0 {
		t.Errorf("oracle called %d times", len(o.calls))
	}
}

func TestOracleIllegalMoveIsFatal(t *testing.T) {
	c, r, o := newTestController(t)
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	o.replies = []string{"e2e5"}

	err := c.DriveOracleIfNeeded()
	if !errors.Is(err, ErrIllegalOracleMove) {
		t.Fatalf("DriveOracleIfNeeded() = %v, want ErrIllegalOracleMove", err)
	}
	if r.Ply() != 0 {
		t.Error("illegal oracle move was pushed")
	}
}

func TestOracleFailureIsFatal(t *testing.T) {
	c, _, o := newTestController(t)
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	o.err = errors.New("engine terminated")

	if err := c.DriveOracleIfNeeded(); !errors.Is(err, ErrOracleFailed) {
		t.Fatalf("DriveOracleIfNeeded() = %v, want ErrOracleFailed", err)
	}
}

func TestNoOracle(t *testing.T) {
	c := NewController(rules.NewChessRules(), nil, logx.NewNop())
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	if err := c.DriveOracleIfNeeded(); !errors.Is(err, ErrNoOracle) {
		t.Fatalf("DriveOracleIfNeeded() = %v, want ErrNoOracle", err)
	}
}

func TestAIvsAIPlaysOnePlyPerCall(t *testing.T) {
	c, r, o := newTestController(t)
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	if err := c.DriveOracleIfNeeded(); err != nil {
		t.Fatal(err)
	}
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	if !c.AIEnabled(base.White) || !c.AIEnabled(base.Black) {
		t.Fatal("both sides should be AI now")
	}
	for i := 0; i < 4; i++ {
		if err := c.DriveOracleIfNeeded(); err != nil {
			t.Fatal(err)
		}
	}
	if r.Ply() != 5 || len(o.calls) != 5 {
		t.Errorf("ply=%d calls=%d", r.Ply(), len(o.calls))
	}
}

func foolsMate(t *testing.T, c *Controller) {
	t.Helper()
	clickMove(t, c, "f2", "f3")
	clickMove(t, c, "e7", "e5")
	clickMove(t, c, "g2", "g4")
	clickMove(t, c, "d8", "h4")
}

func TestTerminalBlocksSelectionAndOracle(t *testing.T) {
	c, _, o := newTestController(t)
	foolsMate(t, c)

	if c.State() != Terminal {
		t.Fatalf("State() = %v, want terminal", c.State())
	}
	hl := c.CheckHighlight()
	if hl.Kind != view.HighlightCheckmate || hl.Square != sq(t, "e1") {
		t.Errorf("CheckHighlight() = %+v", hl)
	}

	c.HandleAction(SelectSquare{Square: sq(t, "e1")})
	if _, ok := c.Selection(); ok {
		t.Error("selection accepted in terminal state")
	}
	c.HandleAction(ClickButton{Button: view.ButtonToggleAI})
	if err := c.DriveOracleIfNeeded(); err != nil || len(o.calls) != 0 {
		t.Errorf("oracle driven in terminal state: err=%v calls=%d", err, len(o.calls))
	}

	c.HandleAction(ClickButton{Button: view.ButtonReset})
	if c.State() != WaitingForFirstSquare {
		t.Errorf("State() after reset = %v", c.State())
	}
}

func TestUndoLeavesTerminal(t *testing.T) {
	c, _, _ := newTestController(t)
	foolsMate(t, c)
	c.HandleAction(ClickButton{Button: view.ButtonUndo})
	if c.State() == Terminal {
		t.Error("still terminal after undo")
	}
	if len(c.History()) != 2 {
		t.Errorf("len(history) = %d, want 2", len(c.History()))
	}
}

func TestCheckHighlight(t *testing.T) {
	c, _, _ := newTestController(t)
	clickMove(t, c, "e2", "e4")
	clickMove(t, c, "f7", "f6")
	clickMove(t, c, "d1", "h5")

	hl := c.CheckHighlight()
	if hl.Kind != view.HighlightCheck || hl.Square != sq(t, "e8") {
		t.Errorf("CheckHighlight() = %+v", hl)
	}
	if c.Layout().Highlight == nil {
		t.Error("layout has no highlight")
	}

	clickMove(t, c, "g7", "g6")
	if hl := c.CheckHighlight(); hl.Kind != view.HighlightNone {
		t.Errorf("CheckHighlight() after block = %+v", hl)
	}
}

func TestCheckHighlightAtLoadedPosition(t *testing.T) {
	r, err := rules.NewChessRulesFromFEN("4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(r, nil, logx.NewNop(), WithWindowSize(520, 400))

	want := view.Highlight{Kind: view.HighlightCheck, Square: sq(t, "e1")}
	if diff := cmp.Diff(want, c.CheckHighlight()); diff != "" {
		t.Errorf("CheckHighlight() mismatch (-want +got):\n%s", diff)
	}
	if c.State() != WaitingForFirstSquare || c.Status() != base.Check {
		t.Errorf("state=%v status=%v", c.State(), c.Status())
	}
}

func TestPromotionGoesToQueen(t *testing.T) {
	r, err := rules.NewChessRulesFromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(r, nil, logx.NewNop(), WithWindowSize(520, 400))
	clickMove(t, c, "a7", "a8")

	if got := c.Board()[sq(t, "a8")]; got != base.WQueen {
		t.Errorf("a8 = %v, want queen", got)
	}
	last, _ := c.LastMove()
	if last.String() != "a7a8q" {
		t.Errorf("LastMove() = %s", last)
	}
}

func TestResizeAndQuit(t *testing.T) {
	c, _, _ := newTestController(t)
	c.HandleAction(SelectSquare{Square: sq(t, "e2")})
	c.HandleAction(Resize{W: 1000, H: 900})
	if w, h := c.WindowSize(); w != 1000 || h != 900 {
		t.Errorf("WindowSize() = %d,%d", w, h)
	}
	if c.Layout().SquareSize != 110 {
		t.Errorf("SquareSize = %d", c.Layout().SquareSize)
	}
	// the selection refers to a square, not a pixel
	c.HandleAction(SelectSquare{Square: sq(t, "e4")})
	if last, ok := c.LastMove(); !ok || last.String() != "e2e4" {
		t.Errorf("LastMove() = %v,%v", last, ok)
	}

	c.HandleAction(Resize{W: -3, H: 0})
	if c.Layout().SquareSize != 1 {
		t.Errorf("degenerate SquareSize = %d", c.Layout().SquareSize)
	}

	if c.QuitRequested() {
		t.Fatal("quit before Quit action")
	}
	c.HandleAction(Quit{})
	if !c.QuitRequested() {
		t.Error("Quit not recorded")
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	c, _, _ := newTestController(t)
	clickMove(t, c, "e2", "e4")
	c.HandleAction(SelectSquare{Square: sq(t, "e7")})
	c.HandleAction(ClickButton{Button: view.ButtonFlip})

	s := c.Snapshot()
	if s.LastMove == nil || s.LastMove.String() != "e2e4" {
		t.Errorf("Snapshot().LastMove = %v", s.LastMove)
	}
	if s.Selection == nil || *s.Selection != sq(t, "e7") {
		t.Errorf("Snapshot().Selection = %v", s.Selection)
	}
	if !s.Flipped || s.Turn != base.Black || s.Difficulty != base.DefaultDifficulty {
		t.Errorf("Snapshot() = %+v", s)
	}
}
