// Package game holds the controller state machine: it applies Actions to the
// single GameState, delegates legality to the rules engine and AI moves to the
// oracle.
package game

import (
	"chessbot/src/base"
	"chessbot/src/logx"
	"chessbot/src/rules"
	"chessbot/src/view"
	"fmt"
)

type State int

const (
	WaitingForFirstSquare State = iota
	WaitingForSecondSquare
	AwaitingOracle
	Terminal
)

func (s State) String() string {
	switch s {
	case WaitingForFirstSquare:
		return "waiting-first-square"
	case WaitingForSecondSquare:
		return "waiting-second-square"
	case AwaitingOracle:
		return "awaiting-oracle"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Oracle proposes one move for the position at the given strength. The call
// blocks until the answer is known.
type Oracle interface {
	BestMove(fen string, difficulty int) (base.Move, error)
}

// GameState is owned by exactly one Controller. Side to move is never stored
// here; it is always read from the rules engine.
type GameState struct {
	history       []base.Move
	aiEnabled     [2]bool
	difficulty    int
	flipped       bool
	selection     *base.Square
	width, height int
	quit          bool
}

type Controller struct {
	rules  rules.Engine
	oracle Oracle
	state  GameState
	logx   logx.Logger
}

type Option func(*Controller)

func WithDifficulty(d int) Option {
	return func(c *Controller) { c.setDifficulty(d) }
}

func WithWindowSize(w, h int) Option {
	return func(c *Controller) { c.resize(w, h) }
}

func NewController(r rules.Engine, o Oracle, l logx.Logger, opts ...Option) *Controller {
	c := &Controller{
		rules:  r,
		oracle: o,
		logx:   l,
		state:  GameState{difficulty: base.DefaultDifficulty},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ---- State ----

func (c *Controller) State() State {
	if c.rules.Status().IsTerminal() {
		return Terminal
	}
	if c.state.aiEnabled[c.rules.Turn()] {
		return AwaitingOracle
	}
	if c.state.selection != nil {
		return WaitingForSecondSquare
	}
	return WaitingForFirstSquare
}

func (c *Controller) Turn() base.Color { return c.rules.Turn() }

func (c *Controller) History() []base.Move {
	out := make([]base.Move, len(c.state.history))
	copy(out, c.state.history)
	return out
}

func (c *Controller) LastMove() (base.Move, bool) {
	n := len(c.state.history)
	if n == 0 {
		return base.Move{}, false
	}
	return c.state.history[n-1], true
}

func (c *Controller) Selection() (base.Square, bool) {
	if c.state.selection == nil {
		return base.NoSquare, false
	}
	return *c.state.selection, true
}

func (c *Controller) AIEnabled(col base.Color) bool { return c.state.aiEnabled[col] }
func (c *Controller) Difficulty() int               { return c.state.difficulty }
func (c *Controller) Flipped() bool                 { return c.state.flipped }
func (c *Controller) QuitRequested() bool           { return c.state.quit }
func (c *Controller) Board() base.Mailbox           { return c.rules.Mailbox() }
func (c *Controller) FEN() string                   { return c.rules.FEN() }
func (c *Controller) Status() base.GameStatus       { return c.rules.Status() }

func (c *Controller) WindowSize() (int, int) {
	return c.state.width, c.state.height
}

// ---- Actions ----

func (c *Controller) HandleAction(a Action) {
	c.logx.Debugf("action: %v (state %v)", a, c.State())
	switch act := a.(type) {
	case SelectSquare:
		c.selectSquare(act.Square)
	case ClickButton:
		c.clickButton(act.Button)
	case DragSlider:
		c.setDifficulty(view.DifficultyAt(view.SliderTrack(c.state.width, c.state.height), act.X))
	case SetDifficulty:
		c.setDifficulty(act.Value)
	case Resize:
		c.resize(act.W, act.H)
	case Quit:
		c.state.quit = true
	default:
		c.logx.Warnf("unknown action %T", a)
	}
}

func (c *Controller) selectSquare(sq base.Square) {
	if !sq.IsValid() {
		return
	}
	switch c.State() {
	case Terminal, AwaitingOracle:
		c.state.selection = nil
		return
	}

	if c.state.selection == nil {
		c.state.selection = &sq
		return
	}

	from := *c.state.selection
	c.state.selection = nil
	mv, ok := c.findLegal(base.Move{From: from, To: sq})
	if !ok {
		c.logx.Debugf("reject %s%s", from, sq)
		return
	}
	if err := c.push(mv); err != nil {
		// legal set and push disagree: the rules engine is the authority
		c.logx.Errorf("push %s: %v", mv, err)
	}
}

// promotion is never asked for: the queen promotion is taken
func (c *Controller) findLegal(candidate base.Move) (base.Move, bool) {
	var found *base.Move
	for _, mv := range c.rules.LegalMoves() {
		if !mv.SameSquares(candidate) {
			continue
		}
		if mv.Promo == candidate.Promo {
			return mv, true
		}
		if candidate.Promo == base.NoPromotion && mv.Promo == base.PromoteQueen {
			m := mv
			found = &m
		}
	}
	if found == nil {
		return base.Move{}, false
	}
	return *found, true
}

func (c *Controller) push(mv base.Move) error {
	if err := c.rules.Push(mv); err != nil {
		return err
	}
	c.state.history = append(c.state.history, mv)
	c.logx.Infof("move %d: %s", len(c.state.history), mv)
	return nil
}

func (c *Controller) clickButton(id view.ButtonID) {
	switch id {
	case view.ButtonReset:
		c.reset()
	case view.ButtonToggleAI:
		turn := c.rules.Turn()
		c.state.aiEnabled[turn] = !c.state.aiEnabled[turn]
		c.state.selection = nil
		c.logx.Infof("ai for %v: %v", turn, c.state.aiEnabled[turn])
	case view.ButtonUndo:
		c.undo()
	case view.ButtonFlip:
		c.state.flipped = !c.state.flipped
	default:
		c.logx.Warnf("unknown button %v", id)
	}
}

func (c *Controller) reset() {
	c.rules.Reset()
	c.state.history = nil
	c.state.aiEnabled = [2]bool{}
	c.state.selection = nil
	c.logx.Info("game reset")
}

// Undo takes back a full move pair when two plies are available, otherwise
// the single ply. It does not care which side made them.
func (c *Controller) undo() {
	c.state.selection = nil
	for i := 0; i < 2 && len(c.state.history) > 0; i++ {
		if err := c.rules.Pop(); err != nil {
			c.logx.Errorf("undo: %v", err)
			return
		}
		c.state.history = c.state.history[:len(c.state.history)-1]
	}
	c.logx.Debugf("undo: %d plies left", len(c.state.history))
}

func (c *Controller) setDifficulty(d int) {
	c.state.difficulty = base.ClampDifficulty(d)
}

func (c *Controller) resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.state.width, c.state.height = w, h
}

// ---- Oracle ----

// DriveOracleIfNeeded plays one oracle move when the side to move is AI
// controlled. Any error is unrecoverable for the caller.
func (c *Controller) DriveOracleIfNeeded() error {
	if c.State() != AwaitingOracle {
		return nil
	}
	if c.oracle == nil {
		return ErrNoOracle
	}

	fen := c.rules.FEN()
	c.logx.Infof("oracle request: difficulty %d, %s", c.state.difficulty, fen)
	mv, err := c.oracle.BestMove(fen, c.state.difficulty)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleFailed, err)
	}

	legal, ok := c.findLegal(mv)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrIllegalOracleMove, mv, fen)
	}
	if err := c.push(legal); err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalOracleMove, err)
	}
	return nil
}

// ---- View ----

func (c *Controller) CheckHighlight() view.Highlight {
	var kind view.HighlightKind
	switch {
	case c.rules.IsCheckmate():
		kind = view.HighlightCheckmate
	case c.rules.IsCheck():
		kind = view.HighlightCheck
	default:
		return view.Highlight{Kind: view.HighlightNone, Square: base.NoSquare}
	}
	sq, ok := c.rules.KingSquare(c.rules.Turn())
	if !ok {
		return view.Highlight{Kind: view.HighlightNone, Square: base.NoSquare}
	}
	return view.Highlight{Kind: kind, Square: sq}
}

func (c *Controller) Snapshot() view.Snapshot {
	s := view.Snapshot{
		Board:      c.rules.Mailbox(),
		Turn:       c.rules.Turn(),
		Flipped:    c.state.flipped,
		Difficulty: c.state.difficulty,
		AIEnabled:  c.state.aiEnabled,
		Highlight:  c.CheckHighlight(),
		Status:     c.rules.Status(),
	}
	if mv, ok := c.LastMove(); ok {
		s.LastMove = &mv
	}
	if sel, ok := c.Selection(); ok {
		s.Selection = &sel
	}
	return s
}

// Layout is the ViewState for the current window size.
func (c *Controller) Layout() view.Layout {
	return view.Compute(c.Snapshot(), c.state.width, c.state.height)
}
