// Package rules is the authoritative chess position: legality, check and mate
// detection, and a push/pop move log. Backed by github.com/notnil/chess.
package rules

import (
	"chessbot/src/base"
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrEmptyHistory = errors.New("no move to pop")
)

// Engine is the contract the game controller consumes.
type Engine interface {
	Reset()
	Turn() base.Color
	LegalMoves() []base.Move
	IsCheck() bool
	IsCheckmate() bool
	IsStalemate() bool
	KingSquare(c base.Color) (base.Square, bool)
	Push(mv base.Move) error
	Pop() error
	Ply() int
	FEN() string
	Mailbox() base.Mailbox
	Status() base.GameStatus
}

type entry struct {
	pos   *chess.Position
	check bool
}

// ChessRules keeps every position reached so Pop is a slice truncation.
type ChessRules struct {
	stack []entry
}

func NewChessRules() *ChessRules {
	return &ChessRules{stack: []entry{{pos: chess.StartingPosition()}}}
}

// NewChessRulesFromFEN starts from an arbitrary root; Reset returns to it.
func NewChessRulesFromFEN(fen string) (*ChessRules, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("error parse FEN: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	return &ChessRules{stack: []entry{{pos: pos, check: rootInCheck(pos)}}}, nil
}

// rootInCheck hands the move to the opponent and looks for a move landing on
// the king. Positions reached by a move use the move's check tag instead.
func rootInCheck(pos *chess.Position) bool {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return false
	}
	mb, err := base.MailboxFromFEN(fields[0])
	if err != nil {
		return false
	}
	king, ok := mb.Find(base.KingOf(fromChessColor(pos.Turn())))
	if !ok {
		return false
	}

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return false
	}
	for _, m := range chess.NewGame(opt).Position().ValidMoves() {
		if int(m.S2()) == int(king) {
			return true
		}
	}
	return false
}

func (r *ChessRules) Reset() {
	r.stack = r.stack[:1]
}

func (r *ChessRules) top() entry {
	return r.stack[len(r.stack)-1]
}

func (r *ChessRules) Turn() base.Color {
	return fromChessColor(r.top().pos.Turn())
}

func (r *ChessRules) LegalMoves() []base.Move {
	valid := r.top().pos.ValidMoves()
	out := make([]base.Move, 0, len(valid))
	for _, m := range valid {
		out = append(out, fromChessMove(m))
	}
	return out
}

func (r *ChessRules) IsCheck() bool {
	return r.top().check
}

func (r *ChessRules) IsCheckmate() bool {
	top := r.top()
	return top.check && len(top.pos.ValidMoves()) == 0
}

func (r *ChessRules) IsStalemate() bool {
	top := r.top()
	return !top.check && len(top.pos.ValidMoves()) == 0
}

func (r *ChessRules) KingSquare(c base.Color) (base.Square, bool) {
	return r.Mailbox().Find(base.KingOf(c))
}

// Push applies a legal move. A move without promotion that matches a promoting
// pawn move resolves to a queen.
func (r *ChessRules) Push(mv base.Move) error {
	pos := r.top().pos
	m := findValid(pos, mv)
	if m == nil {
		return fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}
	r.stack = append(r.stack, entry{pos: pos.Update(m), check: m.HasTag(chess.Check)})
	return nil
}

func (r *ChessRules) Pop() error {
	if len(r.stack) <= 1 {
		return ErrEmptyHistory
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

func (r *ChessRules) Ply() int {
	return len(r.stack) - 1
}

func (r *ChessRules) FEN() string {
	return r.top().pos.String()
}

func (r *ChessRules) Mailbox() base.Mailbox {
	// notnil/chess always writes a well-formed placement
	mb, _ := base.MailboxFromFEN(r.FEN())
	return mb
}

// return status: Check, Checkmate, Stalemate or Pass
func (r *ChessRules) Status() base.GameStatus {
	switch {
	case r.IsCheckmate():
		return base.Checkmate
	case r.IsStalemate():
		return base.Stalemate
	case r.IsCheck():
		return base.Check
	default:
		return base.Pass
	}
}

func findValid(pos *chess.Position, mv base.Move) *chess.Move {
	var fallback *chess.Move
	for _, m := range pos.ValidMoves() {
		if int(m.S1()) != int(mv.From) || int(m.S2()) != int(mv.To) {
			continue
		}
		promo := fromChessPromo(m.Promo())
		if promo == mv.Promo {
			return m
		}
		if mv.Promo == base.NoPromotion && promo == base.PromoteQueen {
			fallback = m
		}
	}
	return fallback
}

func fromChessMove(m *chess.Move) base.Move {
	return base.Move{
		From:  base.Square(m.S1()),
		To:    base.Square(m.S2()),
		Promo: fromChessPromo(m.Promo()),
	}
}

func fromChessPromo(pt chess.PieceType) base.Promotion {
	switch pt {
	case chess.Queen:
		return base.PromoteQueen
	case chess.Rook:
		return base.PromoteRook
	case chess.Bishop:
		return base.PromoteBishop
	case chess.Knight:
		return base.PromoteKnight
	default:
		return base.NoPromotion
	}
}

func fromChessColor(c chess.Color) base.Color {
	if c == chess.Black {
		return base.Black
	}
	return base.White
}
