package base

import (
	"fmt"
	"strings"
)

// Forsyth–Edwards Notation
const FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// AI strength bounds
const (
	MinDifficulty     = 1
	MaxDifficulty     = 50
	DefaultDifficulty = 10
)

func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// ---- Color ----

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// ---- Piece ----

type Piece uint8

const (
	WKing        Piece = 19
	WQueen       Piece = 18
	WRook        Piece = 15
	WBishop      Piece = 14
	WKnight      Piece = 13
	WPawn        Piece = 11
	BKing        Piece = 9
	BQueen       Piece = 8
	BRook        Piece = 5
	BBishop      Piece = 4
	BKnight      Piece = 3
	BPawn        Piece = 1
	EmptyPiece   Piece = 99
	InvalidPiece Piece = 0
)

func PieceIsWhite(p Piece) bool {
	return p >= WPawn && p <= WKing
}

func PieceIsBlack(p Piece) bool {
	return p >= BPawn && p <= BKing
}

func PieceColor(p Piece) (Color, bool) {
	switch {
	case PieceIsWhite(p):
		return White, true
	case PieceIsBlack(p):
		return Black, true
	default:
		return White, false
	}
}

func KingOf(c Color) Piece {
	if c == White {
		return WKing
	}
	return BKing
}

func ConvertPieceFromRune(p rune) Piece {
	switch p {
	case 'P':
		return WPawn
	case 'R':
		return WRook
	case 'N':
		return WKnight
	case 'B':
		return WBishop
	case 'Q':
		return WQueen
	case 'K':
		return WKing
	case 'p':
		return BPawn
	case 'r':
		return BRook
	case 'n':
		return BKnight
	case 'b':
		return BBishop
	case 'q':
		return BQueen
	case 'k':
		return BKing
	default:
		return InvalidPiece
	}
}

func ConvertRuneFromPiece(p Piece) rune {
	switch p {
	case WPawn:
		return 'P'
	case WKnight:
		return 'N'
	case WBishop:
		return 'B'
	case WRook:
		return 'R'
	case WQueen:
		return 'Q'
	case WKing:
		return 'K'
	case BPawn:
		return 'p'
	case BKnight:
		return 'n'
	case BBishop:
		return 'b'
	case BRook:
		return 'r'
	case BQueen:
		return 'q'
	case BKing:
		return 'k'
	default:
		return '.'
	}
}

// ---- Game status ----

type GameStatus uint8

const (
	Check       GameStatus = 10
	Checkmate   GameStatus = 11
	Stalemate   GameStatus = 12
	Pass        GameStatus = 99
)

func (gs GameStatus) String() string {
	switch gs {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Pass:
		return "pass"
	default:
		return "invalid"
	}
}

func (gs GameStatus) IsTerminal() bool {
	return gs == Checkmate || gs == Stalemate
}

// ---- Board ----

// index = rank*8 + file, a1 == 0
type Mailbox [64]Piece

func EmptyMailbox() Mailbox {
	var m Mailbox
	for i := range m {
		m[i] = EmptyPiece
	}
	return m
}

// MailboxFromFEN reads the piece placement field of a FEN (the rest of the
// record is ignored).
func MailboxFromFEN(fen string) (Mailbox, error) {
	m := EmptyMailbox()
	placement := fen
	if i := strings.IndexByte(fen, ' '); i >= 0 {
		placement = fen[:i]
	}
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return m, fmt.Errorf("invalid FEN placement %q", placement)
	}
	for row, line := range ranks {
		rank, file := 7-row, 0
		for _, r := range line {
			if r >= '1' && r <= '8' {
				file += int(r - '0')
				continue
			}
			p := ConvertPieceFromRune(r)
			if p == InvalidPiece || file > 7 {
				return m, fmt.Errorf("invalid FEN rank %q", line)
			}
			m[NewSquare(file, rank)] = p
			file++
		}
		if file != 8 {
			return m, fmt.Errorf("invalid FEN rank %q", line)
		}
	}
	return m, nil
}

// Find returns the first square holding p.
func (m Mailbox) Find(p Piece) (Square, bool) {
	for i, q := range m {
		if q == p {
			return Square(i), true
		}
	}
	return NoSquare, false
}

// ---- Square ----

type Square int8

const NoSquare Square = -1

func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) % 8 }
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) IsValid() bool {
	return s >= 0 && s < 64
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

func SquareFromAlgebraic(pos string) (Square, error) {
	// 'a' ~ 'h' to 0-7
	// '1' ~ '8' to 0-7
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", pos)
	}
	return NewSquare(int(pos[0]-'a'), int(pos[1]-'1')), nil
}

// ---- Move ----

type Promotion uint8

const (
	NoPromotion Promotion = iota
	PromoteQueen
	PromoteRook
	PromoteBishop
	PromoteKnight
)

func (p Promotion) rune() (byte, bool) {
	switch p {
	case PromoteQueen:
		return 'q', true
	case PromoteRook:
		return 'r', true
	case PromoteBishop:
		return 'b', true
	case PromoteKnight:
		return 'n', true
	default:
		return 0, false
	}
}

func promotionFromRune(r byte) (Promotion, error) {
	switch r {
	case 'q':
		return PromoteQueen, nil
	case 'r':
		return PromoteRook, nil
	case 'b':
		return PromoteBishop, nil
	case 'n':
		return PromoteKnight, nil
	default:
		return NoPromotion, fmt.Errorf("invalid promotion %q", r)
	}
}

type Move struct {
	From  Square
	To    Square
	Promo Promotion
}

// UCI long algebraic: e2e4, e7e8q
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if r, ok := m.Promo.rune(); ok {
		s += string(r)
	}
	return s
}

// SameSquares ignores promotion
func (m Move) SameSquares(o Move) bool {
	return m.From == o.From && m.To == o.To
}

func ParseUCIMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid uci move %q", s)
	}
	from, err := SquareFromAlgebraic(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := SquareFromAlgebraic(s[2:4])
	if err != nil {
		return Move{}, err
	}
	mv := Move{From: from, To: to}
	if len(s) == 5 {
		if mv.Promo, err = promotionFromRune(s[4]); err != nil {
			return Move{}, err
		}
	}
	return mv, nil
}
