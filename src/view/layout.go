// Package view derives the per-frame screen layout from a game snapshot and the
// window size. Nothing here is cached: every call recomputes from scratch.
package view

import (
	"chessbot/src/base"
	"fmt"
	"math"
)

// --- UI constants ---

const (
	SidePanelWidth = 120
	ButtonHeight   = 28
	PanelMargin    = 10
	SliderOffsetY  = 216
	StatusOffsetY  = 264

	// window is never allowed below this
	MinWindowW = SidePanelWidth + 8*24
	MinWindowH = 8 * 40
)

type ButtonID int

const (
	ButtonReset ButtonID = iota
	ButtonToggleAI
	ButtonUndo
	ButtonFlip
)

func (b ButtonID) String() string {
	switch b {
	case ButtonReset:
		return "reset"
	case ButtonToggleAI:
		return "toggle-ai"
	case ButtonUndo:
		return "undo"
	case ButtonFlip:
		return "flip"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// fixed vertical offsets inside the side panel
var buttonOffsets = [...]struct {
	id ButtonID
	y  int
}{
	{ButtonReset, 24},
	{ButtonToggleAI, 72},
	{ButtonUndo, 120},
	{ButtonFlip, 168},
}

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2
}

type HighlightKind int

const (
	HighlightNone HighlightKind = iota
	HighlightCheck
	HighlightCheckmate
)

type Highlight struct {
	Kind   HighlightKind
	Square base.Square
}

// Snapshot is everything the layout needs from the controller.
type Snapshot struct {
	Board      base.Mailbox
	Turn       base.Color
	Flipped    bool
	Difficulty int
	AIEnabled  [2]bool
	LastMove   *base.Move
	Selection  *base.Square
	Highlight  Highlight
	Status     base.GameStatus
}

type PiecePlacement struct {
	Piece  base.Piece
	Square base.Square
	Rect   Rect
}

type Arrow struct {
	FromX, FromY float64
	ToX, ToY     float64
}

type Button struct {
	ID     ButtonID
	Label  string
	Rect   Rect
	Active bool
}

type Slider struct {
	Track Rect
	Thumb Rect
	Value int
	Label string
}

type Layout struct {
	Width, Height int
	SquareSize    int
	Flipped       bool

	Board Rect
	Panel Rect

	Pieces    []PiecePlacement
	Highlight *Highlight
	HighRect  Rect
	Selection *Rect
	Arrow     *Arrow

	Buttons []Button
	Slider  Slider
	Status  []string
}

// SquareSize is floor(min(w - panel, h) / 8), never below 1.
func SquareSize(w, h int) int {
	side := w - SidePanelWidth
	if h < side {
		side = h
	}
	sq := side / 8
	if sq < 1 {
		sq = 1
	}
	return sq
}

func panelRect(w, h int) Rect {
	return Rect{X: 8 * SquareSize(w, h), Y: 0, W: SidePanelWidth, H: h}
}

func SliderTrack(w, h int) Rect {
	p := panelRect(w, h)
	return Rect{X: p.X + PanelMargin, Y: SliderOffsetY, W: p.W - 2*PanelMargin, H: ButtonHeight}
}

// DifficultyAt maps x linearly over the track onto [MinDifficulty, MaxDifficulty].
func DifficultyAt(track Rect, x int) int {
	if track.W <= 0 {
		return base.MinDifficulty
	}
	rel := float64(x-track.X) / float64(track.W)
	span := float64(base.MaxDifficulty - base.MinDifficulty)
	return base.ClampDifficulty(base.MinDifficulty + int(math.Round(rel*span)))
}

func ThumbX(track Rect, d int) int {
	d = base.ClampDifficulty(d)
	return track.X + (d-base.MinDifficulty)*track.W/(base.MaxDifficulty-base.MinDifficulty)
}

func Compute(s Snapshot, w, h int) Layout {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	sq := SquareSize(w, h)
	l := Layout{
		Width:      w,
		Height:     h,
		SquareSize: sq,
		Flipped:    s.Flipped,
		Board:      Rect{X: 0, Y: 0, W: 8 * sq, H: 8 * sq},
		Panel:      panelRect(w, h),
	}

	for i, p := range s.Board {
		if p == base.EmptyPiece || p == base.InvalidPiece {
			continue
		}
		sqr := base.Square(i)
		l.Pieces = append(l.Pieces, PiecePlacement{Piece: p, Square: sqr, Rect: l.SquareRect(sqr)})
	}

	if s.Highlight.Kind != HighlightNone && s.Highlight.Square.IsValid() {
		hl := s.Highlight
		l.Highlight = &hl
		l.HighRect = l.SquareRect(hl.Square)
	}
	if s.Selection != nil && s.Selection.IsValid() {
		r := l.SquareRect(*s.Selection)
		l.Selection = &r
	}
	if s.LastMove != nil {
		fx, fy := l.SquareRect(s.LastMove.From).Center()
		tx, ty := l.SquareRect(s.LastMove.To).Center()
		l.Arrow = &Arrow{FromX: fx, FromY: fy, ToX: tx, ToY: ty}
	}

	bx := l.Panel.X + PanelMargin
	bw := l.Panel.W - 2*PanelMargin
	aiOn := s.AIEnabled[s.Turn]
	for _, b := range buttonOffsets {
		btn := Button{ID: b.id, Rect: Rect{X: bx, Y: b.y, W: bw, H: ButtonHeight}}
		switch b.id {
		case ButtonReset:
			btn.Label = "Reset"
		case ButtonToggleAI:
			btn.Label = "AI: off"
			if aiOn {
				btn.Label = "AI: on"
			}
			btn.Active = aiOn
		case ButtonUndo:
			btn.Label = "Undo"
		case ButtonFlip:
			btn.Label = "Flip"
			btn.Active = s.Flipped
		}
		l.Buttons = append(l.Buttons, btn)
	}

	track := SliderTrack(w, h)
	d := base.ClampDifficulty(s.Difficulty)
	tx := ThumbX(track, d)
	l.Slider = Slider{
		Track: track,
		Thumb: Rect{X: tx - 4, Y: track.Y, W: 8, H: track.H},
		Value: d,
		Label: fmt.Sprintf("Diff: %d", d),
	}

	l.Status = statusLines(s)
	return l
}

func statusLines(s Snapshot) []string {
	lines := []string{s.Turn.String() + " to move"}
	switch s.Status {
	case base.Check, base.Checkmate, base.Stalemate:
		lines = append(lines, s.Status.String())
	}
	for _, c := range []base.Color{base.White, base.Black} {
		if s.AIEnabled[c] {
			lines = append(lines, "AI plays "+c.String())
		}
	}
	return lines
}

// SquareRect maps a board square to its pixel rect honoring orientation.
func (l Layout) SquareRect(sq base.Square) Rect {
	file, rank := sq.File(), sq.Rank()
	screenFile, screenRank := file, 7-rank
	if l.Flipped {
		screenFile, screenRank = 7-file, rank
	}
	return Rect{
		X: l.Board.X + screenFile*l.SquareSize,
		Y: l.Board.Y + screenRank*l.SquareSize,
		W: l.SquareSize,
		H: l.SquareSize,
	}
}

// SquareAt is the inverse of SquareRect.
func (l Layout) SquareAt(px, py int) (base.Square, bool) {
	if !l.Board.Contains(px, py) || l.SquareSize <= 0 {
		return base.NoSquare, false
	}
	fx := (px - l.Board.X) / l.SquareSize
	fy := (py - l.Board.Y) / l.SquareSize
	file, rank := fx, 7-fy
	if l.Flipped {
		file, rank = 7-fx, fy
	}
	sq := base.NewSquare(file, rank)
	return sq, sq.IsValid()
}

func (l Layout) ButtonAt(px, py int) (ButtonID, bool) {
	for _, b := range l.Buttons {
		if b.Rect.Contains(px, py) {
			return b.ID, true
		}
	}
	return 0, false
}

func (l Layout) InSlider(px, py int) bool {
	return l.Slider.Track.Contains(px, py)
}
