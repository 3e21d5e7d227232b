package cli

import (
	"chessbot/src/base"
	"chessbot/src/view"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	lightSq   = color.New(color.BgWhite, color.FgBlack)
	darkSq    = color.New(color.BgHiBlack, color.FgHiWhite)
	lastSq    = color.New(color.BgYellow, color.FgBlack)
	selectSq  = color.New(color.BgCyan, color.FgBlack)
	checkSq   = color.New(color.BgHiYellow, color.FgBlack)
	mateSq    = color.New(color.BgRed, color.FgHiWhite)
	statusTxt = color.New(color.Bold)
)

// Piece -> unicode glyph
func pieceGlyph(p base.Piece) string {
	switch p {
	case base.WKing:
		return "♔"
	case base.WQueen:
		return "♕"
	case base.WRook:
		return "♖"
	case base.WBishop:
		return "♗"
	case base.WKnight:
		return "♘"
	case base.WPawn:
		return "♙"
	case base.BKing:
		return "♚"
	case base.BQueen:
		return "♛"
	case base.BRook:
		return "♜"
	case base.BBishop:
		return "♝"
	case base.BKnight:
		return "♞"
	case base.BPawn:
		return "♟"
	case base.EmptyPiece:
		return " "
	default:
		return "?"
	}
}

// without color the squares are indistinguishable, so fall back to FEN letters
// and dots
func pieceText(p base.Piece) string {
	if color.NoColor {
		return string(base.ConvertRuneFromPiece(p))
	}
	return pieceGlyph(p)
}

func squareStyle(s view.Snapshot, sq base.Square) *color.Color {
	switch {
	case s.Highlight.Kind == view.HighlightCheckmate && s.Highlight.Square == sq:
		return mateSq
	case s.Highlight.Kind == view.HighlightCheck && s.Highlight.Square == sq:
		return checkSq
	case s.Selection != nil && *s.Selection == sq:
		return selectSq
	case s.LastMove != nil && (s.LastMove.From == sq || s.LastMove.To == sq):
		return lastSq
	case (sq.File()+sq.Rank())%2 == 1:
		return lightSq
	default:
		return darkSq
	}
}

// PrintBoard writes the snapshot board from the side it is viewed from.
func PrintBoard(w io.Writer, s view.Snapshot) {
	files := "   a  b  c  d  e  f  g  h"
	if s.Flipped {
		files = "   h  g  f  e  d  c  b  a"
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, files)
	for row := 0; row < 8; row++ {
		rank := 7 - row
		if s.Flipped {
			rank = row
		}
		var b strings.Builder
		for col := 0; col < 8; col++ {
			file := col
			if s.Flipped {
				file = 7 - col
			}
			sq := base.NewSquare(file, rank)
			b.WriteString(squareStyle(s, sq).Sprint(" " + pieceText(s.Board[sq]) + " "))
		}
		fmt.Fprintf(w, "%d %s %d\n", rank+1, b.String(), rank+1)
	}
	fmt.Fprintln(w, files)
	fmt.Fprintln(w)
}

func PrintStatus(w io.Writer, s view.Snapshot, fen string) {
	fmt.Fprintf(w, "FEN: %s\n", fen)
	line := s.Turn.String() + " to move"
	switch s.Status {
	case base.Check, base.Checkmate, base.Stalemate:
		line += ", " + s.Status.String()
	}
	fmt.Fprintln(w, statusTxt.Sprint(line))

	ai := "off"
	switch {
	case s.AIEnabled[base.White] && s.AIEnabled[base.Black]:
		ai = "both"
	case s.AIEnabled[base.White]:
		ai = "white"
	case s.AIEnabled[base.Black]:
		ai = "black"
	}
	fmt.Fprintf(w, "AI: %s, difficulty %d\n", ai, s.Difficulty)
	if s.LastMove != nil {
		fmt.Fprintf(w, "Last move: %s\n", s.LastMove)
	}
}
