package gimages

import (
	"chessbot/src/base"
	"fmt"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var pieceFiles = map[base.Piece]string{
	base.WPawn:   "white_pawn.png",
	base.WKnight: "white_knight.png",
	base.WBishop: "white_bishop.png",
	base.WRook:   "white_rook.png",
	base.WQueen:  "white_queen.png",
	base.WKing:   "white_king.png",
	base.BPawn:   "black_pawn.png",
	base.BKnight: "black_knight.png",
	base.BBishop: "black_bishop.png",
	base.BRook:   "black_rook.png",
	base.BQueen:  "black_queen.png",
	base.BKing:   "black_king.png",
}

func LoadImageAssets(workdir string) (map[base.Piece]*ebiten.Image, error) {
	figureImages := make(map[base.Piece]*ebiten.Image, len(pieceFiles))
	for p, name := range pieceFiles {
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(workdir, name))
		if err != nil {
			return nil, fmt.Errorf("load piece image %s: %w", name, err)
		}
		figureImages[p] = img
	}
	return figureImages, nil
}
