package ghelper

import (
	"chessbot/src/base"
	"chessbot/ui/gui/ghelper/gfont"
	"chessbot/ui/gui/ghelper/gimages"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIAssetsWorker struct {
	pieceImages map[base.Piece]*ebiten.Image
	fonts       *gfont.Fonts
}

// NewGUIAssetsWorker loads everything the board needs once. A missing image
// is an error; an empty fontPath selects the built-in face.
func NewGUIAssetsWorker(imagesDir, fontPath string) (*GUIAssetsWorker, error) {
	imgs, err := gimages.LoadImageAssets(imagesDir)
	if err != nil {
		return nil, err
	}
	f, err := gfont.LoadFonts(fontPath)
	if err != nil {
		return nil, err
	}
	return &GUIAssetsWorker{pieceImages: imgs, fonts: f}, nil
}

func (aw *GUIAssetsWorker) Piece(p base.Piece) *ebiten.Image {
	return aw.pieceImages[p]
}

func (aw *GUIAssetsWorker) Fonts() *gfont.Fonts {
	return aw.fonts
}
