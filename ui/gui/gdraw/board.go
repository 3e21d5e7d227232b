package gdraw

import (
	"chessbot/src/base"
	"chessbot/src/view"
	"chessbot/ui/gui/gbase"
	"chessbot/ui/gui/ghelper"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type buttonKey struct {
	w, h   int
	active bool
}

// BoardDrawer paints one Layout per frame. It holds only images and
// animation state, never game state.
type BoardDrawer struct {
	assets *ghelper.GUIAssetsWorker
	theme  gbase.Palette
	debug  bool

	buttonImgs map[buttonKey]*ebiten.Image
	fx         map[view.ButtonID]*ghelper.ButtonFX
}

func NewBoardDrawer(assets *ghelper.GUIAssetsWorker, theme gbase.Palette, debug bool) *BoardDrawer {
	return &BoardDrawer{
		assets:     assets,
		theme:      theme,
		debug:      debug,
		buttonImgs: make(map[buttonKey]*ebiten.Image),
		fx:         make(map[view.ButtonID]*ghelper.ButtonFX),
	}
}

func (bd *BoardDrawer) buttonFX(id view.ButtonID) *ghelper.ButtonFX {
	fx, ok := bd.fx[id]
	if !ok {
		fx = ghelper.NewButtonFX()
		bd.fx[id] = fx
	}
	return fx
}

// Animate updates hover/press effects from the raw cursor state.
func (bd *BoardDrawer) Animate(l view.Layout, mx, my int, justClicked, justReleased bool, dt float64) {
	for _, b := range l.Buttons {
		fx := bd.buttonFX(b.ID)
		fx.Track(b.Rect.Contains(mx, my), justClicked, justReleased)
		fx.UpdateAnim(dt)
	}
}

func (bd *BoardDrawer) buttonImage(w, h int, active bool) *ebiten.Image {
	k := buttonKey{w: w, h: h, active: active}
	if img, ok := bd.buttonImgs[k]; ok {
		return img
	}
	fill := bd.theme.ButtonFill
	if active {
		fill = bd.theme.ButtonActive
	}
	img := ghelper.RenderRoundedRect(w, h, 8, fill, bd.theme.ButtonStroke, 2)
	bd.buttonImgs[k] = img
	return img
}

func (bd *BoardDrawer) Draw(screen *ebiten.Image, l view.Layout) {
	screen.Fill(bd.theme.Bg)
	bd.drawSquares(screen, l)
	bd.drawOverlays(screen, l)
	bd.drawPieces(screen, l)
	if l.Arrow != nil {
		ghelper.DrawArrow(screen, *l.Arrow, float64(l.SquareSize)*0.12, bd.theme.Arrow)
	}
	bd.drawPanel(screen, l)

	if bd.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.2f", ebiten.ActualTPS()), 2, l.Height-16)
	}
}

func (bd *BoardDrawer) drawSquares(screen *ebiten.Image, l view.Layout) {
	face := bd.assets.Fonts().Small
	for i := 0; i < 64; i++ {
		sq := base.Square(i)
		clr := bd.theme.DarkSquare
		if (sq.File()+sq.Rank())%2 == 1 {
			clr = bd.theme.LightSquare
		}
		ghelper.FillRect(screen, l.SquareRect(sq), clr)
	}
	if l.SquareSize < 24 {
		return
	}

	// coordinates along the bottom and left edges of the screen board
	for i := 0; i < 8; i++ {
		fileSq := base.NewSquare(i, 0)
		rankSq := base.NewSquare(0, i)
		if l.Flipped {
			fileSq = base.NewSquare(i, 7)
			rankSq = base.NewSquare(7, i)
		}
		fr := l.SquareRect(fileSq)
		text.Draw(screen, string(rune('a'+i)), face, fr.X+fr.W-9, fr.Y+fr.H-3, bd.coordColor(fileSq))
		rr := l.SquareRect(rankSq)
		text.Draw(screen, string(rune('1'+i)), face, rr.X+2, rr.Y+12, bd.coordColor(rankSq))
	}
}

// text on a square uses the other square color
func (bd *BoardDrawer) coordColor(sq base.Square) color.Color {
	if (sq.File()+sq.Rank())%2 == 1 {
		return bd.theme.DarkSquare
	}
	return bd.theme.LightSquare
}

func (bd *BoardDrawer) drawOverlays(screen *ebiten.Image, l view.Layout) {
	if l.Highlight != nil {
		clr := bd.theme.Check
		if l.Highlight.Kind == view.HighlightCheckmate {
			clr = bd.theme.Checkmate
		}
		ghelper.FillRect(screen, l.HighRect, clr)
	}
	if l.Selection != nil {
		ghelper.FillRect(screen, *l.Selection, bd.theme.Selection)
		ghelper.StrokeRect(screen, *l.Selection, 2, bd.theme.SliderThumb)
	}
}

func (bd *BoardDrawer) drawPieces(screen *ebiten.Image, l view.Layout) {
	for _, p := range l.Pieces {
		ghelper.DrawImageInRect(screen, bd.assets.Piece(p.Piece), p.Rect)
	}
}

func (bd *BoardDrawer) drawPanel(screen *ebiten.Image, l view.Layout) {
	ghelper.FillRect(screen, l.Panel, bd.theme.PanelBg)
	face := bd.assets.Fonts().Normal

	for _, b := range l.Buttons {
		img := bd.buttonImage(b.Rect.W, b.Rect.H, b.Active)
		bd.buttonFX(b.ID).DrawAnimated(screen, img, b.Rect, b.Label, face, bd.theme.ButtonText)
	}

	s := l.Slider
	text.Draw(screen, s.Label, face, s.Track.X, s.Track.Y-6, bd.theme.MenuText)
	line := view.Rect{X: s.Track.X, Y: s.Track.Y + s.Track.H/2 - 2, W: s.Track.W, H: 4}
	ghelper.FillRect(screen, line, bd.theme.SliderTrack)
	ghelper.FillRect(screen, s.Thumb, bd.theme.SliderThumb)

	small := bd.assets.Fonts().Small
	y := view.StatusOffsetY
	for _, st := range l.Status {
		text.Draw(screen, st, small, l.Panel.X+view.PanelMargin, y, bd.theme.MenuText)
		y += 16
	}
}
