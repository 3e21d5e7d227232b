package ghelper

import (
	"chessbot/src/view"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// ---- UI ELEMENTS ----

// ---- Button ----

// ButtonFX is the hover/press animation of one side panel button. Clicks are
// decided elsewhere, this only looks.
type ButtonFX struct {
	Hover   bool // mouse over
	Pressed bool // mouse currently pressed on this button
	// animation variables
	Scale         float64 // current scale (1.0 default)
	TargetScale   float64
	OffsetY       float64 // current vertical offset for pressed effect
	TargetOffsetY float64
	AnimSpeed     float64 // how fast to approach target (per second)
}

func NewButtonFX() *ButtonFX {
	return &ButtonFX{Scale: 1.0, TargetScale: 1.0, AnimSpeed: 10.0}
}

// Call every Update with the cursor state relative to the button rect
func (b *ButtonFX) Track(inside, justClicked, justReleased bool) {
	b.Hover = inside

	if justClicked && inside {
		b.Pressed = true
		b.TargetScale = 0.96
		b.TargetOffsetY = 2.0
	}
	if justReleased {
		if b.Pressed && inside {
			b.TargetScale = 1.03 // small click bounce out
		} else {
			b.TargetScale = 1.0
		}
		b.Pressed = false
		b.TargetOffsetY = 0
		return
	}
	if !b.Pressed {
		b.TargetOffsetY = 0
		if inside {
			b.TargetScale = 1.02
		} else {
			b.TargetScale = 1.0
		}
	}
}

// Call every Update with dt seconds to approach the target values
func (b *ButtonFX) UpdateAnim(dt float64) {
	if b.AnimSpeed <= 0 {
		b.AnimSpeed = 8.0
	}
	approach := func(cur *float64, target float64, speed float64) {
		t := 1.0 - math.Exp(-speed*dt)
		*cur = *cur*(1.0-t) + target*t
	}

	approach(&b.Scale, b.TargetScale, b.AnimSpeed)
	approach(&b.OffsetY, b.TargetOffsetY, b.AnimSpeed)

	if !b.Pressed && math.Abs(b.Scale-1.03) < 0.005 {
		b.TargetScale = 1.0
	}
}

func (b *ButtonFX) DrawAnimated(screen, img *ebiten.Image, r view.Rect, label string, face font.Face, clr color.Color) {
	if img == nil {
		return
	}
	cx := float64(r.X) + float64(r.W)/2
	cy := float64(r.Y) + float64(r.H)/2 + b.OffsetY

	// draw button image scaled around center
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(img.Bounds().Dx())/2, -float64(img.Bounds().Dy())/2)
	op.GeoM.Scale(b.Scale, b.Scale)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)

	DrawTextCentered(screen, label, face, int(cx), int(cy), clr)
}

// DrawTextCentered centers s on (cx, cy) using the face metrics.
func DrawTextCentered(screen *ebiten.Image, s string, face font.Face, cx, cy int, clr color.Color) {
	bounds := text.BoundString(face, s)
	tx := cx - bounds.Dx()/2 - bounds.Min.X
	ty := cy - bounds.Dy()/2 - bounds.Min.Y
	text.Draw(screen, s, face, tx, ty, clr)
}
