package ghelper

import (
	"chessbot/src/view"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func RenderRoundedRect(w, h, radius int, fill color.RGBA, stroke color.RGBA, strokeW float64) *ebiten.Image {
	// create a context with alpha and draw rounded rectangle using gg (anti-aliased)
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.DrawRoundedRectangle(strokeW/2, strokeW/2, float64(w)-strokeW, float64(h)-strokeW, float64(radius))
	dc.FillPreserve()
	dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), int(stroke.A))
	dc.SetLineWidth(strokeW)
	dc.Stroke()
	return ebiten.NewImageFromImage(dc.Image())
}

func FillRect(screen *ebiten.Image, r view.Rect, c color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func StrokeRect(screen *ebiten.Image, r view.Rect, thickness float64, c color.Color) {
	if r.W <= 0 || r.H <= 0 || thickness <= 0 {
		return
	}
	maxTh := math.Min(float64(r.W), float64(r.H)) / 2.0
	if thickness > maxTh {
		thickness = maxTh
	}
	th := float32(thickness)
	// stroke is centered on the path: move it inside the rect
	vector.StrokeRect(screen, float32(r.X)+th/2, float32(r.Y)+th/2, float32(r.W)-th, float32(r.H)-th, th, c, true)
}

// DrawImageInRect scales img to fill r.
func DrawImageInRect(screen, img *ebiten.Image, r view.Rect) {
	if img == nil || r.W <= 0 || r.H <= 0 {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.W)/float64(b.Dx()), float64(r.H)/float64(b.Dy()))
	op.GeoM.Translate(float64(r.X), float64(r.Y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

var whiteSubImage *ebiten.Image

// source texture for DrawTriangles, created on first use
func whiteTexture() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// FillPolygon fills the closed polygon given by pts (x0,y0,x1,y1,...).
func FillPolygon(screen *ebiten.Image, pts []float32, c color.Color) {
	if len(pts) < 6 {
		return
	}
	var p vector.Path
	p.MoveTo(pts[0], pts[1])
	for i := 2; i+1 < len(pts); i += 2 {
		p.LineTo(pts[i], pts[i+1])
	}
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteTexture(), op)
}

// DrawArrow draws a shaft and a filled triangular head ending at (tx, ty).
func DrawArrow(screen *ebiten.Image, a view.Arrow, width float64, c color.Color) {
	dx, dy := a.ToX-a.FromX, a.ToY-a.FromY
	length := math.Hypot(dx, dy)
	if length < 1 || width <= 0 {
		return
	}
	ux, uy := dx/length, dy/length
	// normal
	nx, ny := -uy, ux

	head := math.Min(width*2.5, length*0.6)
	bx, by := a.ToX-ux*head, a.ToY-uy*head

	vector.StrokeLine(screen, float32(a.FromX), float32(a.FromY), float32(bx), float32(by), float32(width), c, true)
	half := width * 1.6
	FillPolygon(screen, []float32{
		float32(a.ToX), float32(a.ToY),
		float32(bx + nx*half), float32(by + ny*half),
		float32(bx - nx*half), float32(by - ny*half),
	}, c)
}
