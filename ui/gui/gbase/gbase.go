package gbase

import (
	"errors"
	"image/color"
)

// ---- Exit Call ----

var ErrExit = errors.New("exit request")

const (
	WindowTitle     = "ChessBot"
	WindowW     int = 760
	WindowH     int = 640
)

// ---- Styles (palettes) ----

type Palette struct {
	Bg           color.RGBA
	LightSquare  color.RGBA
	DarkSquare   color.RGBA
	PanelBg      color.RGBA
	ButtonFill   color.RGBA
	ButtonActive color.RGBA
	ButtonStroke color.RGBA
	ButtonText   color.RGBA
	MenuText     color.RGBA
	Selection    color.RGBA
	Check        color.RGBA
	Checkmate    color.RGBA
	Arrow        color.RGBA
	SliderTrack  color.RGBA
	SliderThumb  color.RGBA
}

func (p Palette) String() string {
	switch p {
	case LightPalette:
		return "light"
	case DarkPalette:
		return "dark"
	default:
	}
	return ""
}

// unknown names get the light palette
func PaletteFromString(p string) Palette {
	switch p {
	case "dark":
		return DarkPalette
	default:
	}
	return LightPalette
}

var LightPalette = Palette{
	Bg:           color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	LightSquare:  color.RGBA{0xee, 0xee, 0xd2, 0xff},
	DarkSquare:   color.RGBA{0x76, 0x96, 0x56, 0xff},
	PanelBg:      color.RGBA{0xe8, 0xe8, 0xe8, 0xff},
	ButtonFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	ButtonActive: color.RGBA{0xcc, 0xe4, 0xf4, 0xff},
	ButtonStroke: color.RGBA{0x88, 0x88, 0x88, 0xff},
	ButtonText:   color.RGBA{0x22, 0x22, 0x22, 0xff},
	MenuText:     color.RGBA{0x22, 0x22, 0x22, 0xff},
	Selection:    color.RGBA{0xf6, 0xf6, 0x69, 0xb0},
	Check:        color.RGBA{0xff, 0xa5, 0x00, 0xc0},
	Checkmate:    color.RGBA{0xe0, 0x20, 0x20, 0xd0},
	Arrow:        color.RGBA{0x20, 0xb0, 0x40, 0xc0},
	SliderTrack:  color.RGBA{0xbb, 0xbb, 0xbb, 0xff},
	SliderThumb:  color.RGBA{0x22, 0x88, 0xcc, 0xff},
}

var DarkPalette = Palette{
	Bg:           color.RGBA{0x12, 0x12, 0x12, 0xff},
	LightSquare:  color.RGBA{0xb0, 0xa8, 0x98, 0xff},
	DarkSquare:   color.RGBA{0x5a, 0x4e, 0x44, 0xff},
	PanelBg:      color.RGBA{0x1e, 0x1e, 0x1e, 0xff},
	ButtonFill:   color.RGBA{0x20, 0x20, 0x20, 0xff},
	ButtonActive: color.RGBA{0x1c, 0x4a, 0x66, 0xff},
	ButtonStroke: color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	ButtonText:   color.RGBA{0xee, 0xee, 0xee, 0xff},
	MenuText:     color.RGBA{0xee, 0xee, 0xee, 0xff},
	Selection:    color.RGBA{0xd8, 0xc0, 0x30, 0xa0},
	Check:        color.RGBA{0xff, 0x8c, 0x00, 0xc0},
	Checkmate:    color.RGBA{0xd0, 0x18, 0x18, 0xd0},
	Arrow:        color.RGBA{0x30, 0xc0, 0x50, 0xb0},
	SliderTrack:  color.RGBA{0x55, 0x55, 0x55, 0xff},
	SliderThumb:  color.RGBA{0x2a, 0xa1, 0xd1, 0xff},
}
