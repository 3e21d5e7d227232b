package gfont

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

type Fonts struct {
	Normal font.Face // buttons
	Small  font.Face // status lines
}

// LoadFonts parses a ttf/otf file; with an empty path the built-in 7x13
// bitmap face is used for everything.
func LoadFonts(path string) (*Fonts, error) {
	if path == "" {
		return &Fonts{Normal: basicfont.Face7x13, Small: basicfont.Face7x13}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}

	fonts := &Fonts{}
	fonts.Normal, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	fonts.Small, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    11,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return fonts, nil
}
