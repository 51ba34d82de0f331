// Package fixedfont exposes the X11 misc-fixed 7x13 face as a tinyfont.Fonter.
package fixedfont

import (
	"image"
	"image/color"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	// Advance is the horizontal pen advance per glyph.
	Advance = 7
	// Height is the line height.
	Height = 13
	// Ascent is the distance from the top of a line to its baseline.
	Ascent = 11
)

// Font is the monospace 7x13 bitmap font.
//
// Concurrent access is not safe due to internal glyph reuse.
var Font tinyfont.Fonter = &face{src: basicfont.Face7x13}

type face struct {
	src *basicfont.Face
	g   glyph
}

type glyph struct {
	src *basicfont.Face
	r   rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	dr, mask, maskp, _, ok := g.src.Glyph(fixed.P(0, 0), g.r)
	if !ok {
		dr, mask, maskp, _, _ = g.src.Glyph(fixed.P(0, 0), '?')
	}
	if mask == nil {
		return
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			mp := maskp.Add(image.Pt(px-dr.Min.X, py-dr.Min.Y))
			if _, _, _, a := mask.At(mp.X, mp.Y).RGBA(); a < 0x8000 {
				continue
			}
			display.SetPixel(x+int16(px), y+int16(py), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Advance,
		Height:   Height,
		XAdvance: Advance,
		XOffset:  0,
		YOffset:  -Ascent,
	}
}

func (f *face) GetYAdvance() uint8 { return Height }

func (f *face) GetGlyph(r rune) tinyfont.Glypher {
	f.g.src = f.src
	f.g.r = r
	return &f.g
}

// Width returns the pixel width of s.
func Width(s string) int {
	n := 0
	for range s {
		n++
	}
	return n * Advance
}
