package panel

import (
	"image/color"

	"galaxyview/internal/fixedfont"
	"galaxyview/stargl"

	"tinygo.org/x/tinyfont"
)

const (
	panelWidth = 280
	margin     = 8
	padding    = 8
	headerH    = fixedfont.Height + 6
	rowH       = fixedfont.Height + 11
	swatchSize = 10
)

var (
	bgColor     = stargl.RGBA(8, 10, 18, 200)
	borderColor = stargl.RGB(70, 80, 110)
	selectColor = stargl.RGBA(70, 80, 130, 110)
	trackColor  = stargl.RGB(50, 55, 70)
	fillColor   = stargl.RGB(255, 140, 70)
	knobColor   = stargl.RGB(240, 240, 240)

	titleText = color.RGBA{R: 255, G: 170, B: 90, A: 255}
	labelText = color.RGBA{R: 190, G: 195, B: 210, A: 255}
	hotText   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hintText  = color.RGBA{R: 150, G: 150, B: 160, A: 255}
)

type layout struct {
	x0, y0, x1, y1 int
	pad            int
	trackX, trackW int
	rowY           []int
}

// layout places the panel in the top-right corner of the surface.
func (p *Panel) layout() layout {
	s := p.scale
	if s < 1 {
		s = 1
	}
	l := layout{pad: padding * s}
	width := panelWidth * s
	l.x1 = p.w - margin*s
	l.x0 = l.x1 - width
	if l.x0 < 0 {
		l.x0 = 0
		l.x1 = width
	}
	l.y0 = margin * s
	y := l.y0 + l.pad
	l.rowY = make([]int, len(p.rows))
	for i, r := range p.rows {
		l.rowY[i] = y
		if r.slider == nil {
			y += headerH * s
		} else {
			y += rowH * s
		}
	}
	l.y1 = y + l.pad
	l.trackX = l.x0 + l.pad
	l.trackW = l.x1 - l.pad - l.trackX
	return l
}

func (p *Panel) rowAt(y int) (int, bool) {
	l := p.layout()
	for i := len(l.rowY) - 1; i >= 0; i-- {
		if y >= l.rowY[i] {
			if i == len(l.rowY)-1 && y >= l.y1-l.pad {
				return 0, false
			}
			return i, true
		}
	}
	return 0, false
}

// Draw renders the panel into t, or a one-line hint while hidden.
func (p *Panel) Draw(t stargl.Target) {
	if t == nil {
		return
	}
	p.w, p.h = t.Size()
	s := p.scale

	if !p.visible {
		hint := "[tab] panel"
		DrawText(t, p.w-margin*s-fixedfont.Width(hint)*s, margin*s, s, hint, hintText)
		return
	}

	l := p.layout()
	stargl.FillRect(t, l.x0, l.y0, l.x1, l.y1, bgColor)
	stargl.StrokeRect(t, l.x0, l.y0, l.x1, l.y1, borderColor)

	for i, r := range p.rows {
		y := l.rowY[i]
		if r.slider == nil {
			DrawText(t, l.x0+l.pad, y, s, p.groups[r.group].Title, titleText)
			ly := y + (fixedfont.Height+2)*s
			stargl.FillRect(t, l.x0+l.pad, ly, l.x1-l.pad, ly+s, borderColor)
			continue
		}
		p.drawSlider(t, l, i, y)
	}
}

func (p *Panel) drawSlider(t stargl.Target, l layout, i, y int) {
	s := p.scale
	sl := p.rows[i].slider

	text := labelText
	if i == p.sel {
		stargl.FillRect(t, l.x0+s, y-s, l.x1-s, y+rowH*s-2*s, selectColor)
		text = hotText
	}
	DrawText(t, l.x0+l.pad, y, s, sl.Label, text)

	val := sl.Format()
	vx := l.x1 - l.pad - fixedfont.Width(val)*s
	DrawText(t, vx, y, s, val, text)
	if sl.Swatch != nil {
		sx := vx - (swatchSize+4)*s
		stargl.FillRect(t, sx, y+s, sx+swatchSize*s, y+(swatchSize+1)*s, sl.Swatch())
	}

	ty := y + (fixedfont.Height+4)*s
	th := 3 * s
	stargl.FillRect(t, l.trackX, ty, l.trackX+l.trackW, ty+th, trackColor)
	fx := l.trackX + int(sl.Fraction()*float64(l.trackW))
	stargl.FillRect(t, l.trackX, ty, fx, ty+th, fillColor)
	stargl.FillRect(t, fx-s, ty-2*s, fx+2*s, ty+th+2*s, knobColor)
}

// DrawText writes str with its top-left corner at x, y, each font pixel
// becoming a scale×scale block.
func DrawText(t stargl.Target, x, y, scale int, str string, c color.RGBA) {
	d := &targetDisplay{t: t, x: x, y: y, scale: scale}
	tinyfont.WriteLine(d, fixedfont.Font, 0, fixedfont.Ascent, str, c)
}

// targetDisplay adapts a stargl.Target to drivers.Displayer.
type targetDisplay struct {
	t     stargl.Target
	x, y  int
	scale int
}

func (d *targetDisplay) Size() (x, y int16) {
	w, h := d.t.Size()
	s := d.scale
	if s < 1 {
		s = 1
	}
	return clampInt16((w - d.x) / s), clampInt16((h - d.y) / s)
}

func (d *targetDisplay) SetPixel(x, y int16, c color.RGBA) {
	s := d.scale
	if s < 1 {
		s = 1
	}
	px := d.x + int(x)*s
	py := d.y + int(y)*s
	col := stargl.RGBA(c.R, c.G, c.B, c.A)
	for dy := 0; dy < s; dy++ {
		for dx := 0; dx < s; dx++ {
			d.t.SetPixel(px+dx, py+dy, col)
		}
	}
}

func (d *targetDisplay) Display() error { return nil }

func clampInt16(v int) int16 {
	switch {
	case v < 0:
		return 0
	case v > 1<<15-1:
		return 1<<15 - 1
	}
	return int16(v)
}
