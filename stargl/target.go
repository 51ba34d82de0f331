package stargl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates. SetPixel composites
// colors with A < 255 over the existing pixel; AddPixel adds channels and
// saturates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	AddPixel(x, y int, c Color)
	Clear(c Color)
}

// RGBATarget renders into an 8-bit RGBA buffer.
//
// Callers provide the backing buffer and layout (stride), so a host framebuffer
// can be drawn into without copying.
type RGBATarget struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

// NewRGBATarget allocates a tightly packed w×h target.
func NewRGBATarget(w, h int) *RGBATarget {
	return &RGBATarget{Buf: make([]byte, w*h*4), Stride: w * 4, W: w, H: h}
}

func (t *RGBATarget) Size() (w, h int) { return t.W, t.H }

func (t *RGBATarget) Clear(c Color) {
	if !t.ok() {
		return
	}
	for y := 0; y < t.H; y++ {
		row := t.Buf[y*t.Stride:]
		for x := 0; x < t.W; x++ {
			off := x * 4
			if off+3 >= len(row) {
				break
			}
			row[off] = c.R
			row[off+1] = c.G
			row[off+2] = c.B
			row[off+3] = 0xFF
		}
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	p := t.Buf[off : off+4 : off+4]
	if c.A == 0xFF {
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 0xFF
		return
	}
	p[0] = blend(p[0], c.R, c.A)
	p[1] = blend(p[1], c.G, c.A)
	p[2] = blend(p[2], c.B, c.A)
	p[3] = 0xFF
}

func (t *RGBATarget) AddPixel(x, y int, c Color) {
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	p := t.Buf[off : off+4 : off+4]
	p[0] = addSat(p[0], c.R)
	p[1] = addSat(p[1], c.G)
	p[2] = addSat(p[2], c.B)
	p[3] = 0xFF
}

// At returns the pixel at x, y.
func (t *RGBATarget) At(x, y int) Color {
	off, ok := t.offset(x, y)
	if !ok {
		return Color{}
	}
	return Color{R: t.Buf[off], G: t.Buf[off+1], B: t.Buf[off+2], A: t.Buf[off+3]}
}

func (t *RGBATarget) ok() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func (t *RGBATarget) offset(x, y int) (int, bool) {
	if !t.ok() || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return 0, false
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Buf) {
		return 0, false
	}
	return off, true
}
