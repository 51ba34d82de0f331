package stargl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// RGBFloat builds an opaque color from 0..1 channels, clamping out-of-range input.
func RGBFloat(r, g, b float32) Color {
	return Color{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: 0xFF}
}

// MulScalar scales the color channels by s in 0..1. Alpha is kept.
func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp(s, 0, 1) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

func unitToByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 0xFF {
		return 0xFF
	}
	return uint8(s)
}

func blend(dst, src, a uint8) uint8 {
	return uint8((uint16(src)*uint16(a) + uint16(dst)*uint16(0xFF-a) + 127) / 0xFF)
}
