package hal

func fillRGBA(buf []byte, r, g, b uint8) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i] = r
		buf[i+1] = g
		buf[i+2] = b
		buf[i+3] = 0xFF
	}
}

// rgbaAt reads a pixel from a tightly packed RGBA buffer; out of range reads are black.
func rgbaAt(buf []byte, width, x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= width {
		return 0, 0, 0
	}
	i := (y*width + x) * 4
	if i+3 >= len(buf) {
		return 0, 0, 0
	}
	return buf[i], buf[i+1], buf[i+2]
}
