package stargl

// FillRect fills the half-open rectangle [x0,x1)×[y0,y1). Translucent colors blend.
func FillRect(t Target, x0, y0, x1, y1 int, c Color) {
	if t == nil {
		return
	}
	w, h := t.Size()
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			t.SetPixel(x, y, c)
		}
	}
}

// StrokeRect outlines the half-open rectangle [x0,x1)×[y0,y1).
func StrokeRect(t Target, x0, y0, x1, y1 int, c Color) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	DrawLine(t, x0, y0, x1-1, y0, c)
	DrawLine(t, x0, y1-1, x1-1, y1-1, c)
	DrawLine(t, x0, y0, x0, y1-1, c)
	DrawLine(t, x1-1, y0, x1-1, y1-1, c)
}

// DrawLine draws a Bresenham line between two pixels, inclusive.
func DrawLine(t Target, x0, y0, x1, y1 int, c Color) {
	if t == nil {
		return
	}
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
