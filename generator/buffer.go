package generator

// PointBuffer is a flat xyz position buffer with optional parallel rgb colors.
//
// Buffers are never mutated after generation; regeneration builds a new one.
type PointBuffer struct {
	Positions []float32
	Colors    []float32
}

// Len returns the number of points.
func (b PointBuffer) Len() int { return len(b.Positions) / 3 }

// Point returns the i-th position.
func (b PointBuffer) Point(i int) (x, y, z float32) {
	i3 := i * 3
	return b.Positions[i3], b.Positions[i3+1], b.Positions[i3+2]
}

// Color returns the i-th color, or zero when the buffer carries no colors.
func (b PointBuffer) Color(i int) (r, g, bl float32) {
	i3 := i * 3
	if i3+2 >= len(b.Colors) {
		return 0, 0, 0
	}
	return b.Colors[i3], b.Colors[i3+1], b.Colors[i3+2]
}
