package generator

// StarField scatters Count points uniformly in a cube of half-width Range.
func StarField(p StarFieldParameters, rnd Source) PointBuffer {
	positions := make([]float32, p.Count*3)
	for i := range positions {
		positions[i] = float32((rnd.Float64() - 0.5) * p.Range * 2)
	}
	return PointBuffer{Positions: positions}
}
