// Package generator builds the galaxy and star field point buffers.
package generator

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Galaxy builds Count positions and Count colors for a spiral galaxy.
//
// Parameters are not validated; out-of-range values yield NaN or degenerate points.
func Galaxy(p Parameters, rnd Source) PointBuffer {
	positions := make([]float32, p.Count*3)
	colors := make([]float32, p.Count*3)

	coord := func() float64 {
		v := math.Pow(rnd.Float64(), p.RandomnessPower)
		return v * sign(rnd)
	}

	for i := 0; i < p.Count; i++ {
		i3 := i * 3

		base := rnd.Float64() * p.Randomness
		radius := math.Pow(base, rnd.Float64()*p.Radius)
		spinAngle := radius * p.Spin
		angle := BranchAngle(i, p.Branches) + spinAngle

		offX := coord()
		offY := coord()
		offZ := coord()

		positions[i3] = float32(math.Cos(angle)*radius + offX)
		positions[i3+1] = float32(offY)
		positions[i3+2] = float32(math.Sin(angle)*radius + offZ)

		c := Lerp(p.InsideColor, p.OutsideColor, rnd.Float64()*radius/p.Radius)
		colors[i3] = float32(c.R)
		colors[i3+1] = float32(c.G)
		colors[i3+2] = float32(c.B)
	}

	return PointBuffer{Positions: positions, Colors: colors}
}

// BranchAngle is the base angle of the arm particle i belongs to.
func BranchAngle(i, branches int) float64 {
	return float64(i%branches) / float64(branches) * math.Pi * 2
}

// Lerp mixes a toward b per channel. t=0 yields a and t=1 yields b exactly.
func Lerp(a, b colorful.Color, t float64) colorful.Color {
	return colorful.Color{
		R: (1-t)*a.R + t*b.R,
		G: (1-t)*a.G + t*b.G,
		B: (1-t)*a.B + t*b.B,
	}
}

func sign(rnd Source) float64 {
	if rnd.Float64() > 0.5 {
		return 1
	}
	return -1
}
