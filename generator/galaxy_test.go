package generator

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

type seqSource struct {
	vals []float64
	pos  int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	return v
}

func TestGalaxyBufferLengths(t *testing.T) {
	for _, count := range []int{1, 10, 1000, 10000} {
		p := DefaultParameters()
		p.Count = count
		buf := Galaxy(p, NewSource(7))
		assert.Len(t, buf.Positions, 3*count)
		assert.Len(t, buf.Colors, 3*count)
		assert.Equal(t, count, buf.Len())
	}
}

func TestGalaxyDegenerateUnitCircle(t *testing.T) {
	p := Parameters{
		Count:           3,
		Size:            0.01,
		Radius:          1,
		Branches:        3,
		Spin:            0,
		Randomness:      0,
		RandomnessPower: 1,
		InsideColor:     colorful.Color{R: 1},
		OutsideColor:    colorful.Color{B: 1},
	}
	buf := Galaxy(p, constSource(0))

	for i, angle := range []float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3} {
		x, y, z := buf.Point(i)
		assert.InDelta(t, math.Cos(angle), float64(x), 1e-6, "x of particle %d", i)
		assert.InDelta(t, 0, float64(y), 1e-9, "y of particle %d", i)
		assert.InDelta(t, math.Sin(angle), float64(z), 1e-6, "z of particle %d", i)
		assert.InDelta(t, 1, math.Hypot(float64(x), float64(z)), 1e-6)

		r, g, b := buf.Color(i)
		assert.Equal(t, float32(1), r)
		assert.Equal(t, float32(0), g)
		assert.Equal(t, float32(0), b)
	}
}

func TestGalaxyDrawOrder(t *testing.T) {
	// base, exponent, x value, x sign, y value, y sign, z value, z sign, color factor
	src := &seqSource{vals: []float64{0.5, 0.5, 0.5, 0.9, 0.25, 0.1, 1, 0.9, 0.5}}
	p := Parameters{
		Count:           1,
		Radius:          2,
		Branches:        1,
		Spin:            0,
		Randomness:      4,
		RandomnessPower: 2,
		InsideColor:     colorful.Color{},
		OutsideColor:    colorful.Color{R: 1, G: 1, B: 1},
	}
	buf := Galaxy(p, src)
	require.Equal(t, 9, src.pos)

	radius := math.Pow(0.5*4, 0.5*2)
	x, y, z := buf.Point(0)
	assert.InDelta(t, radius+0.25, float64(x), 1e-6)
	assert.InDelta(t, -0.0625, float64(y), 1e-6)
	assert.InDelta(t, 1, float64(z), 1e-6)

	r, _, _ := buf.Color(0)
	assert.InDelta(t, 0.5*radius/2, float64(r), 1e-6)
}

func TestBranchAngleCongruentIndices(t *testing.T) {
	for branches := 1; branches <= 20; branches++ {
		for i := 0; i < 50; i++ {
			assert.Equal(t, BranchAngle(i, branches), BranchAngle(i+branches, branches))
		}
	}
	assert.Equal(t, 0.0, BranchAngle(0, 5))
	assert.InDelta(t, 2*math.Pi/5, BranchAngle(1, 5), 1e-12)
}

func TestLerpEndpoints(t *testing.T) {
	inside, err := colorful.Hex("#ff6030")
	require.NoError(t, err)
	outside, err := colorful.Hex("#0949f0")
	require.NoError(t, err)

	assert.Equal(t, inside, Lerp(inside, outside, 0))
	assert.Equal(t, outside, Lerp(inside, outside, 1))

	mid := Lerp(inside, outside, 0.5)
	assert.InDelta(t, (inside.R+outside.R)/2, mid.R, 1e-12)
}

func TestGalaxyRegenerationShape(t *testing.T) {
	p := DefaultParameters()
	p.Count = 20000
	a := Galaxy(p, NewSource(1))
	b := Galaxy(p, NewSource(2))
	require.Equal(t, len(a.Positions), len(b.Positions))
	require.Equal(t, len(a.Colors), len(b.Colors))

	meanRadius := func(buf PointBuffer) float64 {
		var sum float64
		for i := 0; i < buf.Len(); i++ {
			x, _, z := buf.Point(i)
			sum += math.Hypot(float64(x), float64(z))
		}
		return sum / float64(buf.Len())
	}
	ma, mb := meanRadius(a), meanRadius(b)
	assert.InEpsilon(t, ma, mb, 0.05)
}

func TestGalaxySeededIsDeterministic(t *testing.T) {
	p := DefaultParameters()
	p.Count = 500
	assert.Equal(t, Galaxy(p, NewSource(42)), Galaxy(p, NewSource(42)))
}
