package generator

import colorful "github.com/lucasb-eyer/go-colorful"

// Parameters drives the galaxy generator.
type Parameters struct {
	Count           int
	Size            float64
	Radius          float64
	Branches        int
	Spin            float64
	Randomness      float64
	RandomnessPower float64
	InsideColor     colorful.Color
	OutsideColor    colorful.Color
}

// StarFieldParameters drives the star field generator.
type StarFieldParameters struct {
	Count int
	Size  float64
	Range float64
	Color colorful.Color
}

// DefaultParameters returns the stock galaxy.
func DefaultParameters() Parameters {
	return Parameters{
		Count:           100000,
		Size:            0.01,
		Radius:          1,
		Branches:        5,
		Spin:            4,
		Randomness:      3,
		RandomnessPower: 5,
		InsideColor:     mustHex("#ff6030"),
		OutsideColor:    mustHex("#0949f0"),
	}
}

// DefaultStarFieldParameters returns the stock star field.
func DefaultStarFieldParameters() StarFieldParameters {
	return StarFieldParameters{
		Count: 500,
		Size:  0.005,
		Range: 10,
		Color: mustHex("#ffffff"),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
