// Package panel is the on-screen parameter editor: numeric sliders bound to
// generator parameters, grouped so that a change rebuilds the matching cloud.
package panel

import (
	"math"
	"strconv"

	"galaxyview/stargl"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Slider edits one numeric field within [Min, Max] in multiples of Step from Min.
type Slider struct {
	Label string
	Min   float64
	Max   float64
	Step  float64

	Get func() float64
	Put func(float64)

	// OnChange runs after Set stores a different value. AddGroup fills it
	// with the group's callback when nil.
	OnChange func()

	// Swatch, when set, is drawn next to the value.
	Swatch func() stargl.Color
}

// Value returns the bound field.
func (s *Slider) Value() float64 {
	if s.Get == nil {
		return s.Min
	}
	return s.Get()
}

// Snap clamps v to [Min, Max] and rounds it to the nearest Min + k·Step.
func (s *Slider) Snap(v float64) float64 {
	if math.IsNaN(v) {
		v = s.Min
	}
	if s.Step > 0 {
		k := math.Round((v - s.Min) / s.Step)
		v = s.Min + k*s.Step
		p := math.Pow(10, float64(s.decimals()))
		v = math.Round(v*p) / p
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Set snaps v, stores it and runs OnChange when the stored value changed.
// It reports whether the value changed.
func (s *Slider) Set(v float64) bool {
	if !s.store(v) {
		return false
	}
	if s.OnChange != nil {
		s.OnChange()
	}
	return true
}

// Nudge moves the value by steps increments.
func (s *Slider) Nudge(steps int) bool {
	return s.Set(s.Value() + float64(steps)*s.Step)
}

// Fraction is the value's position within [Min, Max], in [0, 1].
func (s *Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	f := (s.Value() - s.Min) / (s.Max - s.Min)
	return math.Max(0, math.Min(1, f))
}

// SetFraction sets the value from a position within [Min, Max].
func (s *Slider) SetFraction(f float64) bool {
	f = math.Max(0, math.Min(1, f))
	return s.Set(s.Min + f*(s.Max-s.Min))
}

// Format renders the value with as many decimals as Step has.
func (s *Slider) Format() string {
	return strconv.FormatFloat(s.Value(), 'f', s.decimals(), 64)
}

// store writes the snapped value without notifying.
func (s *Slider) store(v float64) bool {
	v = s.Snap(v)
	if s.Get != nil && s.Get() == v {
		return false
	}
	if s.Put != nil {
		s.Put(v)
	}
	return true
}

func (s *Slider) decimals() int {
	if s.Step <= 0 {
		return 0
	}
	for d := 0; d < 9; d++ {
		p := math.Pow(10, float64(d))
		if math.Abs(s.Step*p-math.Round(s.Step*p)) < 1e-9 {
			return d
		}
	}
	return 9
}

// ColorPicker edits a color through three 0–255 channel sliders.
type ColorPicker struct {
	Label    string
	Channels [3]*Slider

	c *colorful.Color
}

// NewColorPicker binds a picker to c. Channel sliders are labelled
// "<label> R", "<label> G" and "<label> B".
func NewColorPicker(label string, c *colorful.Color) *ColorPicker {
	cp := &ColorPicker{Label: label, c: c}
	for i, name := range [3]string{"R", "G", "B"} {
		ch := i
		cp.Channels[i] = &Slider{
			Label:  label + " " + name,
			Min:    0,
			Max:    255,
			Step:   1,
			Get:    func() float64 { return float64(cp.channel(ch)) },
			Put:    func(v float64) { cp.setChannel(ch, v) },
			Swatch: cp.Swatch,
		}
	}
	return cp
}

// Color returns the bound color.
func (cp *ColorPicker) Color() colorful.Color { return *cp.c }

// Hex returns the bound color as #rrggbb.
func (cp *ColorPicker) Hex() string { return cp.c.Clamped().Hex() }

// Swatch returns the bound color for drawing.
func (cp *ColorPicker) Swatch() stargl.Color {
	r, g, b := cp.c.RGB255()
	return stargl.RGB(r, g, b)
}

// Sliders returns the three channel sliders.
func (cp *ColorPicker) Sliders() []*Slider { return cp.Channels[:] }

func (cp *ColorPicker) channel(i int) uint8 {
	r, g, b := cp.c.RGB255()
	return [3]uint8{r, g, b}[i]
}

func (cp *ColorPicker) setChannel(i int, v float64) {
	v /= 255
	switch i {
	case 0:
		cp.c.R = v
	case 1:
		cp.c.G = v
	case 2:
		cp.c.B = v
	}
}
