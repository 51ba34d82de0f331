package panel

import "galaxyview/generator"

// Group titles.
const (
	GalaxyTitle    = "Galaxy"
	StarFieldTitle = "Star Field"
)

// GalaxyGroup binds sliders to p. onChange runs after any edit.
func GalaxyGroup(p *generator.Parameters, onChange func()) *Group {
	inside := NewColorPicker("Inside Color", &p.InsideColor)
	outside := NewColorPicker("Outside Color", &p.OutsideColor)

	sliders := []*Slider{
		intSlider("Star Count", 10000, 200000, 1000, &p.Count),
		floatSlider("Star Size", 0.001, 0.1, 0.001, &p.Size),
		floatSlider("Radius", 0.1, 5, 0.1, &p.Radius),
		intSlider("Branches", 1, 20, 1, &p.Branches),
		floatSlider("Spin", -5, 10, 0.5, &p.Spin),
		floatSlider("Randomness", 1, 10, 0.1, &p.Randomness),
		floatSlider("Randomness Power", 1, 10, 0.1, &p.RandomnessPower),
	}
	sliders = append(sliders, inside.Sliders()...)
	sliders = append(sliders, outside.Sliders()...)
	return &Group{Title: GalaxyTitle, Sliders: sliders, OnChange: onChange}
}

// StarFieldGroup binds sliders to p. onChange runs after any edit.
func StarFieldGroup(p *generator.StarFieldParameters, onChange func()) *Group {
	star := NewColorPicker("Star Color", &p.Color)
	sliders := []*Slider{
		intSlider("Stars", 100, 10000, 100, &p.Count),
		floatSlider("Star Field Size", 0.001, 0.05, 0.001, &p.Size),
		floatSlider("Range", 1, 50, 1, &p.Range),
	}
	sliders = append(sliders, star.Sliders()...)
	return &Group{Title: StarFieldTitle, Sliders: sliders, OnChange: onChange}
}

func intSlider(label string, lo, hi, step float64, v *int) *Slider {
	return &Slider{
		Label: label, Min: lo, Max: hi, Step: step,
		Get: func() float64 { return float64(*v) },
		Put: func(x float64) { *v = int(x) },
	}
}

func floatSlider(label string, lo, hi, step float64, v *float64) *Slider {
	return &Slider{
		Label: label, Min: lo, Max: hi, Step: step,
		Get: func() float64 { return *v },
		Put: func(x float64) { *v = x },
	}
}

// Clamp snaps g and s onto the slider ranges without a live panel, so
// parameters from a file are safe to generate from.
func Clamp(g *generator.Parameters, s *generator.StarFieldParameters) {
	New(GalaxyGroup(g, nil), StarFieldGroup(s, nil)).Apply(nil)
}
