package panel

import (
	"strings"
	"testing"

	"galaxyview/generator"
	"galaxyview/hal"
	"galaxyview/internal/fixedfont"
	"galaxyview/stargl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	galaxy      generator.Parameters
	stars       generator.StarFieldParameters
	galaxyRegen int
	starRegen   int
	panel       *Panel
}

func newFixture() *fixture {
	f := &fixture{
		galaxy: generator.DefaultParameters(),
		stars:  generator.DefaultStarFieldParameters(),
	}
	f.panel = New(
		GalaxyGroup(&f.galaxy, func() { f.galaxyRegen++ }),
		StarFieldGroup(&f.stars, func() { f.starRegen++ }),
	)
	return f
}

func press(code hal.KeyCode) hal.KeyEvent { return hal.KeyEvent{Code: code, Press: true} }

func TestSliderClampsAndSnaps(t *testing.T) {
	f := newFixture()
	count := f.panel.Find("Star Count")
	require.NotNil(t, count)

	count.Set(123456)
	assert.Equal(t, 123000, f.galaxy.Count)
	count.Set(5)
	assert.Equal(t, 10000, f.galaxy.Count)
	count.Set(1e9)
	assert.Equal(t, 200000, f.galaxy.Count)

	f.panel.Find("Spin").Set(3.3)
	assert.Equal(t, 3.5, f.galaxy.Spin)
	f.panel.Find("Spin").Set(-7)
	assert.Equal(t, -5.0, f.galaxy.Spin)

	f.panel.Find("Randomness").Set(2.26)
	assert.Equal(t, 2.3, f.galaxy.Randomness)

	f.panel.Find("Star Size").Set(0.0123)
	assert.Equal(t, 0.012, f.galaxy.Size)

	f.panel.Find("Range").Set(0)
	assert.Equal(t, 1.0, f.stars.Range)
}

func TestRangesMatchControls(t *testing.T) {
	f := newFixture()
	for _, tc := range []struct {
		label          string
		min, max, step float64
	}{
		{"Star Count", 10000, 200000, 1000},
		{"Radius", 0.1, 5, 0.1},
		{"Branches", 1, 20, 1},
		{"Spin", -5, 10, 0.5},
		{"Randomness", 1, 10, 0.1},
		{"Randomness Power", 1, 10, 0.1},
		{"Inside Color R", 0, 255, 1},
		{"Outside Color B", 0, 255, 1},
		{"Stars", 100, 10000, 100},
		{"Star Field Size", 0.001, 0.05, 0.001},
		{"Range", 1, 50, 1},
		{"Star Color G", 0, 255, 1},
	} {
		s := f.panel.Find(tc.label)
		require.NotNil(t, s, tc.label)
		assert.Equal(t, [3]float64{tc.min, tc.max, tc.step}, [3]float64{s.Min, s.Max, s.Step}, tc.label)
	}
}

func TestChangeRegeneratesOnce(t *testing.T) {
	f := newFixture()
	branches := f.panel.Find("Branches")

	assert.True(t, branches.Set(7))
	assert.Equal(t, 7, f.galaxy.Branches)
	assert.Equal(t, 1, f.galaxyRegen)
	assert.Equal(t, 0, f.starRegen)

	assert.False(t, branches.Set(7.2))
	assert.Equal(t, 1, f.galaxyRegen)

	f.panel.Find("Stars").Set(900)
	assert.Equal(t, 900, f.stars.Count)
	assert.Equal(t, 1, f.starRegen)
	assert.Equal(t, 1, f.galaxyRegen)
}

func TestColorPickerChannels(t *testing.T) {
	f := newFixture()
	assert.Equal(t, 255.0, f.panel.Find("Inside Color R").Value())
	assert.Equal(t, 96.0, f.panel.Find("Inside Color G").Value())

	f.panel.Find("Inside Color G").Set(0)
	r, g, b := f.galaxy.InsideColor.RGB255()
	assert.Equal(t, [3]uint8{0xff, 0x00, 0x30}, [3]uint8{r, g, b})
	assert.Equal(t, 1, f.galaxyRegen)

	f.panel.Find("Star Color B").Set(128)
	assert.Equal(t, "#ffff80", f.stars.Color.Hex())
	assert.Equal(t, 1, f.starRegen)
}

func TestKeyboardEditing(t *testing.T) {
	f := newFixture()
	p := f.panel
	require.Equal(t, "Star Count", p.Selected().Label)

	assert.True(t, p.HandleKey(press(hal.KeyRight)))
	assert.Equal(t, 101000, f.galaxy.Count)
	p.HandleKey(press(hal.KeyPageDown))
	assert.Equal(t, 91000, f.galaxy.Count)
	assert.Equal(t, 2, f.galaxyRegen)

	p.HandleKey(press(hal.KeyUp))
	assert.Equal(t, "Star Count", p.Selected().Label)
	p.HandleKey(press(hal.KeyDown))
	p.HandleKey(press(hal.KeyDown))
	assert.Equal(t, "Radius", p.Selected().Label)
	p.HandleKey(press(hal.KeyEnd))
	assert.Equal(t, 5.0, f.galaxy.Radius)

	assert.False(t, p.HandleKey(hal.KeyEvent{Code: hal.KeyRight}))
	assert.False(t, p.HandleKey(hal.KeyEvent{Press: true, Rune: 'q'}))
}

func TestSelectionSkipsGroupHeaders(t *testing.T) {
	f := newFixture()
	p := f.panel
	galaxyRows := len(GalaxyGroup(&generator.Parameters{}, nil).Sliders)
	for i := 0; i < galaxyRows; i++ {
		p.HandleKey(press(hal.KeyDown))
	}
	assert.Equal(t, "Stars", p.Selected().Label)
	for i := 0; i < 100; i++ {
		p.HandleKey(press(hal.KeyDown))
	}
	assert.Equal(t, "Star Color B", p.Selected().Label)
}

func TestTabTogglesVisibility(t *testing.T) {
	f := newFixture()
	p := f.panel
	p.SetSurface(800, 600, 1)

	assert.True(t, p.HandleKey(press(hal.KeyTab)))
	assert.False(t, p.Visible())
	assert.False(t, p.HandleKey(press(hal.KeyRight)))
	assert.Equal(t, 100000, f.galaxy.Count)
	assert.False(t, p.Contains(700, 40))
	assert.Equal(t, []string{"[tab] panel"}, p.Lines())

	p.HandleKey(press(hal.KeyTab))
	assert.True(t, p.Visible())
}

func TestPointerDragSetsValue(t *testing.T) {
	f := newFixture()
	p := f.panel
	p.SetSurface(800, 600, 1)

	// First slider row sits under the group header.
	l := p.layout()
	y := l.rowY[1] + 4

	assert.False(t, p.Contains(10, 10))
	assert.True(t, p.Contains(l.trackX, y))

	assert.True(t, p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: l.trackX, Y: y, Button: hal.ButtonLeft}))
	assert.True(t, p.Dragging())
	assert.Equal(t, 10000, f.galaxy.Count)

	assert.True(t, p.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: l.trackX + l.trackW, Y: y + 200}))
	assert.Equal(t, 200000, f.galaxy.Count)

	assert.True(t, p.HandlePointer(hal.PointerEvent{Kind: hal.PointerUp, X: l.trackX + l.trackW/2, Y: y}))
	assert.False(t, p.Dragging())
	assert.Equal(t, 105000, f.galaxy.Count)
	assert.Equal(t, 3, f.galaxyRegen)

	assert.False(t, p.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: l.trackX, Y: y}))
	assert.False(t, p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: 10, Y: 10, Button: hal.ButtonLeft}))
}

func TestPointerWheelNudges(t *testing.T) {
	f := newFixture()
	p := f.panel
	p.SetSurface(800, 600, 1)
	l := p.layout()

	// Row 4 is Branches.
	assert.True(t, p.HandlePointer(hal.PointerEvent{Kind: hal.PointerWheel, X: l.trackX, Y: l.rowY[4] + 2, Wheel: 1}))
	assert.Equal(t, 6, f.galaxy.Branches)
	assert.Equal(t, "Branches", p.Selected().Label)
}

func TestApplyRegeneratesAffectedGroupsOnce(t *testing.T) {
	f := newFixture()
	n := f.panel.Apply(func() {
		f.galaxy.Count = 123456
		f.galaxy.Branches = 7
		f.galaxy.Spin = 99
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.galaxyRegen)
	assert.Equal(t, 0, f.starRegen)
	assert.Equal(t, 123000, f.galaxy.Count)
	assert.Equal(t, 7, f.galaxy.Branches)
	assert.Equal(t, 10.0, f.galaxy.Spin)

	assert.Equal(t, 0, f.panel.Apply(func() {}))
	assert.Equal(t, 1, f.galaxyRegen)
}

func TestLines(t *testing.T) {
	f := newFixture()
	lines := f.panel.Lines()
	assert.Equal(t, "[Galaxy]", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "> Star Count"))
	assert.True(t, strings.HasSuffix(lines[1], "100000"))
	assert.Contains(t, strings.Join(lines, "\n"), "[Star Field]")
	assert.True(t, strings.HasSuffix(lines[3], "1.0"), lines[3])
}

func TestDrawPaintsPanelBox(t *testing.T) {
	f := newFixture()
	p := f.panel
	target := stargl.NewRGBATarget(800, 600)
	p.SetSurface(800, 600, 1)
	p.Draw(target)

	l := p.layout()
	assert.Equal(t, borderColor, target.At(l.x0, l.y0))
	inside := target.At(l.x0+2, l.y1-2)
	assert.NotZero(t, inside.B)
	assert.Equal(t, stargl.Color{}, target.At(100, 100))

	// Some label pixels are drawn inside the first row.
	lit := 0
	for y := l.rowY[1]; y < l.rowY[1]+fixedfont.Height; y++ {
		for x := l.x0 + l.pad; x < l.x0+l.pad+60; x++ {
			if c := target.At(x, y); c.R > 150 {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
}

func TestDrawHiddenShowsHint(t *testing.T) {
	f := newFixture()
	p := f.panel
	p.SetVisible(false)
	target := stargl.NewRGBATarget(400, 300)
	p.Draw(target)

	assert.Equal(t, stargl.Color{}, target.At(400-margin-1, 300-1))
	lit := 0
	for y := 0; y < 40; y++ {
		for x := 250; x < 400; x++ {
			if target.At(x, y).R > 0 {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
}

func TestClampGuardsFileValues(t *testing.T) {
	g := generator.DefaultParameters()
	g.Branches = 0
	g.Count = -5
	g.Radius = 0
	s := generator.DefaultStarFieldParameters()
	s.Count = 0
	s.Range = 500

	Clamp(&g, &s)
	assert.Equal(t, 1, g.Branches)
	assert.Equal(t, 10000, g.Count)
	assert.Equal(t, 0.1, g.Radius)
	assert.Equal(t, 100, s.Count)
	assert.Equal(t, 50.0, s.Range)
	assert.Equal(t, 4.0, g.Spin)
}
