package panel

import (
	"fmt"

	"galaxyview/hal"
)

const pageSteps = 10

// Group is a titled set of sliders sharing one change callback.
type Group struct {
	Title    string
	Sliders  []*Slider
	OnChange func()
}

type row struct {
	group  int
	slider *Slider // nil for a group header
}

// Panel lays out groups of sliders and edits them from key and pointer events.
//
// Panel is not safe for concurrent use; the frame step owns it.
type Panel struct {
	groups []*Group
	rows   []row

	sel      int
	visible  bool
	dragging *Slider

	// surface, in framebuffer pixels
	w, h  int
	scale int
}

// New returns a visible panel with the given groups.
func New(groups ...*Group) *Panel {
	p := &Panel{visible: true, sel: -1, scale: 1}
	for _, g := range groups {
		p.AddGroup(g)
	}
	return p
}

// AddGroup appends g. Sliders without an OnChange get the group's.
func (p *Panel) AddGroup(g *Group) {
	gi := len(p.groups)
	p.groups = append(p.groups, g)
	p.rows = append(p.rows, row{group: gi})
	for _, s := range g.Sliders {
		if s.OnChange == nil {
			s.OnChange = g.OnChange
		}
		p.rows = append(p.rows, row{group: gi, slider: s})
		if p.sel < 0 {
			p.sel = len(p.rows) - 1
		}
	}
}

// Sliders returns every slider in display order.
func (p *Panel) Sliders() []*Slider {
	var out []*Slider
	for _, r := range p.rows {
		if r.slider != nil {
			out = append(out, r.slider)
		}
	}
	return out
}

// Find returns the slider labelled label, or nil.
func (p *Panel) Find(label string) *Slider {
	for _, r := range p.rows {
		if r.slider != nil && r.slider.Label == label {
			return r.slider
		}
	}
	return nil
}

// Selected returns the slider the keyboard edits.
func (p *Panel) Selected() *Slider {
	if p.sel < 0 || p.sel >= len(p.rows) {
		return nil
	}
	return p.rows[p.sel].slider
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p.visible }

// SetVisible shows or hides the panel. A hidden panel ignores editing input.
func (p *Panel) SetVisible(v bool) {
	p.visible = v
	if !v {
		p.dragging = nil
	}
}

// SetSurface sets the framebuffer size the panel lays itself out in, and an
// integer pixel scale for text and widgets.
func (p *Panel) SetSurface(w, h, scale int) {
	if scale < 1 {
		scale = 1
	}
	p.w, p.h, p.scale = w, h, scale
}

// HandleKey applies a key press. It reports whether the panel consumed it.
func (p *Panel) HandleKey(ev hal.KeyEvent) bool {
	if !ev.Press {
		return false
	}
	if ev.Code == hal.KeyTab {
		p.SetVisible(!p.visible)
		return true
	}
	if !p.visible {
		return false
	}
	switch ev.Code {
	case hal.KeyUp:
		p.move(-1)
	case hal.KeyDown:
		p.move(1)
	case hal.KeyLeft:
		p.nudge(-1)
	case hal.KeyRight:
		p.nudge(1)
	case hal.KeyPageDown:
		p.nudge(-pageSteps)
	case hal.KeyPageUp:
		p.nudge(pageSteps)
	case hal.KeyHome:
		if s := p.Selected(); s != nil {
			s.Set(s.Min)
		}
	case hal.KeyEnd:
		if s := p.Selected(); s != nil {
			s.Set(s.Max)
		}
	default:
		return false
	}
	return true
}

func (p *Panel) move(d int) {
	for i := p.sel + d; i >= 0 && i < len(p.rows); i += d {
		if p.rows[i].slider != nil {
			p.sel = i
			return
		}
	}
}

func (p *Panel) nudge(steps int) {
	if s := p.Selected(); s != nil {
		s.Nudge(steps)
	}
}

// HandlePointer applies a pointer event in framebuffer pixels. It reports
// whether the panel consumed it, so the caller does not also orbit the camera.
func (p *Panel) HandlePointer(ev hal.PointerEvent) bool {
	if !p.visible {
		return false
	}
	switch ev.Kind {
	case hal.PointerDown:
		if ev.Button != hal.ButtonLeft || !p.Contains(ev.X, ev.Y) {
			return false
		}
		if i, ok := p.rowAt(ev.Y); ok && p.rows[i].slider != nil {
			p.sel = i
			p.dragging = p.rows[i].slider
			p.dragTo(ev.X)
		}
		return true
	case hal.PointerMove:
		if p.dragging == nil {
			return false
		}
		p.dragTo(ev.X)
		return true
	case hal.PointerUp:
		if p.dragging == nil {
			return false
		}
		p.dragTo(ev.X)
		p.dragging = nil
		return true
	case hal.PointerWheel:
		if !p.Contains(ev.X, ev.Y) {
			return false
		}
		if i, ok := p.rowAt(ev.Y); ok && p.rows[i].slider != nil {
			p.sel = i
			if ev.Wheel > 0 {
				p.rows[i].slider.Nudge(1)
			} else if ev.Wheel < 0 {
				p.rows[i].slider.Nudge(-1)
			}
		}
		return true
	}
	return false
}

// Dragging reports whether a slider drag is in progress.
func (p *Panel) Dragging() bool { return p.dragging != nil }

func (p *Panel) dragTo(x int) {
	l := p.layout()
	if l.trackW <= 0 {
		return
	}
	p.dragging.SetFraction(float64(x-l.trackX) / float64(l.trackW))
}

// Contains reports whether a framebuffer position hits the visible panel.
func (p *Panel) Contains(x, y int) bool {
	if !p.visible {
		return false
	}
	l := p.layout()
	return x >= l.x0 && x < l.x1 && y >= l.y0 && y < l.y1
}

// Apply runs update, which may write any bound field directly, then re-snaps
// every slider and runs each affected group's OnChange once.
// It returns the number of groups that changed.
func (p *Panel) Apply(update func()) int {
	before := make([][]float64, len(p.groups))
	for gi, g := range p.groups {
		for _, s := range g.Sliders {
			before[gi] = append(before[gi], s.Value())
		}
	}
	if update != nil {
		update()
	}
	changed := 0
	for gi, g := range p.groups {
		dirty := false
		for si, s := range g.Sliders {
			s.store(s.Value())
			if s.Value() != before[gi][si] {
				dirty = true
			}
		}
		if dirty {
			changed++
			if g.OnChange != nil {
				g.OnChange()
			}
		}
	}
	return changed
}

// Lines renders the panel as plain text rows for text-only hosts.
func (p *Panel) Lines() []string {
	if !p.visible {
		return []string{"[tab] panel"}
	}
	width := 0
	for _, r := range p.rows {
		if r.slider != nil && len(r.slider.Label) > width {
			width = len(r.slider.Label)
		}
	}
	lines := make([]string, 0, len(p.rows)+1)
	for i, r := range p.rows {
		if r.slider == nil {
			lines = append(lines, "["+p.groups[r.group].Title+"]")
			continue
		}
		mark := "  "
		if i == p.sel {
			mark = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-*s %10s", mark, width, r.slider.Label, r.slider.Format()))
	}
	lines = append(lines, "arrows edit, [tab] hide")
	return lines
}
