// Package app wires configuration, the viewer, the parameter panel and the
// render loop into the step function the hal hosts drive.
package app

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"
	"unicode/utf8"

	"galaxyview/config"
	"galaxyview/generator"
	"galaxyview/hal"
	"galaxyview/internal/buildinfo"
	"galaxyview/internal/fixedfont"
	"galaxyview/panel"
	"galaxyview/stargl"
	"galaxyview/viewer"

	"golang.org/x/time/rate"
)

// StatsInterval bounds how often frame statistics are logged.
const StatsInterval = 5 * time.Second

var hudText = color.RGBA{R: 150, G: 150, B: 160, A: 255}

type Config struct {
	Settings config.Config
	// PresetPath is watched for changes when Watch is set.
	PresetPath string
	Watch      bool
	// HUD draws a status line along the bottom edge.
	HUD bool

	// Optional overrides, mostly for tests.
	Logger *slog.Logger
	Source generator.Source
	Clock  func() time.Time
}

// App is one viewer session bound to a HAL.
type App struct {
	h       hal.HAL
	log     *slog.Logger
	disp    hal.Display
	fb      hal.Framebuffer
	overlay hal.TextOverlay

	galaxy generator.Parameters
	stars  generator.StarFieldParameters

	viewer  *viewer.Viewer
	panel   *panel.Panel
	loop    *viewer.Loop
	watcher *config.Watcher
	hud     bool

	viewport hal.Viewport
	dragging bool
	lastX    int
	lastY    int
	ticks    uint64
	fps      float64

	stats      rate.Sometimes
	statFrames uint64
	statAt     time.Time
	closed     bool
}

// New builds an App on h and returns its step function. A construction error
// is reported by the first call to the step.
func New(h hal.HAL, cfg Config) func() error {
	a, err := Build(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return a.Step
}

// Build creates the scene from cfg and starts the loop.
func Build(h hal.HAL, cfg Config) (*App, error) {
	if h == nil || h.Display() == nil || h.Display().Framebuffer() == nil {
		return nil, errors.New("app: display unavailable")
	}
	galaxy, err := cfg.Settings.GalaxyParameters()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	stars, err := cfg.Settings.StarFieldParameters()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = hal.NewSlog(h.Logger(), cfg.Settings.Level())
	}

	a := &App{
		h:      h,
		log:    log.With("component", "app"),
		disp:   h.Display(),
		fb:     h.Display().Framebuffer(),
		galaxy: galaxy,
		stars:  stars,
		hud:    cfg.HUD,
		stats:  rate.Sometimes{Interval: StatsInterval},
	}
	a.overlay, _ = a.disp.(hal.TextOverlay)

	a.panel = panel.New(
		panel.GalaxyGroup(&a.galaxy, a.regenerateGalaxy),
		panel.StarFieldGroup(&a.stars, a.regenerateStarField),
	)
	// Bring file values onto the slider grid before the first generation.
	a.panel.Apply(nil)

	src := cfg.Source
	if src == nil {
		src = generator.NewSource(cfg.Settings.Seed)
	}
	a.viewer = viewer.New(viewer.Options{
		Logger:    log,
		Source:    src,
		Galaxy:    a.galaxy,
		StarField: a.stars,
	})

	a.loop = viewer.NewLoop(a.frame)
	a.loop.SetClock(cfg.Clock)
	a.loop.Start()

	if cfg.Watch && cfg.PresetPath != "" {
		w, err := config.Watch(cfg.PresetPath, log)
		if err != nil {
			a.log.Warn("preset watch disabled", "err", err)
		} else {
			a.watcher = w
		}
	}

	a.syncViewport()
	a.log.Info("viewer ready",
		buildinfo.Attr(),
		"galaxy_points", a.galaxy.Count,
		"star_points", a.stars.Count,
		"seed", cfg.Settings.Seed,
	)
	return a, nil
}

// Step runs one host tick: input, preset reloads, resize, then one frame.
// It returns hal.ErrStopped once the loop has been stopped.
func (a *App) Step() error {
	a.drainTicks()
	a.drainPresets()
	a.drainKeys()
	a.syncViewport()
	a.drainPointer()

	err := a.loop.Step()
	if errors.Is(err, viewer.ErrStopped) {
		a.Close()
		return hal.ErrStopped
	}
	return err
}

// Stop ends the session; the next Step reports hal.ErrStopped.
func (a *App) Stop() { a.loop.Stop() }

// Close releases the preset watcher. It is safe to call more than once.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

func (a *App) Viewer() *viewer.Viewer { return a.viewer }
func (a *App) Panel() *panel.Panel    { return a.panel }
func (a *App) Loop() *viewer.Loop     { return a.loop }

// Galaxy returns the current galaxy parameters.
func (a *App) Galaxy() generator.Parameters { return a.galaxy }

// StarField returns the current star field parameters.
func (a *App) StarField() generator.StarFieldParameters { return a.stars }

func (a *App) regenerateGalaxy() {
	if a.viewer != nil {
		a.viewer.RegenerateGalaxy(a.galaxy)
	}
}

func (a *App) regenerateStarField() {
	if a.viewer != nil {
		a.viewer.RegenerateStarField(a.stars)
	}
}

func (a *App) drainTicks() {
	t := a.h.Time()
	if t == nil || t.Ticks() == nil {
		return
	}
	for {
		select {
		case seq := <-t.Ticks():
			a.ticks = seq
		default:
			return
		}
	}
}

func (a *App) drainPresets() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case cfg := <-a.watcher.Updates():
			a.applyPreset(cfg)
		default:
			return
		}
	}
}

// applyPreset replaces the generator parameters with those in cfg,
// regenerating each affected cloud once.
func (a *App) applyPreset(cfg config.Config) {
	galaxy, err := cfg.GalaxyParameters()
	if err != nil {
		a.log.Warn("preset ignored", "err", err)
		return
	}
	stars, err := cfg.StarFieldParameters()
	if err != nil {
		a.log.Warn("preset ignored", "err", err)
		return
	}
	n := a.panel.Apply(func() {
		a.galaxy = galaxy
		a.stars = stars
	})
	a.log.Info("preset applied", "regenerated", n)
}

func (a *App) drainKeys() {
	in := a.h.Input()
	if in == nil || in.Keyboard() == nil {
		return
	}
	ch := in.Keyboard().Events()
	for {
		select {
		case ev := <-ch:
			a.handleKey(ev)
		default:
			return
		}
	}
}

func (a *App) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	if ev.Code == hal.KeyEscape || ev.Rune == 'q' || ev.Rune == 'Q' {
		a.log.Info("quit requested")
		a.loop.Stop()
		return
	}
	a.panel.HandleKey(ev)
}

func (a *App) drainPointer() {
	in := a.h.Input()
	if in == nil || in.Pointer() == nil {
		return
	}
	ch := in.Pointer().Events()
	for {
		select {
		case ev := <-ch:
			a.handlePointer(ev)
		default:
			return
		}
	}
}

func (a *App) handlePointer(ev hal.PointerEvent) {
	if !a.dragging && a.overPanel(ev) {
		return
	}
	switch ev.Kind {
	case hal.PointerWheel:
		a.viewer.Zoom(ev.Wheel)
	case hal.PointerDown:
		if ev.Button == hal.ButtonLeft {
			a.dragging = true
			a.lastX, a.lastY = ev.X, ev.Y
		}
	case hal.PointerMove:
		if a.dragging {
			a.viewer.Drag(ev.X-a.lastX, ev.Y-a.lastY)
			a.lastX, a.lastY = ev.X, ev.Y
		}
	case hal.PointerUp:
		if ev.Button == hal.ButtonLeft || ev.Button == hal.ButtonNone {
			if a.dragging {
				a.viewer.Drag(ev.X-a.lastX, ev.Y-a.lastY)
			}
			a.dragging = false
		}
	}
}

// overPanel routes ev to the panel and reports whether the panel took it.
func (a *App) overPanel(ev hal.PointerEvent) bool {
	if a.overlay == nil {
		return a.panel.HandlePointer(ev)
	}
	// Text rows sit at the top-left, one cell row per two framebuffer rows.
	row := ev.Y / 2
	lines := a.panel.Lines()
	if row < 0 || row >= len(lines) || ev.X < 0 {
		return false
	}
	return ev.X < utf8.RuneCountInString(lines[row])
}

func (a *App) syncViewport() {
	vp := a.disp.Viewport()
	if vp == a.viewport || vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	a.viewport = vp
	pw, ph := a.viewer.Resize(vp.Width, vp.Height, vp.Scale)
	a.fb.Resize(pw, ph)
	_, _, ratio := a.viewer.Size()
	scale := int(ratio + 0.5)
	if scale < 1 {
		scale = 1
	}
	a.panel.SetSurface(pw, ph, scale)
}

func (a *App) target() *stargl.RGBATarget {
	return &stargl.RGBATarget{
		Buf:    a.fb.Buffer(),
		Stride: a.fb.StrideBytes(),
		W:      a.fb.Width(),
		H:      a.fb.Height(),
	}
}

func (a *App) frame(elapsed, dt time.Duration) error {
	if s := dt.Seconds(); s > 0 {
		inst := 1 / s
		if a.fps == 0 {
			a.fps = inst
		} else {
			a.fps += (inst - a.fps) * 0.1
		}
	}

	a.viewer.Frame(elapsed, dt)
	t := a.target()
	a.viewer.Render(t)

	if a.overlay != nil {
		lines := a.panel.Lines()
		if a.hud {
			lines = append(lines, "", a.hudLine())
		}
		a.overlay.SetOverlay(lines)
	} else {
		a.panel.Draw(t)
		if a.hud {
			_, _, ratio := a.viewer.Size()
			s := int(ratio + 0.5)
			panel.DrawText(t, 8*s, t.H-(8+fixedfont.Height)*s, s, a.hudLine(), hudText)
		}
	}

	a.logStats()
	return a.fb.Present()
}

func (a *App) hudLine() string {
	st := a.viewer.Stats()
	return fmt.Sprintf("%d points  %.0f fps  drag orbit, wheel zoom, q quit", st.GalaxyPoints+st.StarPoints, a.fps)
}

func (a *App) logStats() {
	a.stats.Do(func() {
		now := time.Now()
		frames := a.loop.Frames()
		st := a.viewer.Stats()
		attrs := []any{
			"frames", frames,
			"drawn", st.Drawn,
			"galaxy_points", st.GalaxyPoints,
			"star_points", st.StarPoints,
			"ticks", a.ticks,
		}
		if !a.statAt.IsZero() {
			if d := now.Sub(a.statAt).Seconds(); d > 0 {
				attrs = append(attrs, "fps", fmt.Sprintf("%.1f", float64(frames-a.statFrames)/d))
			}
		}
		a.statFrames, a.statAt = frames, now
		a.log.Debug("frame stats", attrs...)
	})
}
