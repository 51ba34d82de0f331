//go:build cgo

package hal

import (
	"errors"

	"galaxyview/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a resizable desktop window that displays the framebuffer and
// forwards keyboard and mouse input. It blocks until the window closes or step
// returns ErrStopped.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	h := newHost(HostConfig{Width: cfg.Width, Height: cfg.Height, Log: cfg.Log})
	step := newApp(h)

	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(buildinfo.Title(cfg.Title))
	ebiten.SetWindowSize(h.viewport.Width, h.viewport.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	ptr     pointerPoller
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.ptr.poll(g.h.ptr)
	g.h.t.advance()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrStopped) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	var w, h int
	g.scratch, w, h = g.h.fb.snapshot(g.scratch)
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

// Layout records the logical window size and device scale; the app resizes the
// framebuffer on its next step, and the screen follows the framebuffer.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	g.h.setViewport(Viewport{Width: outsideWidth, Height: outsideHeight, Scale: scale})
	return g.h.fb.size()
}
