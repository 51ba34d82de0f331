package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
)

// upperHalf shows two vertically stacked pixels per cell: foreground on top,
// background below.
const upperHalf = '▀'

// TerminalConfig controls the terminal host runner.
type TerminalConfig struct {
	Hz    int
	Ticks uint64
	// Log receives log lines while the screen is active; nil discards them.
	Log io.Writer
	// Screen overrides the terminal screen (tests pass a simulation screen).
	Screen tcell.Screen
}

// RunTerminal renders the framebuffer into a truecolor terminal using half-block
// cells, so a cols×rows terminal is a cols×2·rows pixel surface. Overlay lines
// set through the display are drawn as text over the top-left cells.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid terminal hz: %d", cfg.Hz)
	}

	screen := cfg.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	logw := cfg.Log
	if logw == nil {
		logw = io.Discard
	}
	cols, rows := screen.Size()
	h := newHost(HostConfig{Width: cols, Height: rows * 2, Log: logw})
	th := &termHost{h: h, screen: screen}
	step := newApp(termHAL{h})

	events := make(chan tcell.Event, 128)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if th.handle(ev) {
				return nil
			}
		case <-t.C:
			h.t.advance()
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrStopped) {
						return nil
					}
					return err
				}
			}
			th.present()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// termHAL swaps in a display that accepts overlay text.
type termHAL struct {
	*hostHAL
}

func (t termHAL) Display() Display { return termDisplay{hostDisplay{h: t.hostHAL}} }

type termDisplay struct {
	hostDisplay
}

func (d termDisplay) SetOverlay(lines []string) {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	d.h.overlay = append(d.h.overlay[:0], lines...)
}

type termHost struct {
	h       *hostHAL
	screen  tcell.Screen
	scratch []byte

	mouseDown bool
}

var termKeys = map[tcell.Key]KeyCode{
	tcell.KeyUp:        KeyUp,
	tcell.KeyDown:      KeyDown,
	tcell.KeyLeft:      KeyLeft,
	tcell.KeyRight:     KeyRight,
	tcell.KeyEnter:     KeyEnter,
	tcell.KeyEscape:    KeyEscape,
	tcell.KeyBackspace: KeyBackspace,
	tcell.KeyTab:       KeyTab,
	tcell.KeyDelete:    KeyDelete,
	tcell.KeyHome:      KeyHome,
	tcell.KeyEnd:       KeyEnd,
	tcell.KeyPgUp:      KeyPageUp,
	tcell.KeyPgDn:      KeyPageDown,
	tcell.KeyF1:        KeyF1,
}

// handle translates one tcell event; it reports true when the user asked to quit
// with Ctrl-C.
func (t *termHost) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() == tcell.KeyRune {
			t.h.kbd.emit(KeyEvent{Press: true, Rune: ev.Rune()})
			return false
		}
		if code, ok := termKeys[ev.Key()]; ok {
			t.h.kbd.emit(KeyEvent{Code: code, Press: true})
		}
	case *tcell.EventMouse:
		t.mouse(ev)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.h.setViewport(Viewport{Width: cols, Height: rows * 2, Scale: 1})
		t.screen.Sync()
	}
	return false
}

func (t *termHost) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := col, row*2
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		t.h.ptr.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, Wheel: 1})
		return
	case btn&tcell.WheelDown != 0:
		t.h.ptr.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, Wheel: -1})
		return
	}

	down := btn&tcell.Button1 != 0
	switch {
	case down && !t.mouseDown:
		t.h.ptr.emit(PointerEvent{Kind: PointerDown, X: x, Y: y, Button: ButtonLeft})
	case !down && t.mouseDown:
		t.h.ptr.emit(PointerEvent{Kind: PointerUp, X: x, Y: y, Button: ButtonLeft})
	default:
		t.h.ptr.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
	}
	t.mouseDown = down
}

func (t *termHost) present() {
	var w, h int
	t.scratch, w, h = t.h.fb.snapshot(t.scratch)
	cols, rows := t.screen.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if col >= w || row*2 >= h {
				t.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
				continue
			}
			tr, tg, tb := rgbaAt(t.scratch, w, col, row*2)
			br, bg, bb := rgbaAt(t.scratch, w, col, row*2+1)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
				Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			t.screen.SetContent(col, row, upperHalf, nil, st)
		}
	}

	text := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(230, 230, 230)).
		Background(tcell.NewRGBColor(20, 20, 28))
	for row, line := range t.h.overlayLines() {
		if row >= rows {
			break
		}
		col := 0
		for _, r := range line {
			if col >= cols {
				break
			}
			t.screen.SetContent(col, row, r, nil, text)
			col++
		}
	}
	t.screen.Show()
}
