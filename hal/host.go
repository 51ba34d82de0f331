package hal

import (
	"io"
	"os"
	"sync"
)

// HostConfig sizes the host HAL.
type HostConfig struct {
	// Width and Height are the initial logical surface size.
	Width  int
	Height int
	// Log receives log lines; nil means stdout.
	Log io.Writer
}

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	TPS    int
	Log    io.Writer
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      *hostTime

	mu       sync.Mutex
	viewport Viewport
	overlay  []string
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	return &hostHAL{
		logger:   &hostLogger{w: w},
		fb:       newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:      newHostKeyboard(),
		ptr:      newHostPointer(),
		t:        newHostTime(),
		viewport: Viewport{Width: cfg.Width, Height: cfg.Height, Scale: 1},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{h: h} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

func (h *hostHAL) setViewport(v Viewport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewport = v
}

func (h *hostHAL) overlayLines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.overlay
}

type hostDisplay struct {
	h *hostHAL
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.h.fb }

func (d hostDisplay) Viewport() Viewport {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	return d.h.viewport
}

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, s)
	l.w.Write([]byte{'\n'})
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostPointer buffers pointer events; hosts feed it from their poll loop.
type hostPointer struct {
	ch chan PointerEvent
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 256)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}
