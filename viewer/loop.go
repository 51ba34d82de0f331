package viewer

import (
	"errors"
	"sync/atomic"
	"time"
)

var (
	// ErrStopped is returned by Step once Stop has been called.
	ErrStopped = errors.New("viewer: loop stopped")
	// ErrNotStarted is returned by Step before Start.
	ErrNotStarted = errors.New("viewer: loop not started")
)

// FrameFunc renders one frame. elapsed is measured from Start, dt from the previous frame.
type FrameFunc func(elapsed, dt time.Duration) error

// Loop drives FrameFunc once per host tick with a start/stop contract.
//
// Step is called from the host's frame thread; Stop may be called from any goroutine.
type Loop struct {
	now   func() time.Time
	frame FrameFunc

	start   time.Time
	last    time.Time
	started bool
	frames  uint64

	stopped atomic.Bool
}

// NewLoop returns a stopped loop using the wall clock.
func NewLoop(frame FrameFunc) *Loop {
	return &Loop{now: time.Now, frame: frame}
}

// SetClock replaces the time source.
func (l *Loop) SetClock(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// Start records the start time. Calling it again has no effect.
func (l *Loop) Start() {
	if l.started {
		return
	}
	l.started = true
	l.start = l.now()
	l.last = l.start
}

// Stop ends the loop. Subsequent Steps return ErrStopped.
func (l *Loop) Stop() { l.stopped.Store(true) }

// Running reports whether the loop was started and not stopped.
func (l *Loop) Running() bool { return l.started && !l.stopped.Load() }

// Frames returns the number of frames rendered.
func (l *Loop) Frames() uint64 { return l.frames }

// Step renders one frame.
func (l *Loop) Step() error {
	if l.stopped.Load() {
		return ErrStopped
	}
	if !l.started {
		return ErrNotStarted
	}
	now := l.now()
	elapsed := now.Sub(l.start)
	dt := now.Sub(l.last)
	l.last = now
	l.frames++
	if l.frame == nil {
		return nil
	}
	return l.frame(elapsed, dt)
}
