package hal

import "time"

// TickPeriod is the duration of one host tick.
const TickPeriod = time.Millisecond

// hostTime turns wall-clock progress between host steps into a sequence of
// millisecond ticks. Ticks the reader has not drained are dropped.
type hostTime struct {
	ch  chan uint64
	seq uint64
	now func() time.Time

	last time.Time
	rem  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// advance emits one tick per elapsed TickPeriod since the previous call.
// The first call emits a single tick.
func (t *hostTime) advance() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}
	t.rem += now.Sub(t.last)
	t.last = now
	if n := t.rem / TickPeriod; n > 0 {
		t.rem -= n * TickPeriod
		t.emit(uint64(n))
	}
}

func (t *hostTime) emit(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
