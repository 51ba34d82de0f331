package hal

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferResizeClears(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	require.Equal(t, 16, fb.StrideBytes())
	require.Len(t, fb.Buffer(), 32)

	fb.ClearRGB(10, 20, 30)
	assert.Equal(t, []byte{10, 20, 30, 255}, fb.Buffer()[:4])

	fb.Resize(2, 2)
	assert.Equal(t, 2, fb.Width())
	assert.Equal(t, 8, fb.StrideBytes())
	assert.Len(t, fb.Buffer(), 16)
	assert.Equal(t, []byte{0, 0, 0, 0}, fb.Buffer()[:4])

	fb.Resize(0, -3)
	assert.Equal(t, 1, fb.Width())
	assert.Equal(t, 1, fb.Height())
}

func TestFramebufferSnapshot(t *testing.T) {
	fb := newHostFramebuffer(2, 1)
	fb.ClearRGB(1, 2, 3)
	snap, w, h := fb.snapshot(nil)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, fb.Buffer(), snap)

	r, g, b := rgbaAt(snap, w, 1, 0)
	assert.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{r, g, b})
	r, g, b = rgbaAt(snap, w, 2, 0)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

type lineRecorder struct {
	lines []string
}

func (l *lineRecorder) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineRecorder) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func TestLineWriterSplitsLines(t *testing.T) {
	rec := &lineRecorder{}
	n, err := LineWriter{Sink: rec}.Write([]byte("a=1\nb=2\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []string{"a=1", "b=2"}, rec.lines)
}

func TestNewSlogFiltersByLevel(t *testing.T) {
	rec := &lineRecorder{}
	log := NewSlog(rec, slog.LevelInfo).With("component", "test")
	log.Debug("hidden")
	log.Info("shown", "count", 3)

	require.Len(t, rec.lines, 1)
	assert.Contains(t, rec.lines[0], "msg=shown")
	assert.Contains(t, rec.lines[0], "component=test")
	assert.Contains(t, rec.lines[0], "count=3")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestHostLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	h := newHost(HostConfig{Log: &buf})
	h.Logger().WriteLineString("hello")
	h.Logger().WriteLineBytes([]byte("world"))
	assert.Equal(t, "hello\nworld\n", buf.String())
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	var vp Viewport
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		vp = h.Display().Viewport()
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 5, Width: 64, Height: 48, Log: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, 5, steps)
	assert.Equal(t, Viewport{Width: 64, Height: 48, Scale: 1}, vp)
}

func TestRunHeadlessStoppedIsClean(t *testing.T) {
	var steps int
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error {
			steps++
			if steps == 3 {
				return ErrStopped
			}
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Log: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)
}

func TestRunHeadlessPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000, Log: &bytes.Buffer{}})
	assert.ErrorIs(t, err, boom)
}

func TestRunHeadlessHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Hz: 100, Log: &bytes.Buffer{}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHostTimeTicksFollowClock(t *testing.T) {
	now := time.Unix(100, 0)
	tm := newHostTime()
	tm.now = func() time.Time { return now }

	drain := func() []uint64 {
		var got []uint64
		for {
			select {
			case seq := <-tm.Ticks():
				got = append(got, seq)
			default:
				return got
			}
		}
	}

	tm.advance()
	assert.Equal(t, []uint64{1}, drain())

	now = now.Add(1500 * time.Microsecond)
	tm.advance()
	assert.Equal(t, []uint64{2}, drain())

	// The half tick carried over completes here.
	now = now.Add(2500 * time.Microsecond)
	tm.advance()
	assert.Equal(t, []uint64{3, 4, 5}, drain())

	tm.advance()
	assert.Empty(t, drain())
}
