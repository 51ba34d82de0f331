package hal

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
)

// NewSlog returns a text logger whose records are written to sink, one line each.
func NewSlog(sink Logger, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(LineWriter{Sink: sink}, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// LineWriter adapts a Logger to io.Writer. Each line of p becomes one log line.
type LineWriter struct {
	Sink Logger
}

func (w LineWriter) Write(p []byte) (int, error) {
	if w.Sink == nil {
		return len(p), nil
	}
	rest := bytes.TrimRight(p, "\n")
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = nil
		}
		w.Sink.WriteLineBytes(line)
	}
	return len(p), nil
}
