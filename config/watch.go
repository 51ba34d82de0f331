package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a preset file whenever it changes.
type Watcher struct {
	fw      *fsnotify.Watcher
	path    string
	log     *slog.Logger
	updates chan Config
	done    chan struct{}
}

// Watch starts watching path. The directory is watched rather than the file so
// that editors replacing the file on save are seen. A reload that fails to
// parse is logged and dropped.
func Watch(path string, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	w := &Watcher{
		fw:      fw,
		path:    abs,
		log:     log.With("component", "config", "path", path),
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers freshly loaded configurations. Only the latest unread one is kept.
func (w *Watcher) Updates() <-chan Config { return w.updates }

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.Debug("preset unreadable", "err", err)
		return
	}
	// Saves often truncate first; wait for the write that follows.
	if len(bytes.TrimSpace(data)) == 0 {
		return
	}
	cfg := Default()
	if err := Parse(data, &cfg); err != nil {
		w.log.Warn("preset reload ignored", "err", err)
		return
	}
	w.log.Info("preset reloaded")
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
