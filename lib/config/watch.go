package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fosdem/pointsprite/lib/log"
	"github.com/fosdem/pointsprite/lib/metrics"
	"github.com/jhenstridge/go-inotify"
)

var logger = log.Module("config")

// Watcher re-parses a config file whenever it is rewritten.
type Watcher struct {
	filename string
	// name is the entry inside the watched directory, which is all an
	// event carries
	name      string
	watcher   *inotify.Watcher
	stop      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Watch calls onChange with every successfully parsed new version of
// filename. Parse errors are logged and the old config stays in effect.
// onChange runs on the watcher goroutine.
func Watch(filename string, onChange func(*Config)) (*Watcher, error) {
	watcher, err := inotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not start inotify watcher: %w", err)
	}

	// editors tend to replace the file rather than rewrite it, so watch
	// the directory and filter on the name
	abs, err := filepath.Abs(filename)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	_, err = watcher.Watch(filepath.Dir(abs))
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("could not watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		filename: abs,
		name:     filepath.Base(abs),
		watcher:  watcher,
		stop:     make(chan struct{}),
	}
	go w.run(onChange)
	return w, nil
}

func (w *Watcher) run(onChange func(*Config)) {
	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.watcher.Event:
			if !ok {
				return
			}
			if !w.matches(ev) {
				continue
			}
			if ev.Mask&(inotify.IN_CLOSE_WRITE|inotify.IN_MOVED_TO) == 0 {
				continue
			}
			// let the writer finish whatever it is doing
			time.Sleep(100 * time.Millisecond)

			cfg, err := Parse(w.filename)
			if err != nil {
				metrics.ConfigReloads.WithLabelValues("error").Inc()
				logger.Error("not reloading config", "err", err)
				continue
			}
			metrics.ConfigReloads.WithLabelValues("ok").Inc()
			logger.Info(fmt.Sprintf("reloaded %s", w.filename))
			onChange(cfg)
		}
	}
}

func (w *Watcher) matches(ev inotify.Event) bool {
	return ev.Name == w.name || ev.Name == w.filename
}

// Close stops watching. Calling it again returns the first result.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.stop)
		w.closeErr = w.watcher.Close()
		if w.closeErr != nil {
			logger.Warn("inotify watcher closed with error", "err", w.closeErr)
		}
	})
	return w.closeErr
}
