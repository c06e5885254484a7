// Package watcher triggers re-analysis when export files change on disk.
package watcher

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ritzau/socialgraph/pkg/logging"
)

// DefaultDebounce batches bursts of file events into one callback.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes user export directories and invokes a callback after
// changes settle.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	onChange func()

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// New creates a watcher over the given directories. onChange runs on the
// watcher goroutine after the debounce window closes.
func New(dirs []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		dirs:     dirs,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start registers watches recursively and begins dispatching events.
func (w *Watcher) Start() error {
	for _, dir := range w.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return w.fsw.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	go w.loop()
	logging.Info("watching for export changes", "dirs", strings.Join(w.dirs, ","))
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			logging.Debug("export change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			w.onChange()
		}
	}
}

// relevant filters events down to JSON export writes.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(event.Name, ".json")
}
