// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It watches the parent directories of a set of input files, filters events down to those
// files, and debounces bursts of events (search engines write PIN files in many chunks,
// editors often rename a temp file over the original).
package fsnotify

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before onChange fires.
const DefaultDebounce = 250 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
	stopped  bool
	timers   map[string]*time.Timer
	mu       sync.Mutex
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero fires on every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher creates a new file watcher.
func NewWatcher(opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fw:       fw,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch starts monitoring the given files.
// onChange is called with the absolute path of each changed file.
func (w *Watcher) Watch(paths []string, onChange func(filePath string)) error {
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		// Watch the directory, not the file: a rename over the file would
		// otherwise drop the watch.
		if err := w.fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := filepath.Clean(event.Name)
				if !watched[path] {
					continue
				}
				// Chmod alone does not change content.
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.schedule(path, onChange)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed; fsnotify recovers automatically

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// schedule fires onChange once path has been quiet for the debounce period.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.debounce <= 0 {
		go w.fire(path, onChange)
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.fire(path, onChange)
	})
}

func (w *Watcher) fire(path string, onChange func(string)) {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if !stopped {
		onChange(path)
	}
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	close(w.done)
	return w.fw.Close()
}
