package browse

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Next once the watcher has been closed.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher reports changes to the entries of a single directory at a time.
type Watcher struct {
	w   *fsnotify.Watcher
	mu  sync.Mutex
	dir string
}

// NewWatcher creates a watcher that is not yet watching anything.
func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{w: w}, nil
}

// Watch switches the watched directory to dir.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	dir = filepath.Clean(dir)
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.w.Remove(w.dir) // already gone if the directory was deleted
	}
	if err := w.w.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("watch %q: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Dir returns the directory currently watched.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Next blocks until an entry of the watched directory is created, removed or
// renamed, and returns the directory that changed. Content writes are ignored.
func (w *Watcher) Next() (string, error) {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return "", ErrWatcherClosed
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			return filepath.Dir(ev.Name), nil
		case err, ok := <-w.w.Errors:
			if !ok {
				return "", ErrWatcherClosed
			}
			return "", fmt.Errorf("watch: %w", err)
		}
	}
}

// Close stops watching; a pending Next returns ErrWatcherClosed.
func (w *Watcher) Close() error {
	return w.w.Close()
}
