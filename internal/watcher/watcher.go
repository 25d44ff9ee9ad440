package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is called with the new content of the watched file.
type ChangeHandler func(path string, content []byte)

// Watcher reports writes to the open project file. fsnotify watches the
// parent directory so editors that replace the file by rename are seen too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange ChangeHandler
	mu       sync.RWMutex
	path     string
	dir      string
}

// New creates a watcher and starts its event loop.
func New(onChange ChangeHandler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{watcher: fw, onChange: onChange}
	go w.watchLoop()
	return w, nil
}

// Watch switches the watcher to filePath. An empty path stops watching.
func (w *Watcher) Watch(filePath string) error {
	var absPath, dir string
	if filePath != "" {
		var err error
		absPath, err = filepath.Abs(filePath)
		if err != nil {
			return err
		}
		dir = filepath.Dir(absPath)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != "" && w.dir != dir {
		_ = w.watcher.Remove(w.dir)
	}
	if dir != "" && dir != w.dir {
		if err := w.watcher.Add(dir); err != nil {
			w.path, w.dir = "", ""
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.path, w.dir = absPath, dir
	return nil
}

// Path returns the absolute path being watched, or "".
func (w *Watcher) Path() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.path
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			absPath, _ := filepath.Abs(event.Name)
			if absPath != w.Path() {
				continue
			}
			content, err := os.ReadFile(absPath)
			if err != nil {
				slog.Warn("project watcher: read file", "path", absPath, "err", err)
				continue
			}
			if w.onChange != nil {
				w.onChange(absPath, content)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("project watcher: watcher error", "err", err)
		}
	}
}
