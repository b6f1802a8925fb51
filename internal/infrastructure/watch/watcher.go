package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when no window is given.
const DefaultDebounce = 500 * time.Millisecond

// ChangeEvent describes a change to the watched file.
type ChangeEvent struct {
	Path       string
	ChangeType string // "create", "write", "remove", "rename"
}

// FileWatcher reports changes to a single file. The parent directory is
// watched rather than the file itself so editors that replace the file on
// save are still noticed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(ChangeEvent)
}

// NewFileWatcher watches path and calls onChange once per burst of changes.
func NewFileWatcher(path string, debounce time.Duration, onChange func(ChangeEvent)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Path is the absolute path being watched.
func (w *FileWatcher) Path() string { return w.path }

// Run starts the event loop. It blocks until the context is cancelled.
func (w *FileWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	// The timer only signals; last is owned by this goroutine.
	fire := make(chan struct{}, 1)
	var last ChangeEvent
	debouncer := NewDebouncer(w.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-fire:
			if w.onChange != nil {
				w.onChange(last)
			}
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			changeType := opToChangeType(event.Op)
			if changeType == "" {
				continue
			}
			last = ChangeEvent{Path: w.path, ChangeType: changeType}
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watcher error")
		}
	}
}

func opToChangeType(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
