// Package watch re-runs extraction whenever a log file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/keenanwest/triage/internal/logging"
)

// DefaultDebounce coalesces bursts of write events into one callback.
const DefaultDebounce = 250 * time.Millisecond

// Watcher invokes a callback when the watched file is rewritten.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
}

// New builds a watcher for path. onChange runs after each debounced
// burst of writes.
func New(path string, onChange func()) *Watcher {
	return &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		onChange: onChange,
	}
}

// Run watches until the context is cancelled. The parent directory is
// watched rather than the file itself so truncate-and-rewrite (the
// common CI log fetcher behavior) keeps being observed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(w.path)
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logging.Debug("log file changed", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watch error", "error", err)
		case <-fire:
			w.onChange()
		}
	}
}
