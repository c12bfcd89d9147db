package preview

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// DebounceInterval coalesces bursts of filesystem events into one rebuild.
const DebounceInterval = 300 * time.Millisecond

// Watch observes the given directories (recursively) and invokes rebuild
// after changes settle. It returns when the context is canceled.
func Watch(ctx context.Context, dirs []string, rebuild func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range dirs {
		if err := addRecursive(watcher, dir); err != nil {
			return err
		}
	}

	var timer *time.Timer
	trigger := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need watching too.
			if event.Op.Has(fsnotify.Create) {
				_ = addRecursive(watcher, event.Name)
			}
			slog.Debug("Content change detected", logfields.Path(event.Name))
			if timer == nil {
				timer = time.AfterFunc(DebounceInterval, func() {
					select {
					case trigger <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(DebounceInterval)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-trigger:
			timer = nil
			rebuild()
		}
	}
}

// addRecursive watches dir and every directory beneath it. Non-directories
// are ignored.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // unwatchable entries are skipped, not fatal
		}
		return watcher.Add(path)
	})
}
