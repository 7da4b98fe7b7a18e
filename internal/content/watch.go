package content

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the content file for changes until ctx is cancelled and
// reloads the store on each change. cb, if non-nil, runs after every reload
// that actually changed the content.
//
// The parent directory is watched rather than the file itself: editors that
// write via rename would otherwise detach the watch. Bursts of events are
// debounced into a single reload.
func Watch(ctx context.Context, store *Store, logger *slog.Logger, cb func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(store.path)
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(store.path)

	logger.Info("content watcher: started", slog.String("path", store.path))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("content watcher: stopped")
			return nil

		case <-reloadCh:
			changed, err := store.Reload()
			if err != nil {
				logger.Warn("content watcher: reload failed, keeping previous content",
					slog.String("error", err.Error()))
				continue
			}
			if changed {
				logger.Info("content watcher: content reloaded")
				if cb != nil {
					cb()
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("content watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
