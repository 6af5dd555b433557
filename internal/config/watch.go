package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// WatchForChanges watches path for writes and logs a restart prompt on
// every one. dronemcp never reloads configuration into a running
// server — the backend client's timeout, the cache TTL, and the
// confidence thresholds are only ever read once, at construction — so a
// detected edit is purely advisory. Returns immediately if path is
// empty or watching is disabled; otherwise blocks until ctx is
// cancelled.
func WatchForChanges(ctx context.Context, path string, enabled bool, logger *slog.Logger) error {
	if !enabled || path == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	logger.Info("watching config file for edits", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) {
				logger.Warn("config file changed on disk; restart dronemcp to apply it", "path", path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher error", "error", err)
		}
	}
}
