package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusboard/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const settingsDebounce = 200 * time.Millisecond

// WatchSettings reloads configPath whenever it changes on disk and hands the
// parsed settings to onChange. It blocks until ctx is done. The parent
// directory is watched so editors that replace the file are handled.
func WatchSettings(ctx context.Context, configPath string, logger *zap.Logger, onChange func(preferences.Settings)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("settings")

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	var debounce *time.Timer
	var debounceC <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(configPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(settingsDebounce)
			} else {
				debounce.Reset(settingsDebounce)
			}
			debounceC = debounce.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watcher error", zap.Error(err))

		case <-debounceC:
			debounceC = nil
			settings, err := LoadSettingsFile(configPath)
			if err != nil {
				logger.Warn("settings reload failed", zap.Error(err))
				continue
			}
			logger.Debug("settings reloaded", zap.String("path", configPath))
			onChange(settings)
		}
	}
}
