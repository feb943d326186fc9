package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// Watch calls onChange once up front and again after every change to path,
// until ctx is done. The parent directory is watched so files replaced by
// rename (as many editors save) keep being tracked.
func Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	onChange()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		}
	}
}

// RunWatchValidate re-validates the file at path on every save.
func (a *App) RunWatchValidate(ctx context.Context, path string) error {
	a.Logger.Info("Starting Watcher", "path", path)
	return Watch(ctx, path, func() {
		source, err := ReadSource(path, nil)
		if err != nil {
			a.Logger.Warn("Watcher read failed", "path", path, "error", err)
			return
		}
		fmt.Fprintf(a.Out, "\n>>> %s\n", time.Now().Format(time.TimeOnly))
		_ = a.RunValidate(ctx, path, source)
	})
}
