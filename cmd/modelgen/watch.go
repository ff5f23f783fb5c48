package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// watchSample generates j's output, then regenerates it every time the sample
// file changes until ctx is done. The parent directory is watched so rename-on-save
// editors keep triggering. Generation errors are logged and watching goes on.
func watchSample(ctx context.Context, j *job, input string, e env, logger *slog.Logger) error {
	path, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("watch: resolve %s: %w", input, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() {
		_ = w.Close()
	}()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(path), err)
	}
	if err := j.emit(ctx, e, logger); err != nil {
		return err
	}
	logger.Info("watching sample", slog.String("path", path))

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(watchDebounce)
		case <-timer.C:
			if err := j.emit(ctx, e, logger); err != nil {
				logger.Error("regenerate failed", slog.String("path", path), slog.String("err", err.Error()))
				fmt.Fprintf(e.stderr, "modelgen: %v\n", err)
				continue
			}
			logger.Debug("regenerated", slog.String("path", path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.String("err", err.Error()))
		}
	}
}
