package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/agiangrant/orrery/config"
	"github.com/agiangrant/orrery/internal/logging"
)

// watchConfig calls apply with the reloaded configuration each time the file
// at path is written, until ctx is done. Invalid edits are logged and
// skipped. The parent directory is watched so editors that replace the file
// are noticed too.
func watchConfig(ctx context.Context, path string, apply func(config.AppConfig)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	go func() {
		defer w.Close()
		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := config.Load(path)
				if err != nil {
					logging.Logger().Warn("orrery: config reload failed", "path", path, "error", err)
					continue
				}
				apply(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Logger().Warn("orrery: config watch error", "error", err)
			}
		}
	}()
	return nil
}
