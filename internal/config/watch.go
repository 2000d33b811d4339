package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// Watch monitors path and calls onChange with each successfully reloaded
// Config until ctx is cancelled. The parent directory is watched so atomic
// saves (write to temp, rename over) are seen. A reload that fails to parse
// or validate is logged and skipped; the previous config stays active.
func Watch(ctx context.Context, path string, log logger.Logger, onChange func(*Config)) error {
	if log == nil {
		log = logger.Noop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't watch the config file",
			"Live reload is off; restart beacon to pick up changes")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't watch "+filepath.Dir(abs),
			"Check the directory exists and is readable")
	}
	log.Debug("watching %s for changes", abs)

	var (
		timer  *time.Timer
		fire   <-chan time.Time
		target = filepath.Clean(abs)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
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
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
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
			cfg, err := Load(abs)
			if err == nil {
				err = Validate(cfg)
			}
			if err != nil {
				log.Warn("config reload failed, keeping previous config: %v", err)
				continue
			}
			log.Info("config reloaded from %s", abs)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("config watcher error: %v", err)
		}
	}
}
