package config

import (
	"context"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config whenever the file is rewritten and hands the
// result to onReload. Runs until ctx is done. Watch errors are logged, not
// fatal; the program keeps its current allow-list.
func Watch(ctx context.Context, logger *log.Logger, onReload func(*Config)) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Printf("config watch unavailable: %v", err)
		return
	}
	defer w.Close()

	if err := w.Add(configPath); err != nil {
		logger.Printf("config watch unavailable: %v", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case e, ok := <-w.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Write == fsnotify.Write {
				cfg, err := Load()
				if err != nil {
					logger.Printf("config reload failed: %v", err)
					continue
				}
				logger.Println("config reloaded")
				onReload(cfg)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Printf("config watch error: %v", err)
		}
	}
}
