package services

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

// rebuildDebounce coalesces the burst of fsnotify events an editor save
// produces into a single rebuild.
const rebuildDebounce = 500 * time.Millisecond

// Serve runs a local preview: it builds the site into outputDir, serves it
// over HTTP, and rebuilds whenever a template, static asset, or group
// config changes. Blocks until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config, calc *rotation.Calculator, outputDir, addr string, logger *zap.Logger) error {
	if err := GenerateSite(cfg, calc, outputDir, logger); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range watchDirs(cfg) {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("Failed to watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	var mu sync.Mutex
	var debounce *time.Timer
	scheduleRebuild := func() {
		mu.Lock()
		defer mu.Unlock()
		if debounce != nil {
			debounce.Stop()
		}
		debounce = time.AfterFunc(rebuildDebounce, func() {
			logger.Info("Change detected, rebuilding site")
			if err := GenerateSite(cfg, calc, outputDir, logger); err != nil {
				logger.Error("Rebuild failed", zap.Error(err))
			}
		})
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					scheduleRebuild()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error", zap.Error(err))
			}
		}
	}()

	server := &http.Server{
		Addr:    addr,
		Handler: http.FileServer(http.Dir(outputDir)),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving site", zap.String("addr", addr), zap.String("output_dir", outputDir))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// watchDirs lists every directory whose contents feed the build.
func watchDirs(cfg *config.Config) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir != "" && !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	add(cfg.ResolvePath(cfg.TemplateDir))
	for _, dir := range cfg.StaticDirs {
		add(cfg.ResolvePath(dir))
	}
	for _, site := range cfg.Sites {
		add(filepath.Dir(cfg.ResolvePath(site.Groups)))
	}
	return dirs
}
