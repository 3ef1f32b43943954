package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/relforge/internal/config"
)

// ConfigWatcher monitors the configuration file and hands freshly loaded
// configs to the daemon. Reloads are debounced because editors fire several
// filesystem events per save.
type ConfigWatcher struct {
	configPath   string
	apply        func(*config.Config)
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	reloadChan   chan struct{}
	debounceTime time.Duration
	started      bool
}

// NewConfigWatcher creates a watcher; apply receives each valid new config.
func NewConfigWatcher(configPath string, apply func(*config.Config)) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	return &ConfigWatcher{
		configPath:   absPath,
		apply:        apply,
		watcher:      watcher,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: 2 * time.Second,
	}, nil
}

// Start begins monitoring. Watching the parent directory is more reliable
// than watching the file: editors replace files on save.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.started {
		return nil
	}
	configDir := filepath.Dir(cw.configPath)
	if err := cw.watcher.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}
	slog.Info("Starting configuration watcher", slog.String("config_path", cw.configPath))
	cw.started = true
	go cw.watchLoop()
	go cw.reloadLoop()
	return nil
}

// Stop stops the watcher.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if !cw.started {
		return nil
	}
	slog.Info("Stopping configuration watcher")
	close(cw.stopChan)
	cw.started = false
	return cw.watcher.Close()
}

func (cw *ConfigWatcher) watchLoop() {
	configFile := filepath.Base(cw.configPath)
	for {
		select {
		case <-cw.stopChan:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != configFile {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Rename):
				slog.Debug("Config file change detected", slog.String("file", event.Name))
				cw.triggerReload()
			case event.Op.Has(fsnotify.Remove):
				slog.Warn("Config file removed", slog.String("file", event.Name))
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", slog.String("error", err.Error()))
		}
	}
}

func (cw *ConfigWatcher) reloadLoop() {
	var reloadTimer *time.Timer
	for {
		select {
		case <-cw.stopChan:
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			return
		case <-cw.reloadChan:
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(cw.debounceTime, cw.performReload)
		}
	}
}

// triggerReload requests a debounced reload; a pending request is enough.
func (cw *ConfigWatcher) triggerReload() {
	select {
	case cw.reloadChan <- struct{}{}:
	default:
	}
}

// performReload loads and applies the config; an invalid file keeps the
// previous configuration active.
func (cw *ConfigWatcher) performReload() {
	cfg, err := config.Load(cw.configPath)
	if err != nil {
		slog.Error("Failed to reload configuration, keeping previous", slog.String("error", err.Error()))
		return
	}
	cw.apply(cfg)
	slog.Info("Configuration reloaded", slog.String("config_path", cw.configPath))
}
