// Package daemon runs the release pipeline as a long-lived service:
// nightly runs on a schedule, configuration hot-reload, and a Prometheus
// metrics endpoint.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/logfields"
	"git.home.luguber.info/inful/relforge/internal/metrics"
	"git.home.luguber.info/inful/relforge/internal/observability"
)

// Status represents the current state of the daemon.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
)

// RunFunc executes one full pipeline run against the current configuration.
// The daemon owns scheduling and overlap suppression; the function owns the
// pipeline itself.
type RunFunc func(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) error

// Daemon is the long-running scheduler mode.
type Daemon struct {
	mu         sync.RWMutex
	cfg        *config.Config
	configPath string
	status     atomic.Value // Status
	run        RunFunc

	scheduler     *Scheduler
	configWatcher *ConfigWatcher
	recorder      *metrics.PrometheusRecorder
	registry      *prom.Registry
	metricsServer *http.Server

	running atomic.Bool // suppresses overlapping scheduled runs
}

// New creates a daemon. configPath enables hot-reload when non-empty.
func New(cfg *config.Config, configPath string, run RunFunc) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if run == nil {
		return nil, errors.New("run function is required")
	}
	registry := prom.NewRegistry()
	d := &Daemon{
		cfg:        cfg,
		configPath: configPath,
		run:        run,
		recorder:   metrics.NewPrometheusRecorder(registry),
		registry:   registry,
	}
	d.status.Store(StatusStopped)

	scheduler, err := NewScheduler()
	if err != nil {
		return nil, err
	}
	d.scheduler = scheduler

	if configPath != "" {
		watcher, err := NewConfigWatcher(configPath, d.applyConfig)
		if err != nil {
			return nil, err
		}
		d.configWatcher = watcher
	}
	return d, nil
}

// Status returns the daemon lifecycle state.
func (d *Daemon) Status() Status { return d.status.Load().(Status) }

// Config returns the current configuration snapshot.
func (d *Daemon) Config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// Start brings up the metrics endpoint, the config watcher, and the
// schedule, then returns. Use Stop for shutdown.
func (d *Daemon) Start(ctx context.Context) error {
	d.status.Store(StatusStarting)

	interval, err := time.ParseDuration(d.Config().Daemon.ScheduleInterval)
	if err != nil {
		d.status.Store(StatusStopped)
		return fmt.Errorf("parse schedule interval: %w", err)
	}

	if addr := d.Config().Daemon.MetricsAddr; addr != "" {
		d.startMetricsServer(ctx, addr)
	}
	if d.configWatcher != nil {
		if err := d.configWatcher.Start(ctx); err != nil {
			d.status.Store(StatusStopped)
			return err
		}
	}
	if err := d.scheduler.ScheduleRun(interval, "scheduled-release", func() { d.triggerRun(ctx) }); err != nil {
		d.status.Store(StatusStopped)
		return err
	}
	d.scheduler.Start(ctx)

	d.status.Store(StatusRunning)
	observability.InfoContext(ctx, "daemon started",
		logfields.ScheduleName("scheduled-release"),
		logfields.DurationMS(float64(interval.Milliseconds())))
	return nil
}

// Stop shuts down the schedule, watcher, and metrics endpoint.
func (d *Daemon) Stop(ctx context.Context) error {
	d.status.Store(StatusStopping)
	var firstErr error
	if err := d.scheduler.Stop(ctx); err != nil {
		firstErr = err
	}
	if d.configWatcher != nil {
		if err := d.configWatcher.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if d.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.metricsServer.Shutdown(shutdownCtx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.status.Store(StatusStopped)
	return firstErr
}

// triggerRun executes one pipeline run unless one is already in flight.
func (d *Daemon) triggerRun(ctx context.Context) {
	if !d.running.CompareAndSwap(false, true) {
		observability.WarnContext(ctx, "scheduled run skipped, previous run still in flight")
		return
	}
	defer d.running.Store(false)

	cfg := d.Config()
	if err := d.run(ctx, cfg, d.recorder); err != nil {
		observability.ErrorContext(ctx, "scheduled run failed", logfields.Error(err))
	}
}

// applyConfig swaps in a freshly loaded configuration.
func (d *Daemon) applyConfig(cfg *config.Config) {
	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()
}

func (d *Daemon) startMetricsServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(d.registry))
	d.metricsServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		observability.InfoContext(ctx, "metrics endpoint listening", logfields.Destination(addr))
		if err := d.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.ErrorContext(ctx, "metrics server failed", logfields.Error(err))
		}
	}()
}
