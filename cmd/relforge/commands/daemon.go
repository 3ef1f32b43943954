package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/daemon"
	"git.home.luguber.info/inful/relforge/internal/metrics"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct {
	Branch string `short:"b" help:"Branch scheduled runs release from" default:"main"`
}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return RunDaemon(cfg, root.Config, d.Branch)
}

// RunDaemon starts the scheduler and blocks until SIGINT/SIGTERM.
func RunDaemon(cfg *config.Config, configPath, branch string) error {
	slog.Info("Starting daemon mode", slog.String("branch", branch))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	run := func(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) error {
		return ExecuteRun(ctx, cfg, RunParams{Branch: branch, Upload: true}, recorder)
	}
	d, err := daemon.New(cfg, configPath, run)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}
	if err := d.Start(ctx); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	slog.Info("Daemon started, waiting for shutdown signal...")
	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping daemon...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := d.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	slog.Info("Daemon stopped successfully")
	return nil
}
