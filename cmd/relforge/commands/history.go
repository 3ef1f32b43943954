package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/journal"
)

// HistoryCmd implements the 'history' command: list past runs from the
// sqlite journal.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Maximum number of runs to show" default:"20"`
	RunID string `help:"Show the full event trail for one run"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := journal.NewSQLiteStore(cfg.Daemon.JournalPath)
	if err != nil {
		return fmt.Errorf("open run journal: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	if h.RunID != "" {
		events, err := store.GetByRunID(ctx, h.RunID)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Printf("no events for run %s\n", h.RunID)
			return nil
		}
		for _, event := range events {
			fmt.Printf("%s  %-16s %s\n", event.Timestamp().Format("2006-01-02 15:04:05"), event.Type(), event.Payload())
		}
		return nil
	}

	history := journal.NewHistory(store, h.Limit)
	if err := history.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild history: %w", err)
	}
	runs := history.Recent(h.Limit)
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %-9s %-8s %-20s cells %d/%d ok, wheels %d, conda %d\n",
			run.StartedAt.Format("2006-01-02 15:04"), run.Status, run.Channel, run.Branch,
			run.CellsSucceeded, run.CellsTotal, run.WheelsUploaded, run.CondaUploaded)
	}
	return nil
}
