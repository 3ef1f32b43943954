package pipeline

import (
	"context"
	"errors"
	"testing"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/matrix"
	"git.home.luguber.info/inful/relforge/internal/metrics"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

func testState(t *testing.T) *CellState {
	t.Helper()
	cfg := &config.Config{}
	cfg.Build.Workspace = t.TempDir()
	cell := matrix.Cell{OS: "linux-x86_64", Python: "3.11"}
	return newCellState(cfg, cell, Params{RunID: "run-1"}, &shell.FakeRunner{}, metrics.NoopRecorder{})
}

// TestRunStagesStopsOnFatal verifies later stages are skipped after a fatal error.
func TestRunStagesStopsOnFatal(t *testing.T) {
	cs := testState(t)
	var order []string
	stages := []namedStage{
		{"one", func(context.Context, *CellState) error { order = append(order, "one"); return nil }},
		{"two", func(context.Context, *CellState) error {
			order = append(order, "two")
			return newFatalStageError("two", errors.New("boom"))
		}},
		{"three", func(context.Context, *CellState) error { order = append(order, "three"); return nil }},
	}
	err := runStages(context.Background(), cs, stages)
	if err == nil {
		t.Fatal("expected fatal error to propagate")
	}
	if len(order) != 2 {
		t.Fatalf("stage three must not run after fatal, got %v", order)
	}
	if cs.Report.StageKinds["two"] != StageErrorFatal {
		t.Fatalf("expected fatal kind recorded, got %v", cs.Report.StageKinds)
	}
}

// TestRunStagesContinuesOnWarning verifies warnings are recorded without aborting.
func TestRunStagesContinuesOnWarning(t *testing.T) {
	cs := testState(t)
	var order []string
	stages := []namedStage{
		{"one", func(context.Context, *CellState) error {
			order = append(order, "one")
			return newWarnStageError("one", errors.New("flaky"))
		}},
		{"two", func(context.Context, *CellState) error { order = append(order, "two"); return nil }},
	}
	if err := runStages(context.Background(), cs, stages); err != nil {
		t.Fatalf("warnings must not fail the sequence: %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("expected both stages to run, got %v", order)
	}
	if len(cs.Report.Warnings) != 1 {
		t.Fatalf("expected one recorded warning, got %d", len(cs.Report.Warnings))
	}
}

// TestRunStagesWrapsUnknownErrors treats bare errors as fatal.
func TestRunStagesWrapsUnknownErrors(t *testing.T) {
	cs := testState(t)
	stages := []namedStage{
		{"one", func(context.Context, *CellState) error { return errors.New("bare") }},
	}
	err := runStages(context.Background(), cs, stages)
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError wrapper, got %T", err)
	}
	if se.Kind != StageErrorFatal {
		t.Fatalf("bare errors default to fatal, got %s", se.Kind)
	}
}

// TestRunStagesHonorsCancellation returns a canceled stage error without running the stage.
func TestRunStagesHonorsCancellation(t *testing.T) {
	cs := testState(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	stages := []namedStage{
		{"one", func(context.Context, *CellState) error { ran = true; return nil }},
	}
	err := runStages(ctx, cs, stages)
	var se *StageError
	if !errors.As(err, &se) || se.Kind != StageErrorCanceled {
		t.Fatalf("expected canceled stage error, got %v", err)
	}
	if ran {
		t.Fatal("stage must not run after cancellation")
	}
}

// TestReportTestsFailed distinguishes suite failures from build failures.
func TestReportTestsFailed(t *testing.T) {
	cs := testState(t)
	stages := []namedStage{
		{StageInstallTest, func(context.Context, *CellState) error {
			return newWarnStageError(StageInstallTest, errors.New("3 tests failed"))
		}},
	}
	if err := runStages(context.Background(), cs, stages); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cs.Report.TestsFailed() {
		t.Fatal("report should flag failing suite")
	}
	if cs.Report.Failed() {
		t.Fatal("failing suite is not a fatal cell failure")
	}
}
