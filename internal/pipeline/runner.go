package pipeline

import (
	"context"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/logfields"
	"git.home.luguber.info/inful/relforge/internal/matrix"
	"git.home.luguber.info/inful/relforge/internal/observability"
)

// CellResult is the outcome of one matrix cell: its stage report plus the
// artifact names that made it into the shared store.
type CellResult struct {
	Cell   matrix.Cell
	Report *CellReport
	Err    error    // first fatal or canceled stage error, nil otherwise
	Wheels []string // collected wheel names
	Conda  []string // collected conda package names
}

// Succeeded reports a fully clean cell: no fatal error and a passing suite.
func (r CellResult) Succeeded() bool { return r.Err == nil && !r.Report.TestsFailed() }

// Outcome maps the result onto the metrics label set.
func (r CellResult) Outcome() string {
	switch {
	case r.Err != nil:
		return "failed"
	case r.Report.TestsFailed():
		return "warning"
	default:
		return "success"
	}
}

// cellStages is the fixed stage sequence for one cell, covering both
// packaging formats.
func cellStages() []namedStage {
	return []namedStage{
		{StageEnvironment, stageEnvironment},
		{StageDependencies, stageDependencies},
		{StageBuildWheel, stageBuildWheel},
		{StageBuildConda, stageBuildConda},
		{StageValidate, stageValidate},
		{StageInstallTest, stageInstallTest},
	}
}

// runCell executes the full stage sequence for one cell and then collects
// whatever artifacts exist. Collection always runs, even after a fatal
// stage error: a half-built cell may still hold artifacts worth inspecting,
// and their absence is handled downstream by presence-checking rather than
// treated as fatal.
func (p *Pool) runCell(ctx context.Context, cell matrix.Cell, params Params) CellResult {
	ctx = observability.WithCell(ctx, cell.String())
	cs := newCellState(p.cfg, cell, params, p.runner, p.recorder)

	observability.InfoContext(ctx, "cell build starting", logfields.Python(cell.Python), logfields.OS(cell.OS))
	err := runStages(ctx, cs, cellStages())
	if err != nil {
		observability.ErrorContext(ctx, "cell build failed", logfields.Error(err))
	}

	result := CellResult{Cell: cell, Report: cs.Report, Err: err}
	result.Wheels, result.Conda = p.collect(ctx, cs)
	return result
}

// collect gathers the cell's outputs into the shared store. Collection
// errors are logged, not propagated: a cell that built nothing simply
// contributes nothing.
func (p *Pool) collect(ctx context.Context, cs *CellState) (wheels, conda []string) {
	wheels, err := artifact.CollectWheels(p.store, cs.WheelDir)
	if err != nil {
		observability.WarnContext(ctx, "wheel collection incomplete", logfields.Error(err))
	}
	for _, name := range wheels {
		observability.InfoContext(ctx, "collected artifact", logfields.Artifact(name), logfields.Format(string(artifact.KindWheel)))
	}
	conda, err = artifact.CollectConda(p.store, cs.CondaDir)
	if err != nil {
		observability.WarnContext(ctx, "conda collection incomplete", logfields.Error(err))
	}
	for _, name := range conda {
		observability.InfoContext(ctx, "collected artifact", logfields.Artifact(name), logfields.Format(string(artifact.KindConda)))
	}
	return wheels, conda
}
