package pipeline

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/matrix"
	"git.home.luguber.info/inful/relforge/internal/metrics"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

// Params are the per-run trigger inputs the build stages need.
type Params struct {
	RunID       string
	CoreVersion string // version of the core dependency to build against
}

// CellState carries mutable state across the stages of one cell build.
type CellState struct {
	Cell   matrix.Cell
	Cfg    *config.Config
	Params Params

	Workspace string // per-cell scratch tree
	EnvDir    string // isolated runtime environment
	WheelDir  string // canonical wheel output directory
	CondaDir  string // conda output root, packages under per-platform subdirs

	Report   *CellReport
	runner   shell.Runner
	recorder metrics.Recorder
}

// newCellState lays out the per-cell directory structure under the
// configured workspace.
func newCellState(cfg *config.Config, cell matrix.Cell, params Params, runner shell.Runner, recorder metrics.Recorder) *CellState {
	root := filepath.Join(cfg.Build.Workspace, cell.OS+"-py"+cell.Python)
	return &CellState{
		Cell:      cell,
		Cfg:       cfg,
		Params:    params,
		Workspace: root,
		EnvDir:    filepath.Join(root, "env"),
		WheelDir:  filepath.Join(root, "wheels"),
		CondaDir:  filepath.Join(root, "conda"),
		Report:    newCellReport(cell),
		runner:    runner,
		recorder:  recorder,
	}
}

// CellReport accumulates per-stage outcomes for one cell.
type CellReport struct {
	Cell           matrix.Cell
	StageDurations map[string]time.Duration
	StageKinds     map[string]StageErrorKind
	Errors         []*StageError
	Warnings       []*StageError
	start          time.Time
}

func newCellReport(cell matrix.Cell) *CellReport {
	return &CellReport{
		Cell:           cell,
		StageDurations: make(map[string]time.Duration),
		StageKinds:     make(map[string]StageErrorKind),
		start:          time.Now(),
	}
}

func (r *CellReport) record(stage string, dur time.Duration, se *StageError) {
	r.StageDurations[stage] = dur
	if se == nil {
		return
	}
	r.StageKinds[stage] = se.Kind
	if se.Kind == StageErrorWarning {
		r.Warnings = append(r.Warnings, se)
	} else {
		r.Errors = append(r.Errors, se)
	}
}

// Elapsed is the wall-clock time since the report was opened.
func (r *CellReport) Elapsed() time.Duration { return time.Since(r.start) }

// Failed reports whether any fatal or canceled stage error was recorded.
func (r *CellReport) Failed() bool { return len(r.Errors) > 0 }

// TestsFailed reports whether the install-test stage recorded a warning,
// which is how a failing test suite surfaces: the artifact is retained for
// inspection but the cell does not count as clean.
func (r *CellReport) TestsFailed() bool {
	return r.StageKinds[StageInstallTest] == StageErrorWarning
}
