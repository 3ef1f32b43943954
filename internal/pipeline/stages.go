package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/relforge/internal/metrics"
)

// Stage is a discrete unit of work in a cell build. Each stage is its own
// failure domain: a fatal stage error fails this cell only, never siblings.
type Stage func(ctx context.Context, cs *CellState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Cell must abort; later stages are skipped.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Helpers to classify errors.
func newFatalStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// Stage name constants keep log fields, metrics labels, and reports aligned.
const (
	StageEnvironment  = "environment"
	StageDependencies = "dependencies"
	StageBuildWheel   = "build-wheel"
	StageBuildConda   = "build-conda"
	StageValidate     = "validate"
	StageInstallTest  = "install-test"
)

type namedStage struct {
	name string
	fn   Stage
}

// runStages executes stages in order, recording timing and classification,
// stopping on the first fatal or canceled error. Warning-kind errors are
// recorded and execution continues.
func runStages(ctx context.Context, cs *CellState, stages []namedStage) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			cs.Report.record(st.name, 0, se)
			cs.recorder.IncStageResult(st.name, metrics.ResultCanceled)
			return se
		default:
		}
		t0 := time.Now()
		err := st.fn(ctx, cs)
		dur := time.Since(t0)
		cs.recorder.ObserveStageDuration(st.name, dur)
		if err == nil {
			cs.Report.record(st.name, dur, nil)
			cs.recorder.IncStageResult(st.name, metrics.ResultSuccess)
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.name, err)
		}
		cs.Report.record(st.name, dur, se)
		switch se.Kind {
		case StageErrorWarning:
			cs.recorder.IncStageResult(st.name, metrics.ResultWarning)
			continue
		case StageErrorCanceled:
			cs.recorder.IncStageResult(st.name, metrics.ResultCanceled)
			return se
		default:
			cs.recorder.IncStageResult(st.name, metrics.ResultFatal)
			return se
		}
	}
	return nil
}
