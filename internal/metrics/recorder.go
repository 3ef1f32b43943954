package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for pipeline metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe for
// the NoopRecorder default so injection stays optional.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncCellOutcome(outcome string) // outcome: success|warning|failed|canceled
	ObserveCellDuration(cell string, d time.Duration, success bool)
	IncUploadResult(destination string, success bool)
	IncRetry(operation string)
	SetCellConcurrency(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)       {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                 {}
func (NoopRecorder) IncStageResult(string, ResultLabel)               {}
func (NoopRecorder) IncCellOutcome(string)                            {}
func (NoopRecorder) ObserveCellDuration(string, time.Duration, bool)  {}
func (NoopRecorder) IncUploadResult(string, bool)                     {}
func (NoopRecorder) IncRetry(string)                                  {}
func (NoopRecorder) SetCellConcurrency(int)                           {}
