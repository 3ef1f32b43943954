package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	stageDuration   *prom.HistogramVec
	runDuration     prom.Histogram
	stageResults    *prom.CounterVec
	cellOutcome     *prom.CounterVec
	cellDuration    *prom.HistogramVec
	uploadResults   *prom.CounterVec
	retries         *prom.CounterVec
	cellConcurrency prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "relforge",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual cell build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "relforge",
			Name:      "run_duration_seconds",
			Help:      "Total pipeline run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "relforge",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.cellOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "relforge",
			Name:      "cell_outcomes_total",
			Help:      "Matrix cell outcomes by final status",
		}, []string{"outcome"})
		pr.cellDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "relforge",
			Name:      "cell_duration_seconds",
			Help:      "Duration of individual matrix cell builds",
			Buckets:   prom.DefBuckets,
		}, []string{"cell", "result"})
		pr.uploadResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "relforge",
			Name:      "upload_results_total",
			Help:      "Upload attempts by destination and result",
		}, []string{"destination", "result"})
		pr.retries = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "relforge",
			Name:      "retries_total",
			Help:      "Retries of transient operations",
		}, []string{"operation"})
		pr.cellConcurrency = prom.NewGauge(prom.GaugeOpts{
			Namespace: "relforge",
			Name:      "cell_concurrency",
			Help:      "Observed worker pool concurrency for the current run",
		})
		reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults, pr.cellOutcome, pr.cellDuration, pr.uploadResults, pr.retries, pr.cellConcurrency)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncCellOutcome(outcome string) {
	if p == nil || p.cellOutcome == nil {
		return
	}
	p.cellOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveCellDuration(cell string, d time.Duration, success bool) {
	if p == nil || p.cellDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.cellDuration.WithLabelValues(cell, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncUploadResult(destination string, success bool) {
	if p == nil || p.uploadResults == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.uploadResults.WithLabelValues(destination, res).Inc()
}

func (p *PrometheusRecorder) IncRetry(operation string) {
	if p == nil || p.retries == nil {
		return
	}
	p.retries.WithLabelValues(operation).Inc()
}

func (p *PrometheusRecorder) SetCellConcurrency(n int) {
	if p == nil || p.cellConcurrency == nil {
		return
	}
	p.cellConcurrency.Set(float64(n))
}
