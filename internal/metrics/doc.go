// Package metrics provides observability hooks for pipeline runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks and costs nothing
// when disabled. The Prometheus implementation is activated by the daemon
// (or any caller holding a registry) and swapped in without code changes:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	pool := pipeline.NewPool(cfg, store).WithRecorder(recorder)
package metrics
