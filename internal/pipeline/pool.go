package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/matrix"
	"git.home.luguber.info/inful/relforge/internal/metrics"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

// Pool fans matrix cells out over a fixed set of workers and joins before
// returning. Cells never communicate; a failed cell never cancels a
// sibling (fail-open matrix semantics).
type Pool struct {
	cfg      *config.Config
	store    artifact.Store
	runner   shell.Runner
	recorder metrics.Recorder
}

// NewPool constructs a pool with production defaults.
func NewPool(cfg *config.Config, store artifact.Store) *Pool {
	return &Pool{cfg: cfg, store: store, runner: shell.ExecRunner{}, recorder: metrics.NoopRecorder{}}
}

// WithRunner swaps the external command runner (fluent helper).
func (p *Pool) WithRunner(r shell.Runner) *Pool { p.runner = r; return p }

// WithRecorder swaps the metrics recorder (fluent helper).
func (p *Pool) WithRecorder(rec metrics.Recorder) *Pool { p.recorder = rec; return p }

// Run executes every cell and returns all results, ordered by cell
// identifier for stable reporting. The join barrier is complete before
// return: no cell work outlives this call.
func (p *Pool) Run(ctx context.Context, cells []matrix.Cell, params Params) []CellResult {
	if len(cells) == 0 {
		return nil
	}
	concurrency := p.cfg.Build.Concurrency
	if concurrency > len(cells) {
		concurrency = len(cells)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	p.recorder.SetCellConcurrency(concurrency)

	tasks := make(chan matrix.Cell)
	results := make([]CellResult, 0, len(cells))
	var wg sync.WaitGroup
	var mu sync.Mutex

	worker := func() {
		defer wg.Done()
		for cell := range tasks {
			start := time.Now()
			res := p.runCell(ctx, cell, params)
			p.recorder.ObserveCellDuration(cell.String(), time.Since(start), res.Err == nil)
			p.recorder.IncCellOutcome(res.Outcome())
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}
	}
	wg.Add(concurrency)
	for range concurrency {
		go worker()
	}
	for _, cell := range cells {
		tasks <- cell
	}
	close(tasks)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Cell.String() < results[j].Cell.String()
	})
	return results
}
