package journal

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// RunSummary is a read model summarizing one pipeline run.
type RunSummary struct {
	RunID          string     `json:"run_id"`
	Channel        string     `json:"channel"`
	Branch         string     `json:"branch"`
	Status         string     `json:"status"` // "running" until RunFinished lands
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Duration       time.Duration
	CellsTotal     int    `json:"cells_total"`
	CellsSucceeded int    `json:"cells_succeeded"`
	CellsWarned    int    `json:"cells_warned"`
	CellsFailed    int    `json:"cells_failed"`
	WheelsUploaded int    `json:"wheels_uploaded"`
	CondaUploaded  int    `json:"conda_uploaded"`
	IndexPublished bool   `json:"index_published"`
	DocsFolder     string `json:"docs_folder,omitempty"`
	Error          string `json:"error,omitempty"`
}

const statusRunning = "running"

// History maintains an in-memory view of past runs, reconstructed from
// journal events.
type History struct {
	mu      sync.RWMutex
	store   Store
	runs    map[string]*RunSummary
	ordered []*RunSummary // newest first
	maxSize int
}

// NewHistory creates a projection backed by the given store.
func NewHistory(store Store, maxSize int) *History {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &History{
		store:   store,
		runs:    make(map[string]*RunSummary),
		maxSize: maxSize,
	}
}

// Rebuild reconstructs the projection from all events in the store.
// Typically called at startup.
func (h *History) Rebuild(ctx context.Context) error {
	events, err := h.store.GetRange(ctx, time.Time{}, time.Now().Add(time.Hour))
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.runs = make(map[string]*RunSummary)
	h.ordered = h.ordered[:0]
	for _, event := range events {
		h.applyLocked(event)
	}
	h.sortAndTrimLocked()
	return nil
}

// Apply processes a single event as it is journaled.
func (h *History) Apply(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.applyLocked(event)
	h.sortAndTrimLocked()
}

func (h *History) applyLocked(event Event) {
	runID := event.RunID()
	if runID == "" {
		return
	}
	summary, ok := h.runs[runID]
	if !ok {
		summary = &RunSummary{RunID: runID, Status: statusRunning, StartedAt: event.Timestamp()}
		h.runs[runID] = summary
		h.ordered = append(h.ordered, summary)
	}

	switch event.Type() {
	case TypeRunStarted:
		var p RunStartedPayload
		if json.Unmarshal(event.Payload(), &p) == nil {
			summary.Channel = p.Channel
			summary.Branch = p.Branch
			summary.CellsTotal = p.CellCount
			summary.StartedAt = event.Timestamp()
		}
	case TypeCellFinished:
		var p CellFinishedPayload
		if json.Unmarshal(event.Payload(), &p) == nil {
			switch p.Outcome {
			case "success":
				summary.CellsSucceeded++
			case "warning":
				summary.CellsWarned++
			default:
				summary.CellsFailed++
			}
		}
	case TypeUploadCompleted:
		var p UploadCompletedPayload
		if json.Unmarshal(event.Payload(), &p) == nil {
			summary.WheelsUploaded = p.WheelsUploaded
			summary.CondaUploaded = p.CondaUploaded
			summary.IndexPublished = p.IndexPublished
		}
	case TypeDocsPublished:
		var p DocsPublishedPayload
		if json.Unmarshal(event.Payload(), &p) == nil {
			summary.DocsFolder = p.TargetFolder
		}
	case TypeRunFinished:
		var p RunFinishedPayload
		if json.Unmarshal(event.Payload(), &p) == nil {
			summary.Status = p.Status
			summary.Error = p.Error
			summary.Duration = time.Duration(p.DurationMS) * time.Millisecond
			completed := event.Timestamp()
			summary.CompletedAt = &completed
		}
	}
}

func (h *History) sortAndTrimLocked() {
	sort.SliceStable(h.ordered, func(i, j int) bool {
		return h.ordered[i].StartedAt.After(h.ordered[j].StartedAt)
	})
	if len(h.ordered) > h.maxSize {
		for _, dropped := range h.ordered[h.maxSize:] {
			if dropped.Status != statusRunning {
				delete(h.runs, dropped.RunID)
			}
		}
		h.ordered = h.ordered[:h.maxSize]
	}
}

// Recent returns up to n summaries, newest first. Copies are returned so
// callers can't mutate the projection.
func (h *History) Recent(n int) []RunSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n <= 0 || n > len(h.ordered) {
		n = len(h.ordered)
	}
	out := make([]RunSummary, n)
	for i := range n {
		out[i] = *h.ordered[i]
	}
	return out
}

// Get returns the summary for one run.
func (h *History) Get(runID string) (RunSummary, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	summary, ok := h.runs[runID]
	if !ok {
		return RunSummary{}, false
	}
	return *summary, true
}
