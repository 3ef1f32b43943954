package journal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event type names as stored in the journal.
const (
	TypeRunStarted        = "RunStarted"
	TypeArtifactCollected = "ArtifactCollected"
	TypeCellFinished      = "CellFinished"
	TypeUploadCompleted   = "UploadCompleted"
	TypeDocsPublished     = "DocsPublished"
	TypeRunFinished       = "RunFinished"
)

// Run terminal statuses.
const (
	StatusSucceeded = "succeeded"
	StatusWarning   = "warning"
	StatusFailed    = "failed"
)

// RunStartedPayload describes a pipeline run at launch.
type RunStartedPayload struct {
	Channel   string `json:"channel"`
	Branch    string `json:"branch"`
	Ref       string `json:"ref"`
	CellCount int    `json:"cell_count"`
}

// ArtifactCollectedPayload records one artifact entering the store.
type ArtifactCollectedPayload struct {
	Cell string `json:"cell"`
	Kind string `json:"kind"` // wheel | conda
	Name string `json:"name"`
}

// CellFinishedPayload records one matrix cell's outcome.
type CellFinishedPayload struct {
	Cell       string `json:"cell"`
	Outcome    string `json:"outcome"` // success | warning | failed
	DurationMS int64  `json:"duration_ms"`
	Wheels     int    `json:"wheels"`
	Conda      int    `json:"conda"`
	Error      string `json:"error,omitempty"`
}

// UploadCompletedPayload records what the upload gate published.
type UploadCompletedPayload struct {
	WheelsUploaded int    `json:"wheels_uploaded"`
	CondaUploaded  int    `json:"conda_uploaded"`
	IndexPublished bool   `json:"index_published"`
	Error          string `json:"error,omitempty"`
}

// DocsPublishedPayload records a docs deployment.
type DocsPublishedPayload struct {
	TargetFolder string `json:"target_folder"`
}

// RunFinishedPayload closes out a run.
type RunFinishedPayload struct {
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// NewEvent builds a typed journal event. The payload must be one of the
// *Payload types in this package.
func NewEvent(runID, eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return &BaseEvent{
		EventRunID:     runID,
		EventType:      eventType,
		EventTimestamp: time.Now(),
		EventPayload:   data,
	}, nil
}
