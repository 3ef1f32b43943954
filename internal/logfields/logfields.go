package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyCell       = "cell"
	KeyOS         = "os"
	KeyPython     = "python"
	KeyStage      = "stage"
	KeyChannel    = "channel"
	KeyFormat     = "format"
	KeyBranch     = "branch"
	KeyArtifact   = "artifact"
	KeyDest       = "destination"
	KeyPath       = "path"
	KeyDurationMS = "duration_ms"
	KeyAttempt    = "attempt"
	KeySchedule   = "schedule_name"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Cell(c string) slog.Attr         { return slog.String(KeyCell, c) }
func OS(os string) slog.Attr          { return slog.String(KeyOS, os) }
func Python(v string) slog.Attr       { return slog.String(KeyPython, v) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Channel(c string) slog.Attr      { return slog.String(KeyChannel, c) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Branch(b string) slog.Attr       { return slog.String(KeyBranch, b) }
func Artifact(name string) slog.Attr  { return slog.String(KeyArtifact, name) }
func Destination(d string) slog.Attr  { return slog.String(KeyDest, d) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Attempt(n int) slog.Attr         { return slog.Int(KeyAttempt, n) }
func ScheduleName(n string) slog.Attr { return slog.String(KeySchedule, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
