package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r-123", RunID("r-123")},
		{"Cell", KeyCell, "linux-x86_64/3.11", Cell("linux-x86_64/3.11")},
		{"OS", KeyOS, "linux-x86_64", OS("linux-x86_64")},
		{"Python", KeyPython, "3.11", Python("3.11")},
		{"Stage", KeyStage, "build", Stage("build")},
		{"Channel", KeyChannel, "nightly", Channel("nightly")},
		{"Format", KeyFormat, "wheel", Format("wheel")},
		{"Branch", KeyBranch, "release/1.2", Branch("release/1.2")},
		{"Artifact", KeyArtifact, "pkg-1.0-cp311-cp311-linux_x86_64.whl", Artifact("pkg-1.0-cp311-cp311-linux_x86_64.whl")},
		{"Destination", KeyDest, "object-storage", Destination("object-storage")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"ScheduleName", KeySchedule, "nightly", ScheduleName("nightly")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.attr.Key != c.attrKey {
				t.Fatalf("expected key %s got %s", c.attrKey, c.attr.Key)
			}
			if got := c.attr.Value.String(); got != c.attrVal {
				t.Fatalf("expected value %s got %s", c.attrVal, got)
			}
		})
	}
}

// TestErrorHelper covers nil and non-nil error rendering.
func TestErrorHelper(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Fatalf("nil error should render empty, got %q", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Fatalf("expected boom got %q", got)
	}
}
