package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestWithRunID(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-123")

	lc := GetContext(ctx)
	if lc.RunID != "run-123" {
		t.Errorf("expected run-123, got %s", lc.RunID)
	}
}

func TestWithCell(t *testing.T) {
	ctx := context.Background()
	ctx = WithCell(ctx, "linux-x86_64/3.11")

	lc := GetContext(ctx)
	if lc.Cell != "linux-x86_64/3.11" {
		t.Errorf("expected linux-x86_64/3.11, got %s", lc.Cell)
	}
}

func TestWithStage(t *testing.T) {
	ctx := context.Background()
	ctx = WithStage(ctx, "build")

	lc := GetContext(ctx)
	if lc.Stage != "build" {
		t.Errorf("expected build, got %s", lc.Stage)
	}
}

func TestWithChannel(t *testing.T) {
	ctx := context.Background()
	ctx = WithChannel(ctx, "nightly")

	lc := GetContext(ctx)
	if lc.Channel != "nightly" {
		t.Errorf("expected nightly, got %s", lc.Channel)
	}
}

func TestMultipleContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-1")
	ctx = WithCell(ctx, "osx-64/3.10")
	ctx = WithStage(ctx, "validate")

	lc := GetContext(ctx)
	if lc.RunID != "run-1" || lc.Cell != "osx-64/3.10" || lc.Stage != "validate" {
		t.Errorf("context values not preserved across chained With* calls: %+v", lc)
	}
}

func TestContextValuesDoNotLeakBackwards(t *testing.T) {
	base := context.Background()
	base = WithRunID(base, "run-1")
	derived := WithStage(base, "upload")

	if GetContext(base).Stage != "" {
		t.Error("stage should not leak into parent context")
	}
	if GetContext(derived).RunID != "run-1" {
		t.Error("derived context should retain run ID")
	}
}

func TestInfoContextEmitsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	ctx := WithRunID(context.Background(), "run-xyz")
	ctx = WithStage(ctx, "collect")
	InfoContext(ctx, "collected artifacts", slog.Int("count", 3))

	out := buf.String()
	for _, want := range []string{"run.id=run-xyz", "stage=collect", "count=3", "collected artifacts"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}
