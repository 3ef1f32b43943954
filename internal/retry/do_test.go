package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"git.home.luguber.info/inful/relforge/internal/config"
)

func fastPolicy(maxRetries int) Policy {
	return NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, maxRetries)
}

// TestDoSucceedsFirstAttempt runs fn exactly once when it succeeds.
func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), "op", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call got %d", calls)
	}
}

// TestDoRetriesTransient retries until success within the budget.
func TestDoRetriesTransient(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), "op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls got %d", calls)
	}
}

// TestDoExhaustsBudget counts the first attempt plus MaxRetries retries.
func TestDoExhaustsBudget(t *testing.T) {
	calls := 0
	err := fastPolicy(2).Do(context.Background(), "op", func() error {
		calls++
		return errors.New("still broken")
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries) got %d", calls)
	}
}

// TestDoStopsOnPermanent does not retry permanent failures.
func TestDoStopsOnPermanent(t *testing.T) {
	calls := 0
	base := errors.New("missing credential")
	err := fastPolicy(5).Do(context.Background(), "op", func() error {
		calls++
		return MarkPermanent(base)
	})
	if calls != 1 {
		t.Fatalf("permanent error should not retry, got %d calls", calls)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	if !IsPermanent(err) {
		t.Fatal("permanent marker lost through Do")
	}
}

// TestDoRespectsContextCancellation aborts between attempts.
func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := fastPolicy(5).Do(ctx, "op", func() error {
		calls++
		return errors.New("transient")
	})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt before cancellation check got %d", calls)
	}
}

// TestMarkPermanentNil stays nil.
func TestMarkPermanentNil(t *testing.T) {
	if MarkPermanent(nil) != nil {
		t.Fatal("MarkPermanent(nil) must be nil")
	}
	if IsPermanent(nil) {
		t.Fatal("nil is not permanent")
	}
}
