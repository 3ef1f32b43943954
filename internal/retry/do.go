package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Permanent marks an error as not worth retrying. Do stops immediately when
// the operation returns an error wrapping a Permanent.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string { return p.Err.Error() }
func (p *Permanent) Unwrap() error { return p.Err }

// MarkPermanent wraps err so Do will not retry it. A nil err stays nil.
func MarkPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &Permanent{Err: err}
}

// IsPermanent reports whether err carries the Permanent marker.
func IsPermanent(err error) bool {
	var p *Permanent
	return errors.As(err, &p)
}

// Do runs fn, retrying transient failures according to the policy. The first
// call is not counted as a retry: with MaxRetries=3 the operation runs at
// most four times. Context cancellation aborts between attempts.
func (p Policy) Do(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("retrying operation", slog.String("operation", op), slog.Int("attempt", attempt))
			if p.OnRetry != nil {
				p.OnRetry(op, attempt)
			}
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if IsPermanent(err) {
			return err
		}
		if attempt == p.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s aborted: %w", op, ctx.Err())
		case <-time.After(p.Delay(attempt + 1)):
		}
	}
	return fmt.Errorf("%s failed after %d retries: %w", op, p.MaxRetries, lastErr)
}
