package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ExhaustedError reports that every attempt of a display write failed.
// Attempts counts the underlying calls made; Err is the last failure.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("display write failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// RetryPolicy retries an operation with a constant delay between attempts.
// MaxAttempts is the number of retries after the first attempt, so zero
// means exactly one call. The delay sleep is interruptible: a canceled
// context aborts the loop with the context's error rather than exhaustion.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

// Do runs op until it succeeds, the attempt budget is spent, or ctx is
// canceled. Each failed attempt is logged with its index.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	attempts := p.MaxAttempts + 1
	var lastErr error
	for i := 1; i <= attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		log.Printf("scheduler: display write attempt %d/%d failed: %v", i, attempts, lastErr)
		if i < attempts {
			if err := sleep(ctx, p.Delay); err != nil {
				return err
			}
		}
	}
	return &ExhaustedError{Attempts: attempts, Err: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
