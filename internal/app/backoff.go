package app

import (
	"context"
	"math"
	"time"
)

// backoffDelay returns the pause after a partially failed attempt:
// factor * 2^(attempt-1), saturating instead of overflowing.
func backoffDelay(factor time.Duration, attempt int) time.Duration {
	if factor <= 0 {
		return 0
	}
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	}
	if shift > 62 || factor > math.MaxInt64>>shift {
		return time.Duration(math.MaxInt64)
	}
	return factor << shift
}

// timerSleeper implements ports.Sleeper with a timer.
type timerSleeper struct{}

// Sleep waits for d or until ctx is done.
func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
