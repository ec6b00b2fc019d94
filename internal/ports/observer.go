package ports

import (
	"context"
	"time"

	"github.com/bft-labs/sqsbatch/internal/domain"
)

// SuccessObserver is notified after every attempt that delivered at least one item.
// ids holds exactly the items that succeeded on that attempt, never a running total.
// Observers run synchronously on the flushing goroutine and should return quickly.
type SuccessObserver interface {
	OnSuccess(ids []string)
}

// DropObserver receives the items that were still failing when the last
// permitted attempt ended. A SuccessObserver that also implements it gets
// drops without separate registration.
type DropObserver interface {
	OnDropped(items []domain.FailedItem)
}

// Sleeper pauses between attempts. It returns early with ctx.Err() when the
// context is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// FlushObserver is notified once per non-empty flush, after the last attempt,
// with the summary, elapsed time and returned error. Like DropObserver it may
// be registered alone or implemented by a SuccessObserver.
type FlushObserver interface {
	OnFlush(report domain.FlushReport, elapsed time.Duration, err error)
}
