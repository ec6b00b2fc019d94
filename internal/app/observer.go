package app

import (
	"sync"
	"time"

	"github.com/bft-labs/sqsbatch/internal/domain"
	"github.com/bft-labs/sqsbatch/internal/ports"
)

// SuccessFunc adapts a plain function to ports.SuccessObserver.
type SuccessFunc func(ids []string)

// OnSuccess calls f(ids).
func (f SuccessFunc) OnSuccess(ids []string) { f(ids) }

// ListenDrops registers a DropObserver that has no OnSuccess of its own.
func ListenDrops(d ports.DropObserver) ports.SuccessObserver {
	return dropListener{d}
}

type dropListener struct{ d ports.DropObserver }

func (dropListener) OnSuccess([]string) {}

func (l dropListener) OnDropped(items []domain.FailedItem) { l.d.OnDropped(items) }

// ListenFlushes registers a FlushObserver that has no OnSuccess of its own.
func ListenFlushes(f ports.FlushObserver) ports.SuccessObserver {
	return flushListener{f}
}

type flushListener struct{ f ports.FlushObserver }

func (flushListener) OnSuccess([]string) {}

func (l flushListener) OnFlush(report domain.FlushReport, elapsed time.Duration, err error) {
	l.f.OnFlush(report, elapsed, err)
}

// Accumulator collects delivered ids and dropped items across attempts and
// flushes. It is safe to read from another goroutine.
type Accumulator struct {
	mu        sync.Mutex
	delivered []string
	dropped   []domain.FailedItem
}

// OnSuccess records ids delivered on one attempt.
func (a *Accumulator) OnSuccess(ids []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.delivered = append(a.delivered, ids...)
}

// OnDropped records items given up on.
func (a *Accumulator) OnDropped(items []domain.FailedItem) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dropped = append(a.dropped, items...)
}

// Delivered returns every id delivered so far, in delivery order.
func (a *Accumulator) Delivered() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.delivered...)
}

// Dropped returns every item dropped so far.
func (a *Accumulator) Dropped() []domain.FailedItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.FailedItem(nil), a.dropped...)
}

// Reset forgets everything recorded.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.delivered = nil
	a.dropped = nil
}
