package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/sqsbatch/internal/domain"
	"github.com/bft-labs/sqsbatch/internal/ports"
)

const testQueueURL = "https://sqs.us-east-1.amazonaws.com/123456789012/test"

// sendCall records one SendBatch invocation.
type sendCall struct {
	queueURL string
	items    []domain.Item
}

func (c sendCall) ids() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ID
	}
	return ids
}

// fakeSender implements ports.BatchSender with a scripted response per call.
type fakeSender struct {
	calls   []sendCall
	respond func(call int, items []domain.Item) (domain.SendResult, error)
}

func (f *fakeSender) SendBatch(ctx context.Context, queueURL string, items []domain.Item) (domain.SendResult, error) {
	f.calls = append(f.calls, sendCall{queueURL: queueURL, items: append([]domain.Item(nil), items...)})
	if f.respond == nil {
		return domain.SendResult{}, nil
	}
	return f.respond(len(f.calls), items)
}

// failIDs returns a SendResult rejecting the given ids.
func failIDs(ids ...string) domain.SendResult {
	var res domain.SendResult
	for _, id := range ids {
		res.Failed = append(res.Failed, domain.Failure{
			ID:      id,
			Code:    "InternalError",
			Message: "try again",
		})
	}
	return res
}

// fakeSleeper records requested pauses without sleeping.
type fakeSleeper struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeps = append(s.sleeps, d)
	return ctx.Err()
}

// recordingObserver captures every notification.
type recordingObserver struct {
	successes [][]string
	dropped   [][]domain.FailedItem
	flushes   []domain.FlushReport
	flushErrs []error
}

func (r *recordingObserver) OnSuccess(ids []string) {
	r.successes = append(r.successes, ids)
}

func (r *recordingObserver) OnDropped(items []domain.FailedItem) {
	r.dropped = append(r.dropped, items)
}

func (r *recordingObserver) OnFlush(report domain.FlushReport, elapsed time.Duration, err error) {
	r.flushes = append(r.flushes, report)
	r.flushErrs = append(r.flushErrs, err)
}

func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.QueueURL = testQueueURL
	cfg.BackoffFactor = 0
	return cfg
}

func newTestBuffer(t *testing.T, cfg domain.Config, sender *fakeSender, obs ...ports.SuccessObserver) (*Buffer, *fakeSleeper) {
	t.Helper()
	sleeper := &fakeSleeper{}
	exec := NewExecutor(cfg, sender, sleeper, nil, obs...)
	b, err := NewBuffer(cfg, exec, nil)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	return b, sleeper
}
