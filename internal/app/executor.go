package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/sqsbatch/internal/domain"
	"github.com/bft-labs/sqsbatch/internal/ports"
	"github.com/bft-labs/sqsbatch/pkg/log"
)

// Executor performs one logical flush: it sends a batch, partitions the
// response, notifies observers and retries the failed subset.
type Executor struct {
	cfg       domain.Config
	sender    ports.BatchSender
	sleeper   ports.Sleeper
	logger    log.Logger
	observers []ports.SuccessObserver
}

// NewExecutor creates an executor. A nil sleeper sleeps on a timer and a nil
// logger discards output.
func NewExecutor(
	cfg domain.Config,
	sender ports.BatchSender,
	sleeper ports.Sleeper,
	logger log.Logger,
	observers ...ports.SuccessObserver,
) *Executor {
	if sleeper == nil {
		sleeper = timerSleeper{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Executor{
		cfg:       cfg,
		sender:    sender,
		sleeper:   sleeper,
		logger:    logger,
		observers: observers,
	}
}

// Execute delivers items in at most cfg.MaxRetries+1 attempts.
//
// A structured partial failure is retried after backoffDelay; a transport
// error is retried immediately and is returned only when the last attempt
// fails too. Items still rejected after the last attempt are logged and
// reported to DropObservers; they produce an error only with cfg.FailOnDrop.
func (e *Executor) Execute(ctx context.Context, items []domain.Item) (report domain.FlushReport, err error) {
	if len(items) == 0 {
		return report, nil
	}

	start := time.Now()
	defer func() {
		e.notifyFlush(report, time.Since(start), err)
	}()

	attempts := e.cfg.Attempts()
	working := items
	for attempt := 1; attempt <= attempts; attempt++ {
		report.Attempts = attempt
		last := attempt == attempts

		res, sendErr := e.sender.SendBatch(ctx, e.cfg.QueueURL, working)
		if sendErr != nil {
			if last {
				e.logger.Error("send batch failed",
					log.Err(sendErr),
					log.Int("attempt", attempt),
					log.Int("items", len(working)),
				)
				return report, fmt.Errorf("send batch (attempt %d/%d): %w", attempt, attempts, sendErr)
			}
			// No pause here: only structured partial failures back off.
			e.logger.Warn("send batch failed, retrying",
				log.Err(sendErr),
				log.Int("attempt", attempt),
				log.Int("items", len(working)),
			)
			continue
		}

		outcome := domain.Partition(working, res)
		if len(outcome.SucceededIDs) > 0 {
			report.Delivered = append(report.Delivered, outcome.SucceededIDs...)
			e.notifySuccess(outcome.SucceededIDs)
		}

		if len(outcome.Failed) == 0 {
			return report, nil
		}

		if last {
			report.Dropped = outcome.Failed
			return report, e.drop(outcome.Failed)
		}

		delay := backoffDelay(e.cfg.BackoffFactor, attempt)
		e.logger.Warn("partial batch failure, retrying",
			log.Int("attempt", attempt),
			log.Int("failed", len(outcome.Failed)),
			log.Int("succeeded", len(outcome.SucceededIDs)),
			log.Duration("backoff", delay),
		)
		if err := e.sleeper.Sleep(ctx, delay); err != nil {
			return report, fmt.Errorf("backoff interrupted: %w", err)
		}
		working = outcome.FailedItems()
	}

	return report, nil
}

// drop reports items that exhausted their attempts.
func (e *Executor) drop(failed []domain.FailedItem) error {
	ids := make([]string, len(failed))
	for i, f := range failed {
		ids[i] = f.Item.ID
	}
	e.logger.Warn("dropping items after final attempt",
		log.Strings("ids", ids),
		log.String("code", failed[0].Code),
		log.String("message", failed[0].Message),
	)

	for _, o := range e.observers {
		if d, ok := o.(ports.DropObserver); ok {
			d.OnDropped(append([]domain.FailedItem(nil), failed...))
		}
	}

	if e.cfg.FailOnDrop {
		return &domain.DropError{Dropped: failed}
	}
	return nil
}

func (e *Executor) notifySuccess(ids []string) {
	for _, o := range e.observers {
		o.OnSuccess(append([]string(nil), ids...))
	}
}

func (e *Executor) notifyFlush(report domain.FlushReport, elapsed time.Duration, err error) {
	for _, o := range e.observers {
		if f, ok := o.(ports.FlushObserver); ok {
			f.OnFlush(report, elapsed, err)
		}
	}
}
