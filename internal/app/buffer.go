package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/bft-labs/sqsbatch/internal/domain"
	"github.com/bft-labs/sqsbatch/pkg/log"
)

// Buffer accumulates items until the count or size threshold forces a flush.
// It keeps the size estimate of the pending items as a running total.
//
// A Buffer has a single owner and no internal locking. Observers notified
// during a flush must not call back into the buffer; such calls fail with
// domain.ErrFlushInProgress.
type Buffer struct {
	cfg    domain.Config
	exec   *Executor
	logger log.Logger

	items  []domain.Item
	ids    map[string]struct{}
	size     int
	closed   bool
	flushing bool
}

// NewBuffer creates an empty buffer. The configuration is validated here.
func NewBuffer(cfg domain.Config, exec *Executor, logger log.Logger) (*Buffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Buffer{
		cfg:    cfg,
		exec:   exec,
		logger: logger,
		items:  make([]domain.Item, 0, cfg.MaxBatchCount),
		ids:    make(map[string]struct{}, cfg.MaxBatchCount),
	}, nil
}

// Add validates item and appends it to the pending batch. An empty ID is
// replaced with a generated one.
//
// When the pending batch is already full, or the item would push the size
// estimate over the limit, the pending batch is flushed first and Add blocks
// for the whole flush. If that flush returns an error the item is not added.
// An item larger than the size limit on its own is accepted into an empty
// buffer and sent alone.
func (b *Buffer) Add(ctx context.Context, item domain.Item) error {
	if b.closed {
		return domain.ErrClosed
	}
	if b.flushing {
		return domain.ErrFlushInProgress
	}

	it, err := domain.NewItem(item.ID, item.Body, item.Attributes, item.Extra)
	if err != nil {
		return err
	}
	cost := EstimateSize(it.Body, it.Attributes)

	if b.mustFlushBefore(cost) {
		if err := b.Flush(ctx); err != nil {
			return err
		}
	} else if _, dup := b.ids[it.ID]; dup {
		return fmt.Errorf("%w: duplicate id %q in pending batch", domain.ErrInvalidArgument, it.ID)
	}

	b.items = append(b.items, it)
	b.ids[it.ID] = struct{}{}
	b.size += cost

	if cost > b.cfg.MaxBatchSizeBytes {
		b.logger.Debug("accepted oversized item",
			log.String("id", it.ID),
			log.Int("estimate", cost),
			log.Int("limit", b.cfg.MaxBatchSizeBytes),
		)
	}
	return nil
}

func (b *Buffer) mustFlushBefore(cost int) bool {
	if len(b.items) >= b.cfg.MaxBatchCount {
		return true
	}
	return len(b.items) > 0 && b.size+cost > b.cfg.MaxBatchSizeBytes
}

// Flush sends the pending batch. It is a no-op when nothing is pending.
// The pending batch is cleared once the executor returns, whatever the
// outcome, so a batch is never sent twice by a later Flush.
func (b *Buffer) Flush(ctx context.Context) error {
	if b.flushing {
		return domain.ErrFlushInProgress
	}
	if len(b.items) == 0 {
		return nil
	}

	b.flushing = true
	defer func() {
		b.flushing = false
		b.reset()
	}()

	b.logger.Debug("flushing batch",
		log.Int("items", len(b.items)),
		log.Int("estimate", b.size),
	)
	report, err := b.exec.Execute(ctx, slices.Clone(b.items))
	if err != nil {
		return err
	}

	b.logger.Debug("flushed batch",
		log.Int("attempts", report.Attempts),
		log.Int("delivered", len(report.Delivered)),
		log.Int("dropped", len(report.Dropped)),
	)
	return nil
}

// Close flushes any pending items and rejects further adds.
// Calling Close more than once is a no-op.
func (b *Buffer) Close(ctx context.Context) error {
	if b.closed {
		return nil
	}
	if b.flushing {
		return domain.ErrFlushInProgress
	}
	b.closed = true
	return b.Flush(ctx)
}

// Len returns the number of pending items.
func (b *Buffer) Len() int {
	return len(b.items)
}

// SizeEstimate returns the running size estimate of the pending items.
func (b *Buffer) SizeEstimate() int {
	return b.size
}

// Pending returns a copy of the pending items in insertion order.
func (b *Buffer) Pending() []domain.Item {
	return slices.Clone(b.items)
}

// Closed reports whether Close has been called.
func (b *Buffer) Closed() bool {
	return b.closed
}

func (b *Buffer) reset() {
	clear(b.items)
	b.items = b.items[:0]
	clear(b.ids)
	b.size = 0
}
