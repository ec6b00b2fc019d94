package sqsbatch

import (
	"context"
	"fmt"

	"github.com/bft-labs/sqsbatch/internal/adapters/sqs"
	"github.com/bft-labs/sqsbatch/internal/app"
	"github.com/bft-labs/sqsbatch/internal/domain"
	"github.com/bft-labs/sqsbatch/internal/ports"
	"github.com/bft-labs/sqsbatch/pkg/log"
)

type (
	// Config is the buffer configuration.
	Config = domain.Config

	// Buffer accumulates items and sends them in batches.
	Buffer = app.Buffer

	// Item is one message to send.
	Item = domain.Item

	// Attribute is a typed message attribute.
	Attribute = domain.Attribute

	// Extra carries FIFO and delay fields passed through unchanged.
	Extra = domain.Extra

	// FailedItem is an item together with the service's rejection.
	FailedItem = domain.FailedItem

	// FlushReport summarizes one flush.
	FlushReport = domain.FlushReport

	// DropError lists items still failing after the last attempt.
	DropError = domain.DropError

	// SendResult is the per-entry outcome of one batch call.
	SendResult = domain.SendResult

	// Failure is one rejected entry in a SendResult.
	Failure = domain.Failure

	// BatchSender performs one batch call.
	BatchSender = ports.BatchSender

	// SuccessObserver receives delivered ids after each attempt.
	SuccessObserver = ports.SuccessObserver

	// DropObserver receives items given up on.
	DropObserver = ports.DropObserver

	// FlushObserver receives a report when a flush ends.
	FlushObserver = ports.FlushObserver

	// Sleeper pauses between attempts.
	Sleeper = ports.Sleeper

	// Accumulator is an observer collecting delivered and dropped items.
	Accumulator = app.Accumulator

	// SuccessFunc adapts a function to SuccessObserver.
	SuccessFunc = app.SuccessFunc
)

// Errors returned by the buffer. Match them with errors.Is.
var (
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrInvalidArgument = domain.ErrInvalidArgument
	ErrClosed          = domain.ErrClosed
	ErrFlushInProgress = domain.ErrFlushInProgress
	ErrItemsDropped    = domain.ErrItemsDropped
)

// Attribute constructors.
var (
	StringAttribute     = domain.StringAttribute
	NumberAttribute     = domain.NumberAttribute
	BinaryAttribute     = domain.BinaryAttribute
	StringListAttribute = domain.StringListAttribute
	BinaryListAttribute = domain.BinaryListAttribute
)

// DefaultConfig returns a Config with default values. QueueURL must be set.
func DefaultConfig() Config {
	return domain.DefaultConfig()
}

// NewID returns a fresh item id.
func NewID() string {
	return domain.NewID()
}

// NewItem validates and builds an item. An empty id is generated.
func NewItem(id string, body []byte, attrs map[string]Attribute, extra Extra) (Item, error) {
	return domain.NewItem(id, body, attrs, extra)
}

// New creates an empty buffer. Without WithSender it builds an SQS client,
// which resolves credentials but makes no request.
func New(ctx context.Context, cfg Config, opts ...Option) (*Buffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}

	sender := o.sender
	if sender == nil {
		client, err := sqs.NewClient(ctx, o.client)
		if err != nil {
			return nil, fmt.Errorf("create sqs client: %w", err)
		}
		sender = sqs.NewSender(client, o.logger)
	}

	exec := app.NewExecutor(cfg, sender, o.sleeper, o.logger, o.observers...)
	return app.NewBuffer(cfg, exec, o.logger)
}

// Run creates a buffer, passes it to fn and flushes whatever is pending when
// fn returns, even on error or panic. Errors from fn and from the final
// flush are joined.
func Run(ctx context.Context, cfg Config, fn func(*Buffer) error, opts ...Option) error {
	b, err := New(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	return app.WithBuffer(ctx, b, fn)
}
