package sqsbatch

import (
	"github.com/bft-labs/sqsbatch/internal/adapters/sqs"
	"github.com/bft-labs/sqsbatch/internal/app"
	"github.com/bft-labs/sqsbatch/internal/ports"
	"github.com/bft-labs/sqsbatch/pkg/log"
)

// Option configures optional behavior of a Buffer.
type Option func(*options)

type options struct {
	sender    ports.BatchSender
	observers []ports.SuccessObserver
	logger    log.Logger
	sleeper   ports.Sleeper
	client    ClientConfig
}

// ClientConfig describes how the default SQS sender authenticates.
type ClientConfig = sqs.ClientConfig

// WithSender replaces the SQS transport, for tests or custom clients.
func WithSender(sender BatchSender) Option {
	return func(o *options) {
		o.sender = sender
	}
}

// WithObserver registers an observer for delivered ids. Observers that also
// implement DropObserver or FlushObserver receive those events too.
// It may be given more than once.
func WithObserver(observer SuccessObserver) Option {
	return func(o *options) {
		o.observers = append(o.observers, observer)
	}
}

// WithDropObserver registers an observer for items dropped after the last
// attempt. It may be given more than once.
func WithDropObserver(observer DropObserver) Option {
	return func(o *options) {
		o.observers = append(o.observers, app.ListenDrops(observer))
	}
}

// WithFlushObserver registers an observer called once per non-empty flush.
// It may be given more than once.
func WithFlushObserver(observer FlushObserver) Option {
	return func(o *options) {
		o.observers = append(o.observers, app.ListenFlushes(observer))
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSleeper replaces the backoff clock.
func WithSleeper(sleeper Sleeper) Option {
	return func(o *options) {
		o.sleeper = sleeper
	}
}

// WithClientConfig sets region, endpoint and credentials for the default
// SQS sender. It has no effect together with WithSender.
func WithClientConfig(c ClientConfig) Option {
	return func(o *options) {
		o.client = c
	}
}
