// Package sqsbatch batches messages for SQS SendMessageBatch with
// per-entry retries.
//
// Example usage:
//
//	cfg := sqsbatch.DefaultConfig()
//	cfg.QueueURL = "https://sqs.eu-west-1.amazonaws.com/123456789012/events"
//	err := sqsbatch.Run(ctx, cfg, func(b *sqsbatch.Buffer) error {
//	    return b.Add(ctx, sqsbatch.Item{Body: []byte("hello")})
//	})
//
// The full API, including options and observers, lives in
// github.com/bft-labs/sqsbatch/pkg/sqsbatch.
package sqsbatch

import (
	"context"

	"github.com/bft-labs/sqsbatch/pkg/sqsbatch"
)

// Config holds the buffer configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = sqsbatch.Config

// Buffer accumulates items and sends them in batches.
type Buffer = sqsbatch.Buffer

// Item is one message to send.
type Item = sqsbatch.Item

// Option configures optional behavior of a Buffer.
type Option = sqsbatch.Option

// Run creates a buffer for cfg, hands it to fn and flushes what is pending
// when fn returns.
func Run(ctx context.Context, cfg Config, fn func(*Buffer) error, opts ...Option) error {
	return sqsbatch.Run(ctx, cfg, fn, opts...)
}

// DefaultConfig returns a Config with sensible default values.
// QueueURL must be set before calling Run.
func DefaultConfig() Config {
	return sqsbatch.DefaultConfig()
}
