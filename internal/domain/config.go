package domain

import "time"

// Batch bounds imposed by the queue service.
const (
	MinBatchCount = 1
	MaxBatchCount = 10
	MinBatchBytes = 1
	MaxBatchBytes = 1_048_576
)

// Default configuration values.
const (
	DefaultMaxRetries    = 3
	DefaultBackoffFactor = 500 * time.Millisecond
)

// Config is the buffer configuration. It is not modified after the buffer is built.
type Config struct {
	// QueueURL identifies the destination queue. Required.
	QueueURL string

	// MaxBatchCount is the item count that forces a flush, 1-10.
	MaxBatchCount int

	// MaxBatchSizeBytes is the estimated payload that forces a flush, 1-1MiB.
	MaxBatchSizeBytes int

	// MaxRetries is the number of attempts after the first. Zero disables retries.
	MaxRetries int

	// BackoffFactor is the base of the exponential pause between attempts
	// that ended with a partial failure: factor * 2^(attempt-1).
	BackoffFactor time.Duration

	// FailOnDrop makes Flush return a *DropError when items still fail after
	// the last attempt. By default they are logged and reported to observers only.
	FailOnDrop bool
}

// DefaultConfig returns a Config with default values. QueueURL must still be set.
func DefaultConfig() Config {
	return Config{
		MaxBatchCount:     MaxBatchCount,
		MaxBatchSizeBytes: MaxBatchBytes,
		MaxRetries:        DefaultMaxRetries,
		BackoffFactor:     DefaultBackoffFactor,
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.QueueURL == "" {
		return invalidConfigf("queue url is required")
	}
	if c.MaxBatchCount < MinBatchCount || c.MaxBatchCount > MaxBatchCount {
		return invalidConfigf("max batch count must be between %d and %d, got %d",
			MinBatchCount, MaxBatchCount, c.MaxBatchCount)
	}
	if c.MaxBatchSizeBytes < MinBatchBytes || c.MaxBatchSizeBytes > MaxBatchBytes {
		return invalidConfigf("max batch size must be between %d and %d bytes, got %d",
			MinBatchBytes, MaxBatchBytes, c.MaxBatchSizeBytes)
	}
	if c.MaxRetries < 0 {
		return invalidConfigf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.BackoffFactor < 0 {
		return invalidConfigf("backoff factor must not be negative, got %v", c.BackoffFactor)
	}
	return nil
}

// Attempts returns the total number of attempts a flush may make.
func (c Config) Attempts() int {
	return c.MaxRetries + 1
}
