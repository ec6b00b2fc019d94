package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the sqsbatch domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("sqsbatch: invalid configuration")

	// ErrInvalidArgument is returned when an item violates a transport
	// precondition (too many attributes, malformed id, bad extra fields).
	// The buffer is left unchanged.
	ErrInvalidArgument = errors.New("sqsbatch: invalid argument")

	// ErrClosed is returned by Add once the buffer has been closed.
	ErrClosed = errors.New("sqsbatch: buffer closed")

	// ErrFlushInProgress is returned when Add, Flush or Close is called on a
	// buffer from inside one of its own flushes, typically by an observer.
	ErrFlushInProgress = errors.New("sqsbatch: flush in progress")

	// ErrItemsDropped is returned (wrapped in a *DropError) when items still
	// fail after the last permitted attempt and Config.FailOnDrop is set.
	ErrItemsDropped = errors.New("sqsbatch: items dropped after final attempt")
)

// DropError reports the items that were still failing after the final attempt.
type DropError struct {
	Dropped []FailedItem
}

func (e *DropError) Error() string {
	return fmt.Sprintf("%v: %d item(s)", ErrItemsDropped, len(e.Dropped))
}

// Unwrap lets errors.Is match ErrItemsDropped.
func (e *DropError) Unwrap() error {
	return ErrItemsDropped
}

// invalidArgf wraps ErrInvalidArgument with call-site detail.
func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// invalidConfigf wraps ErrInvalidConfig with call-site detail.
func invalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
