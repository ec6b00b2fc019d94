package app

import (
	"context"
	"errors"
)

// WithBuffer runs fn with b and closes b on every way out of fn, so pending
// items are flushed exactly once even when fn returns an error or panics.
//
// fn's error and the closing flush's error are both returned, joined in that
// order; neither hides the other. During a panic the flush still runs but its
// error is lost as the panic keeps unwinding.
func WithBuffer(ctx context.Context, b *Buffer, fn func(*Buffer) error) (err error) {
	defer func() {
		if cerr := b.Close(ctx); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(b)
}
