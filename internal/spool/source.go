package spool

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/sqsbatch/internal/domain"
	"github.com/bft-labs/sqsbatch/pkg/log"
)

// RecordError reports a line that was skipped.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Handler receives each decoded item.
type Handler func(ctx context.Context, item domain.Item) error

// Source decodes JSON-lines records from a reader.
//
// In tail mode an unterminated last line is held back until its newline
// arrives; otherwise it is decoded at EOF.
type Source struct {
	reader  *bufio.Reader
	tail    bool
	partial []byte
	line    int
}

// NewSource reads records from r.
func NewSource(r io.Reader) *Source {
	return &Source{reader: bufio.NewReaderSize(r, 64*1024)}
}

// newTailSource reads records from a file that may still be growing.
func newTailSource(r io.Reader) *Source {
	s := NewSource(r)
	s.tail = true
	return s
}

// Next returns the next item. It returns io.EOF when no complete line is
// available and a *RecordError for a line that does not decode.
func (s *Source) Next() (domain.Item, error) {
	for {
		chunk, err := s.reader.ReadBytes('\n')
		if len(chunk) > 0 {
			s.partial = append(s.partial, chunk...)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return domain.Item{}, err
		}
		complete := err == nil
		if !complete && (s.tail || len(s.partial) == 0) {
			return domain.Item{}, io.EOF
		}

		raw := bytes.TrimSpace(s.partial)
		s.partial = s.partial[:0]
		s.line++
		if len(raw) == 0 {
			if !complete {
				return domain.Item{}, io.EOF
			}
			continue
		}
		return s.decode(raw)
	}
}

// Line returns the number of lines consumed so far.
func (s *Source) Line() int {
	return s.line
}

func (s *Source) decode(raw []byte) (domain.Item, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Item{}, &RecordError{Line: s.line, Err: fmt.Errorf("%w: %v", ErrBadRecord, err)}
	}
	item, err := rec.Item()
	if err != nil {
		return domain.Item{}, &RecordError{Line: s.line, Err: err}
	}
	return item, nil
}

// Drain passes every available item to handle. Undecodable lines are logged
// and skipped. It stops at io.EOF, at the first handler error, or when ctx
// is done, and returns the number of items handled.
func Drain(ctx context.Context, src *Source, handle Handler, logger log.Logger) (int, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		item, err := src.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		var recErr *RecordError
		if errors.As(err, &recErr) {
			logger.Warn("skipping record", log.Int("line", recErr.Line), log.Err(recErr.Err))
			continue
		}
		if err != nil {
			return n, fmt.Errorf("read records: %w", err)
		}

		if err := handle(ctx, item); err != nil {
			return n, err
		}
		n++
	}
}
