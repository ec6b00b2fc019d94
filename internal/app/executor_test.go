package app

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bft-labs/sqsbatch/internal/domain"
)

func items(ids ...string) []domain.Item {
	out := make([]domain.Item, len(ids))
	for i, id := range ids {
		out[i] = domain.Item{ID: id, Body: []byte("body-" + id)}
	}
	return out
}

func TestExecutor_AllSucceed(t *testing.T) {
	sender := &fakeSender{}
	obs := &recordingObserver{}
	exec := NewExecutor(testConfig(), sender, &fakeSleeper{}, nil, obs)

	report, err := exec.Execute(context.Background(), items("a", "b"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if report.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", report.Attempts)
	}
	if !reflect.DeepEqual(obs.successes, [][]string{{"a", "b"}}) {
		t.Errorf("successes = %v, want [[a b]]", obs.successes)
	}
	if len(obs.flushes) != 1 {
		t.Errorf("OnFlush called %d times, want 1", len(obs.flushes))
	}
}

func TestExecutor_PartialFailureThenSuccess(t *testing.T) {
	sender := &fakeSender{
		respond: func(call int, _ []domain.Item) (domain.SendResult, error) {
			if call == 1 {
				return failIDs("x"), nil
			}
			return domain.SendResult{}, nil
		},
	}
	obs := &recordingObserver{}
	exec := NewExecutor(testConfig(), sender, &fakeSleeper{}, nil, obs)

	report, err := exec.Execute(context.Background(), items("a", "x", "b"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := [][]string{{"a", "b"}, {"x"}}
	if !reflect.DeepEqual(obs.successes, want) {
		t.Errorf("successes = %v, want %v", obs.successes, want)
	}
	if len(sender.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(sender.calls))
	}
	if got := sender.calls[1].ids(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("retry sent %v, want only [x]", got)
	}
	if !reflect.DeepEqual(report.Delivered, []string{"a", "b", "x"}) {
		t.Errorf("Delivered = %v", report.Delivered)
	}
}

func TestExecutor_RetriesOnlyFailedSubsetInOrder(t *testing.T) {
	sender := &fakeSender{
		respond: func(call int, _ []domain.Item) (domain.SendResult, error) {
			switch call {
			case 1:
				return failIDs("d", "b"), nil
			case 2:
				return failIDs("d"), nil
			}
			return domain.SendResult{}, nil
		},
	}
	exec := NewExecutor(testConfig(), sender, &fakeSleeper{}, nil)

	if _, err := exec.Execute(context.Background(), items("a", "b", "c", "d")); err != nil {
		t.Fatal(err)
	}

	wantCalls := [][]string{{"a", "b", "c", "d"}, {"b", "d"}, {"d"}}
	for i, want := range wantCalls {
		if got := sender.calls[i].ids(); !reflect.DeepEqual(got, want) {
			t.Errorf("call %d sent %v, want %v", i+1, got, want)
		}
	}
}

func TestExecutor_BackoffSchedule(t *testing.T) {
	sender := &fakeSender{
		respond: func(int, []domain.Item) (domain.SendResult, error) {
			return failIDs("x"), nil
		},
	}
	cfg := testConfig()
	cfg.BackoffFactor = 100 * time.Millisecond
	cfg.MaxRetries = 3
	sleeper := &fakeSleeper{}
	obs := &recordingObserver{}
	exec := NewExecutor(cfg, sender, sleeper, nil, obs)

	report, err := exec.Execute(context.Background(), items("x"))
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil (silent drop)", err)
	}

	wantSleeps := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
	if !reflect.DeepEqual(sleeper.sleeps, wantSleeps) {
		t.Errorf("sleeps = %v, want %v", sleeper.sleeps, wantSleeps)
	}
	if len(sender.calls) != 4 {
		t.Errorf("calls = %d, want 4", len(sender.calls))
	}
	if report.Attempts != 4 || len(report.Dropped) != 1 {
		t.Errorf("report = %+v, want 4 attempts and 1 dropped", report)
	}
	if len(obs.successes) != 0 {
		t.Errorf("OnSuccess called for dropped item: %v", obs.successes)
	}
	if len(obs.dropped) != 1 || obs.dropped[0][0].Item.ID != "x" || obs.dropped[0][0].Code != "InternalError" {
		t.Errorf("dropped = %+v, want x with its failure code", obs.dropped)
	}
}

func TestExecutor_TransportErrorRetriesImmediately(t *testing.T) {
	sender := &fakeSender{
		respond: func(call int, _ []domain.Item) (domain.SendResult, error) {
			switch call {
			case 1:
				return domain.SendResult{}, errors.New("timeout")
			case 2:
				return failIDs("b"), nil
			}
			return domain.SendResult{}, nil
		},
	}
	cfg := testConfig()
	cfg.BackoffFactor = time.Second
	sleeper := &fakeSleeper{}
	obs := &recordingObserver{}
	exec := NewExecutor(cfg, sender, sleeper, nil, obs)

	if _, err := exec.Execute(context.Background(), items("a", "b")); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Attempt 1 errored (no pause); attempt 2 partially failed and pauses
	// with the exponent of its own attempt index.
	if want := []time.Duration{2 * time.Second}; !reflect.DeepEqual(sleeper.sleeps, want) {
		t.Errorf("sleeps = %v, want %v", sleeper.sleeps, want)
	}
	if got := sender.calls[1].ids(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("retry after transport error sent %v, want full batch", got)
	}
	if want := [][]string{{"a"}, {"b"}}; !reflect.DeepEqual(obs.successes, want) {
		t.Errorf("successes = %v, want %v", obs.successes, want)
	}
}

func TestExecutor_TransportErrorOnLastAttemptIsFatal(t *testing.T) {
	boom := errors.New("access denied")
	sender := &fakeSender{
		respond: func(int, []domain.Item) (domain.SendResult, error) {
			return domain.SendResult{}, boom
		},
	}
	cfg := testConfig()
	cfg.MaxRetries = 2
	obs := &recordingObserver{}
	exec := NewExecutor(cfg, sender, &fakeSleeper{}, nil, obs)

	_, err := exec.Execute(context.Background(), items("a"))
	if !errors.Is(err, boom) {
		t.Fatalf("Execute() error = %v, want %v", err, boom)
	}
	if len(sender.calls) != 3 {
		t.Errorf("calls = %d, want 3", len(sender.calls))
	}
	if len(obs.flushErrs) != 1 || !errors.Is(obs.flushErrs[0], boom) {
		t.Errorf("OnFlush errors = %v", obs.flushErrs)
	}
}

func TestExecutor_FailOnDrop(t *testing.T) {
	sender := &fakeSender{
		respond: func(int, []domain.Item) (domain.SendResult, error) {
			return failIDs("b"), nil
		},
	}
	cfg := testConfig()
	cfg.MaxRetries = 1
	cfg.FailOnDrop = true
	exec := NewExecutor(cfg, sender, &fakeSleeper{}, nil)

	_, err := exec.Execute(context.Background(), items("a", "b"))
	if !errors.Is(err, domain.ErrItemsDropped) {
		t.Fatalf("Execute() error = %v, want ErrItemsDropped", err)
	}
	var dropErr *domain.DropError
	if !errors.As(err, &dropErr) {
		t.Fatalf("error %T is not *DropError", err)
	}
	if len(dropErr.Dropped) != 1 || dropErr.Dropped[0].Item.ID != "b" {
		t.Errorf("Dropped = %+v, want [b]", dropErr.Dropped)
	}
}

func TestExecutor_ZeroRetriesSingleAttempt(t *testing.T) {
	sender := &fakeSender{
		respond: func(int, []domain.Item) (domain.SendResult, error) {
			return failIDs("a"), nil
		},
	}
	cfg := testConfig()
	cfg.MaxRetries = 0
	sleeper := &fakeSleeper{}
	exec := NewExecutor(cfg, sender, sleeper, nil)

	if _, err := exec.Execute(context.Background(), items("a")); err != nil {
		t.Fatal(err)
	}
	if len(sender.calls) != 1 || len(sleeper.sleeps) != 0 {
		t.Errorf("calls = %d sleeps = %d, want 1, 0", len(sender.calls), len(sleeper.sleeps))
	}
}

func TestExecutor_CancelDuringBackoff(t *testing.T) {
	sender := &fakeSender{
		respond: func(int, []domain.Item) (domain.SendResult, error) {
			return failIDs("a"), nil
		},
	}
	cfg := testConfig()
	cfg.BackoffFactor = time.Hour
	exec := NewExecutor(cfg, sender, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exec.Execute(ctx, items("a"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if len(sender.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(sender.calls))
	}
}

func TestExecutor_EmptyBatch(t *testing.T) {
	sender := &fakeSender{}
	obs := &recordingObserver{}
	exec := NewExecutor(testConfig(), sender, nil, nil, obs)

	if _, err := exec.Execute(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if len(sender.calls) != 0 || len(obs.flushes) != 0 {
		t.Errorf("empty batch reached sender or observers")
	}
}

func TestBackoffDelay(t *testing.T) {
	tests := []struct {
		factor  time.Duration
		attempt int
		want    time.Duration
	}{
		{0, 1, 0},
		{500 * time.Millisecond, 1, 500 * time.Millisecond},
		{500 * time.Millisecond, 2, time.Second},
		{500 * time.Millisecond, 3, 2 * time.Second},
		{time.Second, 0, time.Second},
		{time.Second, 100, time.Duration(1<<63 - 1)},
	}

	for _, tt := range tests {
		if got := backoffDelay(tt.factor, tt.attempt); got != tt.want {
			t.Errorf("backoffDelay(%v, %d) = %v, want %v", tt.factor, tt.attempt, got, tt.want)
		}
	}
}

func TestTimerSleeper(t *testing.T) {
	var s timerSleeper

	if err := s.Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() on cancelled ctx error = %v, want context.Canceled", err)
	}
}
