package app

import (
	"context"
	"reflect"
	"testing"

	"github.com/bft-labs/sqsbatch/internal/domain"
)

func TestAccumulator_CollectsAcrossAttempts(t *testing.T) {
	sender := &fakeSender{
		respond: func(call int, _ []domain.Item) (domain.SendResult, error) {
			switch call {
			case 1:
				return failIDs("b", "c"), nil
			case 2:
				return failIDs("c"), nil
			}
			return failIDs("c"), nil
		},
	}
	cfg := testConfig()
	cfg.MaxRetries = 2
	acc := &Accumulator{}
	var perAttempt [][]string
	exec := NewExecutor(cfg, sender, &fakeSleeper{}, nil,
		acc,
		SuccessFunc(func(ids []string) { perAttempt = append(perAttempt, ids) }),
	)

	if _, err := exec.Execute(context.Background(), items("a", "b", "c")); err != nil {
		t.Fatal(err)
	}

	if got := acc.Delivered(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Delivered() = %v, want [a b]", got)
	}
	if want := [][]string{{"a"}, {"b"}}; !reflect.DeepEqual(perAttempt, want) {
		t.Errorf("per-attempt = %v, want %v", perAttempt, want)
	}
	if d := acc.Dropped(); len(d) != 1 || d[0].Item.ID != "c" {
		t.Errorf("Dropped() = %+v, want [c]", d)
	}

	acc.Reset()
	if len(acc.Delivered()) != 0 || len(acc.Dropped()) != 0 {
		t.Error("Reset() did not clear accumulator")
	}
}
