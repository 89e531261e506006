package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func testPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		DelayFactor: 2,
	}
}

func TestRunRetriesUntilSuccess(t *testing.T) {
	exec := New(testPolicy())

	errFlaky := errors.New("flaky")
	attempts := 0
	err := exec.Run(context.Background(), "publish", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errFlaky
		}
		return nil
	}, func(err error) Outcome {
		return Outcome{Retryable: errors.Is(err, errFlaky), CountsAsFailure: true}
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestRunStopsOnNonRetryableError(t *testing.T) {
	exec := New(testPolicy())

	errBadInput := errors.New("bad input")
	attempts := 0
	err := exec.Run(context.Background(), "publish", func(context.Context) error {
		attempts++
		return errBadInput
	}, func(error) Outcome {
		return Outcome{Retryable: false, CountsAsFailure: false}
	})
	if !errors.Is(err, errBadInput) {
		t.Fatalf("err = %v, want %v", err, errBadInput)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestRunOpensBreakerAfterRepeatedFailures(t *testing.T) {
	exec := New(Policy{
		MaxAttempts:         1,
		BaseDelay:           time.Millisecond,
		MaxDelay:            time.Millisecond,
		DelayFactor:         2,
		BreakerEnabled:      true,
		BreakerMinCalls:     2,
		BreakerFailureRatio: 0.5,
		BreakerCooldown:     50 * time.Millisecond,
		BreakerProbeCalls:   1,
	})

	errDown := errors.New("broker down")
	classify := func(error) Outcome {
		return Outcome{Retryable: false, CountsAsFailure: true}
	}

	for i := 0; i < 2; i++ {
		err := exec.Run(context.Background(), "publish", func(context.Context) error {
			return errDown
		}, classify)
		if !errors.Is(err, errDown) {
			t.Fatalf("call %d: err = %v, want %v", i, err, errDown)
		}
	}

	err := exec.Run(context.Background(), "publish", func(context.Context) error {
		t.Fatalf("open breaker must not invoke the call")
		return nil
	}, classify)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want open breaker", err)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	exec := New(testPolicy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := exec.Run(ctx, "publish", func(context.Context) error {
		t.Fatalf("cancelled context must not invoke the call")
		return nil
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
