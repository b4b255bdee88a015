package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

// syntheticLimiter rewires a Limiter onto a fake clock: sleeps advance the
// clock instead of blocking.
func syntheticLimiter(perSecond, perTwoMinutes int) (*Limiter, *time.Time) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(perSecond, perTwoMinutes)
	l.now = func() time.Time { return now }
	l.sleep = func(_ context.Context, d time.Duration) error {
		now = now.Add(d)
		return nil
	}
	return l, &now
}

func TestSoftThrottleCapsDispatchPerSecond(t *testing.T) {
	const perSecond = 20
	l, now := syntheticLimiter(perSecond, 10000)

	start := *now
	var dispatched []time.Time
	for i := 0; i < 2*perSecond; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire %d returned error: %v", i, err)
		}
		dispatched = append(dispatched, *now)
	}

	// slide a 1-second window over every dispatch time
	for _, windowStart := range dispatched {
		count := 0
		for _, ts := range dispatched {
			if !ts.Before(windowStart) && ts.Before(windowStart.Add(time.Second)) {
				count++
			}
		}
		if count > perSecond {
			t.Fatalf("window starting %v dispatched %d requests, cap is %d",
				windowStart.Sub(start), count, perSecond)
		}
	}
}

func TestHardThrottleFailsFast(t *testing.T) {
	const perTwoMinutes = 100
	l, _ := syntheticLimiter(1000, perTwoMinutes)

	for i := 0; i < perTwoMinutes; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire %d returned error: %v", i, err)
		}
	}

	err := l.Acquire(context.Background())
	if err == nil {
		t.Fatal("Acquire beyond two-minute budget succeeded, want rate-limited error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindRateLimited {
		t.Fatalf("error = %v, want KindRateLimited", err)
	}
	if apiErr.RetryAfter <= 0 || apiErr.RetryAfter > 2*time.Minute {
		t.Errorf("RetryAfter = %v, want within (0, 2m]", apiErr.RetryAfter)
	}
}

func TestAbortedAcquireReleasesWindowSlot(t *testing.T) {
	l, _ := syntheticLimiter(1, 2)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire returned error: %v", err)
	}

	// the second acquire has to wait on the soft throttle; abort the wait
	advance := l.sleep
	l.sleep = func(context.Context, time.Duration) error { return context.Canceled }
	if err := l.Acquire(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("aborted Acquire error = %v, want context.Canceled", err)
	}
	l.sleep = advance

	// the aborted attempt must not have consumed the two-minute budget
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire after abort returned error: %v", err)
	}
	if err := l.Acquire(context.Background()); KindOf(err) != KindRateLimited {
		t.Fatalf("Acquire beyond budget error = %v, want KindRateLimited", err)
	}
}

func TestHardThrottleWindowReopens(t *testing.T) {
	l, now := syntheticLimiter(1000, 2)

	for i := 0; i < 2; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire %d returned error: %v", i, err)
		}
	}
	if err := l.Acquire(context.Background()); KindOf(err) != KindRateLimited {
		t.Fatalf("expected rate-limited error, got %v", err)
	}

	*now = now.Add(2 * time.Minute)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire after window reopened returned error: %v", err)
	}
}
