package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter guards the provider's per-key request budget with two shared
// windows. The 1-second window blocks the caller until capacity frees up
// (soft throttle); the 120-second window fails fast with a rate-limited
// error (hard throttle), since parking a worker for minutes would starve
// the pool. Both windows are shared by every concurrent caller.
type Limiter struct {
	perSecond *rate.Limiter

	mu          sync.Mutex
	windowSpan  time.Duration
	windowCap   int
	windowStart time.Time
	windowCount int

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func NewLimiter(perSecond, perTwoMinutes int) *Limiter {
	return &Limiter{
		perSecond:  rate.NewLimiter(rate.Limit(perSecond), 1),
		windowSpan: 2 * time.Minute,
		windowCap:  perTwoMinutes,
		now:        time.Now,
		sleep:      sleepCtx,
	}
}

// Acquire consumes one request slot, blocking on the soft throttle as
// needed. It returns a rate-limited error when the two-minute budget is
// spent, carrying the time until the window reopens.
func (l *Limiter) Acquire(ctx context.Context) error {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.windowStart) >= l.windowSpan {
		l.windowStart = now
		l.windowCount = 0
	}
	if l.windowCount >= l.windowCap {
		reopen := l.windowSpan - now.Sub(l.windowStart)
		l.mu.Unlock()
		return &Error{
			Kind:       KindRateLimited,
			RetryAfter: reopen,
			Message:    fmt.Sprintf("two-minute request budget of %d spent", l.windowCap),
		}
	}
	l.windowCount++
	l.mu.Unlock()

	r := l.perSecond.ReserveN(now, 1)
	if !r.OK() {
		return &Error{Kind: KindRateLimited, Message: "per-second reservation rejected"}
	}
	if delay := r.DelayFrom(now); delay > 0 {
		if err := l.sleep(ctx, delay); err != nil {
			r.CancelAt(now)
			l.release()
			return err
		}
	}
	return nil
}

// release returns an unused window slot after an aborted acquire. The slot
// is only given back while the window it was taken from is still open.
func (l *Limiter) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.now().Sub(l.windowStart) < l.windowSpan && l.windowCount > 0 {
		l.windowCount--
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
