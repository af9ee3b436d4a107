package goodreads

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// MinRequestInterval is the minimum spacing between two outbound requests
const MinRequestInterval = time.Second

// Clock abstracts time for the rate limiter
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Limiter keeps at least MinRequestInterval between requests issued through it.
// It is safe for concurrent use: each caller reserves its own slot, so two
// callers can never observe the same "last request" time.
type Limiter struct {
	limiter *rate.Limiter
	clock   Clock
}

// NewLimiter creates a limiter. A nil clock uses the wall clock.
func NewLimiter(clock Clock) *Limiter {
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(MinRequestInterval), 1),
		clock:   clock,
	}
}

// Wait blocks until the caller may issue a request and returns how long it
// waited. Slots are reserved from the time of the call, so back-to-back callers
// are spaced exactly MinRequestInterval apart without drift.
func (l *Limiter) Wait(ctx context.Context) (time.Duration, error) {
	now := l.clock.Now()
	r := l.limiter.ReserveN(now, 1)
	if !r.OK() {
		return 0, fmt.Errorf("rate limiter refused reservation")
	}

	delay := r.DelayFrom(now)
	if delay <= 0 {
		return 0, nil
	}

	if err := l.clock.Sleep(ctx, delay); err != nil {
		r.CancelAt(l.clock.Now())
		return 0, err
	}
	return delay, nil
}
