package rate

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outbound probes.
type Limiter interface {
	// Wait blocks until one more probe may be sent or ctx is done.
	Wait(ctx context.Context) error
	Limit() float64
}

type rlimiter struct {
	limiter *rate.Limiter
}

// NewLimiter allows r probes per second with bursts of up to b probes.
// A non-positive r disables pacing and yields nil.
func NewLimiter(r float64, b int) Limiter {
	if r <= 0 {
		return nil
	}
	if b <= 0 {
		b = 1
	}
	return &rlimiter{
		limiter: rate.NewLimiter(rate.Limit(r), b),
	}
}

func (l *rlimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

func (l *rlimiter) Limit() float64 {
	return float64(l.limiter.Limit())
}
