package ai

import (
	"context"

	"golang.org/x/time/rate"

	"hermes/pkg/errors"
)

// Limiter throttles outbound completion calls per provider.
type Limiter struct {
	limiter *rate.Limiter
	name    ProviderName
}

// NewLimiter creates a rate limiter allowing reqPerMinute requests with the
// given burst. A non-positive burst defaults to 10% of the per-minute limit.
func NewLimiter(name ProviderName, reqPerMinute, burst int) *Limiter {
	if reqPerMinute <= 0 {
		reqPerMinute = 60
	}
	if burst <= 0 {
		burst = reqPerMinute / 10
		if burst < 1 {
			burst = 1
		}
	}

	rps := float64(reqPerMinute) / 60.0

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    name,
	}
}

// Wait blocks until the rate limiter allows the request
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(errors.ErrRateLimitExceeded, "provider %s: %v", l.name, err)
	}
	return nil
}

// Allow checks if a request is allowed without blocking
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
