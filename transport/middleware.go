package transport

import (
	"context"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Primitive middleware. These decorate the exchange itself, outside the
// retry loop: the executor still owns the budget, and a failure produced
// here is a TransportFailure, never retried.

// WithBreaker wraps a primitive in a circuit breaker. Once the breaker
// opens, exchanges fail fast without reaching the network.
func WithBreaker(p Primitive, settings gobreaker.Settings) Primitive {
	cb := gobreaker.NewCircuitBreaker(settings)
	return func(ctx context.Context, req *Request) (*Response, error) {
		result, err := cb.Execute(func() (any, error) {
			return p(ctx, req)
		})
		if err != nil {
			return nil, err
		}
		return result.(*Response), nil
	}
}

// WithRateLimit wraps a primitive so each exchange waits for limiter
// admission before hitting the network.
func WithRateLimit(p Primitive, limiter *rate.Limiter) Primitive {
	return func(ctx context.Context, req *Request) (*Response, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return p(ctx, req)
	}
}
