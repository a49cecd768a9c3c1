package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestWithBreakerPassesThroughSuccess(t *testing.T) {
	p := WithBreaker(stubPrimitive(200), gobreaker.Settings{Name: "test"})

	resp, err := p(context.Background(), &Request{URL: testHost})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestWithBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	failing := func(_ context.Context, _ *Request) (*Response, error) {
		calls++
		return nil, errors.New("down")
	}

	p := WithBreaker(failing, gobreaker.Settings{
		Name: "test",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := p(ctx, &Request{URL: testHost})
		require.Error(t, err)
	}

	// once open, exchanges fail fast without reaching the primitive
	assert.Equal(t, 2, calls)
}

func TestWithRateLimitAdmitsWithinLimit(t *testing.T) {
	p := WithRateLimit(stubPrimitive(200), rate.NewLimiter(rate.Inf, 1))

	resp, err := p(context.Background(), &Request{URL: testHost})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestWithRateLimitHonorsContextCancellation(t *testing.T) {
	// a limiter that can never admit makes Wait return the context error
	p := WithRateLimit(stubPrimitive(200), rate.NewLimiter(rate.Every(time.Hour), 1))

	ctx := context.Background()
	_, err := p(ctx, &Request{URL: testHost}) // consumes the single burst token
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p(cancelled, &Request{URL: testHost})
	require.Error(t, err)
}
