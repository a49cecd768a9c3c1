// Package restyprov provides a transport primitive backed by resty. It is an
// alternative to the net/http default for callers that already carry a resty
// client; resty's own retrying is disabled so the transport layer's retry
// budget stays the single source of truth.
package restyprov

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/astrox/wallet-transport-go/transport"
)

// Option configures the underlying resty client
type Option func(*resty.Client)

// WithTimeout bounds each exchange made by the primitive
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// WithHeader adds a header sent on every exchange
func WithHeader(key, value string) Option {
	return func(c *resty.Client) {
		c.SetHeader(key, value)
	}
}

// New returns a transport primitive backed by a fresh resty client
func New(opts ...Option) transport.Primitive {
	rc := resty.New().SetTimeout(transport.DefaultTimeout)
	for _, opt := range opts {
		opt(rc)
	}
	return Wrap(rc)
}

// Wrap adapts an existing resty client into a transport primitive. The
// client's retry count is forced to zero.
func Wrap(rc *resty.Client) transport.Primitive {
	rc.SetRetryCount(0)
	return func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		r := rc.R().SetContext(ctx).SetHeaders(req.Headers)
		if req.Body != nil {
			r = r.SetBody(req.Body)
		}

		resp, err := r.Execute(req.Method, req.URL)
		if err != nil {
			return nil, err
		}

		return &transport.Response{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Headers:    resp.Header(),
			Body:       resp.Body(),
		}, nil
	}
}
