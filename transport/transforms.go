package transport

import (
	"context"

	"github.com/google/uuid"
)

// HeaderXRequestID is the standard header name for request correlation
const HeaderXRequestID = "X-Request-ID"

// requestIDTransform stamps a correlation ID header on call requests
type requestIDTransform struct {
	header   string
	priority int
	newID    func() string
}

// RequestIDTransform creates a transform that adds a request ID header when
// none is present. An empty header name falls back to HeaderXRequestID.
func RequestIDTransform(header string, priority int) Transform {
	if header == "" {
		header = HeaderXRequestID
	}
	return &requestIDTransform{
		header:   header,
		priority: priority,
		newID:    func() string { return uuid.New().String() },
	}
}

func (t *requestIDTransform) Priority() int { return t.priority }

func (t *requestIDTransform) Apply(_ context.Context, env *CallEnvelope) (*CallEnvelope, error) {
	if env.Headers[t.header] != "" {
		return nil, nil
	}
	next := env.Clone()
	next.Headers[t.header] = t.newID()
	return next, nil
}
