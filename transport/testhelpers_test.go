package transport

import (
	"context"
	nethttp "net/http"

	"github.com/astrox/wallet-transport-go/logger"
)

// newTestLogger returns a quiet logger for tests
func newTestLogger() logger.Logger {
	return logger.New("disabled", false)
}

func statusResponse(code int) *Response {
	return &Response{
		StatusCode: code,
		Status:     nethttp.StatusText(code),
		Body:       []byte("response body"),
	}
}

// stubPrimitive always answers with the given status code
func stubPrimitive(code int) Primitive {
	return func(_ context.Context, _ *Request) (*Response, error) {
		return statusResponse(code), nil
	}
}

// scriptedPrimitive answers with the scripted status codes in order,
// repeating the last one, and counts calls.
type scriptedPrimitive struct {
	codes []int
	calls int
	last  *Request
}

func (s *scriptedPrimitive) primitive(_ context.Context, req *Request) (*Response, error) {
	idx := s.calls
	if idx >= len(s.codes) {
		idx = len(s.codes) - 1
	}
	s.calls++
	s.last = req
	return statusResponse(s.codes[idx]), nil
}
