// Package transport implements the resilient HTTP transport used by the
// wallet plugin to talk to backend and indexer services. It covers host
// resolution, a priority-ordered request transform pipeline, credential
// injection, and a bounded retry loop around a pluggable transport primitive.
package transport

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/astrox/wallet-transport-go/logger"
)

const (
	// HeaderContentType is the content-type header name set on call requests
	HeaderContentType = "Content-Type"
	// HeaderAuthorization is the header carrying the Basic credential pair
	HeaderAuthorization = "Authorization"
	// ContentTypeJSON is the content type used for call request bodies
	ContentTypeJSON = "application/json"

	// DefaultRetryBudget is the number of retries allowed after the first
	// attempt when the configuration does not set one. A budget of exactly
	// UnboundedRetries disables the cap entirely.
	DefaultRetryBudget = 3
	// UnboundedRetries is the sentinel retry budget that never caps retrying
	UnboundedRetries = 0
)

// Primitive performs one network request/response exchange. It is the only
// suspension point of a call; everything around it is synchronous.
type Primitive func(ctx context.Context, req *Request) (*Response, error)

// Request is the transport-ready form of a logical request
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response is the result of one exchange. Body is a captured copy, so it
// stays consumable after the retry loop has inspected it.
type Response struct {
	StatusCode int
	Status     string
	Headers    nethttp.Header
	Body       []byte
}

// Ok reports whether the response is a transport-level success (2xx)
func (r *Response) Ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// CallEnvelope is the mutable form of a call-style (state-mutating) request
// threaded through the transform pipeline before serialization. Plain GET
// reads never pass through the pipeline.
type CallEnvelope struct {
	Endpoint string
	Headers  map[string]string
	Body     any
}

// Clone returns a shallow copy with its own header map, so a transform can
// replace headers without aliasing the previous step's envelope.
func (e *CallEnvelope) Clone() *CallEnvelope {
	headers := make(map[string]string, len(e.Headers))
	for k, v := range e.Headers {
		headers[k] = v
	}
	return &CallEnvelope{Endpoint: e.Endpoint, Headers: headers, Body: e.Body}
}

// Transform is a request-mutating pipeline step. Apply may return nil to
// signal "no change"; the pipeline then carries the input envelope forward.
type Transform interface {
	Priority() int
	Apply(ctx context.Context, env *CallEnvelope) (*CallEnvelope, error)
}

// TransformFunc adapts a bare function into a Transform with priority 0
type TransformFunc func(ctx context.Context, env *CallEnvelope) (*CallEnvelope, error)

// Priority implements Transform
func (TransformFunc) Priority() int { return 0 }

// Apply implements Transform
func (f TransformFunc) Apply(ctx context.Context, env *CallEnvelope) (*CallEnvelope, error) {
	return f(ctx, env)
}

// Param is one query parameter of a plain GET read
type Param struct {
	Key   string
	Value any
}

// Params is an ordered parameter list. Order is preserved exactly as the
// caller supplied it when building the query string.
type Params []Param

// P is a convenience constructor for a single parameter
func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

func (p Param) stringValue() string {
	return fmt.Sprint(p.Value)
}

// Credentials is the static Basic-auth pair injected into call requests.
// Password may be empty.
type Credentials struct {
	Name     string
	Password string
}

// Config holds the client configuration
type Config struct {
	// Host is an explicit origin ("https://api.astrox.app") or a bare host
	// ("api.astrox.app"). Optional when AmbientOrigin is set.
	Host string
	// AmbientOrigin is the origin of the hosting page. It supplies the
	// scheme for a bare Host and is the fallback when Host is empty.
	AmbientOrigin string
	// Credentials, when set, are injected as a Basic Authorization header
	// on call requests.
	Credentials *Credentials
	// RetryBudget is the number of retries after the first attempt. Nil
	// means DefaultRetryBudget; an explicit UnboundedRetries (0) disables
	// the cap. Negative values are invalid.
	RetryBudget *int
	// PlainOptions are extra headers merged into plain GET requests. They
	// never override headers the builder sets itself.
	PlainOptions map[string]string
	// CallOptions are extra headers merged into call POST requests, with
	// the same precedence rule as PlainOptions.
	CallOptions map[string]string
	// Primitive overrides the transport primitive. When nil the provider
	// chain is probed.
	Primitive Primitive
	// Logger receives request/retry logging. Defaults to a plain zerolog
	// logger when nil.
	Logger logger.Logger
}

// Retries is a convenience for populating Config.RetryBudget
func Retries(n int) *int {
	return &n
}
