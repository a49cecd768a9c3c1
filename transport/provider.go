package transport

import (
	"bytes"
	"context"
	"io"
	nethttp "net/http"
	"sync"
	"time"
)

// DefaultTimeout bounds one exchange made by the net/http-backed primitive
const DefaultTimeout = 30 * time.Second

// provider is one probe in the default transport discovery chain. Probe
// returns nil when the provider has nothing to offer in this environment.
type provider struct {
	name  string
	probe func() Primitive
}

var (
	providerMu sync.Mutex

	// registered holds a process-wide default primitive, if any
	registered Primitive

	// providerChain is probed in order when Config.Primitive is nil.
	// Swappable so tests can simulate an environment with no transport.
	providerChain = []provider{
		{name: "registered default", probe: registeredPrimitive},
		{name: "net/http", probe: netHTTPPrimitive},
	}
)

// RegisterPrimitive installs a process-wide default transport primitive,
// consulted before the net/http fallback. Passing nil clears it.
func RegisterPrimitive(p Primitive) {
	providerMu.Lock()
	defer providerMu.Unlock()
	registered = p
}

func registeredPrimitive() Primitive {
	return registered
}

func netHTTPPrimitive() Primitive {
	return HTTPPrimitive(&nethttp.Client{Timeout: DefaultTimeout})
}

// resolvePrimitive picks the transport primitive for a new client: the
// injected one when present, otherwise the first provider in the chain that
// yields one. With nothing available the construction fails and the error
// names every probed provider.
func resolvePrimitive(cfg *Config) (Primitive, error) {
	if cfg.Primitive != nil {
		return cfg.Primitive, nil
	}

	providerMu.Lock()
	chain := make([]provider, len(providerChain))
	copy(chain, providerChain)
	providerMu.Unlock()

	probed := make([]string, 0, len(chain)+1)
	probed = append(probed, "configured")
	for _, p := range chain {
		if prim := p.probe(); prim != nil {
			return prim, nil
		}
		probed = append(probed, p.name)
	}
	return nil, NewTransportUnavailableError(probed)
}

// HTTPPrimitive adapts a *net/http.Client into a transport primitive. The
// response body is drained into a copy so the retry loop can inspect it
// while it stays consumable by the caller.
func HTTPPrimitive(hc *nethttp.Client) Primitive {
	return func(ctx context.Context, req *Request) (*Response, error) {
		var body io.Reader
		if req.Body != nil {
			body = bytes.NewReader(req.Body)
		}

		httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
		if err != nil {
			return nil, err
		}
		for k, v := range req.Headers {
			httpReq.Header.Set(k, v)
		}

		httpResp, err := hc.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, err
		}

		return &Response{
			StatusCode: httpResp.StatusCode,
			Status:     httpResp.Status,
			Headers:    httpResp.Header,
			Body:       respBody,
		}, nil
	}
}
