package transport

import (
	"context"
	"net/url"

	"github.com/astrox/wallet-transport-go/logger"
)

// Client is the identity-bearing HTTP client handed to the wallet plugin.
// Configuration and the transform pipeline belong to one client for its
// lifetime; they are read-only while a request is in flight, except for
// explicit AddTransform registrations.
type Client struct {
	host         *url.URL
	credentials  *Credentials
	retryBudget  int
	plainOptions map[string]string
	callOptions  map[string]string
	primitive    Primitive
	pipeline     pipeline
	log          logger.Logger
}

// New constructs a client from the given configuration. It fails with a
// ConfigurationError when no host can be resolved and with a
// TransportUnavailableError when no transport primitive is available.
func New(cfg Config) (*Client, error) {
	host, err := resolveHost(cfg.Host, cfg.AmbientOrigin)
	if err != nil {
		return nil, err
	}

	primitive, err := resolvePrimitive(&cfg)
	if err != nil {
		return nil, err
	}

	budget := DefaultRetryBudget
	if cfg.RetryBudget != nil {
		if *cfg.RetryBudget < 0 {
			return nil, NewConfigurationError("retry budget must be non-negative")
		}
		budget = *cfg.RetryBudget
	}

	log := cfg.Logger
	if log == nil {
		log = logger.New("info", false)
	}

	return &Client{
		host:         host,
		credentials:  cfg.Credentials,
		retryBudget:  budget,
		plainOptions: cfg.PlainOptions,
		callOptions:  cfg.CallOptions,
		primitive:    primitive,
		log:          log,
	}, nil
}

// AddTransform registers a pipeline step at its self-declared priority
func (c *Client) AddTransform(t Transform) {
	c.pipeline.add(t, t.Priority())
}

// AddTransformWithPriority registers a pipeline step at an explicit
// priority, overriding the transform's own declaration.
func (c *Client) AddTransformWithPriority(t Transform, priority int) {
	c.pipeline.add(t, priority)
}

// IsLocal reports whether the resolved host is a local development host
func (c *Client) IsLocal() bool {
	return isLocalHost(c.host.Hostname())
}

// Host returns the resolved canonical origin
func (c *Client) Host() string {
	return c.host.String()
}

// Get issues a plain read request. Parameters are rendered into the query
// string in the order supplied. Transforms never run for reads.
func (c *Client) Get(ctx context.Context, endpoint string, params Params) (*Response, error) {
	return c.execute(ctx, c.buildGetRequest(endpoint, params))
}

// Post issues a call request through the transform pipeline. The body is
// JSON-encoded after the pipeline has run.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	req, err := c.buildCallRequest(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, req)
}

// execute drives the attempt loop. Non-2xx responses are retried while the
// next attempt ordinal stays within the budget; a budget of UnboundedRetries
// never caps retrying. Errors from the primitive itself are a different
// failure class: the exchange never completed, so they propagate immediately
// without consuming the budget.
func (c *Client) execute(ctx context.Context, req *Request) (*Response, error) {
	c.logRequest(req)

	for attempt := 0; ; attempt++ {
		resp, err := c.primitive(ctx, req)
		if err != nil {
			return nil, NewTransportFailure("exchange failed", err)
		}

		if resp.Ok() {
			return resp, nil
		}

		if attempt+1 <= c.retryBudget || c.retryBudget == UnboundedRetries {
			c.log.Warn().
				Str("url", req.URL).
				Int("attempt", attempt).
				Int("status", resp.StatusCode).
				Msg(describeFailure(resp))
			continue
		}

		return resp, NewRetryExhaustedError(resp)
	}
}

// logRequest logs the outgoing request
func (c *Client) logRequest(req *Request) {
	logEvent := c.log.Debug().
		Str("direction", "outbound").
		Str("method", req.Method).
		Str("url", req.URL)

	if len(req.Headers) > 0 {
		logEvent = logEvent.Interface("headers", req.Headers)
	}

	if len(req.Body) > 0 {
		logEvent = logEvent.Bytes("body", req.Body)
	}

	logEvent.Msg("wallet client request")
}
