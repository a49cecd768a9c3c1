package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"strings"
)

// buildQuery renders the ordered parameter list as a query string, prefixed
// with "?" only when at least one parameter exists. Parameters appear in the
// exact order the caller supplied them.
func buildQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('?')
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.stringValue())
	}
	return b.String()
}

// buildGetRequest assembles a plain read request. PlainOptions merge in at
// the lowest precedence and never override headers set here.
func (c *Client) buildGetRequest(endpoint string, params Params) *Request {
	headers := make(map[string]string, len(c.plainOptions))
	for k, v := range c.plainOptions {
		headers[k] = v
	}

	return &Request{
		Method:  nethttp.MethodGet,
		URL:     c.resolveURL(endpoint + buildQuery(params)),
		Headers: headers,
	}
}

// buildCallRequest assembles a call request: JSON content type, Basic
// credentials when configured, then the transform pipeline over the
// envelope. CallOptions merge in at the lowest precedence; headers the
// builder sets win unless a transform explicitly replaced them.
func (c *Client) buildCallRequest(ctx context.Context, endpoint string, body any) (*Request, error) {
	env := &CallEnvelope{
		Endpoint: endpoint,
		Headers:  map[string]string{HeaderContentType: ContentTypeJSON},
		Body:     body,
	}

	if c.credentials != nil {
		env.Headers[HeaderAuthorization] = basicAuthValue(c.credentials)
	}

	env, err := c.pipeline.apply(ctx, env)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(c.callOptions)+len(env.Headers))
	for k, v := range c.callOptions {
		headers[k] = v
	}
	for k, v := range env.Headers {
		headers[k] = v
	}

	payload, err := json.Marshal(env.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode call body: %w", err)
	}

	return &Request{
		Method:  nethttp.MethodPost,
		URL:     c.resolveURL(env.Endpoint),
		Headers: headers,
		Body:    payload,
	}, nil
}

// basicAuthValue renders the static credential pair; the password may be empty
func basicAuthValue(creds *Credentials) string {
	pair := creds.Name + ":" + creds.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(pair))
}

// resolveURL forms the absolute URL for an endpoint path against the
// canonical host.
func (c *Client) resolveURL(endpoint string) string {
	base := strings.TrimRight(c.host.String(), "/")
	if endpoint == "" {
		return base
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return base + endpoint
}
