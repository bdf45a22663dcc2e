// Package gateway is the shared HTTP transport for upstream APIs and
// scraped pages. Every operation attempts a request once and, on any
// failure, exactly one more time before reporting a TransportError. There
// is no backoff and no circuit breaking; the adapters above degrade on
// their own terms.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	attempts       = 2
	defaultTimeout = 10 * time.Second
	userAgent      = "recipe-cli/1.0"
	maxBodyBytes   = 2 * 1024 * 1024
)

// TransportError is returned after both attempts for a URL have failed.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway: %s failed after retry: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Gateway performs GET/POST requests with a single retry.
type Gateway struct {
	client *http.Client
}

// Option configures the gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gateway) {
		g.client = hc
	}
}

// New creates a Gateway with a pooled transport. A non-positive timeout
// falls back to the default.
func New(timeout time.Duration, opts ...Option) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	g := &Gateway{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// GetJSON performs a GET and returns the raw JSON body.
func (g *Gateway) GetJSON(ctx context.Context, url string, headers map[string]string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "gateway: create request")
	}
	applyHeaders(req, headers)
	req.Header.Set("Accept", "application/json")

	body, err := g.do(ctx, req, true)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// PostJSON performs a POST with a JSON body and returns the raw JSON body.
func (g *Gateway) PostJSON(ctx context.Context, url string, payload any, headers map[string]string) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, eris.Wrap(err, "gateway: marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "gateway: create request")
	}
	applyHeaders(req, headers)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := g.do(ctx, req, true)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// FetchText performs a GET and returns the raw body as a string. Used for
// scraping arbitrary pages, so no Accept header is forced.
func (g *Gateway) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrap(err, "gateway: create request")
	}
	req.Header.Set("User-Agent", userAgent)

	body, err := g.do(ctx, req, false)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// do runs the attempt loop. A network error, a non-2xx status, a body read
// error, and (when wantJSON is set) an unparseable body all count as a
// failed attempt.
func (g *Gateway) do(ctx context.Context, req *http.Request, wantJSON bool) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := g.doOnce(ctx, req, wantJSON)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt < attempts {
			zap.L().Debug("gateway: request failed, retrying",
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
	}
	return nil, &TransportError{URL: req.URL.String(), Err: lastErr}
}

func (g *Gateway) doOnce(ctx context.Context, req *http.Request, wantJSON bool) ([]byte, error) {
	cloned := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, eris.Wrap(err, "gateway: reset request body")
		}
		cloned.Body = body
	}

	resp, err := g.client.Do(cloned)
	if err != nil {
		return nil, err
	}
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, eris.Wrap(readErr, "gateway: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eris.Errorf("gateway: status %d", resp.StatusCode)
	}
	if wantJSON && !json.Valid(body) {
		return nil, eris.New("gateway: response is not valid JSON")
	}
	return body, nil
}

func applyHeaders(req *http.Request, headers map[string]string) {
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
