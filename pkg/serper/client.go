// Package serper provides a client for the Serper.dev web search API.
package serper

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/recipe-cli/internal/gateway"
)

const defaultBaseURL = "https://google.serper.dev"

// Client performs Serper search operations.
type Client interface {
	Search(ctx context.Context, query string, num int) (*SearchResponse, error)
}

// SearchResponse is the parsed Serper search response.
type SearchResponse struct {
	Organic []Result `json:"organic"`
}

// Result is a single organic search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithGateway overrides the default HTTP gateway.
func WithGateway(gw *gateway.Gateway) Option {
	return func(c *httpClient) {
		if gw != nil {
			c.gw = gw
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	gw      *gateway.Gateway
}

// NewClient creates a Serper API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		gw:      gateway.New(10 * time.Second),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

func (c *httpClient) Search(ctx context.Context, query string, num int) (*SearchResponse, error) {
	raw, err := c.gw.PostJSON(ctx, c.baseURL+"/search", searchRequest{Query: query, Num: num}, map[string]string{
		"X-API-KEY": c.apiKey,
	})
	if err != nil {
		return nil, eris.Wrap(err, "serper: search request")
	}

	var result SearchResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, eris.Wrap(err, "serper: unmarshal response")
	}
	return &result, nil
}
