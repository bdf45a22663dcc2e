// Package ninjas provides a client for the API Ninjas nutrition API.
package ninjas

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/recipe-cli/internal/gateway"
)

const defaultBaseURL = "https://api.api-ninjas.com"

// Client performs nutrition lookups.
type Client interface {
	// Nutrition looks up one food term. The API may return a single object
	// or a list of matches; both decode to a slice.
	Nutrition(ctx context.Context, query string) ([]Item, error)
}

// Item is one food match. The free tier replaces premium-only fields with
// explanatory strings; Number decodes those as zero instead of failing.
type Item struct {
	Name                string `json:"name"`
	ServingSizeG        Number `json:"serving_size_g"`
	FatTotalG           Number `json:"fat_total_g"`
	FatSaturatedG       Number `json:"fat_saturated_g"`
	CarbohydratesTotalG Number `json:"carbohydrates_total_g"`
	FiberG              Number `json:"fiber_g"`
	SugarG              Number `json:"sugar_g"`
	SodiumMg            Number `json:"sodium_mg"`
	PotassiumMg         Number `json:"potassium_mg"`
	CholesterolMg       Number `json:"cholesterol_mg"`
}

// Number is a float64 that tolerates non-numeric JSON values, decoding
// them as zero.
type Number float64

// UnmarshalJSON implements lenient numeric decoding.
func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
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

// NewClient creates an API Ninjas client.
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

func (c *httpClient) Nutrition(ctx context.Context, query string) ([]Item, error) {
	reqURL := c.baseURL + "/v1/nutrition?query=" + url.QueryEscape(query)

	raw, err := c.gw.GetJSON(ctx, reqURL, map[string]string{"X-Api-Key": c.apiKey})
	if err != nil {
		return nil, eris.Wrap(err, "ninjas: nutrition request")
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var single Item
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, eris.Wrap(err, "ninjas: unmarshal response")
	}
	return []Item{single}, nil
}
