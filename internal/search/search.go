// Package search adapts the Serper client into the pipeline's ranked-URL
// source. Transport failures degrade to an empty result list.
package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/recipe-cli/pkg/serper"
)

// Result is one ranked search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Adapter wraps a serper.Client with the pipeline's degradation policy.
type Adapter struct {
	client serper.Client
}

// NewAdapter creates a search adapter.
func NewAdapter(client serper.Client) *Adapter {
	return &Adapter{client: client}
}

// Results performs a web search. On failure it logs and returns an empty
// slice rather than propagating the error.
func (a *Adapter) Results(ctx context.Context, query string, num int) []Result {
	resp, err := a.client.Search(ctx, query, num)
	if err != nil {
		zap.L().Warn("search: query failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}

	results := make([]Result, 0, len(resp.Organic))
	for _, r := range resp.Organic {
		results = append(results, Result{Title: r.Title, Link: r.Link, Snippet: r.Snippet})
	}
	return results
}

// TopURLs projects the links of the top results, dropping entries with an
// empty link, capped at count.
func (a *Adapter) TopURLs(ctx context.Context, query string, count int) []string {
	var urls []string
	for _, r := range a.Results(ctx, query, count) {
		if r.Link == "" {
			continue
		}
		urls = append(urls, r.Link)
		if len(urls) == count {
			break
		}
	}
	return urls
}
