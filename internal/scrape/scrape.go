// Package scrape walks ranked candidate URLs and extracts the first page
// that yields structured recipe data.
package scrape

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/recipe-cli/internal/extract"
	"github.com/sells-group/recipe-cli/internal/model"
)

const defaultMaxCandidates = 4

// Fetcher fetches a page body. Satisfied by *gateway.Gateway.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Scraper extracts recipes from candidate pages.
type Scraper struct {
	fetcher       Fetcher
	maxCandidates int
}

// New creates a Scraper. A non-positive maxCandidates falls back to the
// default cap of 4.
func New(fetcher Fetcher, maxCandidates int) *Scraper {
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}
	return &Scraper{fetcher: fetcher, maxCandidates: maxCandidates}
}

// ScrapeRecipe fetches one URL and extracts its recipe. Fetch errors and
// pages without a Recipe entity both degrade to not-found.
func (s *Scraper) ScrapeRecipe(ctx context.Context, url string) (*model.Recipe, bool) {
	html, err := s.fetcher.FetchText(ctx, url)
	if err != nil {
		zap.L().Warn("scrape: fetch failed, skipping url",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, false
	}

	recipe, ok := extract.FromHTML(html, url)
	if !ok {
		zap.L().Debug("scrape: no recipe entity in page", zap.String("url", url))
		return nil, false
	}
	return recipe, true
}

// FirstRecipe tries candidates in ranked order, capped at the candidate
// limit, and returns the first extracted recipe. A failure on one URL
// never aborts the scan of the rest.
func (s *Scraper) FirstRecipe(ctx context.Context, urls []string) (*model.Recipe, bool) {
	if len(urls) > s.maxCandidates {
		urls = urls[:s.maxCandidates]
	}

	for _, u := range urls {
		if recipe, ok := s.ScrapeRecipe(ctx, u); ok {
			return recipe, true
		}
	}
	return nil, false
}
