// Package pipeline orchestrates the search, scrape, and nutrition stages
// into a single analysis request.
package pipeline

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/recipe-cli/internal/model"
	"github.com/sells-group/recipe-cli/internal/nutrition"
	"github.com/sells-group/recipe-cli/internal/scrape"
	"github.com/sells-group/recipe-cli/internal/search"
	"github.com/sells-group/recipe-cli/internal/store"
)

// DefaultMaxResults caps the candidate URLs considered for scraping.
const DefaultMaxResults = 4

var (
	// ErrNoSearchResults means the search produced no candidate URLs.
	ErrNoSearchResults = errors.New("no search results")
	// ErrNoRecipe means no candidate page yielded structured recipe data.
	ErrNoRecipe = errors.New("no extractable recipe")
)

// Request is one analysis request.
type Request struct {
	Ingredient string `json:"ingredient"`
	Preference string `json:"preference,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// Query is the search query: the ingredient, with the preference appended
// when present.
func (r Request) Query() string {
	if r.Preference == "" {
		return r.Ingredient
	}
	return r.Ingredient + " " + r.Preference
}

// Pipeline wires the three stages and an optional report store.
type Pipeline struct {
	search    *search.Adapter
	scraper   *scrape.Scraper
	nutrition *nutrition.Adapter
	store     store.Store
}

// New creates a Pipeline. The store may be nil, which disables report
// history.
func New(searchAdapter *search.Adapter, scraper *scrape.Scraper, nutritionAdapter *nutrition.Adapter, st store.Store) *Pipeline {
	return &Pipeline{
		search:    searchAdapter,
		scraper:   scraper,
		nutrition: nutritionAdapter,
		store:     st,
	}
}

// Analyze runs search → scrape → nutrition and assembles the report.
// The two not-found conditions are distinct sentinel errors; anything the
// adapters could degrade has already been degraded by the time it returns.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*model.Report, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	query := req.Query()
	log := zap.L().With(zap.String("query", query))
	log.Info("pipeline: starting analysis")

	urls := p.search.TopURLs(ctx, query, maxResults)
	if len(urls) == 0 {
		return nil, eris.Wrapf(ErrNoSearchResults, "no recipes found for %q", query)
	}
	log.Debug("pipeline: candidates found", zap.Int("count", len(urls)))

	recipe, ok := p.scraper.FirstRecipe(ctx, urls)
	if !ok {
		return nil, eris.Wrapf(ErrNoRecipe, "could not extract a recipe for %q", query)
	}
	log.Info("pipeline: recipe extracted",
		zap.String("title", recipe.Title),
		zap.String("source_url", recipe.SourceURL),
		zap.Int("ingredients", len(recipe.Ingredients)),
	)

	nutritionData := p.nutrition.AnalyzeIngredients(ctx, recipe.Ingredients)

	var preference *string
	if req.Preference != "" {
		preference = &req.Preference
	}
	report := model.NewReport(*recipe, nutritionData, req.Ingredient, preference)

	if p.store != nil {
		if stored, err := p.store.SaveReport(ctx, report); err != nil {
			log.Warn("pipeline: persist report failed", zap.Error(err))
		} else {
			log.Debug("pipeline: report persisted", zap.String("id", stored.ID))
		}
	}

	return report, nil
}
