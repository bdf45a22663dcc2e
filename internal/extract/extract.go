// Package extract locates schema.org Recipe entities embedded as JSON-LD
// script blocks and normalizes them into the canonical Recipe shape.
//
// Nothing in this package returns an error: malformed HTML, broken JSON-LD
// blocks, and unexpected field shapes all degrade to "not found" or to
// default field values.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/recipe-cli/internal/model"
)

const jsonLDSelector = `script[type="application/ld+json"]`

// FromHTML scans every JSON-LD block in document order for a Recipe entity
// and returns the first match normalized. The boolean reports whether a
// Recipe was found.
func FromHTML(html, sourceURL string) (*model.Recipe, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		zap.L().Debug("extract: html parse failed",
			zap.String("url", sourceURL),
			zap.Error(err),
		)
		return nil, false
	}

	var recipe *model.Recipe
	doc.Find(jsonLDSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			// Broken blocks are common in the wild; keep scanning.
			return true
		}
		entity, ok := recipeEntity(data)
		if !ok {
			return true
		}
		recipe = normalize(entity, sourceURL)
		return false
	})

	return recipe, recipe != nil
}

// recipeEntity returns the first Recipe-typed object in a decoded block:
// either the top-level object itself or, when the block is a graph
// container, the first Recipe entry of its @graph list.
func recipeEntity(data any) (map[string]any, bool) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	if isRecipe(obj) {
		return obj, true
	}
	graph, ok := obj["@graph"].([]any)
	if !ok {
		return nil, false
	}
	for _, entry := range graph {
		if m, ok := entry.(map[string]any); ok && isRecipe(m) {
			return m, true
		}
	}
	return nil, false
}

func isRecipe(obj map[string]any) bool {
	t, _ := obj["@type"].(string)
	return t == "Recipe"
}
