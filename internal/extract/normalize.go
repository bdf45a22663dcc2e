package extract

import (
	"strconv"
	"strings"

	"github.com/sells-group/recipe-cli/internal/model"
)

const defaultTitle = "Unknown Recipe"

// normalize maps a Recipe-typed JSON-LD object onto the canonical Recipe.
// Each ambiguous source field has its own normalization function resolving
// the {absent, scalar, list, object} shapes it takes in the wild.
func normalize(obj map[string]any, sourceURL string) *model.Recipe {
	return &model.Recipe{
		Title:       normalizeTitle(obj["name"]),
		Ingredients: normalizeIngredients(obj["recipeIngredient"]),
		Steps:       normalizeSteps(obj["recipeInstructions"]),
		Servings:    normalizeServings(obj["recipeYield"]),
		SourceURL:   sourceURL,
	}
}

func normalizeTitle(v any) string {
	s, _ := v.(string)
	if strings.TrimSpace(s) == "" {
		return defaultTitle
	}
	return s
}

// normalizeServings accepts a scalar, a list (first element wins), or a
// numeric-looking string. Anything unparseable, and any non-positive
// value, is absent rather than an error.
func normalizeServings(v any) *int {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}

	switch val := v.(type) {
	case float64:
		return positive(int(val))
	case string:
		fields := strings.Fields(val)
		if len(fields) == 0 {
			return nil
		}
		digits := strings.Map(keepDigits, fields[0])
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil
		}
		return positive(n)
	default:
		return nil
	}
}

func keepDigits(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

// normalizeIngredients processes recipeIngredient only when it is a list;
// any other shape yields an empty list. String entries become name-only
// ingredients, object entries carry name/amount/unitCode, and any other
// entry kind is skipped.
func normalizeIngredients(v any) []model.Ingredient {
	ingredients := []model.Ingredient{}
	list, ok := v.([]any)
	if !ok {
		return ingredients
	}

	for _, entry := range list {
		switch e := entry.(type) {
		case string:
			ingredients = append(ingredients, model.Ingredient{Name: e})
		case map[string]any:
			ing := model.Ingredient{}
			ing.Name, _ = e["name"].(string)
			if s, ok := e["amount"].(string); ok {
				ing.Amount = &s
			}
			if s, ok := e["unitCode"].(string); ok {
				ing.Unit = &s
			}
			ingredients = append(ingredients, ing)
		}
	}
	return ingredients
}

// normalizeSteps handles recipeInstructions given as a list, a single
// string, a single object, or anything else (empty list). Object entries
// resolve text with a description fallback and order with a position
// fallback; an object whose resolved text is empty is skipped.
func normalizeSteps(v any) []model.RecipeStep {
	steps := []model.RecipeStep{}

	switch val := v.(type) {
	case []any:
		for idx, entry := range val {
			switch e := entry.(type) {
			case string:
				steps = append(steps, model.RecipeStep{Text: e, Order: idx})
			case map[string]any:
				if step, ok := stepFromObject(e, idx); ok {
					steps = append(steps, step)
				}
			}
		}
	case string:
		steps = append(steps, model.RecipeStep{Text: val, Order: 0})
	case map[string]any:
		if step, ok := stepFromObject(val, 0); ok {
			steps = append(steps, step)
		}
	}
	return steps
}

// stepFromObject resolves HowToStep-style objects: text falls back to
// description, position falls back to the list index.
func stepFromObject(obj map[string]any, idx int) (model.RecipeStep, bool) {
	text, _ := obj["text"].(string)
	if text == "" {
		text, _ = obj["description"].(string)
	}
	if text == "" {
		return model.RecipeStep{}, false
	}

	order := idx
	if pos, ok := obj["position"].(float64); ok {
		order = int(pos)
	}
	return model.RecipeStep{Text: text, Order: order}, true
}
