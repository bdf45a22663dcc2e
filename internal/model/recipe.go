package model

// Ingredient is a single recipe ingredient. Duplicates are allowed and
// source order is preserved.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount *string `json:"amount"`
	Unit   *string `json:"unit"`
}

// RecipeStep is one instruction in a recipe.
type RecipeStep struct {
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// Recipe is a normalized recipe extracted from a page's structured data.
// It is constructed once per successful extraction and not mutated after.
type Recipe struct {
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []RecipeStep `json:"steps"`
	Servings    *int         `json:"servings"`
	SourceURL   string       `json:"source_url"`
}
