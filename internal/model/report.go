package model

// Report combines one extracted recipe with its aggregated nutrition and
// the query context. Reports are terminal, read-only objects.
type Report struct {
	Recipe      Recipe        `json:"recipe"`
	Nutrition   NutritionData `json:"nutrition"`
	SearchQuery string        `json:"search_query"`
	Preference  *string       `json:"preference"`
}

// NewReport assembles the final analysis result. Pure composition, no
// additional computation.
func NewReport(recipe Recipe, nutrition NutritionData, searchQuery string, preference *string) *Report {
	return &Report{
		Recipe:      recipe,
		Nutrition:   nutrition,
		SearchQuery: searchQuery,
		Preference:  preference,
	}
}
