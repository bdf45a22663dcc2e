package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/recipe-cli/internal/gateway"
	"github.com/sells-group/recipe-cli/internal/model"
	"github.com/sells-group/recipe-cli/internal/nutrition"
	"github.com/sells-group/recipe-cli/internal/pipeline"
	"github.com/sells-group/recipe-cli/internal/scrape"
	"github.com/sells-group/recipe-cli/internal/search"
	"github.com/sells-group/recipe-cli/pkg/ninjas"
	"github.com/sells-group/recipe-cli/pkg/serper"
)

const testRecipePage = `<html><head><script type="application/ld+json">
{"@type":"Recipe","name":"Paneer Tikka","recipeYield":"4 servings",
 "recipeIngredient":["paneer","yogurt"],
 "recipeInstructions":[{"text":"Marinate."},{"text":"Grill."}]}
</script></head><body></body></html>`

// newTestRouter stands up fake Serper, API Ninjas, and recipe-site servers
// and wires a full pipeline against them.
func newTestRouter(t *testing.T, organicLinks []string) http.Handler {
	t.Helper()

	recipeSite := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/recipe") {
			fmt.Fprint(w, testRecipePage)
			return
		}
		fmt.Fprint(w, "<html><body>nothing structured here</body></html>")
	}))
	t.Cleanup(recipeSite.Close)

	serperSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		organic := make([]map[string]string, 0, len(organicLinks))
		for _, link := range organicLinks {
			organic = append(organic, map[string]string{"title": "hit", "link": recipeSite.URL + link})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"organic": organic})
	}))
	t.Cleanup(serperSrv.Close)

	ninjasSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"name":"item","sodium_mg":100,"fat_total_g":5,"serving_size_g":"Only available for premium subscribers."}]`)
	}))
	t.Cleanup(ninjasSrv.Close)

	gw := gateway.New(5 * time.Second)
	p := pipeline.New(
		search.NewAdapter(serper.NewClient("test-key", serper.WithBaseURL(serperSrv.URL), serper.WithGateway(gw))),
		scrape.New(gw, 4),
		nutrition.NewAdapter(ninjas.NewClient("test-key", ninjas.WithBaseURL(ninjasSrv.URL), ninjas.WithGateway(gw))),
		nil,
	)
	return newRouter(p)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyzeSimple_MissingIngredient(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze-simple", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ingredient is required")
}

func TestAnalyzeSimple_BadTopN(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze-simple?ingredient=paneer&top_n=lots", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "top_n")
}

func TestAnalyzeSimple_Success(t *testing.T) {
	router := newTestRouter(t, []string{"/recipe/1"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze-simple?ingredient=paneer", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "Paneer Tikka", report.Recipe.Title)
	require.NotNil(t, report.Recipe.Servings)
	assert.Equal(t, 4, *report.Recipe.Servings)
	assert.Len(t, report.Recipe.Ingredients, 2)
	// One lookup per ingredient, 100mg sodium each.
	assert.InDelta(t, 200, float64(report.Nutrition.SodiumMg), 0.001)
	assert.InDelta(t, 10, float64(report.Nutrition.FatTotalG), 0.001)
	// Premium-only field decodes as zero.
	assert.InDelta(t, 0, float64(report.Nutrition.ServingSizeG), 0.001)
}

func TestAnalyzePost_Success(t *testing.T) {
	router := newTestRouter(t, []string{"/recipe/1"})

	body := strings.NewReader(`{"ingredient":"paneer","preference":"healthy"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "paneer", report.SearchQuery)
	require.NotNil(t, report.Preference)
	assert.Equal(t, "healthy", *report.Preference)
}

func TestAnalyzePost_InvalidBody(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestAnalyze_NoSearchResults(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze-simple?ingredient=unicorn", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unicorn")
}

func TestAnalyze_NoExtractableRecipe(t *testing.T) {
	router := newTestRouter(t, []string{"/plain/1", "/plain/2"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze-simple?ingredient=paneer", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not extract a recipe")
}
