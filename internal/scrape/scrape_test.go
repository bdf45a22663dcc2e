package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipePage(name string) string {
	return fmt.Sprintf(
		`<html><head><script type="application/ld+json">{"@type":"Recipe","name":%q}</script></head></html>`,
		name,
	)
}

// mockFetcher serves canned pages per URL and records fetch order.
type mockFetcher struct {
	pages   map[string]string
	errs    map[string]error
	fetched []string
}

func (m *mockFetcher) FetchText(_ context.Context, url string) (string, error) {
	m.fetched = append(m.fetched, url)
	if err, ok := m.errs[url]; ok {
		return "", err
	}
	return m.pages[url], nil
}

func TestScrapeRecipe_Success(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{"https://a.example": recipePage("Dal")}}

	recipe, ok := New(f, 4).ScrapeRecipe(context.Background(), "https://a.example")

	require.True(t, ok)
	assert.Equal(t, "Dal", recipe.Title)
	assert.Equal(t, "https://a.example", recipe.SourceURL)
}

func TestScrapeRecipe_FetchErrorDegrades(t *testing.T) {
	f := &mockFetcher{errs: map[string]error{"https://a.example": errors.New("timeout")}}

	recipe, ok := New(f, 4).ScrapeRecipe(context.Background(), "https://a.example")

	assert.False(t, ok)
	assert.Nil(t, recipe)
}

func TestFirstRecipe_FourthCandidateWins(t *testing.T) {
	f := &mockFetcher{
		pages: map[string]string{
			"https://2.example": "<html><body>no structured data</body></html>",
			"https://3.example": "<html><body>plain article</body></html>",
			"https://4.example": recipePage("Fourth Time Lucky"),
		},
		errs: map[string]error{
			"https://1.example": errors.New("connection refused"),
		},
	}

	urls := []string{
		"https://1.example", "https://2.example",
		"https://3.example", "https://4.example",
	}
	recipe, ok := New(f, 4).FirstRecipe(context.Background(), urls)

	require.True(t, ok)
	assert.Equal(t, "Fourth Time Lucky", recipe.Title)
	assert.Equal(t, urls, f.fetched, "earlier failures never abort the scan")
}

func TestFirstRecipe_FifthCandidateNeverAttempted(t *testing.T) {
	f := &mockFetcher{
		pages: map[string]string{
			"https://5.example": recipePage("Beyond The Cap"),
		},
	}

	urls := []string{
		"https://1.example", "https://2.example", "https://3.example",
		"https://4.example", "https://5.example",
	}
	recipe, ok := New(f, 4).FirstRecipe(context.Background(), urls)

	assert.False(t, ok)
	assert.Nil(t, recipe)
	assert.NotContains(t, f.fetched, "https://5.example")
	assert.Len(t, f.fetched, 4)
}

func TestFirstRecipe_StopsAtFirstSuccess(t *testing.T) {
	f := &mockFetcher{
		pages: map[string]string{
			"https://1.example": recipePage("Winner"),
			"https://2.example": recipePage("Never Seen"),
		},
	}

	recipe, ok := New(f, 4).FirstRecipe(context.Background(), []string{"https://1.example", "https://2.example"})

	require.True(t, ok)
	assert.Equal(t, "Winner", recipe.Title)
	assert.Equal(t, []string{"https://1.example"}, f.fetched)
}

func TestFirstRecipe_AllFail(t *testing.T) {
	f := &mockFetcher{
		pages: map[string]string{"https://1.example": "<html></html>"},
		errs:  map[string]error{"https://2.example": errors.New("boom")},
	}

	recipe, ok := New(f, 4).FirstRecipe(context.Background(), []string{"https://1.example", "https://2.example"})

	assert.False(t, ok)
	assert.Nil(t, recipe)
}

func TestFirstRecipe_NoCandidates(t *testing.T) {
	f := &mockFetcher{}

	_, ok := New(f, 4).FirstRecipe(context.Background(), nil)

	assert.False(t, ok)
	assert.Empty(t, f.fetched)
}
