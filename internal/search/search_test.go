package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/recipe-cli/pkg/serper"
)

// mockSerper implements serper.Client.
type mockSerper struct {
	resp    *serper.SearchResponse
	err     error
	queries []string
}

func (m *mockSerper) Search(_ context.Context, query string, _ int) (*serper.SearchResponse, error) {
	m.queries = append(m.queries, query)
	return m.resp, m.err
}

func TestResults_Success(t *testing.T) {
	m := &mockSerper{resp: &serper.SearchResponse{
		Organic: []serper.Result{
			{Title: "Paneer Tikka", Link: "https://example.com/tikka", Snippet: "grilled"},
			{Title: "Paneer Curry", Link: "https://example.com/curry", Snippet: "creamy"},
		},
	}}

	results := NewAdapter(m).Results(context.Background(), "paneer recipe", 4)

	require.Len(t, results, 2)
	assert.Equal(t, "Paneer Tikka", results[0].Title)
	assert.Equal(t, "https://example.com/curry", results[1].Link)
	assert.Equal(t, []string{"paneer recipe"}, m.queries)
}

func TestResults_TransportFailureDegradesToEmpty(t *testing.T) {
	m := &mockSerper{err: errors.New("serper: search request: gateway failure")}

	results := NewAdapter(m).Results(context.Background(), "paneer recipe", 4)

	assert.Empty(t, results)
}

func TestTopURLs_FiltersEmptyLinks(t *testing.T) {
	m := &mockSerper{resp: &serper.SearchResponse{
		Organic: []serper.Result{
			{Title: "Has link", Link: "https://example.com/a"},
			{Title: "No link"},
			{Title: "Also linked", Link: "https://example.com/b"},
		},
	}}

	urls := NewAdapter(m).TopURLs(context.Background(), "paneer", 4)

	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestTopURLs_CapsAtCount(t *testing.T) {
	m := &mockSerper{resp: &serper.SearchResponse{
		Organic: []serper.Result{
			{Title: "a", Link: "https://example.com/a"},
			{Title: "b", Link: "https://example.com/b"},
			{Title: "c", Link: "https://example.com/c"},
		},
	}}

	urls := NewAdapter(m).TopURLs(context.Background(), "paneer", 2)

	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestTopURLs_ErrorYieldsEmpty(t *testing.T) {
	m := &mockSerper{err: errors.New("boom")}

	urls := NewAdapter(m).TopURLs(context.Background(), "paneer", 4)

	assert.Empty(t, urls)
}
