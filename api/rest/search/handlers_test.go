package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/openshelf/server/internal/llm"
	"codeberg.org/openshelf/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements Searcher for testing
type mockSearcher struct {
	results []retriever.Result
	err     error
	calls   int

	lastProvider llm.Provider
	lastQuery    string
	lastLimit    int
}

func (m *mockSearcher) Search(_ context.Context, provider llm.Provider, queryText string, limit int) ([]retriever.Result, error) {
	m.calls++
	m.lastProvider = provider
	m.lastQuery = queryText
	m.lastLimit = limit

	if m.err != nil {
		return nil, m.err
	}

	return m.results, nil
}

func setupRouter(searcher Searcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, searcher)

	return router
}

func doSearch(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestSearchHandler_Success(t *testing.T) {
	searcher := &mockSearcher{
		results: []retriever.Result{
			{ID: 1, Name: "Clean Code", ItemData: map[string]any{"title": "Clean Code"}, Similarity: 0.12},
			{ID: 2, Name: "The Pragmatic Programmer", ItemData: map[string]any{"title": "The Pragmatic Programmer"}, Similarity: 0.34},
		},
	}

	router := setupRouter(searcher)
	w := doSearch(router, "/search/", `{"query": "refactoring techniques", "limit": 2}`)

	require.Equal(t, http.StatusOK, w.Code)

	var results []retriever.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))

	require.Len(t, results, 2)
	assert.Equal(t, "Clean Code", results[0].Name)
	assert.LessOrEqual(t, results[0].Similarity, results[1].Similarity)

	assert.Equal(t, llm.ProviderOpenAISmall, searcher.lastProvider)
	assert.Equal(t, "refactoring techniques", searcher.lastQuery)
	assert.Equal(t, 2, searcher.lastLimit)
}

func TestSearchHandler_DefaultLimit(t *testing.T) {
	searcher := &mockSearcher{}

	router := setupRouter(searcher)
	w := doSearch(router, "/search/", `{"query": "databases"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, searcher.lastLimit, "absent limit should default to 3")
}

func TestSearchHandler_OllamaRoute(t *testing.T) {
	searcher := &mockSearcher{}

	router := setupRouter(searcher)
	w := doSearch(router, "/search_ollama/", `{"query": "databases"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, llm.ProviderOllama, searcher.lastProvider)
}

// invalid requests are rejected before the searcher (and therefore the
// embedding provider) is ever called
func TestSearchHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero limit", body: `{"query": "databases", "limit": 0}`},
		{name: "negative limit", body: `{"query": "databases", "limit": -5}`},
		{name: "empty query", body: `{"query": ""}`},
		{name: "missing query", body: `{"limit": 3}`},
		{name: "malformed json", body: `{"query":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &mockSearcher{}

			router := setupRouter(searcher)
			w := doSearch(router, "/search/", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, searcher.calls, "searcher must not be called for invalid requests")

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp, "detail")
		})
	}
}

func TestSearchHandler_InternalError(t *testing.T) {
	searcher := &mockSearcher{
		err: &llm.ProviderError{Provider: llm.ProviderOpenAISmall, StatusCode: 503, Err: fmt.Errorf("unavailable")},
	}

	router := setupRouter(searcher)
	w := doSearch(router, "/search/", `{"query": "databases"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["detail"], "search failed")
}

func TestSearchHandler_EmptyResults(t *testing.T) {
	searcher := &mockSearcher{results: nil}

	router := setupRouter(searcher)
	w := doSearch(router, "/search/", `{"query": "databases"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String(), "empty result set should be an empty array, not null")
}
