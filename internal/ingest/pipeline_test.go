package ingest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"codeberg.org/openshelf/server/internal/catalog"
	"codeberg.org/openshelf/server/internal/llm"
)

// implements Catalog for testing
type mockCatalog struct {
	books []catalog.Book
	err   error
}

func (m *mockCatalog) FetchSubjects(_ context.Context, _ []string) ([]catalog.Book, error) {
	return m.books, m.err
}

// implements Store for testing; remembers inserted names across runs
type mockStore struct {
	names     map[string]bool
	insertErr error
	existsErr error
	inserted  int
	notReady  bool
}

func newMockStore(existing ...string) *mockStore {
	names := make(map[string]bool)
	for _, name := range existing {
		names[name] = true
	}

	return &mockStore{names: names}
}

func (m *mockStore) WaitReady(_ context.Context, _ time.Duration) error {
	if m.notReady {
		return fmt.Errorf("database not ready")
	}

	return nil
}

func (m *mockStore) ItemExists(_ context.Context, name string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}

	return m.names[name], nil
}

func (m *mockStore) InsertItem(_ context.Context, name string, _ any, _ map[llm.Provider][]float32) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}

	if m.names[name] {
		return false, nil
	}

	m.names[name] = true
	m.inserted++

	return true, nil
}

func (m *mockStore) GetItemCount(_ context.Context) (int, error) {
	return len(m.names), nil
}

// implements llm.Embedder for testing; counts calls
type mockEmbedder struct {
	provider llm.Provider
	calls    int
	err      error
}

func (m *mockEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	m.calls++

	if m.err != nil {
		return nil, m.err
	}

	return make([]float32, 1536), nil
}

func (m *mockEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	m.calls += len(texts)

	if m.err != nil {
		return nil, m.err
	}

	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = make([]float32, 1536)
	}

	return embeddings, nil
}

func (m *mockEmbedder) Dimensions() int {
	return 1536
}

func (m *mockEmbedder) Provider() llm.Provider {
	return m.provider
}

func testBooks(titles ...string) []catalog.Book {
	books := make([]catalog.Book, len(titles))
	for i, title := range titles {
		books[i] = catalog.Book{
			Title:            title,
			Authors:          []string{"Unknown Author"},
			FirstPublishYear: catalog.PublishYear{},
			Subject:          "web_development",
		}
	}

	return books
}

func TestPipelineRun(t *testing.T) {
	store := newMockStore()
	embedder := &mockEmbedder{provider: llm.ProviderOpenAISmall}

	pipeline := New(
		&mockCatalog{books: testBooks("Clean Code", "The Pragmatic Programmer")},
		store,
		[]llm.Embedder{embedder},
		Config{Categories: []string{"web_development"}},
	)

	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Inserted != 2 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}

	if embedder.calls != 2 {
		t.Errorf("expected 2 embedding calls, got %d", embedder.calls)
	}
}

// re-running against the same catalog snapshot inserts nothing new and
// makes no embedding calls for already-stored records
func TestPipelineRunIdempotent(t *testing.T) {
	store := newMockStore()
	embedder := &mockEmbedder{provider: llm.ProviderOpenAISmall}
	books := &mockCatalog{books: testBooks("Clean Code", "Refactoring")}

	pipeline := New(books, store, []llm.Embedder{embedder}, Config{Categories: []string{"web_development"}})

	if _, err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	countAfterFirst := len(store.names)
	callsAfterFirst := embedder.calls

	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(store.names) != countAfterFirst {
		t.Errorf("second run changed row count: %d != %d", len(store.names), countAfterFirst)
	}

	if summary.Skipped != 2 || summary.Inserted != 0 {
		t.Errorf("second run summary = %+v", summary)
	}

	if embedder.calls != callsAfterFirst {
		t.Errorf("second run made %d extra embedding calls", embedder.calls-callsAfterFirst)
	}
}

// a failing record is skipped and reported; the rest of the run continues
func TestPipelineRunContinuesPastFailures(t *testing.T) {
	store := newMockStore()
	good := &mockEmbedder{provider: llm.ProviderOpenAISmall}
	failing := &mockEmbedder{
		provider: llm.ProviderOllama,
		err:      &llm.ProviderError{Provider: llm.ProviderOllama, StatusCode: 429, Err: fmt.Errorf("rate limited")},
	}

	pipeline := New(
		&mockCatalog{books: testBooks("First", "Second", "Third")},
		store,
		[]llm.Embedder{good, failing},
		Config{Categories: []string{"web_development"}},
	)

	summary, err := pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("expected non-nil error when records fail")
	}

	if summary.Failed != 3 {
		t.Errorf("failed = %d, want 3", summary.Failed)
	}

	if store.inserted != 0 {
		t.Errorf("inserted = %d, want 0", store.inserted)
	}
}

func TestPipelineRunCatalogFailure(t *testing.T) {
	pipeline := New(
		&mockCatalog{err: &catalog.FetchError{Category: "web_development", StatusCode: 502}},
		newMockStore(),
		[]llm.Embedder{&mockEmbedder{provider: llm.ProviderOpenAISmall}},
		Config{Categories: []string{"web_development"}},
	)

	if _, err := pipeline.Run(context.Background()); err == nil {
		t.Fatal("expected error when catalog fetch fails")
	}
}

func TestPipelineRunStorageNotReady(t *testing.T) {
	store := newMockStore()
	store.notReady = true

	pipeline := New(
		&mockCatalog{books: testBooks("Any")},
		store,
		[]llm.Embedder{&mockEmbedder{provider: llm.ProviderOpenAISmall}},
		Config{Categories: []string{"web_development"}, ReadyTimeout: time.Second},
	)

	if _, err := pipeline.Run(context.Background()); err == nil {
		t.Fatal("expected error when storage is not ready")
	}
}
