package ingest

import (
	"context"
	"time"

	"codeberg.org/openshelf/server/internal/catalog"
	"codeberg.org/openshelf/server/internal/llm"
)

// fetches normalized book records from the catalog
type Catalog interface {
	FetchSubjects(ctx context.Context, categories []string) ([]catalog.Book, error)
}

// the subset of the storage client the pipeline needs
type Store interface {
	WaitReady(ctx context.Context, timeout time.Duration) error
	ItemExists(ctx context.Context, name string) (bool, error)
	InsertItem(ctx context.Context, name string, itemData any, embeddings map[llm.Provider][]float32) (bool, error)
	GetItemCount(ctx context.Context) (int, error)
}

type Config struct {
	Categories   []string
	ReadyTimeout time.Duration
}

type Pipeline struct {
	catalog   Catalog
	store     Store
	embedders []llm.Embedder
	config    Config
}

// Summary reports the outcome of one ingestion run.
type Summary struct {
	Fetched  int
	Inserted int
	Skipped  int
	Failed   int
}
