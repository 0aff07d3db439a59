package ingest

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/openshelf/server/internal/catalog"
	"codeberg.org/openshelf/server/internal/llm"
	"codeberg.org/openshelf/server/internal/logger"
)

const defaultReadyTimeout = 60 * time.Second

// creates an ingestion pipeline. Embedders determine which embedding
// columns get populated; every record is embedded once per embedder.
func New(catalogClient Catalog, store Store, embedders []llm.Embedder, config Config) *Pipeline {
	if config.ReadyTimeout <= 0 {
		config.ReadyTimeout = defaultReadyTimeout
	}

	return &Pipeline{
		catalog:   catalogClient,
		store:     store,
		embedders: embedders,
		config:    config,
	}
}

// Run executes one full ingestion pass: wait for storage, make sure each
// embedding model is available, fetch the catalog, then embed and insert
// each record that isn't already stored.
//
// Per-record failures are logged and skipped so one bad record doesn't
// abort the run; the returned error is non-nil when any record failed, so
// a partially failed run never exits silently successful. The run is not
// transactional across records: a crash mid-run is safe because re-running
// skips everything already inserted.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if err := p.store.WaitReady(ctx, p.config.ReadyTimeout); err != nil {
		return summary, fmt.Errorf("storage not ready: %w", err)
	}

	for _, embedder := range p.embedders {
		ensurer, ok := embedder.(llm.ModelEnsurer)
		if !ok {
			continue
		}

		logger.Info("ensuring embedding model is available", "provider", embedder.Provider())

		if err := ensurer.EnsureModel(ctx); err != nil {
			return summary, fmt.Errorf("embedding model unavailable for %s: %w", embedder.Provider(), err)
		}
	}

	books, err := p.catalog.FetchSubjects(ctx, p.config.Categories)
	if err != nil {
		return summary, fmt.Errorf("catalog fetch failed: %w", err)
	}

	summary.Fetched = len(books)

	if len(books) == 0 {
		logger.Warn("no books fetched from any category", "categories", p.config.Categories)
		return summary, nil
	}

	for _, book := range books {
		// skip before embedding so duplicates cost zero provider calls
		exists, err := p.store.ItemExists(ctx, book.Title)
		if err != nil {
			summary.Failed++
			logger.ErrorErr(err, "failed to check for existing item", "name", book.Title)

			continue
		}

		if exists {
			summary.Skipped++
			logger.Debug("item already exists, skipping", "name", book.Title)

			continue
		}

		embeddings, err := p.embedBook(ctx, book)
		if err != nil {
			summary.Failed++
			logger.ErrorErr(err, "failed to embed record", "name", book.Title)

			continue
		}

		inserted, err := p.store.InsertItem(ctx, book.Title, book, embeddings)
		if err != nil {
			summary.Failed++
			logger.ErrorErr(err, "failed to insert record", "name", book.Title)

			continue
		}

		if inserted {
			summary.Inserted++
		} else {
			// lost the race to a concurrent ingester; the row is there either way
			summary.Skipped++
		}
	}

	logger.Info("ingestion run complete",
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d of %d records failed to ingest", summary.Failed, summary.Fetched)
	}

	return summary, nil
}

// generates one embedding per configured provider for the book description
func (p *Pipeline) embedBook(ctx context.Context, book catalog.Book) (map[llm.Provider][]float32, error) {
	description := Describe(book)
	embeddings := make(map[llm.Provider][]float32, len(p.embedders))

	for _, embedder := range p.embedders {
		embedding, err := embedder.GenerateEmbedding(ctx, description)
		if err != nil {
			return nil, err
		}

		embeddings[embedder.Provider()] = embedding
	}

	return embeddings, nil
}
