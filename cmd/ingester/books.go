package main

import (
	"context"
	"fmt"

	"codeberg.org/openshelf/server/internal/catalog"
	"codeberg.org/openshelf/server/internal/config"
	"codeberg.org/openshelf/server/internal/ingest"
	"codeberg.org/openshelf/server/internal/llm"
	"codeberg.org/openshelf/server/internal/logger"
	"codeberg.org/openshelf/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// fetches books from the catalog, embeds them with every configured
// provider, and stores them. Run to completion; safe to re-run.
func IngestBooks(cfg *config.Config, db *pgxpool.Pool, flags config.Flags) error {
	ctx := context.Background()
	logger.Info("starting books ingestion",
		"categories", flags.Categories,
		"limit", flags.PageLimit,
		"clear", flags.Clear,
		"providers", cfg.Providers,
	)

	// use shared connection pool
	storageClient := storage.NewClientFromPool(db)
	defer storageClient.Close() // no-op since we don't own the pool

	// clear existing items if requested
	if flags.Clear {
		logger.Info("clearing existing items")

		if err := storageClient.ClearAllItems(ctx); err != nil {
			return fmt.Errorf("failed to clear existing items: %w", err)
		}

		logger.Info("cleared existing items")
	}

	embedders, err := llm.NewEmbedders(cfg.Providers, cfg.LLM())
	if err != nil {
		return fmt.Errorf("failed to create embedders: %w", err)
	}

	catalogClient := catalog.NewClient(catalog.Config{
		PageLimit: flags.PageLimit,
	})

	pipeline := ingest.New(catalogClient, storageClient, embedders, ingest.Config{
		Categories: flags.Categories,
	})

	summary, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	// verify final state
	count, err := storageClient.GetItemCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify item count: %w", err)
	}

	logger.Info("successfully ingested books",
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"total_items", count,
	)

	return nil
}

// deletes all stored items
func ClearItems(db *pgxpool.Pool) error {
	ctx := context.Background()

	storageClient := storage.NewClientFromPool(db)
	defer storageClient.Close()

	if err := storageClient.ClearAllItems(ctx); err != nil {
		return err
	}

	logger.Info("cleared all items")

	return nil
}
