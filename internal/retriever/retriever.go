package retriever

import (
	"context"
	"fmt"

	"codeberg.org/openshelf/server/internal/llm"
	"codeberg.org/openshelf/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// creates a retriever over the shared pool. One embedder per provider;
// a search against a provider's column uses that provider's embedder so
// query vectors are always comparable with stored vectors.
func New(pool *pgxpool.Pool, embedders []llm.Embedder) *Client {
	byProvider := make(map[llm.Provider]llm.Embedder, len(embedders))

	for _, embedder := range embedders {
		byProvider[embedder.Provider()] = embedder
	}

	return &Client{
		pool:      pool,
		embedders: byProvider,
	}
}

// Search embeds the query text with the provider's embedder and returns up
// to limit items ordered by ascending distance on the provider's column.
func (c *Client) Search(ctx context.Context, provider llm.Provider, queryText string, limit int) ([]Result, error) {
	if queryText == "" {
		return nil, fmt.Errorf("query text cannot be empty")
	}

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	embedder, ok := c.embedders[provider]
	if !ok {
		return nil, fmt.Errorf("no embedder configured for provider %s", provider)
	}

	column, err := storage.ColumnFor(provider)
	if err != nil {
		return nil, err
	}

	embedding, err := embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	query := fmt.Sprintf(vectorSearchQueryTemplate, column)

	rows, err := c.pool.Query(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []Result

	for rows.Next() {
		var result Result

		err := rows.Scan(
			&result.ID,
			&result.Name,
			&result.ItemData,
			&result.Similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}
