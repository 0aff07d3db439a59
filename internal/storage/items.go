package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"codeberg.org/openshelf/server/internal/errors"
	"codeberg.org/openshelf/server/internal/llm"
	"github.com/pgvector/pgvector-go"
)

// InsertItem inserts a new item with one embedding per provider, returning
// false when an item with the same name already exists. The uniqueness
// check is the name constraint itself (ON CONFLICT DO NOTHING), so the
// operation stays atomic under concurrent ingestion.
//
// Every vector is validated against its column's declared dimensionality
// before the write; a mismatch fails the insert rather than storing a
// truncated or padded vector.
func (c *Client) InsertItem(ctx context.Context, name string, itemData any, embeddings map[llm.Provider][]float32) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("item name cannot be empty")
	}

	if len(embeddings) == 0 {
		return false, fmt.Errorf("no embeddings provided for item %q", name)
	}

	// stable column order for a deterministic statement
	providers := make([]llm.Provider, 0, len(embeddings))
	for provider := range embeddings {
		providers = append(providers, provider)
	}

	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })

	columns := []string{"name", "item_data"}
	args := []any{name, itemData}

	for _, provider := range providers {
		col, ok := embeddingColumns[provider]
		if !ok {
			return false, fmt.Errorf("no embedding column for provider %s", provider)
		}

		vec := embeddings[provider]
		if len(vec) != col.dimensions {
			return false, fmt.Errorf(
				"embedding for %s has %d dimensions, column %s expects %d",
				provider, len(vec), col.name, col.dimensions,
			)
		}

		columns = append(columns, col.name)
		args = append(args, pgvector.NewVector(vec))
	}

	tag, err := c.pool.Exec(ctx, buildInsertQuery(columns), args...)
	if err != nil {
		if errors.IsUniqueViolation(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to insert item %q: %w", name, err)
	}

	return tag.RowsAffected() > 0, nil
}

// builds the insert statement for the given columns. Column names come
// from the fixed embeddingColumns map, never from caller input.
func buildInsertQuery(columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(
		"INSERT INTO items (%s) VALUES (%s) ON CONFLICT (name) DO NOTHING",
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}

// reports whether an item with the given name exists
func (c *Client) ItemExists(ctx context.Context, name string) (bool, error) {
	var exists bool

	err := c.pool.QueryRow(ctx, itemExistsQuery, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}

	return exists, nil
}

// returns the total number of items in the database
func (c *Client) GetItemCount(ctx context.Context) (int, error) {
	var count int

	err := c.pool.QueryRow(ctx, getItemCountQuery).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}

	return count, nil
}

// deletes all items from the database
func (c *Client) ClearAllItems(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, deleteAllItemsQuery)
	if err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	return nil
}
