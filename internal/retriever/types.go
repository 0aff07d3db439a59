package retriever

import (
	"codeberg.org/openshelf/server/internal/llm"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Client struct {
	pool      *pgxpool.Pool
	embedders map[llm.Provider]llm.Embedder
}

// Result is one search hit. Similarity is the cosine distance between the
// stored vector and the query vector: lower is more similar.
type Result struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	ItemData   map[string]any `json:"item_data"`
	Similarity float64        `json:"similarity"`
}
