package search

import (
	"context"

	"codeberg.org/openshelf/server/internal/llm"
	"codeberg.org/openshelf/server/internal/retriever"
)

const defaultLimit = 3

// performs a vector similarity search against one provider's column
type Searcher interface {
	Search(ctx context.Context, provider llm.Provider, queryText string, limit int) ([]retriever.Result, error)
}

// SearchRequest is the POST /search/ body. Limit is a pointer so an absent
// limit (defaults to 3) can be told apart from an explicit zero, which is
// rejected.
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit *int   `json:"limit"`
}
