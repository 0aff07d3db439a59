package storage

import (
	"fmt"

	"codeberg.org/openshelf/server/internal/llm"
)

// one embedding column of the items table
type embeddingColumn struct {
	name       string
	dimensions int
}

// embedding columns by provider. Each provider writes to and queries its
// own column, so vectors from different models are never compared.
var embeddingColumns = map[llm.Provider]embeddingColumn{
	llm.ProviderOpenAISmall: {name: "embedding_openai_small", dimensions: 1536},
	llm.ProviderOpenAILarge: {name: "embedding_openai_large", dimensions: 3072},
	llm.ProviderOllama:      {name: "embedding_ollama", dimensions: 768},
}

// ColumnFor returns the items table column bound to the provider.
// Column names are resolved from this fixed map, never from request input,
// since they are interpolated into SQL.
func ColumnFor(provider llm.Provider) (string, error) {
	col, ok := embeddingColumns[provider]
	if !ok {
		return "", fmt.Errorf("no embedding column for provider %s", provider)
	}

	return col.name, nil
}

// DimensionsFor returns the declared vector length of the provider's column.
func DimensionsFor(provider llm.Provider) (int, error) {
	col, ok := embeddingColumns[provider]
	if !ok {
		return 0, fmt.Errorf("no embedding column for provider %s", provider)
	}

	return col.dimensions, nil
}
