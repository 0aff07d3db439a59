package llm

import (
	"fmt"
)

// creates an embedder for the given provider variant
func NewEmbedder(provider Provider, config Config) (Embedder, error) {
	switch provider {
	case ProviderOpenAISmall, ProviderOpenAILarge:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("provider %s requires an OpenAI API key", provider)
		}

		return NewOpenAIEmbedder(provider, OpenAIConfig{APIKey: config.OpenAIKey})

	case ProviderOllama:
		return NewOllamaEmbedder(OllamaConfig{
			Host:  config.OllamaHost,
			Model: config.OllamaModel,
		}), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

// creates one embedder per provider, preserving order
func NewEmbedders(providers []Provider, config Config) ([]Embedder, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("no embedding providers configured")
	}

	embedders := make([]Embedder, 0, len(providers))

	for _, provider := range providers {
		embedder, err := NewEmbedder(provider, config)
		if err != nil {
			return nil, err
		}

		embedders = append(embedders, embedder)
	}

	return embedders, nil
}
