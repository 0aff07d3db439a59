package llm

import (
	"context"
	"errors"
	"fmt"
)

// identifies an embedding provider variant. Each provider produces vectors
// of a fixed dimensionality and is bound to its own storage column, so
// vectors from different providers are never compared with each other.
type Provider string

const (
	ProviderOpenAISmall Provider = "openai-small"
	ProviderOpenAILarge Provider = "openai-large"
	ProviderOllama      Provider = "ollama"
)

// reports whether p names a known provider
func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAISmall, ProviderOpenAILarge, ProviderOllama:
		return true
	}

	return false
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the fixed vector length this embedder produces.
	Dimensions() int

	// Provider returns the provider variant this embedder is bound to.
	Provider() Provider
}

// implemented by embedders whose backing model may need to be provisioned
// before first use (e.g. pulling a model into a local Ollama server)
type ModelEnsurer interface {
	EnsureModel(ctx context.Context) error
}

// ProviderError wraps any failure from an embedding provider: unreachable
// host, rate limit, invalid input, or missing model. StatusCode is the
// provider's HTTP status, or 0 when the request never got a response.
type ProviderError struct {
	Provider   Provider
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("embedding provider %s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// reports whether err is a provider error signalling that the requested
// model is not available (HTTP 404 from the provider)
func IsModelNotFound(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.StatusCode == 404
	}

	return false
}

// holds configuration for embedder construction
type Config struct {
	OpenAIKey   string
	OllamaHost  string
	OllamaModel string
}
