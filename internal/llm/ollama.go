package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultOllamaHost  = "http://localhost:11434"
	defaultOllamaModel = "nomic-embed-text"

	// nomic-embed-text produces 768-dimensional vectors
	ollamaDimensions = 768
)

// shared HTTP client for Ollama API calls. Pulling a model can take a
// while, so the timeout is generous compared to the OpenAI client.
var ollamaHTTPClient = &http.Client{
	Timeout: 10 * time.Minute,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}

type ollamaPullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

type OllamaConfig struct {
	Host  string // e.g., "http://localhost:11434"
	Model string // e.g., "nomic-embed-text"
}

type OllamaEmbedder struct {
	config     OllamaConfig
	httpClient *http.Client
}

func NewOllamaEmbedder(config OllamaConfig) *OllamaEmbedder {
	if config.Host == "" {
		config.Host = defaultOllamaHost
	}

	if config.Model == "" {
		config.Model = defaultOllamaModel
	}

	return &OllamaEmbedder{
		config:     config,
		httpClient: ollamaHTTPClient,
	}
}

func (e *OllamaEmbedder) Dimensions() int {
	return ollamaDimensions
}

func (e *OllamaEmbedder) Provider() Provider {
	return ProviderOllama
}

func (e *OllamaEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, &ProviderError{Provider: ProviderOllama, Err: fmt.Errorf("no embeddings returned")}
	}

	return embeddings[0], nil
}

func (e *OllamaEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, &ProviderError{Provider: ProviderOllama, Err: fmt.Errorf("no texts provided")}
	}

	for _, text := range texts {
		if text == "" {
			return nil, &ProviderError{Provider: ProviderOllama, Err: fmt.Errorf("empty text provided")}
		}
	}

	reqBody := ollamaEmbedRequest{
		Model: e.config.Model,
		Input: texts,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := e.config.Host + "/api/embed"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderOllama, Err: fmt.Errorf("failed to send request: %w", err)}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Provider:   ProviderOllama,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API request failed: %s", string(body)),
		}
	}

	var embResp ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, &ProviderError{Provider: ProviderOllama, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(embResp.Embeddings) != len(texts) {
		return nil, &ProviderError{
			Provider: ProviderOllama,
			Err:      fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embResp.Embeddings)),
		}
	}

	for i, embedding := range embResp.Embeddings {
		if len(embedding) != ollamaDimensions {
			return nil, &ProviderError{
				Provider: ProviderOllama,
				Err:      fmt.Errorf("embedding %d has %d dimensions, expected %d", i, len(embedding), ollamaDimensions),
			}
		}
	}

	return embResp.Embeddings, nil
}

// EnsureModel verifies the embedding model is available on the Ollama
// server, pulling it once if missing. A probe embed that still fails after
// the pull is returned as the final error.
func (e *OllamaEmbedder) EnsureModel(ctx context.Context) error {
	_, err := e.GenerateEmbedding(ctx, "test")
	if err == nil {
		return nil
	}

	if !IsModelNotFound(err) {
		return err
	}

	if err := e.pullModel(ctx); err != nil {
		return err
	}

	if _, err := e.GenerateEmbedding(ctx, "test"); err != nil {
		return fmt.Errorf("model %s still unavailable after pull: %w", e.config.Model, err)
	}

	return nil
}

// requests a blocking model pull from the Ollama server
func (e *OllamaEmbedder) pullModel(ctx context.Context) error {
	reqBody := ollamaPullRequest{
		Model:  e.config.Model,
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := e.config.Host + "/api/pull"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Provider: ProviderOllama, Err: fmt.Errorf("failed to pull model %s: %w", e.config.Model, err)}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &ProviderError{
			Provider:   ProviderOllama,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("model pull failed: %s", string(body)),
		}
	}

	return nil
}
