package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	openaiEmbeddingsURL = "https://api.openai.com/v1/embeddings"

	openaiSmallModel      = "text-embedding-3-small"
	openaiLargeModel      = "text-embedding-3-large"
	openaiSmallDimensions = 1536
	openaiLargeDimensions = 3072
)

// shared HTTP client for OpenAI API calls
// reuses connection pool and timeout configuration
var openaiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for OpenAI API calls (50 requests/second with burst capacity of 10)
var openaiRateLimiter = rate.NewLimiter(50, 10)

type openaiEmbeddingRequest struct {
	Input    []string `json:"input"`
	Model    string   `json:"model"`
	Encoding string   `json:"encoding_format"`
}

type openaiEmbeddingResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string // overridable for tests; defaults to the public API
}

type OpenAIEmbedder struct {
	provider   Provider
	model      string
	dimensions int
	config     OpenAIConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// creates an embedder for the given OpenAI provider variant
// (ProviderOpenAISmall or ProviderOpenAILarge)
func NewOpenAIEmbedder(provider Provider, config OpenAIConfig) (*OpenAIEmbedder, error) {
	var model string
	var dimensions int

	switch provider {
	case ProviderOpenAISmall:
		model = openaiSmallModel
		dimensions = openaiSmallDimensions
	case ProviderOpenAILarge:
		model = openaiLargeModel
		dimensions = openaiLargeDimensions
	default:
		return nil, fmt.Errorf("provider %s is not an OpenAI variant", provider)
	}

	if config.BaseURL == "" {
		config.BaseURL = openaiEmbeddingsURL
	}

	return &OpenAIEmbedder{
		provider:   provider,
		model:      model,
		dimensions: dimensions,
		config:     config,
		httpClient: openaiHTTPClient, // use shared client with proper timeouts and connection pooling
		limiter:    openaiRateLimiter,
	}, nil
}

func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *OpenAIEmbedder) Provider() Provider {
	return e.provider
}

func (e *OpenAIEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, &ProviderError{Provider: e.provider, Err: fmt.Errorf("no embeddings returned")}
	}

	return embeddings[0], nil
}

func (e *OpenAIEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, &ProviderError{Provider: e.provider, Err: fmt.Errorf("no texts provided")}
	}

	for _, text := range texts {
		if text == "" {
			return nil, &ProviderError{Provider: e.provider, Err: fmt.Errorf("empty text provided")}
		}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: e.provider, Err: fmt.Errorf("rate limiter wait: %w", err)}
	}

	reqBody := openaiEmbeddingRequest{
		Input:    texts,
		Model:    e.model,
		Encoding: "float",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", e.config.APIKey))

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: e.provider, Err: fmt.Errorf("failed to send request: %w", err)}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Provider:   e.provider,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API request failed: %s", string(body)),
		}
	}

	var embResp openaiEmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, &ProviderError{Provider: e.provider, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	embeddings := make([][]float32, len(embResp.Data))
	for _, data := range embResp.Data {
		if data.Index < 0 || data.Index >= len(embeddings) {
			return nil, &ProviderError{Provider: e.provider, Err: fmt.Errorf("embedding index %d out of range", data.Index)}
		}

		embeddings[data.Index] = data.Embedding
	}

	for i, embedding := range embeddings {
		if len(embedding) != e.dimensions {
			return nil, &ProviderError{
				Provider: e.provider,
				Err:      fmt.Errorf("embedding %d has %d dimensions, expected %d", i, len(embedding), e.dimensions),
			}
		}
	}

	return embeddings, nil
}
