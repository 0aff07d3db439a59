package config

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/openshelf/server/internal/llm"
	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	ollamaHost := os.Getenv("OLLAMA_HOST")
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	providers, err := parseProviders(os.Getenv("EMBEDDING_PROVIDERS"))
	if err != nil {
		return nil, err
	}

	for _, provider := range providers {
		if provider != llm.ProviderOllama && openaiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for provider %s", provider)
		}
	}

	return &Config{
		DatabaseURL: databaseURL,
		OpenAIKey:   openaiKey,
		OllamaHost:  ollamaHost,
		OllamaModel: ollamaModel,
		Providers:   providers,
		Environment: environment,
	}, nil
}

// parses the EMBEDDING_PROVIDERS env var (comma-separated provider names);
// all providers are enabled when unset
func parseProviders(raw string) ([]llm.Provider, error) {
	if raw == "" {
		return []llm.Provider{
			llm.ProviderOpenAISmall,
			llm.ProviderOpenAILarge,
			llm.ProviderOllama,
		}, nil
	}

	var providers []llm.Provider

	for _, name := range strings.Split(raw, ",") {
		provider := llm.Provider(strings.TrimSpace(name))
		if provider == "" {
			continue
		}

		if !provider.Valid() {
			return nil, fmt.Errorf("unknown embedding provider %q in EMBEDDING_PROVIDERS", provider)
		}

		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("EMBEDDING_PROVIDERS must name at least one provider")
	}

	return providers, nil
}
