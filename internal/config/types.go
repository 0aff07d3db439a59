package config

import (
	"codeberg.org/openshelf/server/internal/llm"
)

type Config struct {
	DatabaseURL string
	OpenAIKey   string
	OllamaHost  string
	OllamaModel string
	Providers   []llm.Provider
	Environment string
}

// returns the embedder construction config derived from the loaded env
func (c *Config) LLM() llm.Config {
	return llm.Config{
		OpenAIKey:   c.OpenAIKey,
		OllamaHost:  c.OllamaHost,
		OllamaModel: c.OllamaModel,
	}
}

type Flags struct {
	Categories []string
	PageLimit  int
	Clear      bool
}
