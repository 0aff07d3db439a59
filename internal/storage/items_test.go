package storage

import (
	"context"
	"strings"
	"testing"

	"codeberg.org/openshelf/server/internal/llm"
)

func TestColumnFor(t *testing.T) {
	tests := []struct {
		provider llm.Provider
		want     string
	}{
		{llm.ProviderOpenAISmall, "embedding_openai_small"},
		{llm.ProviderOpenAILarge, "embedding_openai_large"},
		{llm.ProviderOllama, "embedding_ollama"},
	}

	for _, tt := range tests {
		col, err := ColumnFor(tt.provider)
		if err != nil {
			t.Errorf("ColumnFor(%s): %v", tt.provider, err)
		}

		if col != tt.want {
			t.Errorf("ColumnFor(%s) = %q, want %q", tt.provider, col, tt.want)
		}
	}

	if _, err := ColumnFor(llm.Provider("bogus")); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestDimensionsFor(t *testing.T) {
	dims, err := DimensionsFor(llm.ProviderOllama)
	if err != nil {
		t.Fatalf("DimensionsFor: %v", err)
	}

	if dims != 768 {
		t.Errorf("ollama dimensions = %d, want 768", dims)
	}
}

func TestBuildInsertQuery(t *testing.T) {
	query := buildInsertQuery([]string{"name", "item_data", "embedding_ollama"})

	want := "INSERT INTO items (name, item_data, embedding_ollama) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}

	if !strings.Contains(query, "ON CONFLICT (name) DO NOTHING") {
		t.Error("insert must rely on the name uniqueness constraint")
	}
}

// dimension validation happens before any database work, so a mismatched
// vector fails without touching the pool
func TestInsertItemDimensionMismatch(t *testing.T) {
	client := &Client{}

	_, err := client.InsertItem(context.Background(), "Clean Code", nil, map[llm.Provider][]float32{
		llm.ProviderOllama: make([]float32, 10),
	})

	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}

	if !strings.Contains(err.Error(), "dimensions") {
		t.Errorf("error does not mention dimensions: %v", err)
	}
}

func TestInsertItemValidation(t *testing.T) {
	client := &Client{}

	if _, err := client.InsertItem(context.Background(), "", nil, map[llm.Provider][]float32{
		llm.ProviderOllama: make([]float32, 768),
	}); err == nil {
		t.Error("expected error for empty name")
	}

	if _, err := client.InsertItem(context.Background(), "No Vectors", nil, nil); err == nil {
		t.Error("expected error for missing embeddings")
	}

	if _, err := client.InsertItem(context.Background(), "Bad Provider", nil, map[llm.Provider][]float32{
		llm.Provider("bogus"): make([]float32, 768),
	}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
