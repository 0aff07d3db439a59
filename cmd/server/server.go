package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/openshelf/server/internal/config"
	"codeberg.org/openshelf/server/internal/llm"
	"codeberg.org/openshelf/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// one embedder per search route; each route queries the column its
	// provider writes to
	embedders, err := llm.NewEmbedders([]llm.Provider{
		llm.ProviderOpenAISmall,
		llm.ProviderOllama,
	}, cfg.LLM())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create embedders: %w", err)
	}

	retrieverClient := retriever.New(db, embedders)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:        db,
		config:    cfg,
		retriever: retrieverClient,
		router:    router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
