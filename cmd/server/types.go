package main

import (
	"codeberg.org/openshelf/server/internal/config"
	"codeberg.org/openshelf/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db        *pgxpool.Pool
	config    *config.Config
	retriever *retriever.Client
	router    *gin.Engine
}
