package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/openshelf/server/internal/config"
	"codeberg.org/openshelf/server/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  books  - fetch books from Open Library, embed, and store them")
		fmt.Println("  clear  - delete all stored items")
		fmt.Println("\nOptions for books:")
		fmt.Println("  --categories <list>  - comma-separated subject categories")
		fmt.Println("  --limit <n>          - max works fetched per category")
		fmt.Println("  --clear              - clear existing items before ingesting")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// connect to database
	ctx := context.Background()
	db, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	defer db.Close()

	// route to appropriate command
	switch command {
	case "books":
		flags := config.ParseBooksFlags()
		if err := IngestBooks(cfg, db, flags); err != nil {
			logger.Fatal("failed to ingest books", "error", err)
		}

	case "clear":
		if err := ClearItems(db); err != nil {
			logger.Fatal("failed to clear items", "error", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}
