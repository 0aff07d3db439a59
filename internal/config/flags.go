package config

import (
	"flag"
	"os"
	"strings"
)

const (
	defaultCategories = "web_development"
	defaultPageLimit  = 10
)

// parses CLI flags for the books subcommand
func ParseBooksFlags() Flags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("books", flag.ExitOnError)
	categories := fs.String("categories", defaultCategories, "comma-separated Open Library subject categories")
	limit := fs.Int("limit", defaultPageLimit, "max works fetched per category")
	clearFlag := fs.Bool("clear", false, "clear existing items before ingesting")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{
		Categories: splitCategories(*categories),
		PageLimit:  *limit,
		Clear:      *clearFlag,
	}
}

// returns default flags for books ingestion
func DefaultBooksFlags() Flags {
	return Flags{
		Categories: splitCategories(defaultCategories),
		PageLimit:  defaultPageLimit,
		Clear:      false,
	}
}

func splitCategories(raw string) []string {
	var categories []string

	for _, category := range strings.Split(raw, ",") {
		category = strings.TrimSpace(category)
		if category != "" {
			categories = append(categories, category)
		}
	}

	return categories
}
