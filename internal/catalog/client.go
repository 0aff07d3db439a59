package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codeberg.org/openshelf/server/internal/logger"
)

const (
	defaultBaseURL   = "https://openlibrary.org"
	defaultPageLimit = 10
)

// shared HTTP client for Open Library API calls
var catalogHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

type Config struct {
	BaseURL   string // overridable for tests; defaults to the public API
	PageLimit int    // max works fetched per category
}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	if config.PageLimit <= 0 {
		config.PageLimit = defaultPageLimit
	}

	return &Client{
		config:     config,
		httpClient: catalogHTTPClient,
	}
}

// FetchSubjects fetches and normalizes books for each category in order.
// A failed category fails the whole fetch; results keep catalog order and
// are not deduplicated across categories.
func (c *Client) FetchSubjects(ctx context.Context, categories []string) ([]Book, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories provided")
	}

	var books []Book

	for _, category := range categories {
		fetched, err := c.fetchSubject(ctx, category)
		if err != nil {
			return nil, err
		}

		logger.Debug("fetched category", "category", category, "works", len(fetched))
		books = append(books, fetched...)
	}

	return books, nil
}

// fetches one page of works for a single category
func (c *Client) fetchSubject(ctx context.Context, category string) ([]Book, error) {
	url := fmt.Sprintf("%s/subjects/%s.json?limit=%d", c.config.BaseURL, category, c.config.PageLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Category: category, Err: fmt.Errorf("failed to send request: %w", err)}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &FetchError{
			Category:   category,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	var subjectResp subjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&subjectResp); err != nil {
		return nil, &FetchError{Category: category, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	books := make([]Book, 0, len(subjectResp.Works))

	for _, w := range subjectResp.Works {
		books = append(books, normalizeWork(w, category))
	}

	return books, nil
}
