package storage

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/openshelf/server/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Client struct {
	pool     *pgxpool.Pool
	ownsPool bool
}

func NewClient(ctx context.Context, connString string) (*Client, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{pool: pool, ownsPool: true}, nil
}

// wraps an existing pool without taking ownership of it
func NewClientFromPool(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

func (c *Client) Close() {
	if c.ownsPool {
		c.pool.Close()
	}
}

// WaitReady pings the database until it responds or the timeout elapses.
// The ingester runs alongside a database that may still be starting up.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		err := c.pool.Ping(ctx)
		if err == nil {
			return nil
		}

		logger.Debug("database not ready yet", "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("database not ready after %s: %w", timeout, ctx.Err())
		case <-ticker.C:
		}
	}
}
