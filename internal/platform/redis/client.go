// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client behind the principal cache.

The cache is optional: when no URL is configured the server runs without
Redis and every token validation reads the user store directly. When a URL
is configured, an unreachable server at startup is fatal, while failures
after startup are absorbed by the cache layer.
*/
package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Timeouts stay below the per-request budget so a slow cache degrades to a
// store read instead of a slow response.
const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	pingTimeout  = 2 * time.Second
)

// ErrNoURL is returned by [NewClient] for an empty URL.
var ErrNoURL = errors.New("redis: empty URL")

// Pinger is the subset of the client needed for health checks.
type Pinger interface {
	Ping(context stdctx.Context) *redis.StatusCmd
}

/*
NewClient parses redisURL, sizes the pool for short key lookups and checks
connectivity once.

Parameters:
  - context: bounds the initial ping
  - redisURL: redis:// or rediss:// URL
  - logger: *slog.Logger

Returns:
  - *redis.Client: connected client
  - error: ErrNoURL, a parse error or the ping failure
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	if redisURL == "" {
		return nil, ErrNoURL
	}

	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	// Principal lookups are single GET/SET/DEL round trips.
	options.PoolSize = 20
	options.MinIdleConns = 2
	options.MaxRetries = 1

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping checks the server answers within pingTimeout.
func Ping(context stdctx.Context, client Pinger) error {
	pingContext, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingContext).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
