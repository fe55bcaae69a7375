// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres provides the managed PostgreSQL connection pool shared by
// every board, comment and account repository.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It owns the physical
// database connections (pgxpool); the domain packages only receive the pool.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-board/internal/platform/constants"
)

// Pool settings for the board workload: short OLTP statements, no long
// transactions.
const (
	defaultMaxConns   = 25
	minConns          = 2
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

/*
NewPool parses dsn, applies the pool settings and pings once.

Every connection is tagged with application_name and gets a
statement_timeout equal to the request timeout, so a query can never outlive
the request that issued it.

Parameters:
  - context: bounds the initial connection attempt
  - dsn: libpq keyword string or postgres:// URL
  - maxConns: pool upper bound; zero selects the default
  - logger: *slog.Logger

Returns:
  - *pgxpool.Pool: connected pool
  - error: DSN parse, connect or ping failure
*/
func NewPool(context context.Context, dsn string, maxConns int32, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := ParseConfig(dsn, maxConns)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(context, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
	)

	return pool, nil
}

// ParseConfig builds the pool configuration without connecting.
func ParseConfig(dsn string, maxConns int32) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = min(minConns, maxConns)
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	runtimeParams := poolConfig.ConnConfig.RuntimeParams
	if _, set := runtimeParams["application_name"]; !set {
		runtimeParams["application_name"] = constants.AppName
	}
	runtimeParams["statement_timeout"] = strconv.FormatInt(constants.GlobalRequestTimeout.Milliseconds(), 10)

	return poolConfig, nil
}

// Pinger is satisfied by [*pgxpool.Pool].
type Pinger interface {
	Ping(context context.Context) error
}

// Ping checks the database answers within pingTimeout.
func Ping(ctx context.Context, pool Pinger) error {
	pingContext, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingContext); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
