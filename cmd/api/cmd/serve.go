// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-board/internal/api"
	"github.com/taibuivan/yomira-board/internal/forum/board"
	"github.com/taibuivan/yomira-board/internal/forum/comment"
	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/metrics"
	"github.com/taibuivan/yomira-board/internal/platform/migration"
	pgstore "github.com/taibuivan/yomira-board/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-board/internal/platform/redis"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
	"github.com/taibuivan/yomira-board/internal/users/account"
	"github.com/taibuivan/yomira-board/internal/users/auth"
)

// startupTimeout bounds connecting to dependencies so misconfiguration fails fast.
const startupTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Connects to PostgreSQL (and Redis when redis_url is set), optionally applies
pending migrations, then serves the API until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

/*
serve wires every dependency and blocks until shutdown.

Startup Sequence:
 1. Connect to PostgreSQL (pgxpool).
 2. Connect to Redis when configured.
 3. Run database migrations when auto_migrate is set.
 4. Build the token codec, hasher and metrics registry.
 5. Wire repositories, services and handlers.
 6. Serve with graceful shutdown.
*/
func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	// Root context for background workers (rate limiter cleanup).
	rootContext, stop := context.WithCancel(parent)
	defer stop()

	startupContext, startupCancel := context.WithTimeout(rootContext, startupTimeout)
	defer startupCancel()

	// # PostgreSQL
	pool, err := pgstore.NewPool(startupContext, cfg.DatabaseURL, cfg.DatabaseMaxConns, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// # Redis (optional)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redisstore.NewClient(startupContext, cfg.RedisURL, log)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() {
			log.Info("closing_redis_client")
			if closeErr := redisClient.Close(); closeErr != nil {
				log.Error("redis_close_failed", slog.Any("error", closeErr))
			}
		}()
	}

	// # Migrations
	if cfg.AutoMigrate {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// # Security & Observability
	codec, err := sec.NewTokenCodec([]byte(cfg.JWT.Secret), cfg.JWT.TokenTTL())
	if err != nil {
		return fmt.Errorf("initialize token codec: %w", err)
	}
	hasher := sec.NewBcryptHasher(cfg.BcryptCost)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// # Domain Wiring
	userRepository := newUserRepository(pool, redisClient, appMetrics)

	authService := auth.NewService(userRepository, hasher, codec, appMetrics)
	boardService := board.NewService(board.NewPostgresRepository(pool))
	commentService := comment.NewService(comment.NewPostgresRepository(pool), boardService)
	accountService := account.NewService(userRepository, hasher, boardService, commentService)

	health := api.HealthDependencies{
		CheckDatabase: func(context context.Context) error {
			return pgstore.Ping(context, pool)
		},
	}
	if redisClient != nil {
		health.CheckCache = func(context context.Context) error {
			return redisstore.Ping(context, redisClient)
		}
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	server := api.NewServer(rootContext, cfg, log, authService, appMetrics, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Board:     board.NewHandler(boardService),
		Comment:   comment.NewHandler(commentService),
	})

	// # Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	log.Info("server_started", slog.String("port", cfg.ServerPort))

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-parent.Done():
		log.Info("shutdown_context_cancelled")
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped_cleanly")
	return nil
}

// newUserRepository puts the Redis principal cache in front of Postgres when a client is configured.
func newUserRepository(pool *pgxpool.Pool, redisClient *goredis.Client, m *metrics.Metrics) auth.UserRepository {
	repository := auth.NewUserRepository(pool)
	if redisClient == nil {
		return repository
	}
	return auth.NewCachedUserRepository(repository, redisClient, cfg.PrincipalCacheTTL, log, m)
}
