// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// running database schema migrations.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. The serve command applies
// pending migrations at startup; the migrate command exposes up, down and
// version for operators.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner applies the SQL files under a migrations directory to one database.
type Runner struct {
	databaseURL string
	sourceURL   string
	logger      *slog.Logger
}

// NewRunner builds a runner for dsn and the migrations found at migrationsPath.
func NewRunner(dsn, migrationsPath string, logger *slog.Logger) *Runner {
	return &Runner{
		databaseURL: convertToPgx5DSN(dsn),
		sourceURL:   "file://" + migrationsPath,
		logger:      logger,
	}
}

// RunUp applies all pending UP migrations.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	return NewRunner(dsn, migrationsPath, logger).Up()
}

// Up applies all pending migrations. An already current schema is not an error.
func (runner *Runner) Up() error {
	return runner.with(func(migrator *migrate.Migrate, currentVersion uint) error {
		if err := migrator.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				runner.logger.Info("migration_already_up_to_date")
				return nil
			}
			return fmt.Errorf("migration: up failed: %w", err)
		}

		newVersion, _, _ := migrator.Version()
		runner.logger.Info("migration_successful",
			slog.Int("from_version", int(currentVersion)),
			slog.Int("to_version", int(newVersion)),
		)
		return nil
	})
}

// Down rolls back the given number of migrations.
func (runner *Runner) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migration: down steps must be positive, got %d", steps)
	}

	return runner.with(func(migrator *migrate.Migrate, currentVersion uint) error {
		if err := migrator.Steps(-steps); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				return nil
			}
			return fmt.Errorf("migration: down failed: %w", err)
		}

		newVersion, _, _ := migrator.Version()
		runner.logger.Info("migration_rolled_back",
			slog.Int("from_version", int(currentVersion)),
			slog.Int("to_version", int(newVersion)),
		)
		return nil
	})
}

// Version reports the current schema version and dirty flag.
// A database that was never migrated reports version 0.
func (runner *Runner) Version() (version uint, dirty bool, err error) {
	migrator, err := runner.open()
	if err != nil {
		return 0, false, err
	}
	defer runner.close(migrator)

	version, dirty, err = migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	return version, dirty, nil
}

func (runner *Runner) with(step func(migrator *migrate.Migrate, currentVersion uint) error) error {
	migrator, err := runner.open()
	if err != nil {
		return err
	}
	defer runner.close(migrator)

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	runner.logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))
	return step(migrator, currentVersion)
}

func (runner *Runner) open() (*migrate.Migrate, error) {
	migrator, err := migrate.New(runner.sourceURL, runner.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}

	migrator.Log = &migrateLogger{logger: runner.logger}
	return migrator, nil
}

func (runner *Runner) close(migrator *migrate.Migrate) {
	sourceError, dbError := migrator.Close()
	if sourceError != nil {
		runner.logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
	}
	if dbError != nil {
		runner.logger.Error("migration_db_close_failed", slog.Any("error", dbError))
	}
}

// convertToPgx5DSN ensures the DSN uses the pgx5:// scheme required by golang-migrate/v4.
func convertToPgx5DSN(dsn string) string {
	const pgx5Prefix = "pgx5://"

	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return pgx5Prefix + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
