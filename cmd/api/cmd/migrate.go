// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-board/internal/platform/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration commands",
	Long:  `Commands for applying and rolling back the SQL migrations under migration_path.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log).Up(); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back the given number of migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed < 1 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = parsed
		}

		if err := migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log).Down(steps); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log).Version()
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		log.Info("migration_version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}
