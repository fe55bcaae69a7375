// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-board/internal/platform/config"
	"github.com/taibuivan/yomira-board/internal/platform/constants"
)

var (
	configPath string
	cfg        *config.Config
	log        *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Board API server",
	Long: `api serves the board REST API: registration and login with bearer tokens,
boards, comments and account management, backed by PostgreSQL and an optional
Redis principal cache.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log = newLogger(cfg.Debug)
		slog.SetDefault(log)

		log.Info("configuration_loaded",
			slog.String("environment", cfg.Environment),
			slog.String("port", cfg.ServerPort),
			slog.Bool("principal_cache", cfg.RedisURL != ""),
		)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// newLogger builds the process-wide JSON logger tagged with the app name.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
	)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "Path to a YAML config file (env: CONFIG_FILE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
