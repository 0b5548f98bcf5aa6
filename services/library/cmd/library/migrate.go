package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/media-library/internal/platform/db"
	"github.com/example/media-library/services/library/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create the library tables in DATABASE_URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := store.Migrate(ctx, pool); err != nil {
			return err
		}
		log.Info("schema applied", zap.String("service", cfg.ServiceName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
