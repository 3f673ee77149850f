package main

import (
	"github.com/spf13/cobra"

	"github.com/stockline/stockline/internal/db"
	"github.com/stockline/stockline/internal/db/migrations"
	"github.com/stockline/stockline/internal/dbpool"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			pool, err := dbpool.NewPool(cmd.Context(), cfg.DatabaseURL.Value(), dbpool.Options{MaxConns: 2})
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.RunMigrations(cmd.Context(), pool, log, migrations.FS); err != nil {
				return err
			}

			log.WithField("schema_version", db.SchemaVersion()).Info("database is up to date")
			return nil
		},
	}
}
