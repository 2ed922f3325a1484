package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"carreramedico/internal/config"
	"carreramedico/internal/infrastructure/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lggr, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = lggr.Sync() }()

			if cfg.Storage != config.StoragePostgres {
				return fmt.Errorf("migrate requires STORAGE=%s", config.StoragePostgres)
			}
			return database.RunMigrations(cfg.DatabaseURL, lggr)
		},
	}
}
