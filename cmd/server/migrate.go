package main

import (
	"github.com/spf13/cobra"

	"github.com/artem13815/jobboard/pkg/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		pool, err := postgres.Connect(cmd.Context(), cfg.DatabaseURL, int32(cfg.DBMaxConns))
		if err != nil {
			return err
		}
		defer pool.Close()
		return postgres.Migrate(cmd.Context(), pool, log)
	},
}
