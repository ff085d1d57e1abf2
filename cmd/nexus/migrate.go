package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/nexus-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		theDB, err := app.OpenDatabase(cfg, log)
		if err != nil {
			return err
		}
		if sqlDB, err := theDB.DB(); err == nil {
			defer sqlDB.Close()
		}
		log.Info("schema migrated", "driver", cfg.DB.Driver)
		return nil
	},
}
