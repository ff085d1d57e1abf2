package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/nexus-backend/internal/app"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:           "nexus",
	Short:         "Nexus learning platform backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (overrides NEXUS_CONFIG)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// bootstrap loads config and builds the logger shared by every command.
func bootstrap(cmd *cobra.Command) (app.Config, *logger.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return app.Config{}, nil, err
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return app.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
