package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/nexus-backend/internal/app"
	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load suggested roadmaps and code challenges from a YAML catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = cfg.Seed.Path
		}
		f, err := seed.LoadFile(path)
		if err != nil {
			return err
		}

		theDB, err := app.OpenDatabase(cfg, log)
		if err != nil {
			return err
		}
		if sqlDB, err := theDB.DB(); err == nil {
			defer sqlDB.Close()
		}
		catalog, rdb := app.OpenCatalog(cmd.Context(), cfg, log)
		if rdb != nil {
			defer rdb.Close()
		}

		seeder := seed.NewSeeder(log, repos.NewRoadmapRepo(theDB, log), repos.NewChallengeRepo(theDB, log), catalog)
		res, err := seeder.Apply(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "roadmaps: %d created, %d skipped; challenges: %d created, %d skipped\n",
			res.RoadmapsCreated, res.RoadmapsSkipped, res.ChallengesCreated, res.ChallengesSkipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("file", "", "Seed file (defaults to seed.path)")
}
