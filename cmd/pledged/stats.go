package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/poofware/pledge-service/internal/app"
	"github.com/poofware/pledge-service/internal/config"
)

func statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print a fresh stats snapshot as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			defer cfg.Close()

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			stats, err := application.StatsService.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
}
