package main

import (
	"github.com/spf13/cobra"

	"github.com/poofware/pledge-service/internal/app"
	"github.com/poofware/pledge-service/internal/config"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			defer cfg.Close()

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Migrate(cmd.Context())
		},
	}
}
