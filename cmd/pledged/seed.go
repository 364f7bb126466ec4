package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poofware/pledge-service/internal/app"
	"github.com/poofware/pledge-service/internal/config"
	"github.com/poofware/pledge-service/internal/seeding"
)

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo signatories (non-production only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			defer cfg.Close()
			if cfg.Production {
				return errors.New("refusing to seed a production database")
			}

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			n, err := seeding.SeedDemoSignatories(cmd.Context(), application.SignatoryRepo)
			if err != nil {
				return err
			}
			application.StatsCache.Invalidate(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d signatories\n", n)
			return nil
		},
	}
}
