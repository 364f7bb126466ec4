package main

import (
	"os"

	"github.com/spf13/cobra"
	_ "time/tzdata"

	"github.com/poofware/pledge-service/internal/config"
	"github.com/poofware/pledge-service/internal/utils"
)

func main() {
	appName := config.AppName
	if appName == "" {
		appName = config.DefaultAppName
	}
	utils.InitLogger(appName)

	rootCmd := &cobra.Command{
		Use:          "pledged",
		Short:        "Pledge signing service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(statsCommand())
	rootCmd.AddCommand(seedCommand())

	if err := rootCmd.Execute(); err != nil {
		utils.Logger.WithError(err).Error("pledged exited with error")
		os.Exit(1)
	}
}
