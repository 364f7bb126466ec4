package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/poofware/pledge-service/internal/app"
	"github.com/poofware/pledge-service/internal/config"
	"github.com/poofware/pledge-service/internal/utils"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context())
		},
	}
}

func serveRun(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Config
	cfg := config.LoadConfig()
	defer cfg.Close()

	// 2) Core application (DB, cache, services)
	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	// 3) Keep the stats snapshot warm
	c := cron.New()
	if _, err := c.AddFunc(cfg.StatsRefreshSpec, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := application.StatsService.Refresh(refreshCtx); err != nil {
			utils.Logger.WithError(err).Error("Scheduled stats refresh failed")
		}
	}); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	// 4) HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           application.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
