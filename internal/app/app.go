package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/poofware/pledge-service/internal/cache"
	"github.com/poofware/pledge-service/internal/config"
	"github.com/poofware/pledge-service/internal/middleware"
	"github.com/poofware/pledge-service/internal/repositories"
	"github.com/poofware/pledge-service/internal/services"
	"github.com/poofware/pledge-service/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App holds the configured collaborators and services of one process.
type App struct {
	Config *config.Config
	DB     *pgxpool.Pool

	SignatoryRepo repositories.SignatoryRepository
	StatsCache    cache.StatsCache
	SubmitLimiter *middleware.IPRateLimiter

	PledgeService       services.PledgeService
	VerificationService services.VerificationService
	StatsService        services.StatsService
	SignatoryService    services.SignatoryService
}

// NewApp connects to Postgres (with retries) and wires the production
// collaborators.
func NewApp(cfg *config.Config) (*App, error) {
	utils.Logger.Info("Initializing pledge-service App")

	dbPool, err := connectWithRetry(cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	statsCache, err := cache.New(cfg.RedisURL, cfg.StatsCacheTTL)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("stats cache: %w", err)
	}

	a := NewAppWithDeps(
		cfg,
		repositories.NewSignatoryRepository(dbPool),
		services.NewMailer(cfg),
		services.NewTracker(cfg.LDClient()),
		statsCache,
	)
	a.DB = dbPool
	return a, nil
}

// NewAppWithDeps builds the services around the given collaborators. It
// opens no connections.
func NewAppWithDeps(
	cfg *config.Config,
	repo repositories.SignatoryRepository,
	mailer services.Mailer,
	tracker services.Tracker,
	statsCache cache.StatsCache,
) *App {
	return &App{
		Config:              cfg,
		SignatoryRepo:       repo,
		StatsCache:          statsCache,
		SubmitLimiter:       middleware.NewIPRateLimiter(cfg.SubmitRatePerMinute, cfg.SubmitRateBurst, cfg.TrustedProxyHops),
		PledgeService:       services.NewPledgeService(cfg, repo, mailer, tracker, statsCache),
		VerificationService: services.NewVerificationService(repo, tracker, statsCache),
		StatsService:        services.NewStatsService(repo, statsCache),
		SignatoryService:    services.NewSignatoryService(repo),
	}
}

func (a *App) Close() {
	if a.StatsCache != nil {
		if err := a.StatsCache.Close(); err != nil {
			utils.Logger.WithError(err).Warn("Closing stats cache")
		}
	}
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("Database connection closed.")
	}
}

func connectWithRetry(databaseURL string) (*pgxpool.Pool, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, databaseURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("Successfully connected to database on attempt %d", i)
			return dbPool, nil
		}

		utils.Logger.WithError(err).Warnf(
			"Failed to connect to database on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)
		if i == maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// newDBPool retires idle sockets before typical proxy idle cutoffs and keeps
// the rest warm with background health checks.
func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}
