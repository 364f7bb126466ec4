package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/poofware/pledge-service/internal/utils"
	"github.com/poofware/pledge-service/migrations"
)

// Migrate applies every embedded schema script not yet recorded in
// schema_migrations, each in its own transaction.
func (a *App) Migrate(ctx context.Context) error {
	if a.DB == nil {
		return fmt.Errorf("migrate: no database connection")
	}
	if _, err := a.DB.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            name       TEXT PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	scripts, err := migrations.All()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	for _, s := range scripts {
		var applied bool
		if err := a.DB.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, s.Name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check %s: %w", s.Name, err)
		}
		if applied {
			utils.Logger.Debugf("Migration %s already applied", s.Name)
			continue
		}

		err := a.DB.BeginFunc(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, s.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, s.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply %s: %w", s.Name, err)
		}
		utils.Logger.Infof("Applied migration %s", s.Name)
	}
	return nil
}
