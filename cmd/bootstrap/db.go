package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"localscout-booking/internal/infra/db"
	"localscout-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// Tables the booking lifecycle writes to. Migrations run out of band, so a
// missing table means the deploy is ahead of the schema.
var requiredTables = []string{"users", "provider_services", "bookings", "notifications"}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return checkSchema(ctx, pool)
		},
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

func checkSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range requiredTables {
		var present bool
		if err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&present); err != nil {
			return fmt.Errorf("failed to inspect schema: %w", err)
		}
		if !present {
			return fmt.Errorf("table %q is missing; apply migrations first", table)
		}
	}
	slog.Info("database schema verified", "tables", len(requiredTables))
	return nil
}
