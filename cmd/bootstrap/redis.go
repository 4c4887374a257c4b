package bootstrap

import (
	"context"
	"log/slog"

	"localscout-booking/internal/infra/checkout"
	"localscout-booking/internal/pkg/config"
	"localscout-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var CheckoutLookupModule = fx.Module("checkout-lookup",
	fx.Provide(
		NewCheckoutLookup,
	),
)

// NewCheckoutLookup connects to Redis when REDIS_ADDR is set. Without it
// webhooks resolve bookings by parsing the transaction id alone.
func NewCheckoutLookup(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.CheckoutLookup, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("checkout lookup disabled", "reason", "REDIS_ADDR not set")
		return checkout.NoopLookup{}, nil
	}

	client, err := checkout.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return checkout.NewRedisLookup(client, cfg.Redis.Prefix), nil
}
