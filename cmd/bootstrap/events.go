package bootstrap

import (
	"context"
	"log/slog"

	"localscout-booking/internal/infra/events"
	"localscout-booking/internal/pkg/config"
	"localscout-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	if cfg.AMQP.URL == "" {
		logger.Info("booking events go to the log", "reason", "AMQP_URL not set")
		return events.LogPublisher{}, nil
	}

	pub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
