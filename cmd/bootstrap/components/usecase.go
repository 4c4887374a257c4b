package components

import (
	"localscout-booking/internal/pkg/clock"
	"localscout-booking/internal/pkg/config"
	"localscout-booking/internal/pkg/tz"
	"localscout-booking/internal/usecase"
	"localscout-booking/internal/usecase/commands"
	"localscout-booking/internal/usecase/queries"
	"localscout-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) *tz.Converter {
		return tz.NewConverter(cfg.Booking.TimeZone)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(uow shared.UnitOfWork, converter *tz.Converter, clk clock.Clock, events shared.EventPublisher, cfg config.Config) commands.BookingCommands {
			return commands.NewBookingUseCase(uow, converter, clk, events, cfg.Booking.Currency)
		},
		commands.NewPaymentUseCase,
		commands.NewNotificationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewNotificationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewAuthenticator,
	),
)
