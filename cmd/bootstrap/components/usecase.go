package components

import (
	"parkbroker/internal/domain/booking"
	"parkbroker/internal/handler/middleware"
	"parkbroker/internal/pkg/clock"
	"parkbroker/internal/pkg/jwt"
	"parkbroker/internal/usecase/commands"
	"parkbroker/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewHourlyPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	booking.NewFactory,
	fx.Annotate(
		func(svc *jwt.Service) *jwt.Service { return svc },
		fx.As(new(middleware.TokenValidator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSpotCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSpotQueries,
		queries.NewBookingQueries,
	),
)
