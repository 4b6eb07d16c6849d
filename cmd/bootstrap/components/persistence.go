package components

import (
	"parkbroker/internal/infra/db"
	"parkbroker/internal/infra/readstore"
	"parkbroker/internal/infra/uow"
	"parkbroker/internal/pkg/config"
	"parkbroker/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewLedgerConfig,
		// UnitOfWork owns the write side; repositories are reached through
		// its transactions only.
		uow.NewPostgresUoW,
		// Read-side stores
		fx.Annotate(
			readstore.NewSpotReadStore,
			fx.As(new(queries.SpotViewRepo)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewLedgerConfig(cfg config.Config) config.LedgerConfig {
	return cfg.Ledger
}
