package components

import (
	"recoil-backend/internal/infra/db"
	"recoil-backend/internal/infra/notify"
	repo_impl "recoil-backend/internal/infra/repository"
	"recoil-backend/internal/pkg/config"
	"recoil-backend/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repo_impl.NewCartRepository,
			fx.As(new(usecase.CartRepository)),
		),
		fx.Annotate(
			repo_impl.NewProductRepository,
			fx.As(new(usecase.ProductRepository)),
		),
		fx.Annotate(
			repo_impl.NewOrderRepository,
			fx.As(new(usecase.OrderRepository)),
		),
		fx.Annotate(
			repo_impl.NewProfileRepository,
			fx.As(new(usecase.ProfileRepository)),
		),
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(usecase.NotificationJobRepository)),
		),
		fx.Annotate(
			NewMailer,
			fx.As(new(usecase.Mailer)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewMailer(cfg config.Config) *notify.SMTPMailer {
	return notify.NewSMTPMailer(cfg.SMTP)
}
