package components

import (
	"time"

	"recoil-backend/internal/pkg/async"
	"recoil-backend/internal/pkg/clock"
	"recoil-backend/internal/pkg/config"
	"recoil-backend/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewAsyncRunner,
		NewDispatcher,
		NewCartUseCase,
		NewCheckoutUseCase,
		NewOrderUseCase,
		NewNotificationUseCase,
		usecase.NewProductUseCase,
		usecase.NewTokenValidator,
	),
)

func NewAsyncRunner() async.Runner {
	return async.NewBackgroundRunner(30 * time.Second)
}

func NewDispatcher(
	jobRepo usecase.NotificationJobRepository,
	profileRepo usecase.ProfileRepository,
	mailer usecase.Mailer,
	runner async.Runner,
	clk clock.Clock,
	cfg config.Config,
) usecase.Dispatcher {
	return usecase.NewDispatcher(jobRepo, profileRepo, mailer, runner, clk, cfg.Shop.AdminEmail, cfg.Shop.Currency)
}

func NewCartUseCase(repo usecase.CartRepository, runner async.Runner) usecase.CartUseCase {
	return usecase.NewCartUseCase(repo, runner)
}

func NewCheckoutUseCase(
	productRepo usecase.ProductRepository,
	orderRepo usecase.OrderRepository,
	dispatcher usecase.Dispatcher,
	pool *pgxpool.Pool,
	cfg config.Config,
) usecase.CheckoutUseCase {
	return usecase.NewCheckoutUseCase(productRepo, orderRepo, dispatcher, pool, cfg.Shop.FlatShippingFeeCents)
}

func NewOrderUseCase(orderRepo usecase.OrderRepository, dispatcher usecase.Dispatcher) usecase.OrderUseCase {
	return usecase.NewOrderUseCase(orderRepo, dispatcher)
}

func NewNotificationUseCase(
	orderRepo usecase.OrderRepository,
	mailer usecase.Mailer,
	cfg config.Config,
) usecase.NotificationUseCase {
	return usecase.NewNotificationUseCase(orderRepo, mailer, cfg.Shop.Currency)
}
