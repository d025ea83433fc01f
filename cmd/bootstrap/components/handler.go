package components

import (
	"recoil-backend/internal/handler"
	"recoil-backend/internal/handler/api"
	"recoil-backend/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		api.NewAdminOrderHandler,
		api.NewNotificationHandler,
		api.NewProductHandler,
		middleware.NewAuthMiddleware,
		middleware.NewServerMetrics,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	order *api.OrderHandler,
	adminOrder *api.AdminOrderHandler,
	notification *api.NotificationHandler,
	product *api.ProductHandler,
) handler.Handlers {
	return handler.Handlers{
		Cart:         cart,
		Checkout:     checkout,
		Order:        order,
		AdminOrder:   adminOrder,
		Notification: notification,
		Product:      product,
	}
}
