package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recoil-backend/internal/domain/user"
	"recoil-backend/internal/handler/api"
	"recoil-backend/internal/handler/middleware"
	"recoil-backend/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Cart         *api.CartHandler
	Checkout     *api.CheckoutHandler
	Order        *api.OrderHandler
	AdminOrder   *api.AdminOrderHandler
	Notification *api.NotificationHandler
	Product      *api.ProductHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, metrics *middleware.ServerMetrics) {
	setupMiddleware(engine, cfg, metrics)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, metrics *middleware.ServerMetrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(metrics.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	{
		products := apiGroup.Group("/products")
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Product.ListProducts},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Product.GetProduct},
			})
		}

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Cart.GetCart},
				{Method: http.MethodDelete, Path: "", Handler: h.Cart.ClearCart},
				{Method: http.MethodPost, Path: "/items", Handler: h.Cart.AddItem},
				{Method: http.MethodDelete, Path: "/items", Handler: h.Cart.RemoveItem},
				{Method: http.MethodPatch, Path: "/items", Handler: h.Cart.SetQuantity},
			})

			merge := cart.Group("")
			merge.Use(authMiddleware.RequireAuth())
			addRoutes(merge, []route{
				{Method: http.MethodPost, Path: "/merge", Handler: h.Cart.MergeCart},
			})
		}

		checkout := apiGroup.Group("/checkout")
		checkout.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Checkout.Checkout},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Order.GetUserOrders},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.GetOrder},
				{Method: http.MethodPost, Path: "/cancel", Handler: h.Order.CancelOrder},
				// Internal trigger for the dashboard; operator-only.
				{Method: http.MethodPost, Path: "/notify-customer", Handler: h.Notification.NotifyCustomer,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/orders", Handler: h.AdminOrder.ListOrders},
				{Method: http.MethodPost, Path: "/orders/status", Handler: h.AdminOrder.UpdateStatus},
				{Method: http.MethodPost, Path: "/orders/approve-cancel", Handler: h.AdminOrder.ApproveCancellation},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
