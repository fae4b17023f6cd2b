package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/logging"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
)

type Deps struct {
	DB             *gorm.DB
	Auth           *authmw.Authenticator
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	PublicDir      string
}

// NewEcho returns an echo instance with the standard middleware chain.
func NewEcho(base *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(base))
	e.Use(middleware.Recover(), middleware.Secure(), middleware.CORS())

	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Error("readiness_failed", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	requireAuth := d.Auth.RequireAuth
	adminOnly := authmw.RequireAdmin()

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, requireAuth, adminOnly)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, requireAuth, adminOnly)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, requireAuth, adminOnly)

	orders := api.Group("/orders", requireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/myorders", d.OrderHandler.MyOrders)
	orders.GET("", d.OrderHandler.GetOrders, adminOnly)
	orders.PUT("/:id", d.OrderHandler.UpdateOrderStatus, adminOnly)

	if d.PublicDir != "" {
		e.Static("/", d.PublicDir)
	}
}
