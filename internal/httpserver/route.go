package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/tienda/internal/transport"
	"github.com/Skotchmaster/tienda/pkg/logging"
	"github.com/Skotchmaster/tienda/pkg/metrics"
	loggingmw "github.com/Skotchmaster/tienda/pkg/middleware/logging"
	"github.com/Skotchmaster/tienda/pkg/validation"
)

type Deps struct {
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	SearchHandler  *SearchHTTP
	// Ready reports whether the store can take requests.
	Ready   func(ctx context.Context) error
	Metrics *metrics.Metrics
}

// New builds the echo instance with the shop's middleware chain. m may be
// nil.
func New(logger *slog.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	if m != nil {
		e.Use(m.Middleware)
	}
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("1M"))
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.HealthResponse{OK: true})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx := c.Request().Context()
		if err := d.Ready(ctx); err != nil {
			logging.FromContext(ctx).Warn("readiness_failed", "status", 503, "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	products := e.Group("/productos")
	if d.SearchHandler != nil {
		products.GET("/buscar", d.SearchHandler.SearchProducts)
	}
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)

	carrito := e.Group("/carrito")
	carrito.GET("", d.CartHandler.GetCart)
	carrito.POST("/agregar", d.CartHandler.AddToCart)
	carrito.DELETE("/:id", d.CartHandler.RemoveFromCart)

	ordenes := e.Group("/ordenes")
	ordenes.GET("", d.OrderHandler.ListOrders)
	ordenes.POST("", d.OrderHandler.CreateOrder)
	ordenes.GET("/:id", d.OrderHandler.GetOrder)
}
