package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tienda/internal/service"
	"github.com/Skotchmaster/tienda/internal/transport"
	"github.com/Skotchmaster/tienda/pkg/logging"
)

const msgOrderNotFound = "Orden no encontrada"

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "reason", "store error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Debug("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		l.Debug("create_order_failed", "status", 400, "reason", "total missing")
		return echo.NewHTTPError(http.StatusBadRequest, "total requerido")
	}

	order, err := h.Svc.CreateOrder(ctx, req.Total)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "total requerido")
		}
		l.Error("create_order_failed", "status", 500, "reason", "store error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	l.Info("create_order_success", "orden_id", order.ID)
	return c.JSON(http.StatusOK, transport.OrderCreatedResponse{ID: order.ID, Total: order.Total})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, ok := parseID(c)
	if !ok {
		l.Warn("get_order_failed", "status", 404, "reason", "id matches no order", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgOrderNotFound)
	}

	order, lines, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_failed", "status", 404, "reason", "order not found", "orden_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgOrderNotFound)
		}
		l.Error("get_order_failed", "status", 500, "reason", "store error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, transport.OrderDetailResponse{Order: *order, Productos: lines})
}
