package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tienda/internal/cart"
	"github.com/Skotchmaster/tienda/internal/service"
	"github.com/Skotchmaster/tienda/internal/transport"
	"github.com/Skotchmaster/tienda/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Debug("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		l.Debug("add_to_cart_failed", "status", 400, "reason", "producto_id missing")
		return echo.NewHTTPError(http.StatusBadRequest, "producto_id requerido")
	}

	// a negative id names no product
	if req.ProductoID < 0 {
		l.Warn("add_to_cart_failed", "status", 404, "reason", "product not found", "producto_id", int(req.ProductoID))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	lines, err := h.Svc.AddToCart(ctx, uint(req.ProductoID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "producto_id requerido")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_failed", "status", 404, "reason", "product not found", "producto_id", int(req.ProductoID))
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		default:
			l.Error("add_to_cart_failed", "status", 500, "reason", "store error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, transport.CartChangedResponse{Message: "Agregado al carrito", Carrito: lines})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	id, found := parseID(c)
	var lines []cart.Line
	err := service.ErrNotFound
	if found {
		lines, err = h.Svc.RemoveFromCart(ctx, id)
	}
	if err != nil {
		l.Warn("remove_from_cart_failed", "status", 404, "reason", "line not in cart", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, "Producto no en carrito")
	}

	return c.JSON(http.StatusOK, transport.CartChangedResponse{Message: "Eliminado del carrito", Carrito: lines})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	lines, total := h.Svc.GetCart(c.Request().Context())
	return c.JSON(http.StatusOK, transport.CartResponse{Carrito: lines, Total: total})
}
