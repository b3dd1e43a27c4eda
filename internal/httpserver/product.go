package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tienda/internal/service"
	"github.com/Skotchmaster/tienda/internal/transport"
	"github.com/Skotchmaster/tienda/pkg/logging"
	"github.com/Skotchmaster/tienda/pkg/validation"
)

const (
	msgProductNotFound = "Producto no encontrado"
	msgProductFields   = "Faltan campos obligatorios (nombre, precio, stock, categoria)"
)

type ProductHTTP struct {
	Svc service.Catalog
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "reason", "store error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, ok := parseID(c)
	if !ok {
		l.Warn("get_product_failed", "status", 404, "reason", "id matches no product", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "producto_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("get_product_failed", "status", 500, "reason", "store error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct answers with the submitted fields and the assigned id.
func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Debug("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		l.Debug("create_product_failed", "status", 400, "reason", validation.Message(err))
		return echo.NewHTTPError(http.StatusBadRequest, msgProductFields)
	}

	product := req.Product()
	if err := h.Svc.CreateProduct(ctx, &product); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Debug("create_product_failed", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, msgProductFields)
		}
		l.Error("create_product_failed", "status", 500, "reason", "store error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	l.Info("create_product_success", "producto_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, found := parseID(c)

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Debug("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		l.Debug("update_product_failed", "status", 400, "reason", validation.Message(err))
		return echo.NewHTTPError(http.StatusBadRequest, msgProductFields)
	}

	// an id that is not a number matches no row, same as an unknown id
	if !found {
		return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Producto actualizado"})
	}

	product := req.Product()
	if err := h.Svc.UpdateProduct(ctx, id, &product); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Debug("update_product_failed", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, msgProductFields)
		}
		l.Error("update_product_failed", "status", 500, "reason", "store error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	l.Info("update_product_success", "producto_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Producto actualizado"})
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, found := parseID(c)
	if !found {
		return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Producto eliminado"})
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Error("delete_product_failed", "status", 500, "reason", "store error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	l.Info("delete_product_success", "producto_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Producto eliminado"})
}
