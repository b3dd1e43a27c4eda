package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tienda/internal/models"
	"github.com/Skotchmaster/tienda/internal/search"
	"github.com/Skotchmaster/tienda/internal/transport"
	"github.com/Skotchmaster/tienda/pkg/logging"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type SearchHTTP struct {
	// Index is nil when Elasticsearch is not configured.
	Index Searcher
}

func (h *SearchHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	if h.Index == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Busqueda no disponible")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q requerido")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), search.DefaultPageSize)
	from, size := search.Calculate(page, size)

	total, products, err := h.Index.Search(ctx, q, from, size)
	if err != nil {
		l.Error("search_products_failed", "status", 502, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Productos: products})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
