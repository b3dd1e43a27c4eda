package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tienda/internal/cart"
	"github.com/Skotchmaster/tienda/internal/models"
	"github.com/Skotchmaster/tienda/internal/repo"
	"github.com/Skotchmaster/tienda/internal/service"
	"github.com/Skotchmaster/tienda/internal/transport"
	pkgdb "github.com/Skotchmaster/tienda/pkg/db"
	"github.com/Skotchmaster/tienda/pkg/logging"
	"github.com/Skotchmaster/tienda/pkg/metrics"
)

type testEnv struct {
	E       *echo.Echo
	Repo    *repo.GormRepo
	Cart    *cart.Store
	Metrics *metrics.Metrics

	P *ProductHTTP
	C *CartHTTP
	O *OrderHTTP
	S *SearchHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := pkgdb.Open(ctx, pkgdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.AutoMigrate(ctx))

	m := metrics.New()
	store := cart.NewStore()
	catalog := &service.CatalogService{Repo: r}

	env := &testEnv{
		Repo:    r,
		Cart:    store,
		Metrics: m,
		P:       &ProductHTTP{Svc: catalog},
		C:       &CartHTTP{Svc: &service.CartService{Store: store, Catalog: catalog, Metrics: m}},
		O:       &OrderHTTP{Svc: &service.OrderService{Repo: r, Cart: store, Metrics: m}},
		S:       &SearchHTTP{},
	}

	env.E = New(logging.NewWithWriter(io.Discard, "error"), m)
	Register(env.E, &Deps{
		ProductHandler: env.P,
		CartHandler:    env.C,
		OrderHandler:   env.O,
		SearchHandler:  env.S,
		Ready:          func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
		Metrics:        m,
	})
	return env
}

// do runs the request through the full echo stack.
func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// newContext builds an echo.Context for calling a handler directly.
func (env *testEnv) newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.E.NewContext(req, rec), rec
}

func (env *testEnv) seedProduct(t *testing.T, nombre, precio string) models.Product {
	t.Helper()
	p := models.Product{
		Nombre:    nombre,
		Precio:    decimal.RequireFromString(precio),
		Stock:     10,
		Categoria: "almacen",
	}
	require.NoError(t, env.Repo.CreateProduct(context.Background(), &p))
	return p
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	body := decodeJSON[transport.ErrorResponse](t, rec)
	require.Equal(t, msg, body.Error)
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "want *echo.HTTPError, got %T", err)
	require.Equal(t, code, he.Code)
}
