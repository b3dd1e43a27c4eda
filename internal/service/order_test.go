package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tienda/internal/cart"
	"github.com/Skotchmaster/tienda/internal/models"
	"github.com/Skotchmaster/tienda/pkg/events"
	"github.com/Skotchmaster/tienda/pkg/metrics"
)

func newTestOrderService(t *testing.T) (*OrderService, *fakePublisher) {
	t.Helper()
	pub := &fakePublisher{}
	return &OrderService{
		Repo:    newTestRepo(t),
		Cart:    cart.NewStore(),
		Events:  pub,
		Topic:   "order_events",
		Metrics: metrics.New(),
	}, pub
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestOrderService_CreateOrder_WithCart(t *testing.T) {
	svc, pub := newTestOrderService(t)
	ctx := context.Background()
	yerba := seedProduct(t, svc.Repo, "Yerba", "10.50")
	bombilla := seedProduct(t, svc.Repo, "Bombilla", "5")

	svc.Cart.Add(yerba)
	svc.Cart.Add(yerba)
	svc.Cart.Add(bombilla)

	order, err := svc.CreateOrder(ctx, dec("26.00"))
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.False(t, order.Fecha.IsZero())

	_, lines, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, models.OrderLine{OrdenID: order.ID, ProductoID: yerba.ID, Cantidad: 2}, lines[0])
	assert.Equal(t, models.OrderLine{OrdenID: order.ID, ProductoID: bombilla.ID, Cantidad: 1}, lines[1])

	assert.Zero(t, svc.Cart.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.OrdersCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(svc.Metrics.OrderLinesWritten))
	assert.Equal(t, []string{events.TypeOrderCreated}, pub.types())
	assert.Equal(t, "order_events", pub.events[0].Topic)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, dec("10"))
	require.NoError(t, err)

	_, lines, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Zero(t, testutil.ToFloat64(svc.Metrics.OrderLinesWritten))
}

func TestOrderService_CreateOrder_TotalStoredVerbatim(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()
	svc.Cart.Add(seedProduct(t, svc.Repo, "Yerba", "10.50"))

	order, err := svc.CreateOrder(ctx, dec("1.25"))
	require.NoError(t, err)

	got, _, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.25").Equal(got.Total))
}

func TestOrderService_CreateOrder_TotalRequired(t *testing.T) {
	svc, pub := newTestOrderService(t)

	_, err := svc.CreateOrder(context.Background(), nil)
	require.ErrorIs(t, err, ErrValidation)

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, pub.types())
}

func TestOrderService_CreateOrder_LineInsertFailureRollsBack(t *testing.T) {
	svc, pub := newTestOrderService(t)
	ctx := context.Background()
	svc.Cart.Add(seedProduct(t, svc.Repo, "Yerba", "10.50"))

	require.NoError(t, svc.Repo.DB.Migrator().DropTable(&models.OrderLine{}))

	_, err := svc.CreateOrder(ctx, dec("10.50"))
	require.Error(t, err)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders, "order row is rolled back with its lines")
	assert.Equal(t, 1, svc.Cart.Len(), "cart survives a failed order")
	assert.Zero(t, testutil.ToFloat64(svc.Metrics.OrdersCreated))
	assert.Equal(t, []string{events.TypeOrderLinesFailed}, pub.types())
}

func TestOrderService_CreateOrder_OrderInsertFailure(t *testing.T) {
	svc, pub := newTestOrderService(t)
	ctx := context.Background()
	svc.Cart.Add(seedProduct(t, svc.Repo, "Yerba", "10.50"))

	require.NoError(t, svc.Repo.DB.Migrator().DropTable(&models.Order{}))

	_, err := svc.CreateOrder(ctx, dec("10.50"))
	require.ErrorContains(t, err, "ordenes")

	var lines int64
	require.NoError(t, svc.Repo.DB.Model(&models.OrderLine{}).Count(&lines).Error)
	assert.Zero(t, lines)
	assert.Equal(t, 1, svc.Cart.Len(), "cart survives a failed order")
	assert.Zero(t, testutil.ToFloat64(svc.Metrics.OrdersCreated))
	assert.NotContains(t, pub.types(), events.TypeOrderCreated)
}

func TestOrderService_ListOrders_NewestFirst(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, dec("1"))
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, dec("2"))
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	svc, _ := newTestOrderService(t)

	_, _, err := svc.GetOrder(context.Background(), 5)
	require.ErrorIs(t, err, ErrNotFound)
}
