package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/tienda/internal/cart"
	"github.com/Skotchmaster/tienda/internal/models"
	"github.com/Skotchmaster/tienda/internal/repo"
	"github.com/Skotchmaster/tienda/pkg/events"
	"github.com/Skotchmaster/tienda/pkg/metrics"
)

type OrderService struct {
	Repo    *repo.GormRepo
	Cart    *cart.Store
	Events  events.Publisher
	Topic   string
	Metrics *metrics.Metrics
}

type orderPayload struct {
	OrdenID uint               `json:"orden_id"`
	Total   decimal.Decimal    `json:"total"`
	Lineas  []models.OrderLine `json:"lineas"`
}

// CreateOrder stores an order for total and turns the current cart into its
// lines.
//
// The order row is inserted first so its id is known before the lines are
// written. Both writes share one transaction: if the line insert fails the
// order row is rolled back and the cart is left as it was. An empty cart
// yields an order with no lines and no line insert. total is stored as
// given and never checked against the cart.
//
// The cart is cleared for every caller once the lines are committed. Nothing
// stops another request from adding to the cart between the snapshot and the
// clear.
func (s *OrderService) CreateOrder(ctx context.Context, total *decimal.Decimal) (*models.Order, error) {
	if total == nil {
		return nil, fmt.Errorf("total required: %w", ErrValidation)
	}

	order := &models.Order{Total: *total}
	var lines []models.OrderLine
	linesFailed := false

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		lines = orderLines(order.ID, s.Cart.Lines())
		if len(lines) == 0 {
			return nil
		}
		if err := tx.CreateOrderLines(ctx, lines); err != nil {
			linesFailed = true
			return err
		}
		return nil
	})
	if err != nil {
		if linesFailed {
			s.publish(ctx, events.TypeOrderLinesFailed, order.ID, orderPayload{OrdenID: order.ID, Total: order.Total, Lineas: lines})
		}
		return nil, err
	}

	if len(lines) > 0 {
		s.Cart.Clear()
	}

	if s.Metrics != nil {
		s.Metrics.OrdersCreated.Inc()
		s.Metrics.OrderLinesWritten.Add(float64(len(lines)))
		s.Metrics.CartLines.Set(float64(s.Cart.Len()))
	}
	s.publish(ctx, events.TypeOrderCreated, order.ID, orderPayload{OrdenID: order.ID, Total: order.Total, Lineas: lines})
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

// GetOrder returns the order and its lines.
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, []models.OrderLine, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, nil, err
	}

	lines, err := s.Repo.ListOrderLines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

func orderLines(orderID uint, cartLines []cart.Line) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(cartLines))
	for _, l := range cartLines {
		lines = append(lines, models.OrderLine{
			OrdenID:    orderID,
			ProductoID: l.ID,
			Cantidad:   l.Cantidad,
		})
	}
	return lines
}

func (s *OrderService) publish(ctx context.Context, typ string, orderID uint, payload orderPayload) {
	if s.Events == nil {
		return
	}
	ev := events.New(typ, payload)
	if err := s.Events.Publish(ctx, s.Topic, strconv.FormatUint(uint64(orderID), 10), ev); err != nil {
		sideChannelFailed(ctx, "publish_event", err, "type", typ, "orden_id", orderID)
	}
}
