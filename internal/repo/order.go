package repo

import (
	"context"

	"github.com/Skotchmaster/tienda/internal/models"
)

// CreateOrder inserts the order row; order.ID and order.Fecha are filled in
// from the store on return.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

// CreateOrderLines writes all lines in one multi-row INSERT.
func (r *GormRepo) CreateOrderLines(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).CreateInBatches(lines, len(lines)).Error
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := r.DB.WithContext(ctx).Order("fecha DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrderLines(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0)
	if err := r.DB.WithContext(ctx).Where("orden_id = ?", orderID).Order("producto_id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
