package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/tienda/internal/cart"
	"github.com/Skotchmaster/tienda/pkg/metrics"
)

type CartService struct {
	Store   *cart.Store
	Catalog Catalog
	Metrics *metrics.Metrics
}

// AddToCart looks the product up and adds one unit of it to the shared
// cart. It returns the whole cart after the change.
func (s *CartService) AddToCart(ctx context.Context, productoID uint) ([]cart.Line, error) {
	if productoID == 0 {
		return nil, fmt.Errorf("producto_id required: %w", ErrValidation)
	}

	prod, err := s.Catalog.GetProduct(ctx, productoID)
	if err != nil {
		return nil, err
	}

	lines := s.Store.Add(*prod)
	s.observe(len(lines))
	return lines, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, id uint) ([]cart.Line, error) {
	lines, ok := s.Store.Remove(id)
	if !ok {
		return nil, fmt.Errorf("cart line %d: %w", id, ErrNotFound)
	}
	s.observe(len(lines))
	return lines, nil
}

func (s *CartService) GetCart(ctx context.Context) ([]cart.Line, decimal.Decimal) {
	return s.Store.View()
}

func (s *CartService) observe(n int) {
	if s.Metrics != nil {
		s.Metrics.CartLines.Set(float64(n))
	}
}
