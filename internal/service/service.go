package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/tienda/internal/models"
	"github.com/Skotchmaster/tienda/pkg/logging"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

// Catalog is the product surface shared by CatalogService and its cached
// decorator.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) error
	UpdateProduct(ctx context.Context, id uint, prod *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

// ProductIndexer keeps the search index in step with the catalog.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

func sideChannelFailed(ctx context.Context, op string, err error, args ...any) {
	l := logging.FromContext(ctx)
	l.Warn(op+"_failed", append(args, "error", err)...)
}
