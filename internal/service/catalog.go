package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/tienda/internal/models"
	"github.com/Skotchmaster/tienda/internal/repo"
	"github.com/Skotchmaster/tienda/pkg/events"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Topic  string
	// Index is nil when search is not configured.
	Index ProductIndexer
}

type productPayload struct {
	ProductoID uint            `json:"producto_id"`
	Nombre     string          `json:"nombre,omitempty"`
	Precio     decimal.Decimal `json:"precio"`
	Stock      int             `json:"stock"`
	Categoria  string          `json:"categoria,omitempty"`
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return prod, err
}

// CreateProduct inserts prod and sets prod.ID. The caller keeps the values it
// submitted; nothing is read back from the store.
func (s *CatalogService) CreateProduct(ctx context.Context, prod *models.Product) error {
	if err := validateProduct(prod); err != nil {
		return err
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return err
	}

	s.publish(ctx, events.TypeProductCreated, *prod)
	s.index(ctx, *prod)
	return nil
}

// UpdateProduct overwrites every column of id. An unknown id is not an error.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, prod *models.Product) error {
	if err := validateProduct(prod); err != nil {
		return err
	}
	if err := s.Repo.UpdateProduct(ctx, id, prod); err != nil {
		return err
	}

	cur, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			sideChannelFailed(ctx, "reload_product", err, "producto_id", id)
		}
		return nil
	}
	s.publish(ctx, events.TypeProductUpdated, *cur)
	s.index(ctx, *cur)
	return nil
}

// DeleteProduct removes id. An unknown id is not an error.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.TypeProductDeleted, models.Product{ID: id})
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			sideChannelFailed(ctx, "unindex_product", err, "producto_id", id)
		}
	}
	return nil
}

func validateProduct(prod *models.Product) error {
	switch {
	case prod == nil:
		return fmt.Errorf("product required: %w", ErrValidation)
	case prod.Nombre == "":
		return fmt.Errorf("nombre required: %w", ErrValidation)
	case prod.Categoria == "":
		return fmt.Errorf("categoria required: %w", ErrValidation)
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, typ string, p models.Product) {
	if s.Events == nil {
		return
	}
	ev := events.New(typ, productPayload{
		ProductoID: p.ID,
		Nombre:     p.Nombre,
		Precio:     p.Precio,
		Stock:      p.Stock,
		Categoria:  p.Categoria,
	})
	if err := s.Events.Publish(ctx, s.Topic, strconv.FormatUint(uint64(p.ID), 10), ev); err != nil {
		sideChannelFailed(ctx, "publish_event", err, "type", typ, "producto_id", p.ID)
	}
}

func (s *CatalogService) index(ctx context.Context, p models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		sideChannelFailed(ctx, "index_product", err, "producto_id", p.ID)
	}
}
