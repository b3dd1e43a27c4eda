package repo

import (
	"context"

	"github.com/Skotchmaster/tienda/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetProduct returns gorm.ErrRecordNotFound when no row matches.
func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

// UpdateProduct overwrites every column. Zero affected rows is not an error.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, prod *models.Product) error {
	return r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"nombre":      prod.Nombre,
			"precio":      prod.Precio,
			"stock":       prod.Stock,
			"categoria":   prod.Categoria,
			"descripcion": prod.Descripcion,
		}).Error
}

// DeleteProduct is unconditional; deleting a missing id succeeds.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}
