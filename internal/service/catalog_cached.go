package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/tienda/internal/models"
)

const DefaultCacheTTL = 10 * time.Minute

// CachedCatalog is a read-through redis cache in front of GetProduct. Writes
// go to the wrapped catalog first and then drop the cached entry. Redis
// failures fall through to the wrapped catalog.
type CachedCatalog struct {
	next     Catalog
	rdb      redis.Cmdable
	cacheTTL time.Duration
}

func NewCachedCatalog(next Catalog, rdb redis.Cmdable, ttl time.Duration) *CachedCatalog {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedCatalog{next: next, rdb: rdb, cacheTTL: ttl}
}

func productKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *CachedCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.next.ListProducts(ctx)
}

func (s *CachedCatalog) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	key := productKey(id)

	val, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var prod models.Product
		if err := json.Unmarshal(val, &prod); err == nil {
			return &prod, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		sideChannelFailed(ctx, "cache_get", err, "key", key)
	}

	prod, err := s.next.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(prod); err == nil {
		if err := s.rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
			sideChannelFailed(ctx, "cache_set", err, "key", key)
		}
	}
	return prod, nil
}

func (s *CachedCatalog) CreateProduct(ctx context.Context, prod *models.Product) error {
	return s.next.CreateProduct(ctx, prod)
}

func (s *CachedCatalog) UpdateProduct(ctx context.Context, id uint, prod *models.Product) error {
	if err := s.next.UpdateProduct(ctx, id, prod); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedCatalog) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.next.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedCatalog) invalidate(ctx context.Context, id uint) {
	key := productKey(id)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		sideChannelFailed(ctx, "cache_del", err, "key", key)
	}
}
