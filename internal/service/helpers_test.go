package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tienda/internal/models"
	"github.com/Skotchmaster/tienda/internal/repo"
	"github.com/Skotchmaster/tienda/pkg/events"
	pkgdb "github.com/Skotchmaster/tienda/pkg/db"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	ctx := context.Background()
	db, err := pkgdb.Open(ctx, pkgdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.AutoMigrate(ctx))
	return r
}

func seedProduct(t *testing.T, r *repo.GormRepo, nombre, precio string) models.Product {
	t.Helper()
	p := models.Product{
		Nombre:    nombre,
		Precio:    decimal.RequireFromString(precio),
		Stock:     10,
		Categoria: "almacen",
	}
	require.NoError(t, r.CreateProduct(context.Background(), &p))
	return p
}

type publishedEvent struct {
	Topic string
	Key   string
	Event events.Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, topic, key string, ev events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Topic: topic, Key: key, Event: ev})
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Event.Type)
	}
	return out
}

type fakeIndexer struct {
	indexed map[uint]models.Product
	deleted []uint
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{indexed: make(map[uint]models.Product)}
}

func (f *fakeIndexer) IndexProduct(_ context.Context, p models.Product) error {
	f.indexed[p.ID] = p
	return nil
}

func (f *fakeIndexer) DeleteProduct(_ context.Context, id uint) error {
	delete(f.indexed, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeRedis implements the handful of redis commands the cache uses.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	gets int
	hits int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.gets++
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	f.hits++
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
