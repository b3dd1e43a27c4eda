package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Skotchmaster/tienda/internal/cart"
	"github.com/Skotchmaster/tienda/internal/config"
	"github.com/Skotchmaster/tienda/internal/httpserver"
	"github.com/Skotchmaster/tienda/internal/repo"
	"github.com/Skotchmaster/tienda/internal/search"
	"github.com/Skotchmaster/tienda/internal/service"
	pkgdb "github.com/Skotchmaster/tienda/pkg/db"
	"github.com/Skotchmaster/tienda/pkg/events"
	"github.com/Skotchmaster/tienda/pkg/metrics"
)

// app owns every long-lived resource of a running server.
type app struct {
	db        *gorm.DB
	publisher events.Publisher
	rdb       *redis.Client
	echo      *echo.Echo
}

func newApp(ctx context.Context, cfg config.ServiceConfig, logger *slog.Logger) (*app, error) {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		return nil, err
	}
	a := &app{db: db, publisher: events.Nop{}}

	r := &repo.GormRepo{DB: db}
	if cfg.AutoMigrate {
		if err := r.AutoMigrate(ctx); err != nil {
			_ = a.Close()
			return nil, err
		}
		logger.Info("schema migrated")
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := events.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.publisher = pub
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers)
	}

	var index *search.Index
	if cfg.ESURL != "" {
		es, err := search.NewClient(ctx, search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			logger.Warn("elasticsearch disabled", "error", err)
		} else {
			index = search.New(es, cfg.ESIndex)
			logger.Info("elasticsearch enabled", "url", cfg.ESURL, "index", cfg.ESIndex)
		}
	}

	catalogSvc := &service.CatalogService{
		Repo:   r,
		Events: a.publisher,
		Topic:  cfg.KafkaProductsTopic,
	}
	if index != nil {
		catalogSvc.Index = index
	}

	var catalog service.Catalog = catalogSvc
	if cfg.RedisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, reads fall through to the store", "addr", cfg.RedisAddr, "error", err)
		}
		catalog = service.NewCachedCatalog(catalogSvc, a.rdb, cfg.CacheTTL)
		logger.Info("product cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	m := metrics.New()
	store := cart.NewStore()

	searchHandler := &httpserver.SearchHTTP{}
	if index != nil {
		searchHandler.Index = index
	}

	a.echo = httpserver.New(logger, m)
	httpserver.Register(a.echo, &httpserver.Deps{
		ProductHandler: &httpserver.ProductHTTP{Svc: catalog},
		CartHandler: &httpserver.CartHTTP{Svc: &service.CartService{
			Store:   store,
			Catalog: catalog,
			Metrics: m,
		}},
		OrderHandler: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Repo:    r,
			Cart:    store,
			Events:  a.publisher,
			Topic:   cfg.KafkaOrdersTopic,
			Metrics: m,
		}},
		SearchHandler: searchHandler,
		Ready:         func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
		Metrics:       m,
	})
	return a, nil
}

// Close flushes pending events and releases connections.
func (a *app) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.db != nil {
		errs = append(errs, pkgdb.Close(a.db))
	}
	return errors.Join(errs...)
}
