// Package app wires the storefront components into one container with an
// explicit lifecycle: build with New, release with Close.
package app

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/config"
	"storefront-service/internal/broker"
	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/notify"
	"storefront-service/internal/pricing"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/service"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
	"storefront-service/internal/worker"

	"go.uber.org/zap"
)

type App struct {
	Config        *config.Config
	Store         store.KV
	Catalog       *catalog.Catalog
	Notifications *notify.Buffer
	Cart          *cart.Manager
	Scheduler     *worker.Scheduler

	CatalogService  *service.CatalogService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService

	// nil unless Kafka is enabled
	Producer    *broker.Producer
	AuditWorker *worker.OrderAuditWorker

	logger *zap.Logger
}

// OpenStore connects the configured cart store backend
func OpenStore(cfg *config.Config) (store.KV, error) {
	switch cfg.Store.Backend {
	case store.BackendMemory:
		return store.NewMemoryStore(), nil
	case store.BackendFile, "":
		fs, err := store.NewFileStore(cfg.Store.FilePath)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case store.BackendRedis:
		rc, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return rc.WithTTL(cfg.Redis.CartTTL), nil
	case store.BackendPostgres:
		ps, err := store.NewPostgresStore(cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		return ps, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// New generates the catalog, opens the store and builds every component
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cat, err := catalog.Generate(cfg.Catalog.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate catalog: %w", err)
	}

	kv, err := OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}

	var producer *broker.Producer
	var auditWorker *worker.OrderAuditWorker
	if cfg.Kafka.Enabled {
		producer = broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
		auditWorker = worker.NewOrderAuditWorker(consumer)
	}

	a := Assemble(ctx, cfg, kv, cat, producer)
	a.AuditWorker = auditWorker
	return a, nil
}

// Assemble builds the container around an already opened store and catalog.
// producer may be nil.
func Assemble(ctx context.Context, cfg *config.Config, kv store.KV, cat *catalog.Catalog, producer *broker.Producer) *App {
	logger := util.GetLogger()

	notes := notify.NewBuffer(notify.DefaultBufferSize)
	notifier := notify.Multi{notes, notify.NewLogNotifier(logger)}

	calc := &pricing.Calculator{
		TaxPercent:            cfg.Business.TaxPercent,
		ShippingFee:           cfg.Business.ShippingFee,
		FreeShippingThreshold: cfg.Business.FreeShippingThreshold,
	}

	scheduler := worker.NewScheduler()
	cartManager := cart.NewManager(ctx, kv, cfg.Store.CartKey, notifier)

	opts := []service.CheckoutOption{service.WithCheckoutDelay(cfg.Business.CheckoutDelay)}
	if producer != nil {
		opts = append(opts, service.WithEventPublisher(broker.NewEventPublisher(producer)))
	}

	a := &App{
		Config:         cfg,
		Store:          kv,
		Catalog:        cat,
		Notifications:  notes,
		Cart:           cartManager,
		Scheduler:      scheduler,
		CatalogService: service.NewCatalogService(cat, cfg.Catalog.PageSize, cfg.Catalog.Seed),
		CartService: service.NewCartService(cartManager, cat, calc, scheduler,
			cfg.Business.AddToCartDelay, cfg.Business.QuantityDelay),
		CheckoutService: service.NewCheckoutService(cartManager, calc, scheduler,
			service.NewOrderContexts(cfg.Business.OrderContextTTL), notifier, opts...),
		Producer: producer,
		logger:   logger,
	}

	logger.Info("Storefront assembled",
		zap.Int("products", cat.Len()),
		zap.String("store", cfg.Store.Backend),
		zap.Int("cartItems", cartManager.ItemCount()),
		zap.Bool("kafka", producer != nil),
	)
	return a
}

// Ready pings the networked store backends. File and memory stores are
// always ready once opened.
func (a *App) Ready(ctx context.Context) error {
	switch kv := a.Store.(type) {
	case *redisclient.Client:
		if err := kv.GetClient().Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	case *store.PostgresStore:
		if err := kv.GetDB().PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}

// Close stops the scheduler and releases the producer, the audit consumer
// and the store, in that order.
func (a *App) Close() error {
	var errs []error

	a.Scheduler.Stop()

	if a.AuditWorker != nil {
		if err := a.AuditWorker.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("audit worker: %w", err))
		}
	}
	if a.Producer != nil {
		if err := a.Producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("producer: %w", err))
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}

	a.logger.Info("Storefront closed")
	return errors.Join(errs...)
}
