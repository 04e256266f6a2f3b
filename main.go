package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pcstore/internal/app"
	"pcstore/internal/cache"
	"pcstore/internal/config"
	"pcstore/internal/database"
	"pcstore/internal/events"
	"pcstore/internal/graph"
	"pcstore/internal/repositories"
	"pcstore/internal/services"
	"pcstore/pkg/kafka"
	"pcstore/pkg/logger"
	"pcstore/pkg/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("pcstore: %v", err)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	zl, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, zl)
	if err != nil {
		return err
	}
	if cfg.App.Seed {
		if err := database.Seed(db); err != nil {
			return err
		}
		zl.Info("seed data loaded")
	}

	// --- Listing cache ---
	listingCache, closeCache, err := newListingCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	// --- Event broker ---
	publisher, consumer, closeBroker, err := newBroker(cfg, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBroker(); err != nil {
			zl.Warn("error closing event broker", zap.Error(err))
		}
	}()
	if consumer != nil {
		go func() {
			zl.Info("starting order events consumer", zap.String("broker", cfg.Events.Broker))
			if err := consumer.Consume(ctx, events.LogHandler(zl)); err != nil {
				zl.Error("order events consumer stopped", zap.Error(err))
			}
		}()
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	collectionRepo := repositories.NewGORMCollectionRepository(db)
	promotionRepo := repositories.NewGORMPromotionRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)

	// --- Services ---
	svc := graph.Services{
		Auth:      services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL, zl),
		Users:     services.NewUserService(userRepo, zl),
		Customers: services.NewCustomerService(customerRepo, userRepo, zl),
		Catalog:   services.NewCatalogService(productRepo, collectionRepo, promotionRepo, zl),
		Listing:   services.NewListingService(productRepo, listingCache, cfg.Cache.ListingTTL, zl),
		Carts:     services.NewCartService(cartRepo, productRepo, zl),
		Orders:    services.NewOrderService(orderRepo, publisher, zl),
	}

	// --- HTTP server ---
	server, err := app.New(svc, zl, app.Options{AccessLog: true})
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("addr", cfg.App.Port))
		errc <- server.Listen(cfg.App.Port)
	}()

	// Wait for interrupt signal to gracefully shut down the server
	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	zl.Info("shutting down server")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Warn("error during shutdown", zap.Error(err))
	}
	zl.Info("server gracefully stopped")
	return nil
}

func newListingCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemory(time.Now), func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedis(client, "pcstore:"), func() { _ = client.Close() }, nil
}

type brokerClient interface {
	events.Publisher
	events.Consumer
	io.Closer
}

// newBroker returns the configured event publisher. consumer is nil when no
// broker is configured.
func newBroker(cfg *config.Config, zl *zap.Logger) (events.Publisher, events.Consumer, func() error, error) {
	var (
		client brokerClient
		err    error
	)
	switch cfg.Events.Broker {
	case "rabbitmq":
		client, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, zl)
	case "kafka":
		client, err = kafka.NewClient(kafka.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}, zl)
	default:
		return events.Nop{}, nil, func() error { return nil }, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}
	return client, client, client.Close, nil
}
