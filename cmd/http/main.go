package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rafaelleal24/stock/docs"
	"github.com/rafaelleal24/stock/internal/adapters/config"
	"github.com/rafaelleal24/stock/internal/adapters/http"
	"github.com/rafaelleal24/stock/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stock/internal/adapters/mongo"
	"github.com/rafaelleal24/stock/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/stock/internal/adapters/outbox"
	"github.com/rafaelleal24/stock/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/stock/internal/adapters/redis"
	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/logger"
	"github.com/rafaelleal24/stock/internal/core/service"
)

// @title       Stock API
// @version     1.0
// @description Inventory of products by SKU

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, cfg.Logger.IsProduction, logger.ParseLevel(cfg.Logger.Level)); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// repositories
	database := mongoClient.Database(cfg.Mongo.Database)
	stockRepository := repository.NewStockRepository(database)
	outboxRepository := repository.NewOutboxRepository(database)
	txManager := mongo.NewTransactionManager(mongoClient)
	eventRecorder := outbox.NewRecorder(outboxRepository)

	// caches and rate limiter
	stockCache := redis.NewStockCache(redisClient)
	idempotencyCache := redis.NewIdempotencyCache(redisClient)
	rateLimiter := redis.NewRateLimiter(redisClient)

	outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	idempotencyService := service.NewIdempotencyService[domain.Stock](
		idempotencyCache,
		cfg.Idempotency.TTL,
		cfg.Idempotency.PollInterval,
		cfg.Idempotency.PollTimeout,
	)
	stockService := service.NewStockService(stockRepository, eventRecorder, txManager, stockCache, idempotencyService, cfg.Cache.StockTTL)

	// controllers
	stockController := controllers.NewStockController(stockService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	router := http.NewRouter(healthController, stockController, rateLimiter, cfg.RateLimit)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	if err := router.ListenAndServe(ctx, cfg.HTTP); err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}

	// relay what was written while the server drained
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if published := outboxHandler.ProcessPending(flushCtx); published > 0 {
		logger.Info(flushCtx, "Outbox flushed on shutdown", map[string]any{"published": published})
	}

	if err := logger.Shutdown(flushCtx); err != nil {
		fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
	}
}
