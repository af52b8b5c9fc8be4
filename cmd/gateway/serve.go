package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/application/services"
	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/DanielPopoola/payments-gateway/internal/health"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/bank"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/messaging"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence/postgres"
	redisstore "github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence/redis"
	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest/docs"
	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/payments-gateway/internal/observability"
	"github.com/DanielPopoola/payments-gateway/internal/worker"
)

const shutdownTimeout = 30 * time.Second

type paymentStore interface {
	application.PaymentStore
	application.Pinger
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting gateway service",
		"port", cfg.Server.Port,
		"env", cfg.Primary.Env,
		"store", cfg.Store.Driver,
		"log_level", cfg.Logger.Level,
	)

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Telemetry, cfg.Primary.Env, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	authorizer := bank.NewRetryBankClient(bank.NewBankClient(cfg.Bank), cfg.Retry, logger)

	meters, err := observability.InitMetrics(ctx, cfg.Telemetry, cfg.Primary.Env, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meters.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to flush metrics", "error", err)
		}
	}()

	metrics, err := observability.NewMetrics(meters.Meter())
	if err != nil {
		return err
	}
	ledger := worker.NewOrphanLedger()
	reporters := observability.OrphanReporters{
		observability.SpanOrphanReporter{},
		observability.NewLogOrphanReporter(logger),
		ledger,
	}

	if len(cfg.Kafka.Brokers) > 0 {
		writer := messaging.NewWriter(cfg.Kafka)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("failed to close kafka writer", "error", err)
			}
		}()
		reporters = append(reporters, messaging.NewOrphanPublisher(writer, cfg.Kafka, logger))
		logger.Info("publishing orphaned authorizations", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.OrphanTopic)
	}

	authService := services.NewAuthorizeService(
		store,
		authorizer,
		reporters,
		application.SystemClock{},
		metrics,
		cfg.Store.PersistTimeout,
		logger,
	)
	queryService := services.NewQueryService(store, logger)

	healthService := health.NewService(cfg.Health.CacheTTL,
		health.BankCheck(authorizer),
		health.StoreCheck(cfg.Store.Driver, store),
	)

	doc, err := docs.Load(ctx)
	if err != nil {
		return err
	}
	docsHandler, err := docs.Handler(doc)
	if err != nil {
		return err
	}

	h := handlers.NewHandlers(authService, queryService, healthService, metrics, logger)
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      h.Routes(handlers.RouterOptions{
			RequestTimeout: cfg.Server.RequestTimeout,
			Docs:           docsHandler,
			Metrics:        meters,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if cfg.Worker.Enabled {
		reconciler := worker.NewOrphanReconciler(
			ledger,
			store,
			metrics,
			cfg.Worker.Interval,
			cfg.Worker.BatchSize,
			logger,
		)
		go reconciler.Start(workerCtx)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if pending := ledger.Len(); pending > 0 {
		logger.Error("exiting with unrecorded orphaned authorizations", "count", pending)
	}

	logger.Info("server exited")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (paymentStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := persistence.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := postgres.Migrate(ctx, db.Pool); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewPaymentRepository(db.Pool), db.Close, nil

	case config.StoreRedis:
		rdb := redisstore.NewClient(cfg.Redis)
		store := redisstore.NewPaymentStore(rdb, cfg.Redis.TTL)
		if err := store.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		return store, func() { _ = rdb.Close() }, nil

	default:
		logger.Warn("using in-memory store, payments are lost on restart")
		store := memory.NewPaymentStore()
		return store, func() {
			logger.Warn("discarding in-memory payments", "count", store.Len())
		}, nil
	}
}
