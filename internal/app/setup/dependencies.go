package setup

import (
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-mpesa-service/internal/client"
	"github.com/LavaJover/shvark-mpesa-service/internal/config"
	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	publisher "github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config         *config.PaymentConfig
	DB             *gorm.DB
	Redis          *goredis.Client
	Publisher      domain.PublisherPort
	Registry       *prometheus.Registry
	Metrics        *metrics.PaymentMetrics
	Gateway        domain.MpesaGateway
	CallbackLogger logger.CallbackLogger
	Repositories   *Repositories
}

type Repositories struct {
	OrderRepo       domain.OrderRepository
	TransactionRepo domain.PaymentTransactionRepository
	AccessTokenRepo domain.AccessTokenRepository
}

func InitializeDependencies(cfg *config.PaymentConfig) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg.PaymentDB.Dsn)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	paymentMetrics := metrics.NewPaymentMetrics(registry)

	rdb := redis.NewClient(cfg.RedisService)
	gatewayOpts := []client.MpesaClientOption{client.WithMetrics(paymentMetrics)}
	if rdb != nil {
		gatewayOpts = append(gatewayOpts, client.WithTokenCache(redis.NewTokenCache(rdb)))
	} else {
		slog.Info("redis not configured, M-Pesa tokens are fetched per request")
	}

	return &Dependencies{
		Config:         cfg,
		DB:             db,
		Redis:          rdb,
		Publisher:      initPublisher(cfg.KafkaService),
		Registry:       registry,
		Metrics:        paymentMetrics,
		Gateway:        client.NewMpesaClient(cfg.Mpesa, gatewayOpts...),
		CallbackLogger: logger.NewPGCallbackLogger(db),
		Repositories: &Repositories{
			OrderRepo:       repository.NewDefaultOrderRepository(db),
			TransactionRepo: repository.NewDefaultPaymentTransactionRepository(db),
			AccessTokenRepo: repository.NewDefaultAccessTokenRepository(db),
		},
	}, nil
}

func initPublisher(cfg config.KafkaService) domain.PublisherPort {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		slog.Info("kafka disabled, payment events are not published")
		return publisher.NoopPublisher{}
	}
	return publisher.NewDefaultKafkaPublisher(cfg.Brokers, cfg.Topic)
}

// Close releases every connection opened by InitializeDependencies.
func (d *Dependencies) Close() {
	if err := d.Publisher.Close(); err != nil {
		slog.Error("failed to close publisher", "error", err.Error())
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			slog.Error("failed to close redis", "error", err.Error())
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err.Error())
		}
	}
}
