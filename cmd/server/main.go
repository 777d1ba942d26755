package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"vetstore/internal/commons"
	"vetstore/internal/events"
	"vetstore/internal/infrastructure/cache"
	"vetstore/internal/infrastructure/logger"
	"vetstore/internal/infrastructure/mysql"
	"vetstore/internal/ledger"
	"vetstore/internal/order"
	"vetstore/internal/order/usecase"
	"vetstore/internal/product"
	"vetstore/internal/server"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "internal/config/config.yaml"
	}

	cfg, err := commons.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if cfg.Database.AutoMigrate {
		if err := mysql.ApplySchema(context.Background(), db); err != nil {
			zapLogger.Fatal("applying schema", zap.Error(err))
		}
		zapLogger.Info("schema applied")
	}

	var orderCache usecase.OrderCache = cache.NopOrderCache{}
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("connecting to redis", zap.Error(err))
		}
		defer client.Close()
		orderCache = cache.NewRedisOrderCache(client, cfg.Redis.OrderTTL, zapLogger)
		zapLogger.Info("redis order cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var publisher interface {
		usecase.EventPublisher
		Close() error
	} = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := events.NewSyncProducer(cfg.Kafka)
		if err != nil {
			zapLogger.Fatal("creating kafka producer", zap.Error(err))
		}
		publisher = events.NewKafkaPublisher(producer, cfg.Kafka.Topic, zapLogger)
		zapLogger.Info("kafka publisher enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer publisher.Close()

	productCtrl, catalog := product.NewModule(db, zapLogger)
	ledgerCtrl := ledger.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, cfg, zapLogger, catalog, publisher, orderCache)

	router := server.NewRouter(productCtrl, ledgerCtrl, orderCtrl, db, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}
