package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vetstore/internal/config"
	"vetstore/internal/domain"
)

// RedisOrderCache keeps read-back copies of orders. Orders never change after
// creation, so entries are only ever written once and expire by TTL.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisOrderCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisOrderCache {
	return &RedisOrderCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

func OrderKey(id uint64) string {
	return fmt.Sprintf("vetstore:order:%d", id)
}

func (c *RedisOrderCache) Get(ctx context.Context, id uint64) (*domain.Order, bool, error) {
	data, err := c.client.Get(ctx, OrderKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cached order: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		c.logger.Warn("dropping undecodable cached order", zap.Uint64("orderId", id), zap.Error(err))
		_ = c.client.Del(ctx, OrderKey(id)).Err()
		return nil, false, nil
	}

	return &order, true, nil
}

func (c *RedisOrderCache) Set(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding order for cache: %w", err)
	}

	if err := c.client.Set(ctx, OrderKey(order.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cached order: %w", err)
	}

	return nil
}

type NopOrderCache struct{}

func (NopOrderCache) Get(ctx context.Context, id uint64) (*domain.Order, bool, error) {
	return nil, false, nil
}

func (NopOrderCache) Set(ctx context.Context, order *domain.Order) error {
	return nil
}
