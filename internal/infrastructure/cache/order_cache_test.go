package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vetstore/internal/config"
	"vetstore/internal/domain"
)

func TestOrderKey(t *testing.T) {
	assert.Equal(t, "vetstore:order:42", OrderKey(42))
}

func TestNopOrderCache(t *testing.T) {
	c := NopOrderCache{}

	require.NoError(t, c.Set(context.Background(), &domain.Order{ID: 1}))

	order, ok, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, order)
}

// Integration test, skipped when no local redis is reachable.
func TestRedisOrderCache_RoundTrip(t *testing.T) {
	client, err := NewRedisClient(config.RedisConfig{Addr: "localhost:6379", DB: 15})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer client.Close()

	c := NewRedisOrderCache(client, time.Minute, zap.NewNop())
	ctx := context.Background()
	defer client.Del(ctx, OrderKey(9001))

	order := &domain.Order{
		ID:          9001,
		OrderNumber: "INV-20261018-009001",
		Type:        domain.OrderTypeSale,
		Subtotal:    decimal.RequireFromString("250.00"),
		GrandTotal:  decimal.RequireFromString("250.00"),
		Items: []domain.OrderItem{
			{ID: 1, OrderID: 9001, LineNo: 1, ProductID: 3, Quantity: 2, UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(200)},
		},
	}

	require.NoError(t, c.Set(ctx, order))

	cached, ok, err := c.Get(ctx, 9001)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, order.OrderNumber, cached.OrderNumber)
	assert.True(t, order.GrandTotal.Equal(cached.GrandTotal))
	assert.Len(t, cached.Items, 1)

	_, ok, err = c.Get(ctx, 9002)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, client.Get(ctx, OrderKey(9002)).Err(), redis.Nil)
}
