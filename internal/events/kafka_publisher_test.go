package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vetstore/internal/domain"
	"vetstore/internal/dto"
)

func newTestResult() *dto.FulfillmentResult {
	return &dto.FulfillmentResult{
		Order: &domain.Order{
			ID:          12,
			OrderNumber: "PO-20261018-000012",
			Type:        domain.OrderTypePurchase,
			OrderDate:   time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC),
			Subtotal:    decimal.NewFromInt(200),
			Discount:    decimal.Zero,
			Tax:         decimal.Zero,
			GrandTotal:  decimal.NewFromInt(200),
		},
		Movements: []dto.StockMovement{
			{ProductID: 1, Direction: domain.LedgerDirectionIn, Quantity: 10, StockAfter: 15, LedgerEntryID: 99},
		},
	}
}

func TestNewOrderCreatedEvent(t *testing.T) {
	event := NewOrderCreatedEvent(newTestResult())

	assert.Equal(t, uint64(12), event.OrderID)
	assert.Equal(t, "PO-20261018-000012", event.Key())
	assert.Equal(t, "PURCHASE", event.OrderType)
	require.Len(t, event.Movements, 1)
	assert.Equal(t, "IN", event.Movements[0].Direction)
	assert.Equal(t, 15, event.Movements[0].StockAfter)
}

func TestKafkaPublisher_PublishOrderCreated(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var decoded OrderCreatedEvent
		if err := json.Unmarshal(val, &decoded); err != nil {
			return err
		}
		if decoded.OrderNumber != "PO-20261018-000012" {
			return errors.New("unexpected order number " + decoded.OrderNumber)
		}
		if !decoded.GrandTotal.Equal(decimal.NewFromInt(200)) {
			return errors.New("unexpected grand total " + decoded.GrandTotal.String())
		}
		return nil
	})

	publisher := NewKafkaPublisher(producer, "orders.created", zap.NewNop())
	err := publisher.PublishOrderCreated(context.Background(), NewOrderCreatedEvent(newTestResult()))
	require.NoError(t, err)

	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaPublisher(producer, "orders.created", zap.NewNop())
	err := publisher.PublishOrderCreated(context.Background(), NewOrderCreatedEvent(newTestResult()))

	assert.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_CanceledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	publisher := NewKafkaPublisher(producer, "orders.created", zap.NewNop())
	err := publisher.PublishOrderCreated(ctx, NewOrderCreatedEvent(newTestResult()))

	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, publisher.Close())
}
