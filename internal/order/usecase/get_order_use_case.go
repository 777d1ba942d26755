package usecase

import (
	"context"

	"go.uber.org/zap"

	"vetstore/internal/domain"
	"vetstore/internal/dto"
	apperrors "vetstore/internal/errors"
)

type OrderReader interface {
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]domain.Order, error)
}

type OrderItemReader interface {
	FindByOrderID(ctx context.Context, orderID uint64) ([]domain.OrderItem, error)
}

type GetOrderUseCase struct {
	orders OrderReader
	items  OrderItemReader
	cache  OrderCache
	logger *zap.Logger
}

func NewGetOrderUseCase(orders OrderReader, items OrderItemReader, cache OrderCache, logger *zap.Logger) *GetOrderUseCase {
	return &GetOrderUseCase{
		orders: orders,
		items:  items,
		cache:  cache,
		logger: logger,
	}
}

// GetOrder returns the committed order with its lines in line order. Cache
// failures fall through to the database.
func (uc *GetOrderUseCase) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	cached, ok, err := uc.cache.Get(ctx, id)
	if err != nil {
		uc.logger.Warn("order cache read failed", zap.Uint64("orderId", id), zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	order, err := uc.orders.FindByID(ctx, id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewStorageError("reading order", err)
	}

	items, err := uc.items.FindByOrderID(ctx, id)
	if err != nil {
		return nil, apperrors.NewStorageError("reading order items", err)
	}
	order.Items = items

	if err := uc.cache.Set(ctx, order); err != nil {
		uc.logger.Warn("failed to cache order", zap.Uint64("orderId", id), zap.Error(err))
	}

	return order, nil
}

// ListOrders returns headers only.
func (uc *GetOrderUseCase) ListOrders(ctx context.Context, filter dto.OrderFilter) ([]domain.Order, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, apperrors.NewValidationError("invalid order type", apperrors.ValidationDetail{
			Field:   "type",
			Message: "type must be PURCHASE or SALE",
		})
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, apperrors.NewValidationError("invalid date range", apperrors.ValidationDetail{
			Field:   "from",
			Message: "from must be before to",
		})
	}

	orders, err := uc.orders.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStorageError("listing orders", err)
	}
	return orders, nil
}
