package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vetstore/internal/domain"
	"vetstore/internal/dto"
	apperrors "vetstore/internal/errors"
	"vetstore/internal/events"
)

const postCommitTimeout = 5 * time.Second

type FulfillmentService interface {
	Fulfill(ctx context.Context, order *domain.Order) (*dto.FulfillmentResult, error)
}

type ProductCatalog interface {
	GetProductsByIDs(ctx context.Context, ids []uint64) (found []domain.Product, notFoundIDs []uint64, err error)
}

type CounterpartyRepository interface {
	FindSupplierByID(ctx context.Context, id uint64) (*domain.Supplier, error)
	FindCustomerByID(ctx context.Context, id uint64) (*domain.Customer, error)
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event events.OrderCreatedEvent) error
}

type OrderCache interface {
	Get(ctx context.Context, id uint64) (*domain.Order, bool, error)
	Set(ctx context.Context, order *domain.Order) error
}

type CreateOrderUseCase struct {
	fulfillment      FulfillmentService
	catalog          ProductCatalog
	counterparties   CounterpartyRepository
	publisher        EventPublisher
	cache            OrderCache
	logger           *zap.Logger
	maxRetryAttempts int
	maxItems         int
}

func NewCreateOrderUseCase(
	fulfillment FulfillmentService,
	catalog ProductCatalog,
	counterparties CounterpartyRepository,
	publisher EventPublisher,
	cache OrderCache,
	logger *zap.Logger,
	maxRetryAttempts int,
	maxItems int,
) *CreateOrderUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &CreateOrderUseCase{
		fulfillment:      fulfillment,
		catalog:          catalog,
		counterparties:   counterparties,
		publisher:        publisher,
		cache:            cache,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		maxItems:         maxItems,
	}
}

func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, cmd dto.CreateOrderCommand) (*dto.OrderResult, error) {
	uc.logger.Info("create order started", zap.String("orderType", string(cmd.Type)), zap.Int("itemCount", len(cmd.Items)))

	if err := uc.validate(cmd); err != nil {
		return nil, err
	}

	// order_date is a DATETIME with whole seconds.
	order := buildOrder(cmd, time.Now().UTC().Truncate(time.Second))
	if order.GrandTotal.IsNegative() {
		return nil, apperrors.NewValidationError("grand total must not be negative", apperrors.ValidationDetail{
			Field:   "discount",
			Message: fmt.Sprintf("discount exceeds subtotal plus tax (grand total %s)", order.GrandTotal.StringFixed(2)),
		})
	}

	if err := uc.checkReferences(ctx, order); err != nil {
		return nil, err
	}

	result, err := uc.fulfillWithRetry(ctx, order)
	if err != nil {
		return nil, err
	}

	uc.afterCommit(ctx, result)

	return dto.NewOrderResult(result.Order), nil
}

func (uc *CreateOrderUseCase) validate(cmd dto.CreateOrderCommand) error {
	var details []apperrors.ValidationDetail
	add := func(field, msg string) {
		details = append(details, apperrors.ValidationDetail{Field: field, Message: msg})
	}

	if !cmd.Type.Valid() {
		add("orderType", "orderType must be PURCHASE or SALE")
	}

	if cmd.Type == domain.OrderTypePurchase && cmd.CounterpartyID == nil {
		add("counterpartyId", "counterpartyId is required for purchases")
	}
	if cmd.CounterpartyID != nil && *cmd.CounterpartyID == 0 {
		add("counterpartyId", "counterpartyId must be a positive integer")
	}

	if len(cmd.Items) == 0 {
		add("items", "items must not be empty")
	}
	if uc.maxItems > 0 && len(cmd.Items) > uc.maxItems {
		add("items", fmt.Sprintf("items exceeds maximum of %d", uc.maxItems))
	}

	for i, item := range cmd.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == 0 {
			add(field+".productId", "productId must be a positive integer")
		}
		if item.Quantity <= 0 {
			add(field+".quantity", "quantity must be greater than 0")
		}
		if item.UnitPrice.IsNegative() {
			add(field+".unitPrice", "unitPrice must not be negative")
		}
		if !isMoney(item.UnitPrice) {
			add(field+".unitPrice", "unitPrice must have at most 2 decimal places")
		}
	}

	amounts := []struct {
		field  string
		amount decimal.Decimal
	}{{"discount", cmd.Discount}, {"tax", cmd.Tax}}
	for _, a := range amounts {
		field, amount := a.field, a.amount
		if amount.IsNegative() {
			add(field, field+" must not be negative")
		}
		if !isMoney(amount) {
			add(field, field+" must have at most 2 decimal places")
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func isMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

func buildOrder(cmd dto.CreateOrderCommand, now time.Time) *domain.Order {
	order := &domain.Order{
		Type:      cmd.Type,
		OrderDate: now,
		Discount:  cmd.Discount,
		Tax:       cmd.Tax,
		Status:    domain.OrderStatusCompleted,
		Notes:     cmd.Notes,
		Items:     make([]domain.OrderItem, len(cmd.Items)),
	}

	if cmd.Type == domain.OrderTypePurchase {
		order.SupplierID = cmd.CounterpartyID
	} else {
		order.CustomerID = cmd.CounterpartyID
	}

	for i, line := range cmd.Items {
		order.Items[i] = domain.OrderItem{
			ProductID: line.ProductID,
			BatchID:   line.BatchID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	order.ApplyTotals()
	return order
}

// checkReferences rejects unknown suppliers, customers and products before a
// transaction is opened.
func (uc *CreateOrderUseCase) checkReferences(ctx context.Context, order *domain.Order) error {
	if order.SupplierID != nil {
		if _, err := uc.counterparties.FindSupplierByID(ctx, *order.SupplierID); err != nil {
			return lookupError("looking up supplier", err)
		}
	}
	if order.CustomerID != nil {
		if _, err := uc.counterparties.FindCustomerByID(ctx, *order.CustomerID); err != nil {
			return lookupError("looking up customer", err)
		}
	}

	_, notFound, err := uc.catalog.GetProductsByIDs(ctx, order.ProductIDs())
	if err != nil {
		return lookupError("looking up products", err)
	}
	if len(notFound) > 0 {
		ids := make([]string, len(notFound))
		for i, id := range notFound {
			ids[i] = fmt.Sprintf("%d", id)
		}
		return apperrors.NewNotFoundError("products not found: " + strings.Join(ids, ", "))
	}

	return nil
}

func lookupError(message string, err error) error {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return err
	}
	return apperrors.NewStorageError(message, err)
}

func (uc *CreateOrderUseCase) fulfillWithRetry(ctx context.Context, order *domain.Order) (*dto.FulfillmentResult, error) {
	maxAttempts := uc.maxRetryAttempts
	// attempt 1 runs immediately, later attempts wait 100ms, 200ms, 200ms...
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			base := backoffs[min(attempt-1, len(backoffs)-1)]
			// ±20% jitter
			wait := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, apperrors.NewConflictError("order creation abandoned while retrying", ctx.Err())
			}
		}

		result, err := uc.fulfillment.Fulfill(ctx, order)
		if err == nil {
			return result, nil
		}

		if _, ok := apperrors.IsConflictError(err); !ok {
			return nil, err
		}

		lastErr = err
		uc.logger.Warn("order transaction conflict", zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
	}

	return nil, apperrors.NewConflictError("max retries exceeded", lastErr)
}

// afterCommit publishes the OrderCreated event and primes the read cache.
// Failures are logged only; the order is already committed.
func (uc *CreateOrderUseCase) afterCommit(ctx context.Context, result *dto.FulfillmentResult) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	order := result.Order

	if err := uc.publisher.PublishOrderCreated(pctx, events.NewOrderCreatedEvent(result)); err != nil {
		uc.logger.Error("failed to publish order event", zap.String("orderNumber", order.OrderNumber), zap.Error(err))
	}

	if err := uc.cache.Set(pctx, order); err != nil {
		uc.logger.Warn("failed to cache order", zap.Uint64("orderId", order.ID), zap.Error(err))
	}
}
