package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"vetstore/internal/commons"
	"vetstore/internal/domain"
	"vetstore/internal/dto"
	apperrors "vetstore/internal/errors"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, cmd dto.CreateOrderCommand) (*dto.OrderResult, error)
}

type GetOrderUseCase interface {
	GetOrder(ctx context.Context, id uint64) (*domain.Order, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) ([]domain.Order, error)
}

type OrderController struct {
	createUseCase CreateOrderUseCase
	getUseCase    GetOrderUseCase
	validate      *validator.Validate
	logger        *zap.Logger
}

func NewOrderController(createUseCase CreateOrderUseCase, getUseCase GetOrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		validate:      commons.NewValidator(),
		logger:        logger,
	}
}

func (c *OrderController) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	c.createOrder(w, r, domain.OrderTypePurchase)
}

func (c *OrderController) CreateSale(w http.ResponseWriter, r *http.Request) {
	c.createOrder(w, r, domain.OrderTypeSale)
}

func (c *OrderController) createOrder(w http.ResponseWriter, r *http.Request, orderType domain.OrderType) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("orderType", string(orderType)))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteDomainError(w, traceID, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}), logger)
		return
	}

	if err := commons.ValidateStruct(c.validate, req); err != nil {
		commons.WriteDomainError(w, traceID, err, logger)
		return
	}

	result, err := c.createUseCase.CreateOrder(r.Context(), req.ToCommand(orderType))
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		TraceID:     traceID,
		ID:          result.ID,
		OrderNumber: result.OrderNumber,
		OrderType:   string(result.Type),
		Subtotal:    result.Subtotal,
		Discount:    result.Discount,
		Tax:         result.Tax,
		GrandTotal:  result.GrandTotal,
		Items:       dto.NewOrderItemDTOs(result.Items),
		Timestamp:   time.Now().UTC(),
	}, logger)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, err := commons.ParseIDParam(r, "orderId")
	if err != nil {
		commons.WriteDomainError(w, traceID, err, logger)
		return
	}

	order, err := c.getUseCase.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderDTO(order), logger)
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	filter, err := parseOrderFilter(r)
	if err != nil {
		commons.WriteDomainError(w, traceID, err, logger)
		return
	}

	orders, err := c.getUseCase.ListOrders(r.Context(), filter)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp := dto.ListOrdersResponse{
		Orders: make([]dto.OrderDTO, 0, len(orders)),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, dto.NewOrderDTO(&orders[i]))
	}

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}

func parseOrderFilter(r *http.Request) (dto.OrderFilter, error) {
	limit, offset, err := commons.ParsePagination(r, defaultListLimit, maxListLimit)
	if err != nil {
		return dto.OrderFilter{}, err
	}

	q := r.URL.Query()
	filter := dto.OrderFilter{
		Type:   domain.OrderType(strings.ToUpper(q.Get("type"))),
		Status: strings.ToUpper(q.Get("status")),
		Limit:  limit,
		Offset: offset,
	}

	var details []apperrors.ValidationDetail
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &filter.From}, {"to", &filter.To}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		t, dateOnly, ok := parseDate(raw)
		if !ok {
			details = append(details, apperrors.ValidationDetail{
				Field:   p.name,
				Message: p.name + " must be an RFC 3339 timestamp or a YYYY-MM-DD date",
			})
			continue
		}
		// to is exclusive; a bare date includes the whole day.
		if dateOnly && p.name == "to" {
			t = t.AddDate(0, 0, 1)
		}
		*p.dst = &t
	}

	if len(details) > 0 {
		return dto.OrderFilter{}, apperrors.NewValidationError("invalid filter", details...)
	}
	return filter, nil
}

func parseDate(raw string) (t time.Time, dateOnly bool, ok bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		logger.Info("order rejected", zap.Int("shortageCount", len(ise.Shortages)))
	}
	commons.WriteDomainError(w, traceID, err, logger)
}
