package product

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"vetstore/internal/commons"
	apperrors "vetstore/internal/errors"
)

const (
	defaultLowStockLimit = 50
	maxLowStockLimit     = 500
)

type Controller struct {
	useCase  UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase:  useCase,
		validate: commons.NewValidator(),
		logger:   logger,
	}
}

func (c *Controller) HandleSearchProducts(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req SearchProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteDomainError(w, traceID, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}), c.logger)
		return
	}

	if err := commons.ValidateStruct(c.validate, req); err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	resp, err := c.useCase.SearchProducts(r.Context(), req)
	if err != nil {
		c.logger.Error("search products failed", zap.String("traceId", traceID), zap.Error(err))
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, resp, c.logger)
}

func (c *Controller) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	productID, err := commons.ParseIDParam(r, "productId")
	if err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	resp, err := c.useCase.GetStock(r.Context(), productID)
	if err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, resp, c.logger)
}

func (c *Controller) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	limit, _, err := commons.ParsePagination(r, defaultLowStockLimit, maxLowStockLimit)
	if err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	resp, err := c.useCase.ListLowStock(r.Context(), limit)
	if err != nil {
		c.logger.Error("list low stock failed", zap.String("traceId", traceID), zap.Error(err))
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, resp, c.logger)
}
