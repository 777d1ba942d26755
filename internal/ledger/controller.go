package ledger

import (
	"net/http"

	"go.uber.org/zap"

	"vetstore/internal/commons"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) HandleHistory(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	productID, err := commons.ParseIDParam(r, "productId")
	if err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	limit, offset, err := commons.ParsePagination(r, defaultHistoryLimit, maxHistoryLimit)
	if err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	resp, err := c.service.History(r.Context(), productID, limit, offset)
	if err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, resp, c.logger)
}

func (c *Controller) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	productID, err := commons.ParseIDParam(r, "productId")
	if err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	resp, err := c.service.Reconcile(r.Context(), productID)
	if err != nil {
		commons.WriteDomainError(w, traceID, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, resp, c.logger)
}
