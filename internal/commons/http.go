package commons

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vetstore/internal/dto"
	apperrors "vetstore/internal/errors"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeConflict          = "CONFLICT"
	CodeStorage           = "STORAGE_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

// TraceID reuses the router's request id when present so log lines and
// response bodies share one identifier.
func TraceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.New().String()
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteError(w http.ResponseWriter, traceID string, status int, code, message string, details interface{}, logger *zap.Logger) {
	WriteJSON(w, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, logger)
}

// WriteDomainError maps the typed errors of internal/errors onto HTTP status
// codes. Anything unrecognised is logged and reported as a 500 without its
// message.
func WriteDomainError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteError(w, traceID, http.StatusBadRequest, CodeValidation, ve.Message, ve.Details, logger)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		WriteError(w, traceID, http.StatusNotFound, CodeNotFound, nfe.Message, nil, logger)
		return
	}

	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		WriteError(w, traceID, http.StatusConflict, CodeInsufficientStock, ise.Message, ise.Shortages, logger)
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		logger.Warn("conflict", zap.Error(err))
		WriteError(w, traceID, http.StatusConflict, CodeConflict, ce.Message, nil, logger)
		return
	}

	if _, ok := apperrors.IsStorageError(err); ok {
		logger.Error("storage error", zap.Error(err))
		WriteError(w, traceID, http.StatusInternalServerError, CodeStorage, "a storage error occurred", nil, logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	WriteError(w, traceID, http.StatusInternalServerError, CodeInternal, "an unexpected error occurred", nil, logger)
}

func ParseIDParam(r *http.Request, name string) (uint64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid "+name, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
	}
	return id, nil
}

// ParsePagination reads limit and offset from the query string, applying
// defaultLimit when limit is absent.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) (int, int, error) {
	var details []apperrors.ValidationDetail
	limit, offset := defaultLimit, 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxLimit {
			details = append(details, apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be between 1 and " + strconv.Itoa(maxLimit),
			})
		} else {
			limit = v
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "offset",
				Message: "offset must be a non-negative integer",
			})
		} else {
			offset = v
		}
	}

	if len(details) > 0 {
		return 0, 0, apperrors.NewValidationError("invalid pagination", details...)
	}
	return limit, offset, nil
}
