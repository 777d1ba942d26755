package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"vetstore/internal/commons"
	"vetstore/internal/ledger"
	ordercontroller "vetstore/internal/order/controller"
	"vetstore/internal/product"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

func NewRouter(
	productCtrl *product.Controller,
	ledgerCtrl *ledger.Controller,
	orderCtrl *ordercontroller.OrderController,
	db Pinger,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler(db, logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/purchases", orderCtrl.CreatePurchase)
		r.Post("/sales", orderCtrl.CreateSale)

		r.Get("/orders", orderCtrl.ListOrders)
		r.Get("/orders/{orderId}", orderCtrl.GetOrder)

		r.Post("/products/search", productCtrl.HandleSearchProducts)
		r.Get("/products/low-stock", productCtrl.HandleLowStock)
		r.Get("/products/{productId}/stock", productCtrl.HandleGetStock)
		r.Get("/products/{productId}/ledger", ledgerCtrl.HandleHistory)
		r.Get("/products/{productId}/ledger/reconcile", ledgerCtrl.HandleReconcile)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("traceId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			commons.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
			return
		}

		commons.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
