package order

import (
	"database/sql"

	"go.uber.org/zap"

	"vetstore/internal/config"
	counterpartyrepo "vetstore/internal/counterparty/repository"
	ledgerrepo "vetstore/internal/ledger/repository"
	"vetstore/internal/order/controller"
	orderrepo "vetstore/internal/order/repository"
	"vetstore/internal/order/service"
	"vetstore/internal/order/usecase"
	productrepo "vetstore/internal/product/repository"
)

// NewModule wires the fulfillment engine. catalog is the product module's
// service; publisher and cache may be the no-op implementations.
func NewModule(
	db *sql.DB,
	cfg *config.Config,
	logger *zap.Logger,
	catalog usecase.ProductCatalog,
	publisher usecase.EventPublisher,
	cache usecase.OrderCache,
) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	productRepo := productrepo.NewMySQLRepository(db)
	ledgerRepo := ledgerrepo.NewMySQLLedgerRepository(db)
	counterpartyRepo := counterpartyrepo.NewMySQLCounterpartyRepository(db)

	fulfillmentSvc := service.NewFulfillmentService(
		db,
		productRepo,
		orderRepo,
		orderItemRepo,
		ledgerRepo,
		logger,
		cfg.Order.TxTimeout,
	)

	createUC := usecase.NewCreateOrderUseCase(
		fulfillmentSvc,
		catalog,
		counterpartyRepo,
		publisher,
		cache,
		logger,
		cfg.Order.MaxRetryAttempts,
		cfg.Order.MaxItems,
	)

	getUC := usecase.NewGetOrderUseCase(orderRepo, orderItemRepo, cache, logger)

	return controller.NewOrderController(createUC, getUC, logger)
}
