package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"vetstore/internal/domain"
	"vetstore/internal/dto"
	apperrors "vetstore/internal/errors"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductRepository interface {
	LockByIDs(ctx context.Context, tx *sql.Tx, ids []uint64) ([]domain.Product, error)
	AdjustStock(ctx context.Context, tx *sql.Tx, id uint64, delta int, allowNegative bool) (int, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint64, error)
	SetOrderNumber(ctx context.Context, tx *sql.Tx, id uint64, number string) error
	FindTimestamps(ctx context.Context, tx *sql.Tx, id uint64) (createdAt, updatedAt time.Time, err error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint64, error)
}

type LedgerRepository interface {
	Append(ctx context.Context, tx *sql.Tx, entry domain.LedgerEntry) (uint64, error)
}

// FulfillmentService persists one order, its lines, the stock adjustments and
// the ledger entries in a single transaction.
type FulfillmentService struct {
	db            TransactionManager
	productRepo   ProductRepository
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	ledgerRepo    LedgerRepository
	logger        *zap.Logger
	txTimeout     time.Duration
}

func NewFulfillmentService(
	db TransactionManager,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	ledgerRepo LedgerRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *FulfillmentService {
	return &FulfillmentService{
		db:            db,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		ledgerRepo:    ledgerRepo,
		logger:        logger,
		txTimeout:     txTimeout,
	}
}

// Fulfill writes order, which must already carry its totals. The argument is
// not modified; the committed copy is returned in the result. Errors are
// typed: NotFound and InsufficientStock for business rejections, Conflict
// for retryable storage contention, Storage for everything else.
func (s *FulfillmentService) Fulfill(ctx context.Context, order *domain.Order) (*dto.FulfillmentResult, error) {
	result, err := s.fulfill(ctx, order)
	if err != nil {
		return nil, classifyError(err)
	}
	return result, nil
}

func (s *FulfillmentService) fulfill(ctx context.Context, in *domain.Order) (*dto.FulfillmentResult, error) {
	order := *in
	order.Items = make([]domain.OrderItem, len(in.Items))
	copy(order.Items, in.Items)

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	// No-op once committed.
	defer tx.Rollback()

	if err := s.checkStock(txCtx, tx, &order); err != nil {
		return nil, err
	}

	orderID, err := s.orderRepo.Insert(txCtx, tx, &order)
	if err != nil {
		s.logger.Error("failed to insert order header", zap.String("orderType", string(order.Type)), zap.Error(err))
		return nil, err
	}
	order.ID = orderID
	order.OrderNumber = domain.FormatOrderNumber(order.Type, order.OrderDate, orderID)

	if err := s.orderRepo.SetOrderNumber(txCtx, tx, orderID, order.OrderNumber); err != nil {
		s.logger.Warn("failed to assign order number", zap.Uint64("orderId", orderID), zap.String("orderNumber", order.OrderNumber), zap.Error(err))
		return nil, err
	}

	// created_at and updated_at are assigned by the database.
	order.CreatedAt, order.UpdatedAt, err = s.orderRepo.FindTimestamps(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}

	movements := make([]dto.StockMovement, 0, len(order.Items))
	for i := range order.Items {
		movement, err := s.fulfillLine(txCtx, tx, &order, &order.Items[i])
		if err != nil {
			s.logger.Warn("line fulfillment failed",
				zap.String("orderNumber", order.OrderNumber),
				zap.Int("lineNo", order.Items[i].LineNo),
				zap.Uint64("productId", order.Items[i].ProductID),
				zap.Error(err),
			)
			return nil, err
		}
		movements = append(movements, *movement)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("orderNumber", order.OrderNumber), zap.Error(err))
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Info("order committed",
		zap.Uint64("orderId", order.ID),
		zap.String("orderNumber", order.OrderNumber),
		zap.String("orderType", string(order.Type)),
		zap.Int("lineCount", len(order.Items)),
		zap.String("grandTotal", order.GrandTotal.StringFixed(2)),
	)

	return &dto.FulfillmentResult{Order: &order, Movements: movements}, nil
}

// checkStock locks every product of the order in ascending id order. Sales
// are rejected as a whole when the aggregated demand of any product exceeds
// its locked stock.
func (s *FulfillmentService) checkStock(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	ids := order.ProductIDs()

	locked, err := s.productRepo.LockByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}

	byID := make(map[uint64]domain.Product, len(locked))
	for _, p := range locked {
		byID[p.ID] = p
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, fmt.Sprintf("%d", id))
		}
	}
	if len(missing) > 0 {
		return apperrors.NewNotFoundError("products not found: " + strings.Join(missing, ", "))
	}

	if order.Type != domain.OrderTypeSale {
		return nil
	}

	demand := order.QuantityByProduct()
	var shortages []apperrors.StockShortage
	for _, id := range ids {
		p := byID[id]
		if !p.CanFulfill(demand[id]) {
			shortages = append(shortages, apperrors.StockShortage{
				ProductID: id,
				Requested: demand[id],
				Available: p.Stock,
			})
		}
	}

	if len(shortages) > 0 {
		s.logger.Info("sale rejected, insufficient stock", zap.Int("shortageCount", len(shortages)))
		return apperrors.NewInsufficientStockError("insufficient stock", shortages...)
	}

	return nil
}

func (s *FulfillmentService) fulfillLine(ctx context.Context, tx *sql.Tx, order *domain.Order, item *domain.OrderItem) (*dto.StockMovement, error) {
	item.OrderID = order.ID

	itemID, err := s.orderItemRepo.Insert(ctx, tx, *item)
	if err != nil {
		return nil, err
	}
	item.ID = itemID

	stockAfter, err := s.productRepo.AdjustStock(ctx, tx, item.ProductID, order.Type.StockDelta(item.Quantity), false)
	if err != nil {
		return nil, err
	}

	entryID, err := s.ledgerRepo.Append(ctx, tx, domain.LedgerEntry{
		ProductID:     item.ProductID,
		BatchID:       item.BatchID,
		Direction:     order.Type.LedgerDirection(),
		Quantity:      item.Quantity,
		ReferenceType: order.Type.LedgerReference(),
		ReferenceID:   order.ID,
		Description:   ledgerDescription(order),
	})
	if err != nil {
		return nil, err
	}

	return &dto.StockMovement{
		ProductID:     item.ProductID,
		Direction:     order.Type.LedgerDirection(),
		Quantity:      item.Quantity,
		StockAfter:    stockAfter,
		LedgerEntryID: entryID,
	}, nil
}

func ledgerDescription(order *domain.Order) string {
	if order.Type == domain.OrderTypePurchase {
		return "Purchase " + order.OrderNumber
	}
	return "Sale " + order.OrderNumber
}

// classifyError keeps typed errors as they are, turns MySQL contention into
// a retryable ConflictError and wraps anything else in a StorageError.
func classifyError(err error) error {
	if _, ok := apperrors.IsValidationError(err); ok {
		return err
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return err
	}
	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		return err
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		return err
	}
	if _, ok := apperrors.IsStorageError(err); ok {
		return err
	}

	if isRetryable(err) {
		return apperrors.NewConflictError("concurrent update conflict", err)
	}

	return apperrors.NewStorageError("order transaction failed", err)
}

// isRetryable reports whether err is a MySQL deadlock, lock wait timeout or
// duplicate key error.
func isRetryable(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDeadlock, mysqlErrLockWaitTimeout, mysqlErrDuplicateEntry:
			return true
		}
	}
	return false
}
