package ledger

import (
	"context"

	"vetstore/internal/domain"
)

type Repository interface {
	FindByProduct(ctx context.Context, productID uint64, limit, offset int) ([]domain.LedgerEntry, error)
	Reconcile(ctx context.Context, productID uint64) (*domain.StockReconciliation, error)
}

// ProductReader confirms a product exists when it has no movements yet.
type ProductReader interface {
	GetStock(ctx context.Context, productID uint64) (int, error)
}

type Service interface {
	History(ctx context.Context, productID uint64, limit, offset int) (*HistoryResponse, error)
	Reconcile(ctx context.Context, productID uint64) (*ReconciliationResponse, error)
}
