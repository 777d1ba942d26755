package product

import (
	"context"

	"vetstore/internal/domain"
)

type UseCase interface {
	SearchProducts(ctx context.Context, req SearchProductsRequest) (*SearchProductsResponse, error)
	GetStock(ctx context.Context, productID uint64) (*StockResponse, error)
	ListLowStock(ctx context.Context, limit int) (*LowStockResponse, error)
}

// Service is the catalog view other modules depend on.
type Service interface {
	GetProductsByIDs(ctx context.Context, ids []uint64) (found []domain.Product, notFoundIDs []uint64, err error)
	GetStock(ctx context.Context, productID uint64) (int, error)
	ListLowStock(ctx context.Context, limit int) ([]domain.Product, error)
}

type Repository interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
	GetStock(ctx context.Context, id uint64) (int, error)
	ListLowStock(ctx context.Context, limit int) ([]domain.Product, error)
}
