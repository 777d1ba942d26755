package product

import (
	"context"

	"vetstore/internal/domain"
)

type productService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &productService{repo: repo}
}

// GetProductsByIDs returns the products that exist and, in request order,
// the distinct ids that do not.
func (s *productService) GetProductsByIDs(ctx context.Context, ids []uint64) ([]domain.Product, []uint64, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	foundSet := make(map[uint64]struct{}, len(found))
	for _, p := range found {
		foundSet[p.ID] = struct{}{}
	}

	var notFoundIDs []uint64
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			notFoundIDs = append(notFoundIDs, id)
			foundSet[id] = struct{}{}
		}
	}

	return found, notFoundIDs, nil
}

func (s *productService) GetStock(ctx context.Context, productID uint64) (int, error) {
	return s.repo.GetStock(ctx, productID)
}

func (s *productService) ListLowStock(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.repo.ListLowStock(ctx, limit)
}
