package ledger

import (
	"context"

	"go.uber.org/zap"
)

type ledgerService struct {
	repo     Repository
	products ProductReader
	logger   *zap.Logger
}

func NewService(repo Repository, products ProductReader, logger *zap.Logger) Service {
	return &ledgerService{repo: repo, products: products, logger: logger}
}

// History returns the product's movements, newest first. An unknown product
// is a NotFoundError rather than an empty page.
func (s *ledgerService) History(ctx context.Context, productID uint64, limit, offset int) (*HistoryResponse, error) {
	entries, err := s.repo.FindByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		if _, err := s.products.GetStock(ctx, productID); err != nil {
			return nil, err
		}
	}

	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, newEntryDTO(e))
	}

	return &HistoryResponse{
		ProductID: productID,
		Entries:   out,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (s *ledgerService) Reconcile(ctx context.Context, productID uint64) (*ReconciliationResponse, error) {
	rec, err := s.repo.Reconcile(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !rec.Consistent() {
		s.logger.Error("stock ledger out of balance",
			zap.Uint64("productId", productID),
			zap.Int("stock", rec.Stock),
			zap.Int("ledgerSum", rec.LedgerSum),
		)
	}

	return &ReconciliationResponse{
		ProductID:  rec.ProductID,
		Stock:      rec.Stock,
		LedgerSum:  rec.LedgerSum,
		Consistent: rec.Consistent(),
	}, nil
}
