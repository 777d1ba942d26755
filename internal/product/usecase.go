package product

import (
	"context"

	"vetstore/internal/domain"
)

type productUseCase struct {
	service Service
}

func NewUseCase(service Service) UseCase {
	return &productUseCase{service: service}
}

func (uc *productUseCase) SearchProducts(ctx context.Context, req SearchProductsRequest) (*SearchProductsResponse, error) {
	found, notFoundIDs, err := uc.service.GetProductsByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	if notFoundIDs == nil {
		notFoundIDs = []uint64{}
	}

	return &SearchProductsResponse{
		Products: toProductDTOs(found),
		NotFound: notFoundIDs,
	}, nil
}

func (uc *productUseCase) GetStock(ctx context.Context, productID uint64) (*StockResponse, error) {
	stock, err := uc.service.GetStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &StockResponse{ProductID: productID, Stock: stock}, nil
}

func (uc *productUseCase) ListLowStock(ctx context.Context, limit int) (*LowStockResponse, error) {
	products, err := uc.service.ListLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &LowStockResponse{Products: toProductDTOs(products)}, nil
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, ProductDTO{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			Unit:          p.Unit,
			PurchasePrice: p.PurchasePrice,
			SellingPrice:  p.SellingPrice,
			Stock:         p.Stock,
			MinStock:      p.MinStock,
			LowStock:      p.IsLowStock(),
		})
	}
	return out
}
