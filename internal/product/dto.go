package product

import "github.com/shopspring/decimal"

type SearchProductsRequest struct {
	ProductIDs []uint64 `json:"productIds" validate:"required,min=1,max=100,dive,gt=0"`
}

type SearchProductsResponse struct {
	Products []ProductDTO `json:"products"`
	NotFound []uint64     `json:"notFound"`
}

type ProductDTO struct {
	ID            uint64          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"minStock"`
	LowStock      bool            `json:"lowStock"`
}

type StockResponse struct {
	ProductID uint64 `json:"productId"`
	Stock     int    `json:"stock"`
}

type LowStockResponse struct {
	Products []ProductDTO `json:"products"`
}
