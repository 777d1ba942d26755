package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint64
	Name          string
	SKU           string
	Unit          string
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	Stock         int
	MinStock      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Product) CanFulfill(quantity int) bool {
	return quantity <= p.Stock
}

func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
