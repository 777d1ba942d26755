package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"vetstore/internal/domain"
)

type StockMovement struct {
	ProductID     uint64
	Direction     domain.LedgerDirection
	Quantity      int
	StockAfter    int
	LedgerEntryID uint64
}

// FulfillmentResult is what a committed fulfillment transaction produced.
type FulfillmentResult struct {
	Order     *domain.Order
	Movements []StockMovement
}

type OrderResult struct {
	ID          uint64
	OrderNumber string
	Type        domain.OrderType
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	GrandTotal  decimal.Decimal
	Items       []domain.OrderItem
}

func NewOrderResult(order *domain.Order) *OrderResult {
	return &OrderResult{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Type:        order.Type,
		Subtotal:    order.Subtotal,
		Discount:    order.Discount,
		Tax:         order.Tax,
		GrandTotal:  order.GrandTotal,
		Items:       order.Items,
	}
}

type OrderFilter struct {
	Type   domain.OrderType
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
