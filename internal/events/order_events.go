package events

import (
	"time"

	"github.com/shopspring/decimal"

	"vetstore/internal/dto"
)

const EventTypeOrderCreated = "OrderCreated"

type StockMovementEvent struct {
	ProductID     uint64 `json:"productId"`
	Direction     string `json:"direction"`
	Quantity      int    `json:"quantity"`
	StockAfter    int    `json:"stockAfter"`
	LedgerEntryID uint64 `json:"ledgerEntryId"`
}

// OrderCreatedEvent is emitted once per committed order for downstream
// reporting. It carries only committed state.
type OrderCreatedEvent struct {
	OrderID     uint64               `json:"orderId"`
	OrderNumber string               `json:"orderNumber"`
	OrderType   string               `json:"orderType"`
	SupplierID  *uint64              `json:"supplierId,omitempty"`
	CustomerID  *uint64              `json:"customerId,omitempty"`
	OrderDate   time.Time            `json:"orderDate"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	Discount    decimal.Decimal      `json:"discount"`
	Tax         decimal.Decimal      `json:"tax"`
	GrandTotal  decimal.Decimal      `json:"grandTotal"`
	Movements   []StockMovementEvent `json:"movements"`
}

func NewOrderCreatedEvent(result *dto.FulfillmentResult) OrderCreatedEvent {
	order := result.Order
	movements := make([]StockMovementEvent, len(result.Movements))
	for i, m := range result.Movements {
		movements[i] = StockMovementEvent{
			ProductID:     m.ProductID,
			Direction:     string(m.Direction),
			Quantity:      m.Quantity,
			StockAfter:    m.StockAfter,
			LedgerEntryID: m.LedgerEntryID,
		}
	}

	return OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OrderType:   string(order.Type),
		SupplierID:  order.SupplierID,
		CustomerID:  order.CustomerID,
		OrderDate:   order.OrderDate,
		Subtotal:    order.Subtotal,
		Discount:    order.Discount,
		Tax:         order.Tax,
		GrandTotal:  order.GrandTotal,
		Movements:   movements,
	}
}

func (e OrderCreatedEvent) Key() string {
	return e.OrderNumber
}
