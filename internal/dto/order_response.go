package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"vetstore/internal/domain"
)

type OrderItemDTO struct {
	LineNo    int             `json:"lineNo"`
	ProductID uint64          `json:"productId"`
	BatchID   *uint64         `json:"batchId,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CreateOrderResponse struct {
	TraceID     string          `json:"traceId"`
	ID          uint64          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	OrderType   string          `json:"orderType"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	Items       []OrderItemDTO  `json:"items"`
	Timestamp   time.Time       `json:"timestamp"`
}

type OrderDTO struct {
	ID          uint64          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	OrderType   string          `json:"orderType"`
	SupplierID  *uint64         `json:"supplierId,omitempty"`
	CustomerID  *uint64         `json:"customerId,omitempty"`
	OrderDate   time.Time       `json:"orderDate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	Status      string          `json:"status"`
	Notes       *string         `json:"notes,omitempty"`
	Items       []OrderItemDTO  `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ListOrdersResponse struct {
	Orders []OrderDTO `json:"orders"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

type ErrorResponse struct {
	TraceID   string      `json:"traceId"`
	Status    int         `json:"status"`
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewOrderItemDTOs(items []domain.OrderItem) []OrderItemDTO {
	out := make([]OrderItemDTO, len(items))
	for i, item := range items {
		out[i] = OrderItemDTO{
			LineNo:    item.LineNo,
			ProductID: item.ProductID,
			BatchID:   item.BatchID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}
	return out
}

func NewOrderDTO(order *domain.Order) OrderDTO {
	return OrderDTO{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		OrderType:   string(order.Type),
		SupplierID:  order.SupplierID,
		CustomerID:  order.CustomerID,
		OrderDate:   order.OrderDate,
		Subtotal:    order.Subtotal,
		Discount:    order.Discount,
		Tax:         order.Tax,
		GrandTotal:  order.GrandTotal,
		Status:      order.Status,
		Notes:       order.Notes,
		Items:       NewOrderItemDTOs(order.Items),
		CreatedAt:   order.CreatedAt,
	}
}
