package dto

import (
	"github.com/shopspring/decimal"

	"vetstore/internal/domain"
)

// CreateOrderRequest is the JSON body accepted by both the purchase and the
// sale endpoints. The order type comes from the route.
type CreateOrderRequest struct {
	CounterpartyID *uint64           `json:"counterpartyId" validate:"omitempty,gt=0"`
	Items          []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
	Discount       *decimal.Decimal  `json:"discount" validate:"omitempty,gte=0"`
	Tax            *decimal.Decimal  `json:"tax" validate:"omitempty,gte=0"`
	Notes          *string           `json:"notes" validate:"omitempty,max=1000"`
}

type CreateOrderItem struct {
	ProductID uint64           `json:"productId" validate:"required,gt=0"`
	BatchID   *uint64          `json:"batchId" validate:"omitempty,gt=0"`
	Quantity  int              `json:"quantity" validate:"gt=0,lte=100000"`
	UnitPrice *decimal.Decimal `json:"unitPrice" validate:"required,gte=0"`
}

// CreateOrderCommand is the typed input of the fulfillment use case, with
// optional money fields already defaulted.
type CreateOrderCommand struct {
	Type           domain.OrderType
	CounterpartyID *uint64
	Items          []OrderLine
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	Notes          *string
}

type OrderLine struct {
	ProductID uint64
	BatchID   *uint64
	Quantity  int
	UnitPrice decimal.Decimal
}

func (r CreateOrderRequest) ToCommand(orderType domain.OrderType) CreateOrderCommand {
	cmd := CreateOrderCommand{
		Type:           orderType,
		CounterpartyID: r.CounterpartyID,
		Items:          make([]OrderLine, len(r.Items)),
		Discount:       decimal.Zero,
		Tax:            decimal.Zero,
		Notes:          r.Notes,
	}
	if r.Discount != nil {
		cmd.Discount = *r.Discount
	}
	if r.Tax != nil {
		cmd.Tax = *r.Tax
	}
	for i, item := range r.Items {
		cmd.Items[i] = OrderLine{
			ProductID: item.ProductID,
			BatchID:   item.BatchID,
			Quantity:  item.Quantity,
		}
		if item.UnitPrice != nil {
			cmd.Items[i].UnitPrice = *item.UnitPrice
		}
	}
	return cmd
}
