package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypePurchase OrderType = "PURCHASE"
	OrderTypeSale     OrderType = "SALE"
)

const (
	OrderStatusCompleted = "COMPLETED"
)

func (t OrderType) Valid() bool {
	return t == OrderTypePurchase || t == OrderTypeSale
}

func (t OrderType) NumberPrefix() string {
	if t == OrderTypePurchase {
		return "PO"
	}
	return "INV"
}

func (t OrderType) LedgerDirection() LedgerDirection {
	if t == OrderTypePurchase {
		return LedgerDirectionIn
	}
	return LedgerDirectionOut
}

func (t OrderType) LedgerReference() LedgerReferenceType {
	if t == OrderTypePurchase {
		return LedgerReferencePurchase
	}
	return LedgerReferenceSale
}

// StockDelta is the signed change a line of quantity q applies to stock.
func (t OrderType) StockDelta(quantity int) int {
	if t == OrderTypePurchase {
		return quantity
	}
	return -quantity
}

type Order struct {
	ID          uint64
	OrderNumber string
	Type        OrderType
	SupplierID  *uint64
	CustomerID  *uint64
	OrderDate   time.Time
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	GrandTotal  decimal.Decimal
	Status      string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

type OrderItem struct {
	ID        uint64
	OrderID   uint64
	LineNo    int
	ProductID uint64
	BatchID   *uint64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ApplyTotals numbers the items in input order and recomputes every derived
// money field: item subtotals, order subtotal and grand total.
func (o *Order) ApplyTotals() {
	subtotal := decimal.Zero
	for i := range o.Items {
		o.Items[i].LineNo = i + 1
		o.Items[i].Subtotal = o.Items[i].LineTotal()
		subtotal = subtotal.Add(o.Items[i].Subtotal)
	}
	o.Subtotal = subtotal
	o.GrandTotal = subtotal.Sub(o.Discount).Add(o.Tax)
}

// QuantityByProduct sums line quantities per product so that several lines
// for the same product are checked against stock together.
func (o Order) QuantityByProduct() map[uint64]int {
	totals := make(map[uint64]int, len(o.Items))
	for _, item := range o.Items {
		totals[item.ProductID] += item.Quantity
	}
	return totals
}

// ProductIDs returns the distinct product ids of the order in ascending
// order, which is also the order row locks are taken in.
func (o Order) ProductIDs() []uint64 {
	seen := make(map[uint64]struct{}, len(o.Items))
	ids := make([]uint64, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func FormatOrderNumber(t OrderType, date time.Time, sequence uint64) string {
	return fmt.Sprintf("%s-%s-%06d", t.NumberPrefix(), date.Format("20060102"), sequence)
}
