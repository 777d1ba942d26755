package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderType_Valid(t *testing.T) {
	assert.True(t, OrderTypePurchase.Valid())
	assert.True(t, OrderTypeSale.Valid())
	assert.False(t, OrderType("RETURN").Valid())
	assert.False(t, OrderType("").Valid())
}

func TestOrderType_Direction(t *testing.T) {
	assert.Equal(t, "PO", OrderTypePurchase.NumberPrefix())
	assert.Equal(t, "INV", OrderTypeSale.NumberPrefix())
	assert.Equal(t, LedgerDirectionIn, OrderTypePurchase.LedgerDirection())
	assert.Equal(t, LedgerDirectionOut, OrderTypeSale.LedgerDirection())
	assert.Equal(t, LedgerReferencePurchase, OrderTypePurchase.LedgerReference())
	assert.Equal(t, LedgerReferenceSale, OrderTypeSale.LedgerReference())
	assert.Equal(t, 10, OrderTypePurchase.StockDelta(10))
	assert.Equal(t, -2, OrderTypeSale.StockDelta(2))
}

func TestOrder_ApplyTotals(t *testing.T) {
	order := Order{
		Type:     OrderTypeSale,
		Discount: decimal.Zero,
		Tax:      decimal.Zero,
		Items: []OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	}

	order.ApplyTotals()

	assert.True(t, decimal.NewFromInt(250).Equal(order.Subtotal))
	assert.True(t, decimal.NewFromInt(250).Equal(order.GrandTotal))
	assert.Equal(t, 1, order.Items[0].LineNo)
	assert.Equal(t, 2, order.Items[1].LineNo)
	assert.True(t, decimal.NewFromInt(200).Equal(order.Items[0].Subtotal))
	assert.True(t, decimal.NewFromInt(50).Equal(order.Items[1].Subtotal))
}

func TestOrder_ApplyTotals_DiscountAndTax(t *testing.T) {
	order := Order{
		Discount: decimal.RequireFromString("12.50"),
		Tax:      decimal.RequireFromString("3.30"),
		Items: []OrderItem{
			{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
			{ProductID: 2, Quantity: 7, UnitPrice: decimal.RequireFromString("19.99")},
		},
	}

	order.ApplyTotals()

	// 0.30 + 139.93 = 140.23; 140.23 - 12.50 + 3.30 = 131.03
	assert.Equal(t, "140.23", order.Subtotal.StringFixed(2))
	assert.Equal(t, "131.03", order.GrandTotal.StringFixed(2))
	assert.True(t, order.GrandTotal.Equal(order.Subtotal.Sub(order.Discount).Add(order.Tax)))
}

func TestOrder_QuantityByProduct(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: 5, Quantity: 2},
			{ProductID: 3, Quantity: 1},
			{ProductID: 5, Quantity: 4},
		},
	}

	totals := order.QuantityByProduct()

	assert.Len(t, totals, 2)
	assert.Equal(t, 6, totals[5])
	assert.Equal(t, 1, totals[3])
}

func TestOrder_ProductIDs_SortedAndDistinct(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: 9},
			{ProductID: 2},
			{ProductID: 9},
			{ProductID: 4},
		},
	}

	assert.Equal(t, []uint64{2, 4, 9}, order.ProductIDs())
}

func TestFormatOrderNumber(t *testing.T) {
	date := time.Date(2026, time.October, 18, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "PO-20261018-000012", FormatOrderNumber(OrderTypePurchase, date, 12))
	assert.Equal(t, "INV-20261018-000345", FormatOrderNumber(OrderTypeSale, date, 345))
	assert.Equal(t, "INV-20261018-1234567", FormatOrderNumber(OrderTypeSale, date, 1234567))
}

func TestOrder_StatusConstants(t *testing.T) {
	assert.Equal(t, "COMPLETED", OrderStatusCompleted)
}
