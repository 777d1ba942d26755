package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerEntry_SignedQuantity(t *testing.T) {
	in := LedgerEntry{Direction: LedgerDirectionIn, Quantity: 10}
	out := LedgerEntry{Direction: LedgerDirectionOut, Quantity: 4}

	assert.Equal(t, 10, in.SignedQuantity())
	assert.Equal(t, -4, out.SignedQuantity())
}

func TestStockReconciliation_Consistent(t *testing.T) {
	assert.True(t, StockReconciliation{ProductID: 1, Stock: 6, LedgerSum: 6}.Consistent())
	assert.False(t, StockReconciliation{ProductID: 1, Stock: 6, LedgerSum: 8}.Consistent())
}

func TestProduct_Stock(t *testing.T) {
	p := Product{ID: 1, Stock: 5, MinStock: 5}

	assert.True(t, p.CanFulfill(5))
	assert.False(t, p.CanFulfill(6))
	assert.True(t, p.IsLowStock())

	p.Stock = 6
	assert.False(t, p.IsLowStock())
}
