package domain

import "time"

type LedgerDirection string

const (
	LedgerDirectionIn  LedgerDirection = "IN"
	LedgerDirectionOut LedgerDirection = "OUT"
)

type LedgerReferenceType string

const (
	LedgerReferencePurchase LedgerReferenceType = "PURCHASE"
	LedgerReferenceSale     LedgerReferenceType = "SALE"
)

// LedgerEntry is one immutable stock movement. Quantity is always positive;
// Direction carries the sign.
type LedgerEntry struct {
	ID            uint64
	ProductID     uint64
	BatchID       *uint64
	Direction     LedgerDirection
	Quantity      int
	ReferenceType LedgerReferenceType
	ReferenceID   uint64
	Description   string
	CreatedAt     time.Time
}

func (e LedgerEntry) SignedQuantity() int {
	if e.Direction == LedgerDirectionOut {
		return -e.Quantity
	}
	return e.Quantity
}

// StockReconciliation compares the materialized stock of a product with the
// signed sum of its ledger.
type StockReconciliation struct {
	ProductID uint64
	Stock     int
	LedgerSum int
}

func (r StockReconciliation) Consistent() bool {
	return r.Stock == r.LedgerSum
}
