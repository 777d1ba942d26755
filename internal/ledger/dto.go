package ledger

import (
	"time"

	"vetstore/internal/domain"
)

type EntryDTO struct {
	ID            uint64    `json:"id"`
	BatchID       *uint64   `json:"batchId,omitempty"`
	Direction     string    `json:"direction"`
	Quantity      int       `json:"quantity"`
	SignedQty     int       `json:"signedQuantity"`
	ReferenceType string    `json:"referenceType"`
	ReferenceID   uint64    `json:"referenceId"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

type HistoryResponse struct {
	ProductID uint64     `json:"productId"`
	Entries   []EntryDTO `json:"entries"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

type ReconciliationResponse struct {
	ProductID  uint64 `json:"productId"`
	Stock      int    `json:"stock"`
	LedgerSum  int    `json:"ledgerSum"`
	Consistent bool   `json:"consistent"`
}

func newEntryDTO(e domain.LedgerEntry) EntryDTO {
	return EntryDTO{
		ID:            e.ID,
		BatchID:       e.BatchID,
		Direction:     string(e.Direction),
		Quantity:      e.Quantity,
		SignedQty:     e.SignedQuantity(),
		ReferenceType: string(e.ReferenceType),
		ReferenceID:   e.ReferenceID,
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
}
