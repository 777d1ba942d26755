package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vetstore/internal/domain"
	"vetstore/internal/errors"
)

const ledgerColumns = `id, product_id, batch_id, direction, quantity, reference_type, reference_id, description, created_at`

const signedQuantity = `CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END`

// MySQLLedgerRepository reads and appends stock_ledger rows. Rows are never
// updated or deleted.
type MySQLLedgerRepository struct {
	db *sql.DB
}

func NewMySQLLedgerRepository(db *sql.DB) *MySQLLedgerRepository {
	return &MySQLLedgerRepository{db: db}
}

// Append must run inside the transaction that applied the matching stock
// adjustment.
func (r *MySQLLedgerRepository) Append(ctx context.Context, tx *sql.Tx, entry domain.LedgerEntry) (uint64, error) {
	query := `
		INSERT INTO stock_ledger (product_id, batch_id, direction, quantity, reference_type, reference_id, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		entry.ProductID, entry.BatchID, string(entry.Direction), entry.Quantity,
		string(entry.ReferenceType), entry.ReferenceID, entry.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("appending ledger entry: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint64(lastInsertID), nil
}

func (r *MySQLLedgerRepository) SumByProduct(ctx context.Context, productID uint64) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0) FROM stock_ledger WHERE product_id = ?`, signedQuantity)

	var total int
	if err := r.db.QueryRowContext(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing ledger entries: %w", err)
	}
	return total, nil
}

// Reconcile reads the product's stock and its ledger sum in one statement so
// both values come from the same snapshot.
func (r *MySQLLedgerRepository) Reconcile(ctx context.Context, productID uint64) (*domain.StockReconciliation, error) {
	query := `
		SELECT p.stock, COALESCE(SUM(CASE WHEN l.direction = 'IN' THEN l.quantity ELSE -l.quantity END), 0)
		FROM products p
		LEFT JOIN stock_ledger l ON l.product_id = p.id
		WHERE p.id = ?
		GROUP BY p.id, p.stock`

	rec := domain.StockReconciliation{ProductID: productID}
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&rec.Stock, &rec.LedgerSum)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}
	if err != nil {
		return nil, fmt.Errorf("reconciling product stock: %w", err)
	}

	return &rec, nil
}

func (r *MySQLLedgerRepository) FindByProduct(ctx context.Context, productID uint64, limit, offset int) ([]domain.LedgerEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM stock_ledger
		WHERE product_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		ledgerColumns,
	)

	return r.query(ctx, query, productID, limit, offset)
}

func (r *MySQLLedgerRepository) FindByReference(ctx context.Context, refType domain.LedgerReferenceType, refID uint64) ([]domain.LedgerEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM stock_ledger
		WHERE reference_type = ? AND reference_id = ?
		ORDER BY id`,
		ledgerColumns,
	)

	return r.query(ctx, query, string(refType), refID)
}

func (r *MySQLLedgerRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		var direction, refType string
		err := rows.Scan(
			&e.ID, &e.ProductID, &e.BatchID, &direction, &e.Quantity,
			&refType, &e.ReferenceID, &e.Description, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.Direction = domain.LedgerDirection(direction)
		e.ReferenceType = domain.LedgerReferenceType(refType)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return entries, nil
}
