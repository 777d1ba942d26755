package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vetstore/internal/domain"
	"vetstore/internal/errors"
)

const productColumns = `id, name, sku, unit, purchase_price, selling_price, stock, min_stock, created_at, updated_at`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner, p *domain.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Unit, &p.PurchasePrice, &p.SellingPrice,
		&p.Stock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
}

func inClause(ids []uint64) (string, []interface{}) {
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}

func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders, args := inClause(ids)
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id IN (%s)
		ORDER BY id`,
		productColumns, placeholders,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) GetStock(ctx context.Context, id uint64) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = ?`, id).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return 0, fmt.Errorf("querying product stock: %w", err)
	}
	return stock, nil
}

func (r *MySQLRepository) ListLowStock(ctx context.Context, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE stock <= min_stock
		ORDER BY stock - min_stock, id
		LIMIT ?`,
		productColumns,
	)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying low stock products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

// LockByIDs takes row locks on the given products in ascending id order and
// returns their current stock. Only ID, Stock and MinStock are populated.
func (r *MySQLRepository) LockByIDs(ctx context.Context, tx *sql.Tx, ids []uint64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders, args := inClause(ids)
	query := fmt.Sprintf(`
		SELECT id, stock, min_stock
		FROM products
		WHERE id IN (%s)
		ORDER BY id
		FOR UPDATE`,
		placeholders,
	)

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("locking products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Stock, &p.MinStock); err != nil {
			return nil, fmt.Errorf("scanning locked product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locked product rows: %w", err)
	}

	return products, nil
}

// AdjustStock applies delta to the product's stock in a single statement and
// returns the resulting quantity. Unless allowNegative is set, the update is
// guarded so the stock can never finish below zero.
func (r *MySQLRepository) AdjustStock(ctx context.Context, tx *sql.Tx, id uint64, delta int, allowNegative bool) (int, error) {
	query := `UPDATE products SET stock = stock + ? WHERE id = ?`
	args := []interface{}{delta, id}
	if !allowNegative {
		query += ` AND stock + ? >= 0`
		args = append(args, delta)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("adjusting product stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	var stock int
	err = tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = ?`, id).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return 0, fmt.Errorf("reading adjusted stock: %w", err)
	}

	if rowsAffected == 0 {
		return 0, errors.NewInsufficientStockError(
			fmt.Sprintf("insufficient stock for product %d", id),
			errors.StockShortage{ProductID: id, Requested: -delta, Available: stock},
		)
	}

	return stock, nil
}
