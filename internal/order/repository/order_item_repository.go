package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vetstore/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint64, error) {
	query := `
		INSERT INTO order_items (order_id, line_no, product_id, batch_id, quantity, unit_price, subtotal)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		item.OrderID, item.LineNo, item.ProductID, item.BatchID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint64(lastInsertID), nil
}

func (r *MySQLOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint64) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, line_no, product_id, batch_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY line_no`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.LineNo, &item.ProductID, &item.BatchID,
			&item.Quantity, &item.UnitPrice, &item.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}
