package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vetstore/internal/domain"
	"vetstore/internal/dto"
	"vetstore/internal/errors"
)

const orderColumns = `id, order_number, order_type, supplier_id, customer_id, order_date,
		subtotal, discount, tax, grand_total, status, notes, created_at, updated_at`

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var number sql.NullString
	var orderType string

	err := row.Scan(
		&order.ID, &number, &orderType, &order.SupplierID, &order.CustomerID, &order.OrderDate,
		&order.Subtotal, &order.Discount, &order.Tax, &order.GrandTotal, &order.Status, &order.Notes,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.OrderNumber = number.String
	order.Type = domain.OrderType(orderType)
	return &order, nil
}

// Insert writes the order header without its number, which is derived from
// the generated id and set with SetOrderNumber in the same transaction.
func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint64, error) {
	query := `
		INSERT INTO orders (order_type, supplier_id, customer_id, order_date,
			subtotal, discount, tax, grand_total, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		string(order.Type), order.SupplierID, order.CustomerID, order.OrderDate,
		order.Subtotal, order.Discount, order.Tax, order.GrandTotal, order.Status, order.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint64(lastInsertID), nil
}

func (r *MySQLOrderRepository) SetOrderNumber(ctx context.Context, tx *sql.Tx, id uint64, number string) error {
	query := `UPDATE orders SET order_number = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, number, id)
	if err != nil {
		return fmt.Errorf("setting order number: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// FindTimestamps reads the created_at and updated_at values the database
// assigned to the order, within tx.
func (r *MySQLOrderRepository) FindTimestamps(ctx context.Context, tx *sql.Tx, id uint64) (time.Time, time.Time, error) {
	var createdAt, updatedAt time.Time
	err := tx.QueryRowContext(ctx, `SELECT created_at, updated_at FROM orders WHERE id = ?`, id).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, time.Time{}, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("reading order timestamps: %w", err)
	}
	return createdAt, updatedAt, nil
}

// FindByID returns the order header; items are loaded separately.
func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ?`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// List returns order headers matching filter, newest first.
func (r *MySQLOrderRepository) List(ctx context.Context, filter dto.OrderFilter) ([]domain.Order, error) {
	var conditions []string
	var args []interface{}

	if filter.Type != "" {
		conditions = append(conditions, "order_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.From != nil {
		conditions = append(conditions, "order_date >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, "order_date < ?")
		args = append(args, *filter.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		%s
		ORDER BY order_date DESC, id DESC
		LIMIT ? OFFSET ?`,
		orderColumns, where,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
