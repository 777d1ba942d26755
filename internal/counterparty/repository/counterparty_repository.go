package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vetstore/internal/domain"
	"vetstore/internal/errors"
)

type MySQLCounterpartyRepository struct {
	db *sql.DB
}

func NewMySQLCounterpartyRepository(db *sql.DB) *MySQLCounterpartyRepository {
	return &MySQLCounterpartyRepository{db: db}
}

func (r *MySQLCounterpartyRepository) FindSupplierByID(ctx context.Context, id uint64) (*domain.Supplier, error) {
	query := `
		SELECT id, name, phone, email, created_at, updated_at
		FROM suppliers
		WHERE id = ?
	`

	var s domain.Supplier
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("supplier with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying supplier by id: %w", err)
	}

	return &s, nil
}

func (r *MySQLCounterpartyRepository) FindCustomerByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	query := `
		SELECT id, name, phone, created_at, updated_at
		FROM customers
		WHERE id = ?
	`

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return &c, nil
}
