package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vetstore/internal/errors"
	"vetstore/internal/testutil"
)

// Unit Tests

func TestNewMySQLCounterpartyRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLCounterpartyRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestCounterpartyRepository_FindSupplierByID_Unit(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLCounterpartyRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM suppliers")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "email", "created_at", "updated_at"}).
			AddRow(4, "PT Pakan Sehat", nil, "sales@pakan.test", now, now))

	s, err := repo.FindSupplierByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), s.ID)
	assert.Equal(t, "PT Pakan Sehat", s.Name)
	assert.Nil(t, s.Phone)
	require.NotNil(t, s.Email)
	assert.Equal(t, "sales@pakan.test", *s.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterpartyRepository_FindCustomerByID_Unit_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLCounterpartyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers")).
		WithArgs(8).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindCustomerByID(context.Background(), 8)

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Contains(t, nfe.Message, "customer with id 8")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterpartyRepository_FindSupplierByID_Unit_QueryError(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLCounterpartyRepository(db)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM suppliers")).
		WithArgs(1).
		WillReturnError(dbErr)

	_, err := repo.FindSupplierByID(context.Background(), 1)

	assert.ErrorIs(t, err, dbErr)
	_, ok := apperrors.IsNotFoundError(err)
	assert.False(t, ok)
}

// Integration Tests

func TestCounterpartyRepository_FindByID_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCounterpartyRepository(db)

	supplierID := testutil.InsertSupplier(t, db, "Vet Supplies Co")
	customerID := testutil.InsertCustomer(t, db, "Rina")

	s, err := repo.FindSupplierByID(context.Background(), supplierID)
	require.NoError(t, err)
	assert.Equal(t, "Vet Supplies Co", s.Name)

	c, err := repo.FindCustomerByID(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, "Rina", c.Name)

	_, err = repo.FindCustomerByID(context.Background(), 1<<40)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
