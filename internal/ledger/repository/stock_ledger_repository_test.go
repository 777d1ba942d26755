package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetstore/internal/domain"
	"vetstore/internal/errors"
	"vetstore/internal/testutil"
)

// Unit Tests

func TestNewMySQLLedgerRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLLedgerRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestLedgerRepository_Append_Unit(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLLedgerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stock_ledger")).
		WithArgs(3, nil, "OUT", 2, "SALE", 11, "Sale INV-20261018-000011").
		WillReturnResult(sqlmock.NewResult(501, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	id, err := repo.Append(context.Background(), tx, domain.LedgerEntry{
		ProductID:     3,
		Direction:     domain.LedgerDirectionOut,
		Quantity:      2,
		ReferenceType: domain.LedgerReferenceSale,
		ReferenceID:   11,
		Description:   "Sale INV-20261018-000011",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, uint64(501), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_SumByProduct_Unit(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLLedgerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(CASE WHEN direction = 'IN'")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(-4))

	total, err := repo.SumByProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, -4, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_Reconcile_Unit_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLLedgerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products p")).
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows([]string{"stock", "ledger_sum"}))

	rec, err := repo.Reconcile(context.Background(), 77)
	assert.Nil(t, rec)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_FindByProduct_Unit(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLLedgerRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM stock_ledger")).
		WithArgs(3, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_id", "batch_id", "direction", "quantity",
			"reference_type", "reference_id", "description", "created_at",
		}).
			AddRow(2, 3, nil, "OUT", 2, "SALE", 11, "Sale", now).
			AddRow(1, 3, nil, "IN", 10, "PURCHASE", 4, "Purchase", now))

	entries, err := repo.FindByProduct(context.Background(), 3, 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.LedgerDirectionOut, entries[0].Direction)
	assert.Equal(t, domain.LedgerReferenceSale, entries[0].ReferenceType)
	assert.Nil(t, entries[0].BatchID)
	assert.Equal(t, -2, entries[0].SignedQuantity())
	assert.Equal(t, 10, entries[1].SignedQuantity())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Integration Tests

func TestLedgerRepository_AppendAndReconcile_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLLedgerRepository(db)
	productID := testutil.InsertProduct(t, db, "Aquarium Filter", 0)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	_, err = tx.ExecContext(ctx, `UPDATE products SET stock = stock + 7 WHERE id = ?`, productID)
	require.NoError(t, err)

	_, err = repo.Append(ctx, tx, domain.LedgerEntry{
		ProductID:     productID,
		Direction:     domain.LedgerDirectionIn,
		Quantity:      7,
		ReferenceType: domain.LedgerReferencePurchase,
		ReferenceID:   1,
		Description:   "Purchase",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	sum, err := repo.SumByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 7, sum)

	rec, err := repo.Reconcile(ctx, productID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent())
	assert.Equal(t, 7, rec.Stock)
}
