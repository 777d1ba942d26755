package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	infra "vetstore/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/vetstore_test?parseTime=true"

// SetupTestDB opens the integration test database named by TEST_DB_DSN and
// skips the test when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables creates the schema if needed.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	if err := infra.ApplySchema(context.Background(), db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
}

// CleanupTestDB closes the connection. Rows are left in place: every test
// seeds its own products with unique SKUs and asserts on those ids only, so
// packages can run their integration tests concurrently.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}
	db.Close()
}

func InsertProduct(t *testing.T, db *sql.DB, name string, stock int) uint64 {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO products (name, sku, unit, purchase_price, selling_price, stock, min_stock)
		VALUES (?, ?, 'pcs', 10.00, 15.00, ?, 2)`,
		name, "SKU-"+uuid.NewString(), stock,
	)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}

	return lastInsertID(t, result)
}

// SeedOpeningStock records an opening-balance purchase movement so that a
// product seeded with stock also satisfies the ledger invariant.
func SeedOpeningStock(t *testing.T, db *sql.DB, productID uint64, quantity int) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO stock_ledger (product_id, direction, quantity, reference_type, reference_id, description)
		VALUES (?, 'IN', ?, 'PURCHASE', 0, 'Opening balance')`,
		productID, quantity,
	)
	if err != nil {
		t.Fatalf("failed to seed opening stock: %v", err)
	}
}

func InsertSupplier(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()

	result, err := db.Exec(`INSERT INTO suppliers (name) VALUES (?)`, name)
	if err != nil {
		t.Fatalf("failed to insert supplier: %v", err)
	}

	return lastInsertID(t, result)
}

func InsertCustomer(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()

	result, err := db.Exec(`INSERT INTO customers (name) VALUES (?)`, name)
	if err != nil {
		t.Fatalf("failed to insert customer: %v", err)
	}

	return lastInsertID(t, result)
}

func lastInsertID(t *testing.T, result sql.Result) uint64 {
	t.Helper()

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read last insert id: %v", err)
	}
	return uint64(id)
}

// NewMockDB returns a sqlmock-backed *sql.DB for statement-level unit tests.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db, mock
}
