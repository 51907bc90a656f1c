package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

const migrationPath = "../../../../migrations/0001_init.sql"

var testDB *database.DB

// TestMain connects to TEST_DATABASE_URL and applies the schema. Without it the
// integration tests skip.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping postgres integration tests")
		os.Exit(m.Run())
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	if err != nil {
		fmt.Println("failed to connect to test database:", err)
		os.Exit(1)
	}

	schema, err := os.ReadFile(migrationPath)
	if err != nil {
		fmt.Println("failed to read migration:", err)
		os.Exit(1)
	}
	if _, err := db.Exec(ctx, string(schema)); err != nil {
		fmt.Println("failed to apply migration:", err)
		os.Exit(1)
	}

	testDB = db
	code := m.Run()
	db.Close()
	os.Exit(code)
}

// setupTestDB skips without a database and truncates every table otherwise.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	tx, err := testDB.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	tables := []string{
		"high_value_notifications",
		"employee_bonus_totals",
		"client_reviews",
		"policy_sales",
		"time_sessions",
		"employees",
	}
	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
	require.NoError(t, tx.Commit(ctx))

	return testDB
}
