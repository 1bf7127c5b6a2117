package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartfinance/internal/config"
	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/infrastructure/database"
	"smartfinance/internal/testutil"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		driver  string
		want    database.Dialect
		wantErr bool
	}{
		{"mysql", database.MySQL, false},
		{"postgres", database.Postgres, false},
		{"pgx", database.Postgres, false},
		{"sqlite", database.SQLite, false},
		{"oracle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := database.ParseDialect(tt.driver)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_DatePart(t *testing.T) {
	assert.Equal(t, "EXTRACT(MONTH FROM created_at)", database.MySQL.DatePart(database.Month, "created_at"))
	assert.Equal(t, "EXTRACT(YEAR FROM s.created_at)", database.Postgres.DatePart(database.Year, "s.created_at"))
	assert.Equal(t, "CAST(substr(created_at, 9, 2) AS INTEGER)", database.SQLite.DatePart(database.Day, "created_at"))
}

func TestDialect_ScopeFilter(t *testing.T) {
	where, args := database.MySQL.ScopeFilter("created_at", domain.Scope{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	day, year := 5, 2024
	where, args = database.MySQL.ScopeFilter("created_at", domain.Scope{Day: &day, Year: &year})
	assert.Equal(t, " WHERE EXTRACT(DAY FROM created_at) = ? AND EXTRACT(YEAR FROM created_at) = ?", where)
	assert.Equal(t, []interface{}{5, 2024}, args)
}

func TestDialect_ResetSequenceStatement(t *testing.T) {
	assert.Equal(t, "ALTER SEQUENCE products_id_seq RESTART WITH 1", database.Postgres.ResetSequenceStatement("products"))
	assert.Equal(t, "ALTER TABLE products AUTO_INCREMENT = 1", database.MySQL.ResetSequenceStatement("products"))
	assert.Equal(t, "DELETE FROM sqlite_sequence WHERE name = 'products'", database.SQLite.ResetSequenceStatement("products"))
}

func TestDSN(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		dsn, err := database.DSN(config.DatabaseConfig{
			Driver: "mysql", Host: "db", Port: 3306, User: "app", Password: "secret", Name: "shop",
		})
		require.NoError(t, err)
		assert.Contains(t, dsn, "app:secret@tcp(db:3306)/shop")
		assert.Contains(t, dsn, "parseTime=true")
	})

	t.Run("postgres", func(t *testing.T) {
		dsn, err := database.DSN(config.DatabaseConfig{
			Driver: "postgres", Host: "db", Port: 5432, User: "app", Password: "secret", Name: "shop", SSLMode: "disable",
		})
		require.NoError(t, err)
		assert.Contains(t, dsn, "postgres://app:secret@db:5432/shop?")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("sqlite", func(t *testing.T) {
		dsn, err := database.DSN(config.DatabaseConfig{Driver: "sqlite", Path: "/tmp/shop.db"})
		require.NoError(t, err)
		assert.Contains(t, dsn, "file:/tmp/shop.db?")
		assert.Contains(t, dsn, "_pragma=foreign_keys")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := database.DSN(config.DatabaseConfig{Driver: "oracle"})
		assert.Error(t, err)
	})
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	require.NoError(t, database.Migrate(ctx, db))

	for _, table := range database.TableNames() {
		var count int
		err := db.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, err)
		assert.Equal(t, 1, count, table)
	}
}

func TestMigrate_UniqueOrigin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	insert := `INSERT INTO cash_entries (created_at, kind, amount, description, origin_id, origin_type)
		VALUES (CURRENT_TIMESTAMP, 'entrada', 10, 'x', ?, ?)`

	_, err := db.Exec(insert, 1, "sale")
	require.NoError(t, err)
	_, err = db.Exec(insert, 1, "service")
	require.NoError(t, err)
	_, err = db.Exec(insert, 1, "sale")
	assert.Error(t, err)

	// manual entries carry NULL origins and never collide
	_, err = db.Exec(insert, nil, nil)
	require.NoError(t, err)
	_, err = db.Exec(insert, nil, nil)
	require.NoError(t, err)
}

func TestInsertReturningID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	id1, err := database.InsertReturningID(ctx, db,
		"INSERT INTO products (name, type, sale_price, cost, stock) VALUES (?, ?, ?, ?, ?)",
		"Cabo USB", "Produto", "15.00", "5.00", 10)
	require.NoError(t, err)
	id2, err := database.InsertReturningID(ctx, db,
		"INSERT INTO products (name, type, sale_price, cost, stock) VALUES (?, ?, ?, ?, ?)",
		"Capinha", "Produto", "25.00", "8.00", 3)
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
}

func newTestTxRunner(db *sqlx.DB, attempts int) *database.TxRunner {
	return database.NewTxRunner(db, config.DatabaseConfig{MaxRetryAttempts: attempts}, zap.NewNop())
}

func TestTxRunner_Commit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	err := newTestTxRunner(db, 3).Run(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO products (name, type, sale_price, cost, stock) VALUES ('A', 'Produto', 1, 1, 1)")
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM products"))
	assert.Equal(t, 1, count)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	boom := errors.New("boom")
	err := newTestTxRunner(db, 3).Run(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO products (name, type, sale_price, cost, stock) VALUES ('A', 'Produto', 1, 1, 1)"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM products"))
	assert.Equal(t, 0, count)
}

func TestTxRunner_RetriesDeadlock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	calls := 0
	err := newTestTxRunner(db, 3).Run(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		calls++
		return &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	})

	assert.Equal(t, 3, calls)
	_, ok := apperrors.IsDeadlockError(err)
	assert.True(t, ok)
}

func TestTxRunner_SucceedsAfterRetry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	calls := 0
	err := newTestTxRunner(db, 3).Run(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTxRunner_NonRetryableReturnsImmediately(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	calls := 0
	err := newTestTxRunner(db, 3).Run(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		calls++
		return apperrors.NewValidationError("bad input")
	})

	assert.Equal(t, 1, calls)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, database.IsRetryable(&mysql.MySQLError{Number: 1205}))
	assert.False(t, database.IsRetryable(&mysql.MySQLError{Number: 1062}))
	assert.True(t, database.IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, database.IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, database.IsRetryable(errors.New("other")))
}
