package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"smartfinance/internal/config"
	"smartfinance/internal/infrastructure/database"
)

// SetupTestDB opens a fresh SQLite database in a temp dir through the same
// connection code the server uses.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.NewConnection(TestDatabaseConfig(t))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	return db
}

// TestDatabaseConfig points at a new database file under t.TempDir.
func TestDatabaseConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()

	return config.DatabaseConfig{
		Driver:           "sqlite",
		Path:             filepath.Join(t.TempDir(), "smartfinance_test.db"),
		MaxOpenConns:     4,
		MaxIdleConns:     4,
		MaxRetryAttempts: 3,
	}
}

// SetupTestTables applies the production schema.
func SetupTestTables(t *testing.T, db *sqlx.DB) {
	t.Helper()

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
}

// CleanupTestDB empties every table and closes db.
func CleanupTestDB(t *testing.T, db *sqlx.DB) {
	if db == nil {
		return
	}

	tables := database.TableNames()
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", tables[i])); err != nil {
			t.Logf("failed to clean table %s: %v", tables[i], err)
		}
	}

	db.Close()
}
