package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var tables = []struct {
	name string
	ddl  string
}{
	{"products", `
	CREATE TABLE IF NOT EXISTS products (
		id {{id}},
		name VARCHAR(100) NOT NULL,
		type VARCHAR(50) NOT NULL,
		sale_price DECIMAL(12,2) NOT NULL,
		cost DECIMAL(12,2) NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0
	)`},
	{"stock_entries", `
	CREATE TABLE IF NOT EXISTS stock_entries (
		id {{id}},
		created_at {{ts}} NOT NULL,
		product_id BIGINT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_cost DECIMAL(12,2) NOT NULL,
		total_cost DECIMAL(12,2) NOT NULL,
		FOREIGN KEY (product_id) REFERENCES products(id)
	)`},
	{"sales", `
	CREATE TABLE IF NOT EXISTS sales (
		id {{id}},
		created_at {{ts}} NOT NULL,
		product_id BIGINT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL,
		total DECIMAL(12,2) NOT NULL,
		payment_method VARCHAR(50) NOT NULL DEFAULT '',
		customer VARCHAR(100) NOT NULL DEFAULT '',
		FOREIGN KEY (product_id) REFERENCES products(id)
	)`},
	{"service_orders", `
	CREATE TABLE IF NOT EXISTS service_orders (
		id {{id}},
		created_at {{ts}} NOT NULL,
		description VARCHAR(255) NOT NULL,
		device VARCHAR(100) NOT NULL DEFAULT '',
		type VARCHAR(50) NOT NULL DEFAULT '',
		parts_cost DECIMAL(12,2) NOT NULL DEFAULT 0,
		labor_cost DECIMAL(12,2) NOT NULL DEFAULT 0,
		device_price DECIMAL(12,2) NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL,
		payment_method VARCHAR(50) NOT NULL DEFAULT '',
		customer VARCHAR(100) NOT NULL DEFAULT ''
	)`},
	{"cash_entries", `
	CREATE TABLE IF NOT EXISTS cash_entries (
		id {{id}},
		created_at {{ts}} NOT NULL,
		kind VARCHAR(10) NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		description VARCHAR(255) NOT NULL,
		origin_id BIGINT NULL,
		origin_type VARCHAR(10) NULL,
		UNIQUE (origin_type, origin_id)
	)`},
}

func (d Dialect) schemaReplacer() *strings.Replacer {
	switch d {
	case Postgres:
		return strings.NewReplacer("{{id}}", "BIGSERIAL PRIMARY KEY", "{{ts}}", "TIMESTAMP")
	case SQLite:
		return strings.NewReplacer("{{id}}", "INTEGER PRIMARY KEY AUTOINCREMENT", "{{ts}}", "DATETIME")
	default:
		return strings.NewReplacer("{{id}}", "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY", "{{ts}}", "DATETIME(6)")
	}
}

// Migrate creates any missing table. Existing tables are left untouched.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	replacer := DialectOf(db).schemaReplacer()

	for _, tbl := range tables {
		if _, err := db.ExecContext(ctx, replacer.Replace(tbl.ddl)); err != nil {
			return fmt.Errorf("creating table %s: %w", tbl.name, err)
		}
	}
	return nil
}

// TableNames lists the schema tables in dependency order.
func TableNames() []string {
	names := make([]string, 0, len(tables))
	for _, tbl := range tables {
		names = append(names, tbl.name)
	}
	return names
}
