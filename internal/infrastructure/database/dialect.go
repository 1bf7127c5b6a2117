package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"smartfinance/internal/domain"
)

type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return MySQL, nil
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DialectOf resolves the dialect of an open handle or transaction.
func DialectOf(q sqlx.ExtContext) Dialect {
	d, err := ParseDialect(q.DriverName())
	if err != nil {
		return MySQL
	}
	return d
}

func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case SQLite:
		return "sqlite"
	default:
		return "mysql"
	}
}

type DatePart string

const (
	Day   DatePart = "DAY"
	Month DatePart = "MONTH"
	Year  DatePart = "YEAR"
)

// DatePart returns an integer-valued SQL expression extracting part from column.
func (d Dialect) DatePart(part DatePart, column string) string {
	if d == SQLite {
		switch part {
		case Year:
			return fmt.Sprintf("CAST(substr(%s, 1, 4) AS INTEGER)", column)
		case Month:
			return fmt.Sprintf("CAST(substr(%s, 6, 2) AS INTEGER)", column)
		default:
			return fmt.Sprintf("CAST(substr(%s, 9, 2) AS INTEGER)", column)
		}
	}
	return fmt.Sprintf("EXTRACT(%s FROM %s)", part, column)
}

// ForUpdate is the row-lock suffix for SELECTs inside a write transaction.
func (d Dialect) ForUpdate() string {
	if d == SQLite {
		return ""
	}
	return " FOR UPDATE"
}

// ResetSequenceStatement restarts the id counter of table at 1.
func (d Dialect) ResetSequenceStatement(table string) string {
	switch d {
	case Postgres:
		return fmt.Sprintf("ALTER SEQUENCE %s_id_seq RESTART WITH 1", table)
	case SQLite:
		return fmt.Sprintf("DELETE FROM sqlite_sequence WHERE name = '%s'", table)
	default:
		return fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", table)
	}
}

// InsertReturningID runs an INSERT written with ? placeholders and returns the new row id.
func InsertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	if DialectOf(q) == Postgres {
		var id int64
		if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

// ScopeFilter builds a WHERE clause restricting column to the calendar
// period of scope. It returns an empty clause when scope has no filters.
func (d Dialect) ScopeFilter(column string, scope domain.Scope) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if scope.Day != nil {
		conds = append(conds, d.DatePart(Day, column)+" = ?")
		args = append(args, *scope.Day)
	}
	if scope.Month != nil {
		conds = append(conds, d.DatePart(Month, column)+" = ?")
		args = append(args, *scope.Month)
	}
	if scope.Year != nil {
		conds = append(conds, d.DatePart(Year, column)+" = ?")
		args = append(args, *scope.Year)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
