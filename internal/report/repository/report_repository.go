package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"smartfinance/internal/domain"
	"smartfinance/internal/infrastructure/database"
)

// SaleLine is a sale in scope joined with the current cost of its product.
type SaleLine struct {
	Quantity      int             `db:"quantity"`
	Total         decimal.Decimal `db:"total"`
	PaymentMethod string          `db:"payment_method"`
	ProductCost   decimal.Decimal `db:"product_cost"`
}

// SQLRepository runs the read-only queries behind period reports.
type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) SalesInScope(ctx context.Context, scope domain.Scope) ([]SaleLine, error) {
	where, args := database.DialectOf(r.db).ScopeFilter("s.created_at", scope)
	query := `
		SELECT s.quantity, s.total, s.payment_method, COALESCE(p.cost, 0) AS product_cost
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id` + where

	lines := []SaleLine{}
	if err := r.db.SelectContext(ctx, &lines, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying sales in scope: %w", err)
	}

	return lines, nil
}

func (r *SQLRepository) FinishedOrdersInScope(ctx context.Context, scope domain.Scope) ([]domain.ServiceOrder, error) {
	where, args := database.DialectOf(r.db).ScopeFilter("created_at", scope)
	if where == "" {
		where = " WHERE "
	} else {
		where += " AND "
	}
	where += "status = ?"
	args = append(args, domain.ServiceStatusFinished)

	query := `
		SELECT id, created_at, description, device, type, parts_cost, labor_cost, device_price,
			status, payment_method, customer
		FROM service_orders` + where + ` ORDER BY id`

	orders := []domain.ServiceOrder{}
	if err := r.db.SelectContext(ctx, &orders, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying finished service orders in scope: %w", err)
	}

	return orders, nil
}
