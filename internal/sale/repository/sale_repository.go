package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/infrastructure/database"
)

const selectSale = `
	SELECT s.id, s.created_at, s.product_id, COALESCE(p.name, '') AS product_name,
		s.quantity, s.unit_price, s.total, s.payment_method, s.customer
	FROM sales s
	LEFT JOIN products p ON p.id = s.product_id`

type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*domain.Sale, error) {
	var s domain.Sale
	err := r.db.GetContext(ctx, &s, r.db.Rebind(selectSale+` WHERE s.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying sale by id: %w", err)
	}

	return &s, nil
}

// FindByIDForUpdate loads the pre-update row inside tx, so the previous
// quantity and payment method are known before anything changes.
func (r *SQLRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Sale, error) {
	query := `
		SELECT id, created_at, product_id, '' AS product_name, quantity, unit_price, total, payment_method, customer
		FROM sales WHERE id = ?` + database.DialectOf(tx).ForUpdate()

	var s domain.Sale
	err := tx.GetContext(ctx, &s, tx.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying sale by id: %w", err)
	}

	return &s, nil
}

func (r *SQLRepository) List(ctx context.Context, limit, offset int) ([]domain.Sale, error) {
	query := selectSale + ` ORDER BY s.created_at DESC, s.id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	sales := []domain.Sale{}
	if err := r.db.SelectContext(ctx, &sales, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	return sales, nil
}

func (r *SQLRepository) Insert(ctx context.Context, tx *sqlx.Tx, s domain.Sale) (int64, error) {
	query := `
		INSERT INTO sales (created_at, product_id, quantity, unit_price, total, payment_method, customer)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := database.InsertReturningID(ctx, tx, query,
		s.CreatedAt, s.ProductID, s.Quantity, s.UnitPrice, s.Total, s.PaymentMethod, s.Customer)
	if err != nil {
		return 0, fmt.Errorf("inserting sale: %w", err)
	}

	return id, nil
}

func (r *SQLRepository) Update(ctx context.Context, tx *sqlx.Tx, s domain.Sale) error {
	query := `
		UPDATE sales SET quantity = ?, unit_price = ?, total = ?, payment_method = ?, customer = ?
		WHERE id = ?`

	result, err := tx.ExecContext(ctx, tx.Rebind(query),
		s.Quantity, s.UnitPrice, s.Total, s.PaymentMethod, s.Customer, s.ID)
	if err != nil {
		return fmt.Errorf("updating sale: %w", err)
	}

	return requireRow(result, s.ID)
}

func (r *SQLRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM sales WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}

	return requireRow(result, id)
}

func requireRow(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound(id)
	}

	return nil
}

func notFound(id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("sale with id %d not found", id))
}
