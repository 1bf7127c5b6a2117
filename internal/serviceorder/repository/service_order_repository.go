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

const serviceOrderColumns = `id, created_at, description, device, type, parts_cost, labor_cost, device_price, status, payment_method, customer`

type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*domain.ServiceOrder, error) {
	return findByID(ctx, r.db, id, "")
}

func (r *SQLRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.ServiceOrder, error) {
	return findByID(ctx, tx, id, database.DialectOf(tx).ForUpdate())
}

func findByID(ctx context.Context, q sqlx.ExtContext, id int64, lock string) (*domain.ServiceOrder, error) {
	query := `SELECT ` + serviceOrderColumns + ` FROM service_orders WHERE id = ?` + lock

	var o domain.ServiceOrder
	err := sqlx.GetContext(ctx, q, &o, q.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying service order by id: %w", err)
	}

	return &o, nil
}

func (r *SQLRepository) List(ctx context.Context, limit, offset int) ([]domain.ServiceOrder, error) {
	query := `SELECT ` + serviceOrderColumns + ` FROM service_orders ORDER BY created_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	orders := []domain.ServiceOrder{}
	if err := r.db.SelectContext(ctx, &orders, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing service orders: %w", err)
	}

	return orders, nil
}

func (r *SQLRepository) Insert(ctx context.Context, tx *sqlx.Tx, o domain.ServiceOrder) (int64, error) {
	query := `
		INSERT INTO service_orders
			(created_at, description, device, type, parts_cost, labor_cost, device_price, status, payment_method, customer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := database.InsertReturningID(ctx, tx, query,
		o.CreatedAt, o.Description, o.Device, o.Type, o.PartsCost, o.LaborCost, o.DevicePrice,
		o.Status, o.PaymentMethod, o.Customer)
	if err != nil {
		return 0, fmt.Errorf("inserting service order: %w", err)
	}

	return id, nil
}

func (r *SQLRepository) Update(ctx context.Context, tx *sqlx.Tx, o domain.ServiceOrder) error {
	query := `
		UPDATE service_orders SET
			description = ?, device = ?, type = ?, parts_cost = ?, labor_cost = ?, device_price = ?,
			status = ?, payment_method = ?, customer = ?
		WHERE id = ?`

	result, err := tx.ExecContext(ctx, tx.Rebind(query),
		o.Description, o.Device, o.Type, o.PartsCost, o.LaborCost, o.DevicePrice,
		o.Status, o.PaymentMethod, o.Customer, o.ID)
	if err != nil {
		return fmt.Errorf("updating service order: %w", err)
	}

	return requireRow(result, o.ID)
}

func (r *SQLRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM service_orders WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting service order: %w", err)
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
	return apperrors.NewNotFoundError(fmt.Sprintf("service order with id %d not found", id))
}
