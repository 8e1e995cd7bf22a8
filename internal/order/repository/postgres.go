package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, items, total, status, order_type, customer_name, customer_phone,
	table_number, created_at, updated_at, completed_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (
            id, items, total, status, order_type, customer_name, customer_phone,
            table_number, created_at, updated_at, completed_at
        )
        VALUES (
            :id, :items, :total, :status, :order_type, :customer_name, :customer_phone,
            :table_number, :created_at, :updated_at, :completed_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindActive(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
        WHERE status NOT IN ('Completed', 'Cancelled')
        ORDER BY created_at, id`

	var orders []model.Order
	if err := r.DB.SelectContext(ctx, &orders, query); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus writes the new status and its history row in one transaction.
// It returns order.ErrStaleOrder when the stored status is no longer from.
func (r *PGRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, completedAt *time.Time) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
        UPDATE orders SET status = $1, completed_at = $2, updated_at = $3
        WHERE id = $4 AND status = $5`,
		string(to), completedAt, now, id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return order.ErrStaleOrder
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO order_status_events (id, order_id, from_status, to_status, changed_at)
        VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), id, string(from), string(to), now)
	if err != nil {
		return fmt.Errorf("failed to log status event: %w", err)
	}

	return tx.Commit()
}

// UpdateItems locks the order row, lets fn edit the order and stores the
// resulting items and total.
func (r *PGRepository) UpdateItems(ctx context.Context, id string, fn func(o *model.Order) error) (*model.Order, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &o, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	if err := fn(&o); err != nil {
		return nil, err
	}

	_, err = tx.NamedExecContext(ctx, `
        UPDATE orders SET items = :items, total = :total, updated_at = :updated_at
        WHERE id = :id`, &o)
	if err != nil {
		return nil, fmt.Errorf("failed to update order items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &o, nil
}
