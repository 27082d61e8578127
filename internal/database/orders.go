package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapa-pos/api/internal/pos"
)

// OrderRepo persists orders. It satisfies store.Persister, so the in-memory
// order store can write through to Postgres, and feeds the store back on
// startup via LoadOrders.
type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func (r *OrderRepo) SaveOrder(ctx context.Context, o pos.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO orders (id, items, status, payment_method, total, created_at, sent_to_kitchen_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, items, string(o.Status), string(o.PaymentMethod),
		decimalToNumeric(o.Total), o.CreatedAt, o.SentToKitchenAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) UpdateOrder(ctx context.Context, o pos.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`UPDATE orders
		 SET items = $2, status = $3, payment_method = $4, total = $5, updated_at = $6
		 WHERE id = $1`,
		o.ID, items, string(o.Status), string(o.PaymentMethod),
		decimalToNumeric(o.Total), o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *OrderRepo) DeleteAllOrders(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM orders`); err != nil {
		return fmt.Errorf("delete orders: %w", err)
	}
	return nil
}

// LoadOrders reads every persisted order, oldest first. Payment methods are
// normalized on the way in so rows written before the method rename still
// load cleanly.
func (r *OrderRepo) LoadOrders(ctx context.Context) ([]pos.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, items, status, payment_method, total, created_at, sent_to_kitchen_at, updated_at
		 FROM orders
		 ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []pos.Order
	for rows.Next() {
		var (
			o       pos.Order
			items   []byte
			status  string
			payment string
			total   pgtype.Numeric
		)
		if err := rows.Scan(&o.ID, &items, &status, &payment, &total, &o.CreatedAt, &o.SentToKitchenAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		o.Status = pos.Status(status)
		o.PaymentMethod = pos.NormalizePayment(payment)
		o.Total = numericToDecimal(total)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
