package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logisoltech/hitek-store/internal/domain"
)

const orderColumns = `id::text, user_id::text, status, subtotal_cents, tax_cents, shipping_cents, total_cents,
       shipping_address, billing_address, payment_method, order_notes, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (user_id, status, subtotal_cents, tax_cents, shipping_cents, total_cents,
                    shipping_address, billing_address, payment_method, order_notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + orderColumns
	ord, err := scanOrder(tx.QueryRow(ctx, q,
		in.UserID,
		in.Status,
		in.SubtotalCents,
		in.TaxCents,
		in.ShippingCents,
		in.TotalCents,
		in.ShippingAddress,
		in.BillingAddress,
		in.PaymentMethod,
		in.OrderNotes,
	))
	if err != nil {
		return nil, err
	}

	for _, item := range in.Items {
		var line domain.OrderItem
		err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, name, price_cents, quantity)
VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5)
RETURNING id::text, order_id::text, COALESCE(product_id::text, ''), name, price_cents, quantity
`, ord.ID, item.ProductID, item.Name, item.PriceCents, item.Quantity).Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.Name,
			&line.PriceCents,
			&line.Quantity,
		)
		if err != nil {
			return nil, err
		}
		ord.Items = append(ord.Items, line)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ord, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	ord, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}
	items, err := r.fetchItems(ctx, ord.ID)
	if err != nil {
		return nil, err
	}
	ord.Items = items
	return ord, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.queryOrders(ctx, q)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, q, userID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.OrderStatus, *domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", nil, err
	}
	defer tx.Rollback(ctx)

	var old domain.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&old)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, domain.ErrNotFound
		}
		return "", nil, err
	}

	const q = `UPDATE orders SET status = $1 WHERE id = $2 RETURNING ` + orderColumns
	ord, err := scanOrder(tx.QueryRow(ctx, q, status, id))
	if err != nil {
		return "", nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", nil, err
	}

	items, err := r.fetchItems(ctx, ord.ID)
	if err != nil {
		return "", nil, err
	}
	ord.Items = items
	return old, ord, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *ord)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, COALESCE(product_id::text, ''), name, price_cents, quantity
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.PriceCents,
			&item.Quantity,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var ord domain.Order
	if err := row.Scan(
		&ord.ID,
		&ord.UserID,
		&ord.Status,
		&ord.SubtotalCents,
		&ord.TaxCents,
		&ord.ShippingCents,
		&ord.TotalCents,
		&ord.ShippingAddress,
		&ord.BillingAddress,
		&ord.PaymentMethod,
		&ord.OrderNotes,
		&ord.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ord, nil
}
