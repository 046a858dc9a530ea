package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logisoltech/hitek-store/internal/domain"
)

const productColumns = `id::text, category, name, brand, description, price_cents, currency, image, stock, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, category)
	if err != nil {
		r.logger.Printf("product repo: list category=%s error=%v", category, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows category=%s error=%v", category, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, category, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category = $1 AND id = $2`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, category, id))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Printf("product repo: get category=%s id=%s error=%v", category, id, err)
		}
		return nil, err
	}
	return p, nil
}

// Upsert keyed on (category, name) keeps the seed tool idempotent.
func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (category, name, brand, description, price_cents, currency, image, stock)
VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, ''), 'PKR'), $7, $8)
ON CONFLICT (category, name) DO UPDATE SET
    brand = EXCLUDED.brand,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    image = EXCLUDED.image,
    stock = EXCLUDED.stock
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.Category,
		product.Name,
		product.Brand,
		product.Description,
		product.PriceCents,
		product.Currency,
		product.Image,
		product.Stock,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert category=%s name=%s error=%v", product.Category, product.Name, err)
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Category,
		&p.Name,
		&p.Brand,
		&p.Description,
		&p.PriceCents,
		&p.Currency,
		&p.Image,
		&p.Stock,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
