package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logisoltech/hitek-store/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Category    string
	Name        string
	Brand       string
	Description string
	PriceCents  int64
	Image       string
	Stock       int
}

// Apply inserts demo catalog data and an admin account for manual testing.
// It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Category:    domain.CategoryPrinter,
			Name:        "HP LaserJet Pro M404dn",
			Brand:       "HP",
			Description: "Monochrome laser printer with duplex printing",
			PriceCents:  8500000,
			Image:       "/images/printers/laserjet-m404dn.jpg",
			Stock:       12,
		},
		{
			Category:    domain.CategoryPrinter,
			Name:        "Epson EcoTank L3250",
			Brand:       "Epson",
			Description: "Wireless all-in-one ink tank printer",
			PriceCents:  6200000,
			Image:       "/images/printers/ecotank-l3250.jpg",
			Stock:       20,
		},
		{
			Category:    domain.CategoryLaptop,
			Name:        "Dell Latitude 5440",
			Brand:       "Dell",
			Description: "14-inch business laptop, Core i5, 16GB RAM",
			PriceCents:  28500000,
			Image:       "/images/laptops/latitude-5440.jpg",
			Stock:       8,
		},
		{
			Category:    domain.CategoryLaptop,
			Name:        "Lenovo ThinkPad E14",
			Brand:       "Lenovo",
			Description: "14-inch laptop, Ryzen 5, 512GB SSD",
			PriceCents:  24000000,
			Image:       "/images/laptops/thinkpad-e14.jpg",
			Stock:       10,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := ensureAdmin(ctx, pool, "admin@hitek.pk", "admin", "ChangeMe1"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (category, name, brand, description, price_cents, currency, image, stock)
VALUES ($1, $2, $3, $4, $5, 'PKR', $6, $7)
ON CONFLICT (category, name) DO UPDATE SET
    brand = EXCLUDED.brand,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    image = EXCLUDED.image,
    stock = EXCLUDED.stock
`
	_, err := pool.Exec(ctx, q, p.Category, p.Name, p.Brand, p.Description, p.PriceCents, p.Image, p.Stock)
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, username, password_hash, first_name, last_name, role)
VALUES ($1, $2, $3, 'Store', 'Admin', 'admin')
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, username, string(hash))
	return err
}
