package user

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logisoltech/hitek-store/internal/domain"
)

const userColumns = `id::text, email, COALESCE(username, ''), password_hash, first_name, last_name, role,
       phone, shipment_address, province, city, address, totalorders, pending, completed, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (email, username, password_hash, first_name, last_name, role)
VALUES (lower($1), NULLIF($2, ''), $3, $4, $5, $6)
RETURNING ` + userColumns
	role := u.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	out, err := scanUser(r.pool.QueryRow(ctx, q, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return scanUser(r.pool.QueryRow(ctx, q, email))
}

// GetByIdentifier matches either the email or the username, used by the CMS
// login form.
func (r *postgresRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = lower($1) OR lower(username) = lower($1)
LIMIT 1
`
	return scanUser(r.pool.QueryRow(ctx, q, strings.TrimSpace(identifier)))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*domain.User, error) {
	const q = `
UPDATE users
SET email      = COALESCE(NULLIF(lower($1), ''), email),
    username   = COALESCE(NULLIF($2, ''), username),
    first_name = COALESCE(NULLIF($3, ''), first_name),
    last_name  = COALESCE(NULLIF($4, ''), last_name)
WHERE id = $5
RETURNING ` + userColumns
	out, err := scanUser(r.pool.QueryRow(ctx, q, in.Email, in.Username, in.FirstName, in.LastName, id))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) UpdateShipping(ctx context.Context, id string, in domain.ShippingInfo) (*domain.User, error) {
	const q = `
UPDATE users
SET phone            = $1,
    shipment_address = $2,
    province         = $3,
    city             = $4,
    address          = $5
WHERE id = $6
RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, in.Phone, in.ShipmentAddress, in.Province, in.City, in.Address, id))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustTotals applies the signed counter deltas in a single statement so
// concurrent order updates for the same user serialize at the row. Counters
// are floored at zero.
func (r *postgresRepo) AdjustTotals(ctx context.Context, id string, delta TotalsDelta) error {
	const q = `
UPDATE users
SET totalorders = GREATEST(totalorders + $1, 0),
    pending     = GREATEST(pending + $2, 0),
    completed   = GREATEST(completed + $3, 0)
WHERE id = $4
`
	cmd, err := r.pool.Exec(ctx, q, delta.TotalOrders, delta.Pending, delta.Completed, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.Shipping.Phone,
		&u.Shipping.ShipmentAddress,
		&u.Shipping.Province,
		&u.Shipping.City,
		&u.Shipping.Address,
		&u.Totals.TotalOrders,
		&u.Totals.Pending,
		&u.Totals.Completed,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
