package customer

import (
	"context"
	"errors"

	"canteen-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const customerColumns = `id::text, username, password_hash, name, COALESCE(roll_number, ''), COALESCE(phone, ''),
       branch, year, is_teacher, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger.With().Str("repo", "customer").Logger()}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (username, password_hash, name, roll_number, phone, branch, year, is_teacher)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)
RETURNING ` + customerColumns
	return r.scanCustomer(r.pool.QueryRow(
		ctx,
		q,
		c.Username,
		c.PasswordHash,
		c.Name,
		c.RollNumber,
		c.Phone,
		c.Branch,
		c.Year,
		c.IsTeacher,
	))
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE lower(username) = lower($1)
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, username))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Username,
		&c.PasswordHash,
		&c.Name,
		&c.RollNumber,
		&c.Phone,
		&c.Branch,
		&c.Year,
		&c.IsTeacher,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error().Err(err).Msg("scan customer")
		return nil, err
	}
	return &c, nil
}
