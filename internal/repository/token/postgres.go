package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"canteen-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const tokenColumns = `token, customer_id::text, kind, expires_at, created_at`

// Postgres keeps tokens in the tokens table. Rows cascade away with their customer.
type Postgres struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logger.With().Str("repo", "token").Logger()}
}

func (r *Postgres) Create(ctx context.Context, t Token) error {
	if t.Value == "" || t.CustomerID == "" {
		return fmt.Errorf("token repo: value and customer id are required")
	}
	if t.Kind == "" {
		t.Kind = KindAccess
	}
	const q = `INSERT INTO tokens (token, customer_id, kind, expires_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.pool.Exec(ctx, q, t.Value, t.CustomerID, t.Kind, t.ExpiresAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("token repo: insert: %w", err)
	}
	return nil
}

func (r *Postgres) Get(ctx context.Context, value string) (*Token, error) {
	q := `SELECT ` + tokenColumns + ` FROM tokens WHERE token = $1`
	return scanToken(r.pool.QueryRow(ctx, q, value))
}

func (r *Postgres) Delete(ctx context.Context, value string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE token = $1`, value)
	if err != nil {
		return fmt.Errorf("token repo: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Postgres) PruneExpired(ctx context.Context, customerID string, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE customer_id = $1 AND expires_at < $2`, customerID, now)
	if err != nil {
		return 0, fmt.Errorf("token repo: prune: %w", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		r.logger.Debug().Str("customer_id", customerID).Int64("pruned", n).Msg("expired tokens removed")
	}
	return tag.RowsAffected(), nil
}

func scanToken(row pgx.Row) (*Token, error) {
	var t Token
	if err := row.Scan(&t.Value, &t.CustomerID, &t.Kind, &t.ExpiresAt, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("token repo: scan: %w", err)
	}
	return &t, nil
}
