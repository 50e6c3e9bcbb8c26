package token

import (
	"context"
	"os"
	"testing"
	"time"

	"canteen-storefront/internal/domain"
	"canteen-storefront/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Repository = (*Postgres)(nil)

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tok := Token{ExpiresAt: now}

	assert.False(t, tok.Expired(now), "a token is still valid at its expiry instant")
	assert.True(t, tok.Expired(now.Add(time.Second)))
}

func TestPostgres_CreateRequiresValueAndCustomer(t *testing.T) {
	repo := NewPostgres(nil, zerolog.Nop())

	require.Error(t, repo.Create(context.Background(), Token{CustomerID: "c1"}))
	require.Error(t, repo.Create(context.Background(), Token{Value: "abc"}))
}

func TestPostgres_Lifecycle(t *testing.T) {
	ctx := context.Background()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, migrate.Apply(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE order_items, orders, tokens, customers RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	var customerID string
	require.NoError(t, pool.QueryRow(ctx, `
INSERT INTO customers (username, password_hash, name, roll_number, branch, year)
VALUES ('meena', 'x', 'Meena', '123456789012', 'Mechanical', 'First')
RETURNING id::text
`).Scan(&customerID))

	repo := NewPostgres(pool, zerolog.Nop())
	now := time.Now()
	require.NoError(t, repo.Create(ctx, Token{Value: "live", CustomerID: customerID, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, Token{Value: "stale", CustomerID: customerID, Kind: KindAccess, ExpiresAt: now.Add(-time.Hour)}))
	assert.ErrorIs(t, repo.Create(ctx, Token{Value: "live", CustomerID: customerID}), domain.ErrAlreadyExists)

	got, err := repo.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, customerID, got.CustomerID)
	assert.Equal(t, KindAccess, got.Kind, "kind defaults to access")

	pruned, err := repo.PruneExpired(ctx, customerID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)
	_, err = repo.Get(ctx, "stale")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "live"))
	assert.ErrorIs(t, repo.Delete(ctx, "live"), domain.ErrNotFound)
}
