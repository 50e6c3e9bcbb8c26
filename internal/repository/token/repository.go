// Package token stores the opaque bearer tokens handed to canteen customers at login.
package token

import (
	"context"
	"time"
)

// KindAccess marks a token that authenticates checkout and profile requests.
const KindAccess = "access"

// Token is a bearer credential bound to one customer.
type Token struct {
	Value      string
	CustomerID string
	Kind       string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type Repository interface {
	// Create returns domain.ErrAlreadyExists when the value is taken.
	Create(ctx context.Context, t Token) error
	Get(ctx context.Context, value string) (*Token, error)
	Delete(ctx context.Context, value string) error
	// PruneExpired drops the customer's tokens that expired before now.
	PruneExpired(ctx context.Context, customerID string, now time.Time) (int64, error)
}
