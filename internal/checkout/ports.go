package checkout

import (
	"context"

	"canteen-storefront/internal/domain"
)

// IdentityProvider exposes the authenticated user and profile for the current request, if any.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (domain.User, bool)
	CurrentProfile(ctx context.Context) (domain.Profile, bool)
}

// OrderCreator persists an order and returns its opaque identifier.
type OrderCreator interface {
	CreateOrder(ctx context.Context, userID string, items []domain.CartItem, total int64) (string, error)
}

// Notifier delivers user-facing feedback. Results are not observed.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// Navigator moves the user to a named route.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// OrderCreatorFunc adapts a function to OrderCreator.
type OrderCreatorFunc func(ctx context.Context, userID string, items []domain.CartItem, total int64) (string, error)

func (f OrderCreatorFunc) CreateOrder(ctx context.Context, userID string, items []domain.CartItem, total int64) (string, error) {
	return f(ctx, userID, items, total)
}
