package product

import (
	"context"

	"canteen-storefront/internal/domain"
)

// Repository stores the menu. Position keeps the menu order stable across imports.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product, position int) (*domain.Product, error)
}
