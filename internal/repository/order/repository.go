package order

import (
	"context"

	"canteen-storefront/internal/domain"
)

const StatusPlaced = "placed"

type Repository interface {
	Create(ctx context.Context, order domain.Order) (*domain.PlacedOrder, error)
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.PlacedOrder, error)
}
