package seed

import (
	"context"
	"fmt"

	"canteen-storefront/internal/catalog"
	"canteen-storefront/internal/domain"
	"github.com/rs/zerolog"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product, position int) (*domain.Product, error)
}

// Apply writes the built-in menu to the products table. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, products ProductWriter, logger zerolog.Logger) (int, error) {
	menu := catalog.DefaultProducts()
	for pos, p := range menu {
		if _, err := products.Upsert(ctx, p, pos); err != nil {
			return pos, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	logger.Info().Int("products", len(menu)).Msg("menu seeded")
	return len(menu), nil
}
