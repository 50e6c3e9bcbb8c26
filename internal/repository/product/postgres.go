package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"canteen-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, category, COALESCE(image, ''), COALESCE(description, ''), varieties, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger.With().Str("repo", "product").Logger()}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY position, id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Msg("list products")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("list products rows")
		return nil, err
	}
	r.logger.Debug().Int("count", len(result)).Msg("listed products")
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("get product")
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product, position int) (*domain.Product, error) {
	if product.ID == "" {
		return nil, fmt.Errorf("product repo: id is required")
	}
	varieties, err := json.Marshal(nonNilVarieties(product.Varieties))
	if err != nil {
		return nil, fmt.Errorf("product repo: encode varieties for id=%s: %w", product.ID, err)
	}

	const q = `
INSERT INTO products (id, name, category, image, description, varieties, position)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6::jsonb, $7)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    image = EXCLUDED.image,
    description = EXCLUDED.description,
    varieties = EXCLUDED.varieties,
    position = EXCLUDED.position
RETURNING created_at
`
	res := product
	res.Varieties = nonNilVarieties(product.Varieties)
	err = r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.Category,
		product.Image,
		product.Description,
		string(varieties),
		position,
	).Scan(&res.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("upsert product")
		return nil, err
	}
	r.logger.Debug().Str("product_id", res.ID).Int("position", position).Msg("upserted product")
	return &res, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p   domain.Product
		raw []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Image, &p.Description, &raw, &p.CreatedAt); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Varieties); err != nil {
			return nil, fmt.Errorf("decode varieties for id=%s: %w", p.ID, err)
		}
	}
	return &p, nil
}

func nonNilVarieties(v []domain.Variety) []domain.Variety {
	if v == nil {
		return []domain.Variety{}
	}
	return v
}
