package order

import (
	"context"
	"errors"
	"fmt"

	"canteen-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const defaultListLimit = 20

// Postgres stores orders and their lines. It also satisfies checkout.OrderCreator.
type Postgres struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logger.With().Str("repo", "order").Logger()}
}

// CreateOrder persists the submitted lines for userID and returns the new order id.
func (r *Postgres) CreateOrder(ctx context.Context, userID string, items []domain.CartItem, total int64) (string, error) {
	placed, err := r.Create(ctx, domain.Order{Items: items, Total: total, SubmittedBy: userID})
	if err != nil {
		return "", err
	}
	return placed.ID, nil
}

func (r *Postgres) Create(ctx context.Context, order domain.Order) (*domain.PlacedOrder, error) {
	if order.SubmittedBy == "" {
		return nil, fmt.Errorf("order repo: customer id is required")
	}
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("order repo: order has no items")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	placed := domain.PlacedOrder{
		CustomerID: order.SubmittedBy,
		Total:      order.Total,
		Status:     StatusPlaced,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO orders (customer_id, total_rupees, status)
VALUES ($1, $2, $3)
RETURNING id::text, created_at
`, order.SubmittedBy, order.Total, StatusPlaced).Scan(&placed.ID, &placed.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", order.SubmittedBy).Msg("insert order")
		return nil, err
	}

	for i, item := range order.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, position, product_id, variety_name, product_name, image, price_rupees, quantity)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
`, placed.ID, i, item.ProductID, item.VarietyName, item.ProductName, item.Image, item.Price, item.Quantity); err != nil {
			r.logger.Error().Err(err).Str("order_id", placed.ID).Str("product_id", item.ProductID).Msg("insert order item")
			return nil, err
		}
		placed.Items = append(placed.Items, lineFromItem(item))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info().
		Str("order_id", placed.ID).
		Str("customer_id", placed.CustomerID).
		Int64("total", placed.Total).
		Int("lines", len(placed.Items)).
		Msg("order stored")
	return &placed, nil
}

// ListByCustomer returns the customer's most recent orders, newest first.
func (r *Postgres) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.PlacedOrder, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.pool.Query(ctx, `
SELECT id::text, customer_id::text, total_rupees, status, created_at
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
LIMIT $2
`, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders []domain.PlacedOrder
		index  = make(map[string]int)
		ids    []string
	)
	for rows.Next() {
		var o domain.PlacedOrder
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.PlacedOrder{}, nil
	}

	lines, err := r.pool.Query(ctx, `
SELECT order_id::text, product_id, variety_name, product_name, price_rupees, quantity
FROM order_items
WHERE order_id = ANY($1::text[]::uuid[])
ORDER BY order_id, position
`, ids)
	if err != nil {
		return nil, err
	}
	defer lines.Close()

	for lines.Next() {
		var (
			orderID string
			line    domain.OrderLine
		)
		if err := lines.Scan(&orderID, &line.ProductID, &line.VarietyName, &line.ProductName, &line.Price, &line.Quantity); err != nil {
			return nil, err
		}
		idx, ok := index[orderID]
		if !ok {
			return nil, errors.New("order repo: line for unknown order " + orderID)
		}
		orders[idx].Items = append(orders[idx].Items, line)
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func lineFromItem(item domain.CartItem) domain.OrderLine {
	return domain.OrderLine{
		ProductID:   item.ProductID,
		VarietyName: item.VarietyName,
		ProductName: item.ProductName,
		Price:       item.Price,
		Quantity:    item.Quantity,
	}
}
