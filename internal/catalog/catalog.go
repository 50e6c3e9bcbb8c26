package catalog

import (
	"context"
	"fmt"
	"strings"

	"canteen-storefront/internal/domain"
	"github.com/rs/zerolog"
)

// AllCategories selects every product in List.
const AllCategories = "All"

// Catalog is an immutable, ordered menu.
type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	categories []string
}

// Source supplies a stored menu, e.g. the products table.
type Source interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// New builds a catalog from products, keeping their order. Duplicate ids are rejected.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products:   make([]domain.Product, 0, len(products)),
		byID:       make(map[string]int, len(products)),
		categories: []string{AllCategories},
	}
	seen := map[string]bool{}
	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("catalog: product %q has no id", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		if len(p.Varieties) == 0 {
			return nil, fmt.Errorf("catalog: product %q has no varieties", p.ID)
		}
		for _, v := range p.Varieties {
			if v.Price < 0 {
				return nil, fmt.Errorf("catalog: product %q variety %q has a negative price", p.ID, v.Name)
			}
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, cloneProduct(p))
		if !seen[p.Category] {
			seen[p.Category] = true
			c.categories = append(c.categories, p.Category)
		}
	}
	return c, nil
}

// Load reads the menu from src, falling back to the built-in menu when src is empty.
func Load(ctx context.Context, src Source, logger zerolog.Logger) (*Catalog, error) {
	products, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load products: %w", err)
	}
	if len(products) == 0 {
		logger.Warn().Msg("products table is empty, serving built-in menu")
		return Default(), nil
	}
	c, err := New(products)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("products", c.Len()).Int("categories", len(c.categories)-1).Msg("catalog loaded")
	return c, nil
}

// List returns products in the category. "" and "All" return the whole menu.
func (c *Catalog) List(category string) []domain.Product {
	category = strings.TrimSpace(category)
	all := category == "" || strings.EqualFold(category, AllCategories)
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if all || strings.EqualFold(p.Category, category) {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

// Categories returns "All" followed by each category in menu order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

func (c *Catalog) Get(id string) (domain.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return cloneProduct(c.products[idx]), true
}

// Price returns the unit price of a product variety.
func (c *Catalog) Price(productID, variety string) (int64, bool) {
	idx, ok := c.byID[productID]
	if !ok {
		return 0, false
	}
	v, ok := c.products[idx].Variety(variety)
	if !ok {
		return 0, false
	}
	return v.Price, true
}

// Line resolves a product variety into a cart line with the given quantity.
// The returned VarietyName is the matched variety's name.
func (c *Catalog) Line(productID, variety string, quantity int) (domain.CartItem, bool) {
	idx, ok := c.byID[productID]
	if !ok {
		return domain.CartItem{}, false
	}
	p := c.products[idx]
	v, ok := p.Variety(variety)
	if !ok {
		return domain.CartItem{}, false
	}
	return domain.CartItem{
		ProductID:   p.ID,
		VarietyName: v.Name,
		ProductName: p.Name,
		Image:       p.Image,
		Price:       v.Price,
		Quantity:    quantity,
	}, true
}

func (c *Catalog) Products() []domain.Product {
	return c.List(AllCategories)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func cloneProduct(p domain.Product) domain.Product {
	p.Varieties = append([]domain.Variety(nil), p.Varieties...)
	return p
}
