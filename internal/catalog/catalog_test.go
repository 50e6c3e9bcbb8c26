package catalog

import (
	"context"
	"errors"
	"testing"

	"canteen-storefront/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu() []domain.Product {
	return []domain.Product{
		{ID: "tea", Name: "Tea", Category: "Beverages", Varieties: []domain.Variety{{Name: "Masala", Price: 50}, {Name: "Ginger", Price: 45}}},
		{ID: "samosa", Name: "Samosa", Category: "Snacks", Image: "/s.jpg", Varieties: []domain.Variety{{Name: "", Price: 30}}},
		{ID: "coffee", Name: "Coffee", Category: "Beverages", Varieties: []domain.Variety{{Name: "Hot", Price: 20}}},
	}
}

func TestCatalog_ListAndCategories(t *testing.T) {
	c, err := New(testMenu())
	require.NoError(t, err)

	assert.Equal(t, []string{"All", "Beverages", "Snacks"}, c.Categories())
	assert.Len(t, c.List(""), 3)
	assert.Len(t, c.List("All"), 3)
	assert.Len(t, c.List("all"), 3)

	bev := c.List("Beverages")
	require.Len(t, bev, 2)
	assert.Equal(t, "tea", bev[0].ID)
	assert.Equal(t, "coffee", bev[1].ID)

	assert.Empty(t, c.List("Desserts"))
}

func TestCatalog_GetAndPrice(t *testing.T) {
	c, err := New(testMenu())
	require.NoError(t, err)

	p, ok := c.Get("tea")
	require.True(t, ok)
	assert.Equal(t, "Tea", p.Name)

	price, ok := c.Price("tea", "Ginger")
	require.True(t, ok)
	assert.Equal(t, int64(45), price)

	_, ok = c.Price("tea", "Lemon")
	assert.False(t, ok)
	_, ok = c.Price("missing", "")
	assert.False(t, ok)

	price, ok = c.Price("samosa", "")
	require.True(t, ok)
	assert.Equal(t, int64(30), price)
}

func TestCatalog_Line(t *testing.T) {
	c, err := New(testMenu())
	require.NoError(t, err)

	line, ok := c.Line("samosa", "", 3)
	require.True(t, ok)
	assert.Equal(t, domain.CartItem{
		ProductID:   "samosa",
		ProductName: "Samosa",
		Image:       "/s.jpg",
		Price:       30,
		Quantity:    3,
	}, line)

	_, ok = c.Line("tea", "", 1)
	assert.False(t, ok, "multi-variety products need an explicit variety")
}

func TestCatalog_IsolatedFromCallers(t *testing.T) {
	c, err := New(testMenu())
	require.NoError(t, err)

	p, _ := c.Get("tea")
	p.Varieties[0].Price = 1

	price, _ := c.Price("tea", "Masala")
	assert.Equal(t, int64(50), price)
}

func TestNew_RejectsBadMenus(t *testing.T) {
	dup := append(testMenu(), domain.Product{ID: "tea", Varieties: []domain.Variety{{Price: 1}}})
	_, err := New(dup)
	assert.Error(t, err)

	_, err = New([]domain.Product{{ID: "x"}})
	assert.Error(t, err)

	_, err = New([]domain.Product{{ID: "x", Varieties: []domain.Variety{{Price: -1}}}})
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Greater(t, c.Len(), 0)
	assert.Equal(t, AllCategories, c.Categories()[0])
}

type stubSource struct {
	products []domain.Product
	err      error
}

func (s stubSource) List(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	c, err := Load(ctx, stubSource{products: testMenu()}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	c, err = Load(ctx, stubSource{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())

	_, err = Load(ctx, stubSource{err: errors.New("db down")}, zerolog.Nop())
	assert.Error(t, err)
}
