package cart

import (
	"testing"

	"canteen-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samosa(variety string, price int64) domain.CartItem {
	return domain.CartItem{
		ProductID:   "samosa",
		VarietyName: variety,
		ProductName: "Samosa",
		Image:       "https://example.com/samosa.jpg",
		Price:       price,
	}
}

func TestStoreAddMergesSameLine(t *testing.T) {
	s := NewStore()
	require.True(t, s.Add(samosa("Aloo", 15), 2))
	require.True(t, s.Add(samosa("Aloo", 15), 3))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, int64(75), s.Total())
}

func TestStoreAddKeepsVarietiesApart(t *testing.T) {
	s := NewStore()
	s.Add(samosa("Aloo", 15), 1)
	s.Add(samosa("Paneer", 25), 1)
	s.Add(samosa("", 10), 1)

	assert.Equal(t, 3, s.Count())
	items := s.Items()
	assert.Equal(t, "Aloo", items[0].VarietyName)
	assert.Equal(t, "Paneer", items[1].VarietyName)
	assert.Equal(t, "", items[2].VarietyName)
}

func TestStoreAddKeepsOriginalPrice(t *testing.T) {
	s := NewStore()
	s.Add(samosa("Aloo", 15), 1)
	s.Add(samosa("Aloo", 99), 1)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(15), items[0].Price)
	assert.Equal(t, int64(30), s.Total())
}

func TestStoreAddRejectsInvalidInput(t *testing.T) {
	s := NewStore()
	s.Add(samosa("Aloo", 15), 1)

	assert.False(t, s.Add(samosa("Aloo", 15), 0))
	assert.False(t, s.Add(samosa("Aloo", 15), -4))
	assert.False(t, s.Add(samosa("Aloo", -1), 1))
	assert.False(t, s.Add(domain.CartItem{ProductID: "  ", Price: 10}, 1))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStoreAddInputFallsBackToOne(t *testing.T) {
	cases := map[string]int{
		"":     1,
		"abc":  1,
		"0":    1,
		"-3":   1,
		"4":    4,
		" 2 ":  2,
		"3.75": 3,
	}
	for raw, want := range cases {
		s := NewStore()
		require.True(t, s.AddInput(samosa("Aloo", 15), raw), "raw=%q", raw)
		assert.Equal(t, want, s.Items()[0].Quantity, "raw=%q", raw)
	}
}

func TestStoreUpdateQuantity(t *testing.T) {
	s := NewStore()
	s.Add(samosa("Aloo", 15), 1)
	s.UpdateQuantity("samosa", "Aloo", 6)

	assert.Equal(t, 6, s.Items()[0].Quantity)
	assert.Equal(t, int64(90), s.Total())
}

func TestStoreUpdateQuantityZeroRemoves(t *testing.T) {
	s := NewStore()
	s.Add(samosa("Aloo", 15), 2)
	s.Add(samosa("Paneer", 25), 1)

	s.UpdateQuantity("samosa", "Aloo", 0)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, int64(25), s.Total())

	s.UpdateQuantity("samosa", "Paneer", -2)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, int64(0), s.Total())
}

func TestStoreUpdateQuantityMissingLineIsNoop(t *testing.T) {
	s := NewStore()
	s.Add(samosa("Aloo", 15), 2)
	s.UpdateQuantity("samosa", "Cheese", 9)
	s.UpdateQuantity("tea", "Aloo", 9)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStoreUpdateQuantityInputIgnoresGarbage(t *testing.T) {
	s := NewStore()
	s.Add(samosa("Aloo", 15), 2)

	assert.False(t, s.UpdateQuantityInput("samosa", "Aloo", "lots"))
	assert.False(t, s.UpdateQuantityInput("samosa", "Aloo", ""))
	assert.Equal(t, 2, s.Items()[0].Quantity)

	assert.True(t, s.UpdateQuantityInput("samosa", "Aloo", "7"))
	assert.Equal(t, 7, s.Items()[0].Quantity)

	assert.True(t, s.UpdateQuantityInput("samosa", "Aloo", "0"))
	assert.True(t, s.IsEmpty())
}

func TestStoreRemoveItem(t *testing.T) {
	s := NewStore()
	s.Add(samosa("Aloo", 15), 1)
	s.Add(samosa("Paneer", 25), 1)
	s.Add(domain.CartItem{ProductID: "tea", Price: 10}, 1)

	s.RemoveItem("samosa", "Paneer")
	s.RemoveItem("samosa", "Missing")

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Aloo", items[0].VarietyName)
	assert.Equal(t, "tea", items[1].ProductID)
}

func TestStoreTotalIsExact(t *testing.T) {
	s := NewStore()
	s.Add(domain.CartItem{ProductID: "a", Price: 50}, 2)
	s.Add(domain.CartItem{ProductID: "b", Price: 30}, 1)

	assert.Equal(t, int64(130), s.Total())
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 3, s.Units())
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Add(domain.CartItem{ProductID: "a", Price: 50}, 2)
	s.Add(domain.CartItem{ProductID: "b", Price: 30}, 1)

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0, s.Units())
	assert.Equal(t, int64(0), s.Total())
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	s := NewStore()
	s.Add(domain.CartItem{ProductID: "a", Price: 50}, 2)
	snap := s.Snapshot()

	s.Add(domain.CartItem{ProductID: "a", Price: 50}, 1)
	s.Add(domain.CartItem{ProductID: "b", Price: 30}, 1)
	snap.Items[0].ProductName = "mutated"

	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, int64(100), snap.Total)
	assert.Equal(t, "", s.Items()[0].ProductName)
}

func TestStoreLineKeysStayUnique(t *testing.T) {
	s := NewStore()
	ops := []func(){
		func() { s.Add(samosa("Aloo", 15), 1) },
		func() { s.Add(samosa("Paneer", 25), 2) },
		func() { s.Add(samosa("Aloo", 15), 3) },
		func() { s.UpdateQuantity("samosa", "Paneer", 0) },
		func() { s.Add(samosa("Paneer", 25), 1) },
		func() { s.RemoveItem("samosa", "Aloo") },
		func() { s.Add(samosa("Aloo", 15), 1) },
		func() { s.UpdateQuantity("samosa", "Aloo", 4) },
	}
	for i, op := range ops {
		op()
		seen := map[domain.LineKey]bool{}
		for _, it := range s.Items() {
			require.False(t, seen[it.Key()], "duplicate line after op %d", i)
			require.Positive(t, it.Quantity, "non-positive quantity after op %d", i)
			seen[it.Key()] = true
		}
	}
	assert.Equal(t, int64(25+60), s.Total())
}
