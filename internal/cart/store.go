package cart

import (
	"strings"
	"sync"

	"canteen-storefront/internal/domain"
)

// Store holds the line items of one browsing session.
// Lines keep insertion order; at most one line exists per (ProductID, VarietyName).
type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
}

func NewStore() *Store {
	return &Store{}
}

// Add merges quantity into the matching line or appends a new line.
// It reports false and leaves the cart unchanged when quantity is not positive,
// the price is negative or the product id is blank.
func (s *Store) Add(item domain.CartItem, quantity int) bool {
	if quantity <= 0 || item.Price < 0 || strings.TrimSpace(item.ProductID) == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(item.Key()); idx >= 0 {
		s.items[idx].Quantity += quantity
		return true
	}
	item.Quantity = quantity
	s.items = append(s.items, item)
	return true
}

// AddInput adds item using a quantity typed by the user.
// Input that is not a positive integer falls back to DefaultQuantity.
func (s *Store) AddInput(item domain.CartItem, raw string) bool {
	quantity, ok := ParseQuantity(raw)
	if !ok {
		quantity = DefaultQuantity
	}
	return s.Add(item, quantity)
}

// UpdateQuantity sets the quantity of the matching line.
// A quantity of zero or less removes the line. Missing lines are ignored.
func (s *Store) UpdateQuantity(productID, varietyName string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(domain.LineKey{ProductID: productID, VarietyName: varietyName})
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		s.removeAt(idx)
		return
	}
	s.items[idx].Quantity = quantity
}

// UpdateQuantityInput applies a quantity typed by the user.
// Non-numeric input is ignored.
func (s *Store) UpdateQuantityInput(productID, varietyName, raw string) bool {
	quantity, ok := parseInt(raw)
	if !ok {
		return false
	}
	s.UpdateQuantity(productID, varietyName, quantity)
	return true
}

// RemoveItem drops the matching line. Unknown lines are a no-op.
func (s *Store) RemoveItem(productID, varietyName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(domain.LineKey{ProductID: productID, VarietyName: varietyName}); idx >= 0 {
		s.removeAt(idx)
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Total is the sum of price times quantity over all lines.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sumTotal(s.items)
}

// Count is the number of distinct lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Units is the sum of quantities over all lines.
func (s *Store) Units() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	units := 0
	for _, it := range s.items {
		units += it.Quantity
	}
	return units
}

func (s *Store) IsEmpty() bool {
	return s.Count() == 0
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Snapshot is an immutable copy of the cart taken at a point in time.
type Snapshot struct {
	Items []domain.CartItem
	Total int64
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := cloneItems(s.items)
	return Snapshot{Items: items, Total: sumTotal(items)}
}

func (s *Store) indexOf(key domain.LineKey) int {
	for i, it := range s.items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(idx int) {
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
}

func sumTotal(items []domain.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
