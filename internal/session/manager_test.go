package session

import (
	"testing"
	"time"

	"canteen-storefront/internal/checkout"
	"canteen-storefront/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(ttl time.Duration) (*Manager, *clock) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(checkout.Deps{}, ttl, zerolog.Nop())
	m.now = c.now
	return m, c
}

func TestResolve_CreatesAndReuses(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	s, created := m.Resolve("")
	require.True(t, created)
	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Cart)
	require.NotNil(t, s.Checkout)

	again, created := m.Resolve(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := m.Resolve("unknown")
	assert.True(t, created)
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, 2, m.Len())
}

func TestSessionsHaveSeparateCarts(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	a, _ := m.Resolve("")
	b, _ := m.Resolve("")

	a.Cart.Add(domain.CartItem{ProductID: "tea", Price: 10}, 1)

	assert.Equal(t, 1, a.Cart.Count())
	assert.True(t, b.Cart.IsEmpty())
}

func TestIdleSessionsExpire(t *testing.T) {
	m, c := newTestManager(time.Hour)
	s, _ := m.Resolve("")
	s.Cart.Add(domain.CartItem{ProductID: "tea", Price: 10}, 2)

	c.advance(59 * time.Minute)
	_, ok := m.Get(s.ID)
	require.True(t, ok, "access refreshes the idle timer")

	c.advance(59 * time.Minute)
	_, ok = m.Get(s.ID)
	require.True(t, ok)

	c.advance(61 * time.Minute)
	_, ok = m.Get(s.ID)
	assert.False(t, ok)

	fresh, created := m.Resolve(s.ID)
	assert.True(t, created)
	assert.True(t, fresh.Cart.IsEmpty(), "an expired session does not keep its cart")
}

func TestSweepAndDrop(t *testing.T) {
	m, c := newTestManager(time.Minute)
	m.Resolve("")
	m.Resolve("")

	c.advance(2 * time.Minute)
	assert.Equal(t, 2, m.Sweep())
	assert.Zero(t, m.Len())

	a, _ := m.Resolve("")
	m.Drop(a.ID)
	_, ok := m.Get(a.ID)
	assert.False(t, ok)
}
