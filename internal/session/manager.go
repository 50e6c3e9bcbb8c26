package session

import (
	"sync"
	"time"

	"canteen-storefront/internal/cart"
	"canteen-storefront/internal/checkout"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const minSweepInterval = time.Second

// Session is one browser session: its cart and the coordinator that checks it out.
type Session struct {
	ID       string
	Cart     *cart.Store
	Checkout *checkout.Coordinator

	lastSeen time.Time
}

// Manager owns the live sessions. Idle sessions are dropped together with their carts.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	deps      checkout.Deps
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	logger    zerolog.Logger
}

// NewManager creates a Manager whose sessions share the checkout collaborators in deps.
func NewManager(deps checkout.Deps, idleTTL time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		deps:     deps,
		idleTTL:  idleTTL,
		now:      time.Now,
		logger:   logger.With().Str("component", "session").Logger(),
	}
}

// Get returns a live session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

// Resolve returns the session for id, starting a new one when id is empty, unknown or expired.
// created reports whether a new session was started.
func (m *Manager) Resolve(id string) (s *Session, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	if s, ok := m.sessions[id]; ok && id != "" {
		s.lastSeen = now
		return s, false
	}

	store := cart.NewStore()
	s = &Session{
		ID:       uuid.NewString(),
		Cart:     store,
		Checkout: checkout.New(store, m.deps),
		lastSeen: now,
	}
	m.sessions[s.ID] = s
	m.logger.Debug().Str("session_id", s.ID).Int("active", len(m.sessions)).Msg("session started")
	return s, true
}

// Drop ends a session and discards its cart.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops every idle session immediately.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSweep = time.Time{}
	return m.sweepLocked(m.now())
}

func (m *Manager) sweepLocked(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	interval := m.idleTTL / 4
	if interval < minSweepInterval {
		interval = minSweepInterval
	}
	if !m.lastSweep.IsZero() && now.Sub(m.lastSweep) < interval {
		return 0
	}
	m.lastSweep = now

	dropped := 0
	for id, s := range m.sessions {
		// An in-flight checkout keeps its session alive.
		if s.Checkout.IsSubmitting() {
			continue
		}
		if now.Sub(s.lastSeen) >= m.idleTTL {
			delete(m.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		m.logger.Debug().Int("dropped", dropped).Int("active", len(m.sessions)).Msg("idle sessions swept")
	}
	return dropped
}
