package customer

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"canteen-storefront/internal/domain"
	tokenrepo "canteen-storefront/internal/repository/token"
	"github.com/rs/zerolog"
)

type tokenMeta struct {
	CustomerID string
	ExpiresAt  time.Time
}

type tokenManager struct {
	repo   tokenrepo.Repository
	now    func() time.Time
	logger zerolog.Logger
}

func newTokenManager(repo tokenrepo.Repository, logger zerolog.Logger) *tokenManager {
	return &tokenManager{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// Issue mints a fresh token for customerID. The customer's expired tokens are pruned first.
func (m *tokenManager) Issue(ctx context.Context, customerID, kind string, ttl time.Duration) (string, error) {
	now := m.now()
	if _, err := m.repo.PruneExpired(ctx, customerID, now); err != nil {
		m.logger.Warn().Err(err).Str("customer_id", customerID).Msg("prune expired tokens")
	}
	expiresAt := now.Add(ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = m.repo.Create(ctx, tokenrepo.Token{
			Value:      token,
			CustomerID: customerID,
			Kind:       kind,
			ExpiresAt:  expiresAt,
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

func (m *tokenManager) Validate(ctx context.Context, token string) (tokenMeta, bool) {
	if token == "" {
		return tokenMeta{}, false
	}
	meta, err := m.repo.Get(ctx, token)
	if err != nil {
		return tokenMeta{}, false
	}
	if meta.Kind != tokenrepo.KindAccess || meta.CustomerID == "" {
		return tokenMeta{}, false
	}
	if meta.Expired(m.now()) {
		_ = m.repo.Delete(ctx, token)
		return tokenMeta{}, false
	}
	return tokenMeta{
		CustomerID: meta.CustomerID,
		ExpiresAt:  meta.ExpiresAt,
	}, true
}

func (m *tokenManager) Revoke(ctx context.Context, token string) error {
	return m.repo.Delete(ctx, token)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
