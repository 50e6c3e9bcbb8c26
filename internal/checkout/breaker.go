package checkout

import (
	"context"
	"errors"
	"time"

	"canteen-storefront/internal/domain"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// BreakerSettings tunes the circuit breaker in front of the order backend.
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

// BreakerCreator fails fast while the order backend keeps erroring.
// It never retries; an open breaker surfaces as an ordinary submission failure.
type BreakerCreator struct {
	next OrderCreator
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreakerCreator(next OrderCreator, settings BreakerSettings, logger zerolog.Logger) *BreakerCreator {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "order-backend",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		// Callers giving up is not a backend fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return &BreakerCreator{next: next, cb: cb}
}

func (b *BreakerCreator) CreateOrder(ctx context.Context, userID string, items []domain.CartItem, total int64) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.CreateOrder(ctx, userID, items, total)
	})
}

// State exposes the breaker state for readiness reporting.
func (b *BreakerCreator) State() string {
	return b.cb.State().String()
}
