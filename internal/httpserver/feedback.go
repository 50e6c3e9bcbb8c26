package httpserver

import (
	"context"
	"sync"

	"canteen-storefront/internal/checkout"
	"canteen-storefront/internal/domain"
)

// feedback collects the notifications and navigation a request produced so they can be
// returned in the response body.
type feedback struct {
	mu            sync.Mutex
	notifications []domain.Notification
	redirect      string
}

func withFeedback(ctx context.Context) (context.Context, *feedback) {
	fb := &feedback{}
	return context.WithValue(ctx, feedbackCtxKey, fb), fb
}

func (f *feedback) snapshot() ([]domain.Notification, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out, f.redirect
}

// contextFeedback delivers notifications and navigation to the sink of the current request.
// Calls outside a request are dropped.
type contextFeedback struct{}

func (contextFeedback) Notify(ctx context.Context, n domain.Notification) {
	fb, ok := ctx.Value(feedbackCtxKey).(*feedback)
	if !ok {
		return
	}
	fb.mu.Lock()
	fb.notifications = append(fb.notifications, n)
	fb.mu.Unlock()
}

func (contextFeedback) Navigate(ctx context.Context, route string) {
	fb, ok := ctx.Value(feedbackCtxKey).(*feedback)
	if !ok {
		return
	}
	fb.mu.Lock()
	fb.redirect = route
	fb.mu.Unlock()
}

// contextIdentity reads the customer set by authMiddleware.
type contextIdentity struct{}

func (contextIdentity) CurrentUser(ctx context.Context) (domain.User, bool) {
	c, ok := customerFromContext(ctx)
	if !ok {
		return domain.User{}, false
	}
	return c.User(), true
}

func (contextIdentity) CurrentProfile(ctx context.Context) (domain.Profile, bool) {
	c, ok := customerFromContext(ctx)
	if !ok {
		return domain.Profile{}, false
	}
	return c.Profile(), true
}

// CheckoutDeps returns coordinator collaborators that take identity and feedback from the
// HTTP request being served.
func CheckoutDeps(orders checkout.OrderCreator, metrics *checkout.Metrics) checkout.Deps {
	return checkout.Deps{
		Identity:  contextIdentity{},
		Orders:    orders,
		Notifier:  contextFeedback{},
		Navigator: contextFeedback{},
		Metrics:   metrics,
	}
}
