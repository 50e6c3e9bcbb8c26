package checkout

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"canteen-storefront/internal/cart"
	"canteen-storefront/internal/domain"
	"canteen-storefront/internal/logging"
)

type State string

const (
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateRejected  State = "rejected"
	// StateIgnored is returned when another submission is still in flight.
	StateIgnored State = "ignored"
)

// Outcome describes how a PlaceOrder call ended.
type Outcome struct {
	State   State  `json:"state"`
	OrderID string `json:"orderId,omitempty"`
	Total   int64  `json:"total"`
	Err     error  `json:"-"`
}

type cartStore interface {
	Snapshot() cart.Snapshot
	Clear()
}

// Deps are the collaborators a Coordinator talks to.
type Deps struct {
	Identity  IdentityProvider
	Orders    OrderCreator
	Notifier  Notifier
	Navigator Navigator
	Metrics   *Metrics
}

// Coordinator turns a session cart into an order, at most one submission at a time.
type Coordinator struct {
	store      cartStore
	deps       Deps
	submitting atomic.Bool
}

func New(store cartStore, deps Deps) *Coordinator {
	return &Coordinator{store: store, deps: deps}
}

// IsSubmitting reports whether an order submission is in flight.
func (c *Coordinator) IsSubmitting() bool {
	return c.submitting.Load()
}

// PlaceOrder validates the session and submits the cart.
// It never panics and leaves the coordinator idle when it returns.
func (c *Coordinator) PlaceOrder(ctx context.Context) Outcome {
	if !c.submitting.CompareAndSwap(false, true) {
		c.deps.Metrics.observe(StateIgnored, "")
		return Outcome{State: StateIgnored}
	}
	defer c.submitting.Store(false)

	logger := logging.FromContext(ctx)

	user, ok := c.identify(ctx)
	if !ok {
		c.notify(ctx, domain.Notification{
			Title:       "Please log in",
			Description: "You need to be logged in to place an order",
			Severity:    domain.SeverityDestructive,
		})
		c.navigate(ctx, domain.RouteLogin)
		c.deps.Metrics.observe(StateRejected, ReasonUnauthenticated)
		return Outcome{State: StateRejected, Err: &ValidationError{Reason: ReasonUnauthenticated}}
	}

	snap := c.store.Snapshot()
	if len(snap.Items) == 0 {
		c.notify(ctx, domain.Notification{
			Title:       "Cart is empty",
			Description: "Please add items to your cart before placing an order",
			Severity:    domain.SeverityDestructive,
		})
		c.deps.Metrics.observe(StateRejected, ReasonEmptyCart)
		return Outcome{State: StateRejected, Err: &ValidationError{Reason: ReasonEmptyCart}}
	}

	started := time.Now()
	orderID, err := c.submit(ctx, user.ID, snap)
	c.deps.Metrics.observeDuration(time.Since(started))
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Int64("total", snap.Total).Msg("place order failed")
		c.notify(ctx, domain.Notification{
			Title:       "Order Failed",
			Description: "There was an error placing your order. Please try again.",
			Severity:    domain.SeverityDestructive,
		})
		c.deps.Metrics.observe(StateFailed, "")
		return Outcome{State: StateFailed, Total: snap.Total, Err: &SubmissionError{Cause: err}}
	}

	c.store.Clear()
	logger.Info().Str("user_id", user.ID).Str("order_id", orderID).Int64("total", snap.Total).Int("lines", len(snap.Items)).Msg("order placed")
	c.notify(ctx, domain.Notification{
		Title:       "Order placed successfully! 🎉",
		Description: fmt.Sprintf("Your order #%s has been placed. Total: ₹%d", ShortID(orderID), snap.Total),
		Severity:    domain.SeverityDefault,
	})
	c.navigate(ctx, domain.RouteHome)
	c.deps.Metrics.observe(StateSucceeded, "")
	return Outcome{State: StateSucceeded, OrderID: orderID, Total: snap.Total}
}

// submit runs detached from ctx cancellation: once started, a submission is never abandoned.
func (c *Coordinator) submit(ctx context.Context, userID string, snap cart.Snapshot) (orderID string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("order backend panicked: %v", r)
		}
	}()
	orderID, err = c.deps.Orders.CreateOrder(context.WithoutCancel(ctx), userID, snap.Items, snap.Total)
	if err == nil && orderID == "" {
		err = errEmptyOrderID
	}
	return orderID, err
}

// identify requires both a user and a profile.
func (c *Coordinator) identify(ctx context.Context) (domain.User, bool) {
	if c.deps.Identity == nil {
		return domain.User{}, false
	}
	user, hasUser := c.deps.Identity.CurrentUser(ctx)
	_, hasProfile := c.deps.Identity.CurrentProfile(ctx)
	if !hasUser || !hasProfile || user.ID == "" {
		return domain.User{}, false
	}
	return user, true
}

func (c *Coordinator) notify(ctx context.Context, n domain.Notification) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(ctx, n)
	}
}

func (c *Coordinator) navigate(ctx context.Context, route string) {
	if c.deps.Navigator != nil {
		c.deps.Navigator.Navigate(ctx, route)
	}
}

// ShortID is the display form of an order id: its first 8 characters.
func ShortID(id string) string {
	runes := []rune(id)
	if len(runes) <= 8 {
		return id
	}
	return string(runes[:8])
}
