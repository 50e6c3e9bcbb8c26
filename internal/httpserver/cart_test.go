package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"canteen-storefront/internal/checkout"
	"canteen-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_SessionCookieIsIssuedAndReused(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{})

	rec := env.do(http.MethodPost, "/cart/items", `{"productId":"tea","varietyName":"Masala","quantity":2}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "canteen_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec = env.do(http.MethodGet, "/cart", "", cookies)
	body := decode[cartResponse](t, rec)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, int64(100), body.Total)
	assert.Empty(t, rec.Result().Cookies(), "known sessions are not re-issued")

	rec = env.do(http.MethodGet, "/cart", "", nil)
	assert.Zero(t, decode[cartResponse](t, rec).Count, "a new browser gets an empty cart")
}

func TestCart_AddMergesAndResolvesCatalogData(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{})

	rec := env.do(http.MethodPost, "/cart/items", `{"productId":"tea","varietyName":"Masala","quantity":"2"}`, nil)
	cookies := rec.Result().Cookies()
	env.do(http.MethodPost, "/cart/items", `{"productId":"tea","varietyName":"Masala","quantity":1}`, cookies)
	rec = env.do(http.MethodPost, "/cart/items", `{"productId":"samosa","quantity":"abc"}`, cookies)

	body := decode[cartResponse](t, rec)
	require.Equal(t, 2, body.Count)
	assert.Equal(t, domain.CartItem{
		ProductID:   "tea",
		VarietyName: "Masala",
		ProductName: "Tea",
		Image:       "/tea.jpg",
		Price:       50,
		Quantity:    3,
	}, body.Items[0])
	assert.Equal(t, 1, body.Items[1].Quantity, "unusable quantity falls back to one")
	assert.Equal(t, 4, body.Units)
	assert.Equal(t, int64(180), body.Total)
}

func TestCart_AddUnknownProduct(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{})

	rec := env.do(http.MethodPost, "/cart/items", `{"productId":"tea","varietyName":"Lemon"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/cart/items", `{"varietyName":"Masala"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCart_UpdateRemoveAndClear(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{})

	rec := env.do(http.MethodPost, "/cart/items", `{"productId":"tea","varietyName":"Masala","quantity":2}`, nil)
	cookies := rec.Result().Cookies()
	env.do(http.MethodPost, "/cart/items", `{"productId":"tea","varietyName":"Ginger","quantity":1}`, cookies)
	env.do(http.MethodPost, "/cart/items", `{"productId":"samosa","quantity":1}`, cookies)

	rec = env.do(http.MethodPatch, "/cart/items", `{"productId":"tea","varietyName":"Masala","quantity":"x"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[cartResponse](t, rec).Items[0].Quantity, "garbage input is ignored")

	rec = env.do(http.MethodPatch, "/cart/items", `{"productId":"tea","varietyName":"Masala","quantity":5}`, cookies)
	assert.Equal(t, 5, decode[cartResponse](t, rec).Items[0].Quantity)

	rec = env.do(http.MethodPatch, "/cart/items", `{"productId":"tea","varietyName":"Masala","quantity":0}`, cookies)
	body := decode[cartResponse](t, rec)
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "Ginger", body.Items[0].VarietyName)

	rec = env.do(http.MethodDelete, "/cart/items?productId=tea&varietyName=Ginger", "", cookies)
	body = decode[cartResponse](t, rec)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, int64(30), body.Total)

	rec = env.do(http.MethodDelete, "/cart/items", "", cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodDelete, "/cart", "", cookies)
	assert.Zero(t, decode[cartResponse](t, rec).Count)
}

func TestCheckout_Unauthenticated(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{})

	rec := env.do(http.MethodPost, "/cart/items", `{"productId":"samosa","quantity":1}`, nil)
	cookies := rec.Result().Cookies()

	rec = env.do(http.MethodPost, "/cart/checkout", "", cookies)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode[checkoutResponse](t, rec)
	assert.Equal(t, checkout.StateRejected, body.State)
	assert.Equal(t, domain.RouteLogin, body.Redirect)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Please log in", body.Notifications[0].Title)
	assert.Equal(t, 1, body.Cart.Count)
	assert.Zero(t, env.orders.callCount())
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{customer: &domain.Customer{ID: "cust-1", Name: "Ravi"}})

	rec := env.do(http.MethodPost, "/cart/checkout", "", nil, "Authorization", "Bearer token")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[checkoutResponse](t, rec)
	assert.Equal(t, checkout.StateRejected, body.State)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Cart is empty", body.Notifications[0].Title)
	assert.Empty(t, body.Redirect)
}

func TestCheckout_Success(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{customer: &domain.Customer{ID: "cust-1", Name: "Ravi"}})

	rec := env.do(http.MethodPost, "/cart/items", `{"productId":"tea","varietyName":"Masala","quantity":2}`, nil)
	cookies := rec.Result().Cookies()
	env.do(http.MethodPost, "/cart/items", `{"productId":"samosa"}`, cookies)

	rec = env.do(http.MethodPost, "/cart/checkout", "", cookies, "Authorization", "Bearer token")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[checkoutResponse](t, rec)
	assert.Equal(t, checkout.StateSucceeded, body.State)
	assert.Equal(t, env.orders.id, body.OrderID)
	assert.Equal(t, int64(130), body.Total)
	assert.Equal(t, domain.RouteHome, body.Redirect)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Your order #3f2b9c1d has been placed. Total: ₹130", body.Notifications[0].Description)
	assert.Zero(t, body.Cart.Count)

	assert.Equal(t, 1, env.orders.callCount())
	assert.Equal(t, "cust-1", env.orders.user)
	assert.Equal(t, int64(130), env.orders.total)
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{customer: &domain.Customer{ID: "cust-1", Name: "Ravi"}})
	env.orders.err = errors.New("db down")

	rec := env.do(http.MethodPost, "/cart/items", `{"productId":"samosa","quantity":2}`, nil)
	cookies := rec.Result().Cookies()

	rec = env.do(http.MethodPost, "/cart/checkout", "", cookies, "Authorization", "Bearer token")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode[checkoutResponse](t, rec)
	assert.Equal(t, checkout.StateFailed, body.State)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Order Failed", body.Notifications[0].Title)
	assert.Equal(t, 1, body.Cart.Count)
	assert.Equal(t, int64(60), body.Cart.Total)
}

func TestCheckout_SecondSubmitWhileInFlightIsIgnored(t *testing.T) {
	env := newTestEnv(t, &stubCustomerAuthSvc{customer: &domain.Customer{ID: "cust-1", Name: "Ravi"}})
	env.orders.entered = make(chan struct{}, 1)
	env.orders.block = make(chan struct{})

	rec := env.do(http.MethodPost, "/cart/items", `{"productId":"samosa","quantity":2}`, nil)
	cookies := rec.Result().Cookies()

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- env.do(http.MethodPost, "/cart/checkout", "", cookies, "Authorization", "Bearer token")
	}()
	<-env.orders.entered

	rec = env.do(http.MethodGet, "/cart", "", cookies)
	inFlight := decode[cartResponse](t, rec)
	assert.True(t, inFlight.Submitting)
	assert.Equal(t, 1, inFlight.Count)

	rec = env.do(http.MethodPost, "/cart/checkout", "", cookies, "Authorization", "Bearer token")
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	ignored := decode[checkoutResponse](t, rec)
	assert.Equal(t, checkout.StateIgnored, ignored.State)
	assert.Empty(t, ignored.Notifications)
	assert.Empty(t, ignored.Redirect)
	assert.True(t, ignored.Cart.Submitting)

	close(env.orders.block)
	rec = <-first
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, checkout.StateSucceeded, decode[checkoutResponse](t, rec).State)
	assert.Equal(t, 1, env.orders.callCount())

	rec = env.do(http.MethodGet, "/cart", "", cookies)
	done := decode[cartResponse](t, rec)
	assert.False(t, done.Submitting)
	assert.Zero(t, done.Count)
}
