package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"canteen-storefront/internal/checkout"
	"canteen-storefront/internal/domain"
	"canteen-storefront/internal/logging"
	"canteen-storefront/internal/session"
	"github.com/gin-gonic/gin"
)

type lineRequest struct {
	ProductID   string          `json:"productId" binding:"required"`
	VarietyName string          `json:"varietyName"`
	Quantity    json.RawMessage `json:"quantity"`
}

type cartResponse struct {
	Items      []domain.CartItem `json:"items"`
	Count      int               `json:"count"`
	Units      int               `json:"units"`
	Total      int64             `json:"total"`
	Submitting bool              `json:"submitting"`
}

type checkoutResponse struct {
	State         checkout.State        `json:"state"`
	OrderID       string                `json:"orderId,omitempty"`
	Total         int64                 `json:"total"`
	Notifications []domain.Notification `json:"notifications"`
	Redirect      string                `json:"redirect,omitempty"`
	Cart          cartResponse          `json:"cart"`
}

func toCartResponse(s *session.Session) cartResponse {
	snap := s.Cart.Snapshot()
	units := 0
	for _, item := range snap.Items {
		units += item.Quantity
	}
	items := snap.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:      items,
		Count:      len(items),
		Units:      units,
		Total:      snap.Total,
		Submitting: s.Checkout.IsSubmitting(),
	}
}

// rawQuantity turns a JSON number or string into the text a quantity input would hold.
// Anything else becomes "", which the cart treats as unusable input.
func rawQuantity(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func getCartHandler(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(currentSession(c)))
}

func addItemHandler(m menu) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "productId is required")
			return
		}
		line, ok := m.Line(req.ProductID, req.VarietyName, 0)
		if !ok {
			writeError(c, http.StatusNotFound, "product or variety not found")
			return
		}

		sess := currentSession(c)
		if !sess.Cart.AddInput(line, rawQuantity(req.Quantity)) {
			writeError(c, http.StatusUnprocessableEntity, "item cannot be added")
			return
		}
		logging.FromContext(c.Request.Context()).Debug().
			Str("product_id", line.ProductID).
			Str("variety", line.VarietyName).
			Msg("item added to cart")
		c.JSON(http.StatusOK, toCartResponse(sess))
	}
}

// updateItemHandler sets a line quantity. Non-numeric quantities leave the cart unchanged.
func updateItemHandler(c *gin.Context) {
	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "productId is required")
		return
	}
	sess := currentSession(c)
	sess.Cart.UpdateQuantityInput(req.ProductID, req.VarietyName, rawQuantity(req.Quantity))
	c.JSON(http.StatusOK, toCartResponse(sess))
}

func removeItemHandler(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		writeError(c, http.StatusBadRequest, "productId is required")
		return
	}
	sess := currentSession(c)
	sess.Cart.RemoveItem(productID, c.Query("varietyName"))
	c.JSON(http.StatusOK, toCartResponse(sess))
}

func clearCartHandler(c *gin.Context) {
	sess := currentSession(c)
	sess.Cart.Clear()
	c.JSON(http.StatusOK, toCartResponse(sess))
}

func checkoutHandler(c *gin.Context) {
	sess := currentSession(c)
	ctx, fb := withFeedback(c.Request.Context())

	outcome := sess.Checkout.PlaceOrder(ctx)
	notifications, redirect := fb.snapshot()

	status := http.StatusOK
	switch outcome.State {
	case checkout.StateRejected:
		status = http.StatusUnprocessableEntity
		if checkout.IsRejected(outcome.Err, checkout.ReasonUnauthenticated) {
			status = http.StatusUnauthorized
		}
	case checkout.StateFailed:
		status = http.StatusBadGateway
	case checkout.StateIgnored:
		status = http.StatusConflict
	}

	c.JSON(status, checkoutResponse{
		State:         outcome.State,
		OrderID:       outcome.OrderID,
		Total:         outcome.Total,
		Notifications: notifications,
		Redirect:      redirect,
		Cart:          toCartResponse(sess),
	})
}

