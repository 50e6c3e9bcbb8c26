package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"canteen-storefront/internal/domain"
	"canteen-storefront/internal/logging"
	"canteen-storefront/internal/session"
	customersvc "canteen-storefront/internal/service/customer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey string

const (
	customerCtxKey ctxKey = "customer"
	feedbackCtxKey ctxKey = "feedback"

	sessionKey      = "session"
	requestIDHeader = "X-Request-ID"
)

// requestLogger attaches a request-scoped zerolog logger and logs completion.
func requestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		logger := base.With().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))

		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request complete")
	}
}

// authMiddleware resolves the bearer token into a customer. With required set,
// requests without a valid token are rejected; otherwise they continue anonymously.
func authMiddleware(svc customerService, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				writeError(c, http.StatusUnauthorized, "missing bearer token")
				return
			}
			c.Next()
			return
		}

		customer, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, customersvc.ErrInvalidToken) {
				logging.FromContext(c.Request.Context()).Error().Err(err).Msg("token lookup failed")
				writeError(c, http.StatusInternalServerError, "internal error")
				return
			}
			if required {
				writeError(c, http.StatusUnauthorized, "invalid token")
				return
			}
			c.Next()
			return
		}

		ctx := context.WithValue(c.Request.Context(), customerCtxKey, customer)
		ctx = logging.WithField(ctx, "customer_id", customer.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// sessionMiddleware binds the request to a cart session, starting one when the cookie is missing or stale.
func sessionMiddleware(sessions *session.Manager, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookie.Name)
		sess, created := sessions.Resolve(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookie.Name, sess.ID, int(cookie.MaxAge.Seconds()), "/", "", cookie.Secure, true)
		}
		c.Set(sessionKey, sess)
		c.Request = c.Request.WithContext(logging.WithField(c.Request.Context(), "session_id", sess.ID))
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

func customerFromContext(ctx context.Context) (*domain.Customer, bool) {
	c, ok := ctx.Value(customerCtxKey).(*domain.Customer)
	return c, ok && c != nil
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func logRequestError(c *gin.Context, err error, msg string) {
	logging.FromContext(c.Request.Context()).Error().Err(err).Msg(msg)
}
