package httpserver

import (
	"context"
	"errors"
	"time"

	"canteen-storefront/internal/domain"
	"canteen-storefront/internal/session"
	customersvc "canteen-storefront/internal/service/customer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type customerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, username, password string) (*domain.Customer, string, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	AccessTTLSeconds() int
}

type orderLister interface {
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.PlacedOrder, error)
}

type menu interface {
	List(category string) []domain.Product
	Categories() []string
	Line(productID, variety string, quantity int) (domain.CartItem, bool)
}

// SessionCookie configures the cookie carrying the session id.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Deps are the services the router dispatches to.
type Deps struct {
	CustomerSvc customerService
	Orders      orderLister
	Catalog     menu
	Sessions    *session.Manager
	Cookie      SessionCookie
	CORSOrigins []string
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, db Pinger, deps Deps) (*gin.Engine, error) {
	if deps.CustomerSvc == nil || deps.Catalog == nil || deps.Sessions == nil {
		return nil, errors.New("httpserver: customer service, catalog and sessions are required")
	}
	if deps.Cookie.Name == "" {
		deps.Cookie.Name = "canteen_session"
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	router.GET("/products", productsHandler(deps.Catalog))
	router.GET("/categories", categoriesHandler(deps.Catalog))

	router.POST("/signup", signupHandler(deps.CustomerSvc))
	router.POST("/login", loginHandler(deps.CustomerSvc))
	router.POST("/logout", logoutHandler(deps.CustomerSvc))

	me := router.Group("/me", authMiddleware(deps.CustomerSvc, true))
	me.GET("", meHandler)
	me.GET("/orders", myOrdersHandler(deps.Orders))

	carts := router.Group("/cart",
		authMiddleware(deps.CustomerSvc, false),
		sessionMiddleware(deps.Sessions, deps.Cookie),
	)
	carts.GET("", getCartHandler)
	carts.POST("/items", addItemHandler(deps.Catalog))
	carts.PATCH("/items", updateItemHandler)
	carts.DELETE("/items", removeItemHandler)
	carts.DELETE("", clearCartHandler)
	carts.POST("/checkout", checkoutHandler)

	return router, nil
}
