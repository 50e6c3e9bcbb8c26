package httpserver

import (
	"errors"
	"net/http"

	"canteen-storefront/internal/domain"
	customersvc "canteen-storefront/internal/service/customer"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type customerResponse struct {
	Customer domain.Customer `json:"customer"`
	Kind     string          `json:"kind"`
}

type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Customer    domain.Customer `json:"customer"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	kind := customersvc.AccountStudent
	if c.IsTeacher {
		kind = customersvc.AccountTeacher
	}
	return customerResponse{Customer: c, Kind: string(kind)}
}

func signupHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeError(c, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := svc.Signup(c.Request.Context(), in)
		if err != nil {
			var verr *customersvc.ValidationError
			switch {
			case errors.As(err, &verr):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
			case errors.Is(err, domain.ErrAlreadyExists):
				writeError(c, http.StatusConflict, "username already taken")
			default:
				logRequestError(c, err, "signup failed")
				writeError(c, http.StatusInternalServerError, "internal error")
			}
			return
		}
		c.JSON(http.StatusCreated, toCustomerResponse(*created))
	}
}

func loginHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "username and password are required")
			return
		}

		customer, token, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, customersvc.ErrInvalidCredentials) {
				writeError(c, http.StatusUnauthorized, "invalid username or password")
				return
			}
			logRequestError(c, err, "login failed")
			writeError(c, http.StatusInternalServerError, "internal error")
			return
		}
		c.JSON(http.StatusOK, tokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   svc.AccessTTLSeconds(),
			Customer:    *customer,
		})
	}
}

func logoutHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Status(http.StatusNoContent)
			return
		}
		if err := svc.Logout(c.Request.Context(), token); err != nil {
			logRequestError(c, err, "logout failed")
			writeError(c, http.StatusInternalServerError, "internal error")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func meHandler(c *gin.Context) {
	customer, ok := customerFromContext(c.Request.Context())
	if !ok {
		writeError(c, http.StatusUnauthorized, "invalid token")
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

func myOrdersHandler(orders orderLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := customerFromContext(c.Request.Context())
		if !ok {
			writeError(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if orders == nil {
			c.JSON(http.StatusOK, gin.H{"results": []domain.PlacedOrder{}})
			return
		}
		list, err := orders.ListByCustomer(c.Request.Context(), customer.ID, 0)
		if err != nil {
			logRequestError(c, err, "list orders failed")
			writeError(c, http.StatusInternalServerError, "internal error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": list})
	}
}
