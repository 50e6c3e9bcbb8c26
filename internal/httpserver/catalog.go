package httpserver

import (
	"net/http"

	"canteen-storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type productsResponse struct {
	Category string           `json:"category"`
	Count    int              `json:"count"`
	Results  []domain.Product `json:"results"`
}

func productsHandler(m menu) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.DefaultQuery("category", "All")
		products := m.List(category)
		c.JSON(http.StatusOK, productsResponse{
			Category: category,
			Count:    len(products),
			Results:  products,
		})
	}
}

func categoriesHandler(m menu) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": m.Categories()})
	}
}
