package domain

import "time"

// Order is the payload handed to the order-creation backend.
type Order struct {
	Items       []CartItem `json:"items"`
	Total       int64      `json:"total"`
	SubmittedBy string     `json:"submittedBy"`
}

// PlacedOrder is an order as stored by the persistence backend.
type PlacedOrder struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	Total      int64       `json:"total"`
	Status     string      `json:"status"`
	Items      []OrderLine `json:"items"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type OrderLine struct {
	ProductID   string `json:"productId"`
	VarietyName string `json:"varietyName"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}
