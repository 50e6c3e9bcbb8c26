package domain

// CartItem is one line of a cart, identified by ProductID and VarietyName.
// ProductName, Image and Price are captured when the line is first added.
type CartItem struct {
	ProductID   string `json:"productId"`
	VarietyName string `json:"varietyName"`
	ProductName string `json:"productName"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

// LineKey is the identity of a cart line.
type LineKey struct {
	ProductID   string
	VarietyName string
}

func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.ProductID, VarietyName: i.VarietyName}
}

// LineTotal is the unit price multiplied by quantity.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
