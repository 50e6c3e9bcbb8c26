package catalog

import "canteen-storefront/internal/domain"

// Prices are whole rupees.
var defaultMenu = []domain.Product{
	{
		ID:          "masala-dosa",
		Name:        "Masala Dosa",
		Category:    "Breakfast",
		Image:       "/images/masala-dosa.jpg",
		Description: "Crisp dosa with potato masala, sambar and chutney",
		Varieties:   []domain.Variety{{Name: "Regular", Price: 50}, {Name: "Butter", Price: 65}},
	},
	{
		ID:          "idli",
		Name:        "Idli",
		Category:    "Breakfast",
		Image:       "/images/idli.jpg",
		Description: "Steamed rice cakes",
		Varieties:   []domain.Variety{{Name: "2 pcs", Price: 30}, {Name: "4 pcs", Price: 55}},
	},
	{
		ID:          "poha",
		Name:        "Poha",
		Category:    "Breakfast",
		Image:       "/images/poha.jpg",
		Description: "Flattened rice with peanuts and curry leaves",
		Varieties:   []domain.Variety{{Name: "", Price: 25}},
	},
	{
		ID:          "veg-thali",
		Name:        "Veg Thali",
		Category:    "Meals",
		Image:       "/images/veg-thali.jpg",
		Description: "Rice, dal, two sabzis, roti and salad",
		Varieties:   []domain.Variety{{Name: "Regular", Price: 80}, {Name: "Special", Price: 110}},
	},
	{
		ID:          "rajma-chawal",
		Name:        "Rajma Chawal",
		Category:    "Meals",
		Image:       "/images/rajma-chawal.jpg",
		Description: "Kidney bean curry with steamed rice",
		Varieties:   []domain.Variety{{Name: "Half", Price: 50}, {Name: "Full", Price: 80}},
	},
	{
		ID:          "samosa",
		Name:        "Samosa",
		Category:    "Snacks",
		Image:       "/images/samosa.jpg",
		Description: "Fried pastry with spiced potato filling",
		Varieties:   []domain.Variety{{Name: "", Price: 15}},
	},
	{
		ID:          "veg-sandwich",
		Name:        "Veg Sandwich",
		Category:    "Snacks",
		Image:       "/images/veg-sandwich.jpg",
		Description: "Grilled sandwich with vegetables and cheese",
		Varieties:   []domain.Variety{{Name: "Plain", Price: 35}, {Name: "Cheese", Price: 50}},
	},
	{
		ID:          "maggi",
		Name:        "Maggi",
		Category:    "Snacks",
		Image:       "/images/maggi.jpg",
		Description: "Instant noodles",
		Varieties:   []domain.Variety{{Name: "Plain", Price: 30}, {Name: "Masala", Price: 40}, {Name: "Cheese", Price: 50}},
	},
	{
		ID:          "tea",
		Name:        "Tea",
		Category:    "Beverages",
		Image:       "/images/tea.jpg",
		Description: "Hot tea",
		Varieties:   []domain.Variety{{Name: "Regular", Price: 10}, {Name: "Masala", Price: 15}, {Name: "Ginger", Price: 15}},
	},
	{
		ID:          "coffee",
		Name:        "Coffee",
		Category:    "Beverages",
		Image:       "/images/coffee.jpg",
		Description: "Filter coffee",
		Varieties:   []domain.Variety{{Name: "Hot", Price: 20}, {Name: "Cold", Price: 40}},
	},
	{
		ID:          "lassi",
		Name:        "Lassi",
		Category:    "Beverages",
		Image:       "/images/lassi.jpg",
		Description: "Chilled yoghurt drink",
		Varieties:   []domain.Variety{{Name: "Sweet", Price: 30}, {Name: "Salted", Price: 30}},
	},
}

// Default returns the built-in menu.
func Default() *Catalog {
	c, err := New(defaultMenu)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultProducts returns a copy of the built-in menu in display order.
func DefaultProducts() []domain.Product {
	return Default().Products()
}
