package domain

import "time"

// Variety is a priced variant of a product, e.g. a size or flavor.
type Variety struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	Varieties   []Variety `json:"varieties"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Variety returns the named variety. An empty name matches a product with a single variety.
func (p Product) Variety(name string) (Variety, bool) {
	for _, v := range p.Varieties {
		if v.Name == name {
			return v, true
		}
	}
	if name == "" && len(p.Varieties) == 1 {
		return p.Varieties[0], true
	}
	return Variety{}, false
}
