package model

// MenuItem is one dish or drink on the restaurant menu.
type MenuItem struct {
	ID          uint64  `json:"id"`          // menu_items.id
	Name        string  `json:"name"`        // menu_items.name
	Description string  `json:"description"` // menu_items.description
	Category    string  `json:"category"`    // menu_items.category
	Price       float64 `json:"price"`       // menu_items.price
}
