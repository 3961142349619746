package models

// CartItem is one line of the cart. The cart holds at most one entry per
// ItemID; the server merges duplicates on add.
type CartItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// FavoriteItem is a bookmarked menu item. One entry per ItemID.
type FavoriteItem struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Image  string  `json:"image,omitempty"`
}

// CartSubtotal sums price×quantity over the given items.
func CartSubtotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
