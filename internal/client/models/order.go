package models

// OrderStatus is the delivery state of an order. Only administrators move an
// order between states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Order is a placed order as echoed by the server. Everything except Status
// is immutable once created.
type Order struct {
	ID           string      `json:"id"`
	Items        []CartItem  `json:"items"`
	TotalPrice   float64     `json:"totalPrice"`
	Status       OrderStatus `json:"status"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 string      `json:"addressLine2,omitempty"`
	City         string      `json:"city"`
	Pincode      string      `json:"pincode"`
	CreatedAt    string      `json:"createdAt"`
}

// LastOrder is the locally persisted snapshot of the most recent order,
// enriched with a delivery estimate for display.
type LastOrder struct {
	Order
	EstimatedDelivery string `json:"estimatedDelivery"`
}

// OrderDetails is the caller-supplied part of a new order: the delivery
// address and, optionally, a precomputed total. A zero TotalPrice means
// "compute from the cart".
type OrderDetails struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	Pincode      string
	TotalPrice   float64
}

// OrderRequest is the wire payload for placing an order.
type OrderRequest struct {
	AddressLine1 string     `json:"addressLine1"`
	AddressLine2 string     `json:"addressLine2,omitempty"`
	City         string     `json:"city"`
	Pincode      string     `json:"pincode"`
	Items        []CartItem `json:"items"`
	TotalPrice   float64    `json:"totalPrice"`
}
