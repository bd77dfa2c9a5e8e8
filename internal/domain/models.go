package domain

import "time"

// OrderStatus is the lifecycle stage of an order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusCompleted OrderStatus = "completed"
)

// StatusStep pairs a status with its display label
type StatusStep struct {
	Status OrderStatus
	Label  string
}

// StatusSteps is the fixed forward-only progression; the backend never
// moves an order backwards through it
var StatusSteps = []StatusStep{
	{OrderStatusPlaced, "Order Placed"},
	{OrderStatusConfirmed, "Confirmed"},
	{OrderStatusPreparing, "Preparing"},
	{OrderStatusCompleted, "Ready"},
}

// StatusIndex returns the zero-based step index of s, or -1 if s is not a
// defined status
func StatusIndex(s OrderStatus) int {
	for i, step := range StatusSteps {
		if step.Status == s {
			return i
		}
	}
	return -1
}

// ValidStatus reports whether s is one of the defined statuses
func ValidStatus(s OrderStatus) bool {
	return StatusIndex(s) >= 0
}

// Progress returns the progress-bar fill percent for s
func Progress(s OrderStatus) float64 {
	i := StatusIndex(s)
	if i < 0 {
		return 0
	}
	return float64(i) / float64(len(StatusSteps)-1) * 100
}

// OrderItem позиция в заказе
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// Order сущность заказа
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	CreatedAt     time.Time   `json:"createdAt"`
	Status        OrderStatus `json:"status"`
}
