package models

import "time"

// Event types
const (
	EventTypeOrderPlaced = "ORDER_PLACED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent is published when a checkout completes.
// The order itself is not persisted anywhere.
type OrderPlacedEvent struct {
	BaseEvent
	Reference     string          `json:"reference"`
	Email         string          `json:"email"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      int64           `json:"subtotal"`
	Tax           int64           `json:"tax"`
	Shipping      int64           `json:"shipping"`
	GrandTotal    int64           `json:"grand_total"`
	Items         []OrderItemData `json:"items"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}
