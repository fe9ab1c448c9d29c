package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/storefront/pkg/messaging"
)

// OrderCreatedEvent is published after an order has been stored.
// Carrier holds the propagated trace context.
type OrderCreatedEvent struct {
	Carrier    map[string]string `json:"carrier,omitempty"`
	OrderID    string            `json:"order_id"`
	Number     int64             `json:"number"`
	Email      string            `json:"email,omitempty"`
	CustomerID *string           `json:"customer_id,omitempty"`
	ItemCount  int               `json:"item_count"`
	TotalPrice int64             `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (o OrderCreatedEvent) Subject() string {
	return messaging.OrdersCreatedSubject
}

func (o OrderCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
