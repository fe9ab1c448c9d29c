// Package messaging defines the event publishing contract used by the storefront.
package messaging

import (
	"context"
)

// OrdersCreatedSubject is the subject order-created events are published on.
const OrdersCreatedSubject = "storefront.orders.created"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event. It is used when NATS is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}
