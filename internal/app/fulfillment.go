package app

import (
	"context"
	"errors"

	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/internal/fulfillment"
	"github.com/abgdnv/storefront/pkg/messaging"
)

// ErrFulfillmentUnavailable is returned by RunFulfillment when NATS was not set up.
var ErrFulfillmentUnavailable = errors.New("fulfillment needs a NATS connection")

// RunFulfillment consumes order-created events and sends fulfillment notices until ctx is done.
func (d *Dependencies) RunFulfillment(ctx context.Context, cfg *config.Config, env *config.Env) error {
	if d.jetStream == nil {
		return ErrFulfillmentUnavailable
	}
	sub := fulfillment.NewSubscriber(
		fulfillment.NewLogNotifier(d.Logger),
		fulfillment.RecipientFromEnv(env),
		d.Logger,
	)
	return sub.Start(ctx, d.jetStream, cfg.Nats.Stream, messaging.OrdersCreatedSubject, cfg.Fulfillment)
}
