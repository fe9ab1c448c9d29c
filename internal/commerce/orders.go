package commerce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abgdnv/storefront/internal/domain"
	serrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/pkg/logger"
	"github.com/abgdnv/storefront/pkg/messaging/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// CreateOrder places an order.
//
// An unknown variant fails with ErrVariantNotFound as a Go error even without
// WithThrowOnError, unlike the lookups which report not-found inside the Result.
// Callers must handle both.
func (c *Client) CreateOrder(ctx context.Context, body *domain.OrderInput, _ ...CallOption) (*Result[domain.Order], error) {
	if body == nil {
		return nil, serrors.ErrMissingBody
	}

	lineItems := make([]domain.LineItem, len(body.LineItems))
	for i, in := range body.LineItems {
		resolved, err := c.resolveVariant(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("line item %d: %w", i, err)
		}
		lineItems[i] = domain.LineItem{
			ID:               c.ids.LineItemID(),
			ProductVariantID: in.ProductVariantID,
			Quantity:         in.Quantity,
			ProductVariant:   resolved,
		}
	}

	now := c.now()
	order := domain.Order{
		ID:              c.ids.OrderID(),
		Number:          c.ids.OrderNumber(),
		Email:           body.Email,
		CustomerID:      body.CustomerID,
		LineItems:       lineItems,
		BillingAddress:  body.BillingAddress.Normalize(),
		ShippingAddress: body.ShippingAddress.Normalize(),
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := c.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order %s: %w", order.ID, err)
	}

	ctx = logger.AppendCtx(ctx, slog.String("order_id", order.ID), slog.Int64("order_number", order.Number))
	c.logger.InfoContext(ctx, "Order created", "line_items", len(order.LineItems))

	c.publishCreated(ctx, order)
	// increase the number of created orders
	c.ordersCounter.Add(ctx, 1)

	return success(ctx, order.Clone()), nil
}

func (c *Client) GetOrderByID(ctx context.Context, id string, opts ...CallOption) (*Result[domain.Order], error) {
	co := applyCallOptions(opts)
	order, err := c.orders.FindByID(ctx, id)
	if errors.Is(err, serrors.ErrOrderNotFound) {
		return notFound[domain.Order](ctx, co)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", id, err)
	}
	return success(ctx, *order), nil
}

// resolveVariant finds the variant a line item refers to, scoped to a product when the item names one.
func (c *Client) resolveVariant(ctx context.Context, in domain.LineItemInput) (domain.ResolvedVariant, error) {
	var (
		variant *domain.ProductVariant
		product *domain.Product
		err     error
	)
	if in.ProductID != "" {
		variant, product, err = c.catalog.FindProductVariant(ctx, in.ProductID, in.ProductVariantID)
	} else {
		variant, product, err = c.catalog.FindVariant(ctx, in.ProductVariantID)
	}
	if err != nil {
		return domain.ResolvedVariant{}, err
	}
	return domain.ResolvedVariant{ProductVariant: *variant, Product: *product}, nil
}

// publishCreated announces the order. A failed publish is logged and does not fail the order.
func (c *Client) publishCreated(ctx context.Context, order domain.Order) {
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	var total int64
	for _, li := range order.LineItems {
		total += li.ProductVariant.Product.Price * int64(li.Quantity)
	}
	event := events.OrderCreatedEvent{
		Carrier:    carrier,
		OrderID:    order.ID,
		Number:     order.Number,
		Email:      order.Email,
		CustomerID: order.CustomerID,
		ItemCount:  len(order.LineItems),
		TotalPrice: total,
		CreatedAt:  order.CreatedAt,
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.ErrorContext(ctx, "Failed to publish OrderCreatedEvent", "error", err)
	}
}
