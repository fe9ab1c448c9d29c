package commerce

import (
	"context"
	"maps"

	"github.com/abgdnv/storefront/internal/domain"
	serrors "github.com/abgdnv/storefront/internal/errors"
)

// CreateCustomer merges body with a generated id and timestamps. Nothing is stored.
// Without an explicit id, PlaceholderIDs gives every customer the same id.
func (c *Client) CreateCustomer(ctx context.Context, body *domain.CustomerInput, _ ...CallOption) (*Result[domain.Customer], error) {
	if body == nil {
		return nil, serrors.ErrMissingBody
	}

	var id string
	if body.ID != nil {
		id = *body.ID
	} else {
		id = c.ids.CustomerID()
	}
	now := c.now()
	customer := domain.Customer{
		ID:         id,
		Email:      body.Email,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Phone:      body.Phone,
		Metadata:   maps.Clone(body.Metadata),
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	c.logger.DebugContext(ctx, "Customer created", "customer_id", customer.ID)
	return success(ctx, customer), nil
}
