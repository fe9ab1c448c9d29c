package commerce

import (
	"context"
	"errors"
	"fmt"

	"github.com/abgdnv/storefront/internal/domain"
	serrors "github.com/abgdnv/storefront/internal/errors"
)

func (c *Client) GetCollections(ctx context.Context, _ ...CallOption) (*Result[domain.CollectionList], error) {
	collections, err := c.catalog.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return success(ctx, domain.CollectionList{Items: collections, Next: nil}), nil
}

func (c *Client) GetCollectionByID(ctx context.Context, id string, opts ...CallOption) (*Result[domain.CollectionDetail], error) {
	co := applyCallOptions(opts)
	collection, err := c.catalog.FindCollectionByID(ctx, id)
	if errors.Is(err, serrors.ErrCollectionNotFound) {
		return notFound[domain.CollectionDetail](ctx, co)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find collection %s: %w", id, err)
	}
	// product listing per collection is not implemented
	return success(ctx, domain.CollectionDetail{Collection: *collection, Products: []domain.Product{}}), nil
}
