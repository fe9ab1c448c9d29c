// Package store provides interfaces and implementations for storefront storage operations.
package store

import (
	"context"

	"github.com/abgdnv/storefront/internal/domain"
)

// CatalogStore is an interface for read access to the product catalog.
// Implementations return copies; mutating a returned value never changes the catalog.
type CatalogStore interface {
	// ListProducts returns all products in catalog order.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// FindProductByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindProductByID(ctx context.Context, id string) (*domain.Product, error)

	// ListCollections returns all collections in catalog order.
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// FindCollectionByID retrieves a single collection by its unique identifier.
	// Returns ErrCollectionNotFound if no collection exists with the given ID.
	FindCollectionByID(ctx context.Context, id string) (*domain.Collection, error)

	// FindVariant looks a variant up by id across all products and returns it with its owner.
	// Returns ErrVariantNotFound if no product owns a variant with the given ID.
	FindVariant(ctx context.Context, variantID string) (*domain.ProductVariant, *domain.Product, error)

	// FindProductVariant looks a variant up within a single product.
	// Returns ErrVariantNotFound if the product does not exist or has no such variant.
	FindProductVariant(ctx context.Context, productID, variantID string) (*domain.ProductVariant, *domain.Product, error)
}

// OrderStore is an interface for order storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type OrderStore interface {
	// Save stores the order, replacing any order with the same ID.
	Save(ctx context.Context, order domain.Order) error

	// FindByID retrieves a single order by its unique identifier.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}
