package store

import (
	"context"
	"fmt"

	"github.com/abgdnv/storefront/internal/domain"
	"github.com/abgdnv/storefront/internal/errors"
)

type variantRef struct {
	product int
	variant int
}

// Catalog implements CatalogStore over data fixed at construction time.
// It is never mutated after NewCatalog returns, so it needs no locking.
type Catalog struct {
	products    []domain.Product
	collections []domain.Collection

	productIdx    map[string]int
	collectionIdx map[string]int
	variantIdx    map[string]variantRef
}

var _ CatalogStore = (*Catalog)(nil)

// NewCatalog builds a catalog from the given collections and products, keeping their order.
// Product, collection and variant ids must be unique (variant ids across all products),
// and every product collection id must name one of the collections.
func NewCatalog(collections []domain.Collection, products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products:      make([]domain.Product, 0, len(products)),
		collections:   make([]domain.Collection, 0, len(collections)),
		productIdx:    make(map[string]int, len(products)),
		collectionIdx: make(map[string]int, len(collections)),
		variantIdx:    make(map[string]variantRef),
	}

	for _, col := range collections {
		if _, exists := c.collectionIdx[col.ID]; exists {
			return nil, fmt.Errorf("collection %q: %w", col.ID, errors.ErrDuplicateID)
		}
		c.collectionIdx[col.ID] = len(c.collections)
		c.collections = append(c.collections, col.Clone())
	}

	for _, p := range products {
		if _, exists := c.productIdx[p.ID]; exists {
			return nil, fmt.Errorf("product %q: %w", p.ID, errors.ErrDuplicateID)
		}
		for _, colID := range p.CollectionIDs {
			if _, ok := c.collectionIdx[colID]; !ok {
				return nil, fmt.Errorf("product %q references collection %q: %w", p.ID, colID, errors.ErrUnknownCollection)
			}
		}
		pi := len(c.products)
		for vi, v := range p.Variants {
			if owner, exists := c.variantIdx[v.ID]; exists {
				return nil, fmt.Errorf("variant %q of product %q already owned by %q: %w",
					v.ID, p.ID, c.products[owner.product].ID, errors.ErrDuplicateID)
			}
			c.variantIdx[v.ID] = variantRef{product: pi, variant: vi}
		}
		c.productIdx[p.ID] = pi
		c.products = append(c.products, p.Clone())
	}

	return c, nil
}

// ListProducts returns all products in catalog order.
func (c *Catalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	list := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		list[i] = p.Clone()
	}
	return list, nil
}

// FindProductByID retrieves a product by its ID.
func (c *Catalog) FindProductByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := c.productIdx[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	p := c.products[i].Clone()
	return &p, nil
}

// ListCollections returns all collections in catalog order.
func (c *Catalog) ListCollections(_ context.Context) ([]domain.Collection, error) {
	list := make([]domain.Collection, len(c.collections))
	for i, col := range c.collections {
		list[i] = col.Clone()
	}
	return list, nil
}

// FindCollectionByID retrieves a collection by its ID.
func (c *Catalog) FindCollectionByID(_ context.Context, id string) (*domain.Collection, error) {
	i, ok := c.collectionIdx[id]
	if !ok {
		return nil, errors.ErrCollectionNotFound
	}
	col := c.collections[i].Clone()
	return &col, nil
}

// FindVariant looks a variant up by id alone.
func (c *Catalog) FindVariant(_ context.Context, variantID string) (*domain.ProductVariant, *domain.Product, error) {
	ref, ok := c.variantIdx[variantID]
	if !ok {
		return nil, nil, fmt.Errorf("product variant %s: %w", variantID, errors.ErrVariantNotFound)
	}
	return c.resolve(ref)
}

// FindProductVariant looks a variant up within the given product.
func (c *Catalog) FindProductVariant(_ context.Context, productID, variantID string) (*domain.ProductVariant, *domain.Product, error) {
	ref, ok := c.variantIdx[variantID]
	if !ok || c.products[ref.product].ID != productID {
		return nil, nil, fmt.Errorf("product variant %s of product %s: %w", variantID, productID, errors.ErrVariantNotFound)
	}
	return c.resolve(ref)
}

func (c *Catalog) resolve(ref variantRef) (*domain.ProductVariant, *domain.Product, error) {
	p := c.products[ref.product].Clone()
	v := p.Variants[ref.variant]
	return &v, &p, nil
}
