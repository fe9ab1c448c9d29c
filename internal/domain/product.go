// Package domain holds the storefront entities shared by the store, the commerce client and the transports.
package domain

import (
	"maps"
	"slices"
	"time"
)

// Timestamps carries the audit fields every entity exposes.
// DeletedAt is a soft-delete marker; nothing in the storefront sets it.
type Timestamps struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// ProductVariant is a purchasable configuration of a product, e.g. a size.
type ProductVariant struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Stock   int               `json:"stock"`
	Options map[string]string `json:"options"`
}

// Product is a catalog item. Price and Discount are in minor currency units.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Tagline       string           `json:"tagline"`
	Description   string           `json:"description"`
	Price         int64            `json:"price"`
	ImageURL      string           `json:"imageUrl"`
	Images        []string         `json:"images"`
	CollectionIDs []string         `json:"collectionIds"`
	Variants      []ProductVariant `json:"variants"`
	Discount      int64            `json:"discount"`
	Timestamps
}

// InCollection reports whether the product belongs to the collection.
func (p Product) InCollection(collectionID string) bool {
	return slices.Contains(p.CollectionIDs, collectionID)
}

// Clone returns a deep copy so callers cannot mutate seeded catalog data.
func (p Product) Clone() Product {
	c := p
	c.Images = cloneStrings(p.Images)
	c.CollectionIDs = cloneStrings(p.CollectionIDs)
	c.Variants = make([]ProductVariant, len(p.Variants))
	for i, v := range p.Variants {
		c.Variants[i] = v.Clone()
	}
	c.DeletedAt = cloneTime(p.DeletedAt)
	return c
}

// Clone returns a deep copy of the variant.
func (v ProductVariant) Clone() ProductVariant {
	c := v
	c.Options = maps.Clone(v.Options)
	if c.Options == nil {
		c.Options = map[string]string{}
	}
	return c
}

// Collection groups products for merchandising.
type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Timestamps
}

// Clone returns a copy of the collection.
func (c Collection) Clone() Collection {
	cp := c
	cp.DeletedAt = cloneTime(c.DeletedAt)
	return cp
}

// CollectionDetail is a collection together with its products.
type CollectionDetail struct {
	Collection
	Products []Product `json:"products"`
}

// ProductList is a page of products. Next is always nil: pagination is not implemented.
type ProductList struct {
	Items []Product `json:"items"`
	Next  *string   `json:"next"`
}

// CollectionList is a page of collections. Next is always nil.
type CollectionList struct {
	Items []Collection `json:"items"`
	Next  *string      `json:"next"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
