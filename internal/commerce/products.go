package commerce

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/abgdnv/storefront/internal/domain"
	serrors "github.com/abgdnv/storefront/internal/errors"
	"golang.org/x/text/collate"
)

// SortKey names the product field GetProducts sorts by.
type SortKey string

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortByPrice SortKey = "price"
	SortByName  SortKey = "name"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ProductQuery filters and sorts GetProducts.
//
// An empty CollectionID and a nil IDs slice do not filter. A non-nil empty IDs slice
// matches nothing. Filters combine with AND. Sorting only happens when both Sort and
// Order are set, and an unknown Sort leaves catalog order.
type ProductQuery struct {
	CollectionID string
	IDs          []string
	Sort         SortKey
	Order        SortOrder
}

func (c *Client) GetProducts(ctx context.Context, query ProductQuery, _ ...CallOption) (*Result[domain.ProductList], error) {
	products, err := c.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	items := filterProducts(products, query)
	if query.Sort != "" && query.Order != "" {
		c.sortProducts(items, query.Sort, query.Order)
	}

	return success(ctx, domain.ProductList{Items: items, Next: nil}), nil
}

func (c *Client) GetProductByID(ctx context.Context, id string, opts ...CallOption) (*Result[domain.Product], error) {
	co := applyCallOptions(opts)
	product, err := c.catalog.FindProductByID(ctx, id)
	if errors.Is(err, serrors.ErrProductNotFound) {
		return notFound[domain.Product](ctx, co)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", id, err)
	}
	return success(ctx, *product), nil
}

func filterProducts(products []domain.Product, query ProductQuery) []domain.Product {
	items := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if query.CollectionID != "" && !p.InCollection(query.CollectionID) {
			continue
		}
		if query.IDs != nil && !slices.Contains(query.IDs, p.ID) {
			continue
		}
		items = append(items, p)
	}
	return items
}

// sortProducts sorts in place and keeps catalog order between equal keys.
func (c *Client) sortProducts(items []domain.Product, key SortKey, order SortOrder) {
	var compare func(a, b domain.Product) int
	switch key {
	case SortByPrice:
		compare = func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortByName:
		// a Collator keeps internal buffers, so each sort gets its own
		col := collate.New(c.locale)
		compare = func(a, b domain.Product) int { return col.CompareString(a.Name, b.Name) }
	default:
		return
	}

	switch order {
	case OrderAsc:
		slices.SortStableFunc(items, compare)
	case OrderDesc:
		slices.SortStableFunc(items, func(a, b domain.Product) int { return compare(b, a) })
	}
}
