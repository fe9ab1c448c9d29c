package store

import (
	"context"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/domain"
	serrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedTime = time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewSeededCatalog(seedTime)
	require.NoError(t, err, "seed catalog must build")
	return c
}

func Test_Catalog_ListProducts_KeepsSeedOrder(t *testing.T) {
	c := newTestCatalog(t)

	list, err := c.ListProducts(context.Background())

	require.NoError(t, err)
	seed := SeedProducts(seedTime)
	require.Len(t, list, len(seed))
	for i := range seed {
		assert.Equal(t, seed[i].ID, list[i].ID)
	}
}

func Test_Catalog_FindProductByID(t *testing.T) {
	c := newTestCatalog(t)
	testCases := []struct {
		name        string
		id          string
		expectError error
	}{
		{name: "Success - product found", id: "astro-icon-zip-up-hoodie"},
		{name: "Error - product not found", id: "no-such-product", expectError: serrors.ErrProductNotFound},
		{name: "Error - empty id", id: "", expectError: serrors.ErrProductNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			found, err := c.FindProductByID(context.Background(), tc.id)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.id, found.ID)
		})
	}
}

func Test_Catalog_ReturnsCopies(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	p, err := c.FindProductByID(ctx, "astro-icon-zip-up-hoodie")
	require.NoError(t, err)
	p.Name = "changed"
	p.CollectionIDs[0] = "changed"
	p.Variants[0].Options["Size"] = "changed"

	again, err := c.FindProductByID(ctx, "astro-icon-zip-up-hoodie")
	require.NoError(t, err)
	assert.Equal(t, "Astro Icon Zip Up Hoodie", again.Name)
	assert.Equal(t, "apparel", again.CollectionIDs[0])
	assert.Equal(t, "XS", again.Variants[0].Options["Size"])
}

func Test_Catalog_FindCollectionByID(t *testing.T) {
	c := newTestCatalog(t)

	found, err := c.FindCollectionByID(context.Background(), "bestSellers")
	require.NoError(t, err)
	assert.Equal(t, "best-sellers", found.Slug)

	_, err = c.FindCollectionByID(context.Background(), "best-sellers")
	assert.ErrorIs(t, err, serrors.ErrCollectionNotFound)
}

func Test_Catalog_FindVariant(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	v, owner, err := c.FindVariant(ctx, "M")
	require.NoError(t, err)
	assert.Equal(t, "M", v.Name)
	assert.Equal(t, 20, v.Stock)
	assert.Equal(t, "astro-icon-zip-up-hoodie", owner.ID)

	v, owner, err = c.FindVariant(ctx, "astro-logo-tee-M")
	require.NoError(t, err)
	assert.Equal(t, "M", v.Options["Size"])
	assert.Equal(t, "astro-logo-tee", owner.ID)

	_, _, err = c.FindVariant(ctx, "missing")
	assert.ErrorIs(t, err, serrors.ErrVariantNotFound)
}

func Test_Catalog_FindProductVariant(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	_, owner, err := c.FindProductVariant(ctx, "astro-icon-zip-up-hoodie", "XL")
	require.NoError(t, err)
	assert.Equal(t, "astro-icon-zip-up-hoodie", owner.ID)

	_, _, err = c.FindProductVariant(ctx, "astro-logo-tee", "XL")
	assert.ErrorIs(t, err, serrors.ErrVariantNotFound, "variant owned by another product")

	_, _, err = c.FindProductVariant(ctx, "missing", "XL")
	assert.ErrorIs(t, err, serrors.ErrVariantNotFound)
}

func Test_NewCatalog_Validation(t *testing.T) {
	collections := []domain.Collection{{ID: "a"}, {ID: "b"}}
	variant := func(id string) []domain.ProductVariant {
		return []domain.ProductVariant{{ID: id, Name: id}}
	}
	testCases := []struct {
		name        string
		collections []domain.Collection
		products    []domain.Product
		expectError error
	}{
		{
			name:        "Success - valid catalog",
			collections: collections,
			products: []domain.Product{
				{ID: "p1", CollectionIDs: []string{"a"}, Variants: variant("v1")},
				{ID: "p2", CollectionIDs: []string{"a", "b"}, Variants: variant("v2")},
			},
		},
		{
			name:        "Error - duplicate collection",
			collections: []domain.Collection{{ID: "a"}, {ID: "a"}},
			expectError: serrors.ErrDuplicateID,
		},
		{
			name:        "Error - duplicate product",
			collections: collections,
			products:    []domain.Product{{ID: "p1"}, {ID: "p1"}},
			expectError: serrors.ErrDuplicateID,
		},
		{
			name:        "Error - variant id shared across products",
			collections: collections,
			products: []domain.Product{
				{ID: "p1", Variants: variant("default")},
				{ID: "p2", Variants: variant("default")},
			},
			expectError: serrors.ErrDuplicateID,
		},
		{
			name:        "Error - unknown collection",
			collections: collections,
			products:    []domain.Product{{ID: "p1", CollectionIDs: []string{"c"}}},
			expectError: serrors.ErrUnknownCollection,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCatalog(tc.collections, tc.products)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}
