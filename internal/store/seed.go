package store

import (
	"time"

	"github.com/abgdnv/storefront/internal/domain"
)

var apparelSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}

// sizeVariants builds one variant per apparel size. Stock grows by ten per size.
// A non-empty prefix namespaces the ids so that variant ids stay unique across products.
func sizeVariants(prefix string) []domain.ProductVariant {
	variants := make([]domain.ProductVariant, len(apparelSizes))
	for i, size := range apparelSizes {
		id := size
		if prefix != "" {
			id = prefix + "-" + size
		}
		variants[i] = domain.ProductVariant{
			ID:      id,
			Name:    size,
			Stock:   i * 10,
			Options: map[string]string{"Size": size},
		}
	}
	return variants
}

func defaultVariant(productID string) []domain.ProductVariant {
	return []domain.ProductVariant{{
		ID:      productID + "-default",
		Name:    "Default",
		Stock:   20,
		Options: map[string]string{},
	}}
}

// SeedCollections returns the collections the storefront starts with.
func SeedCollections(now time.Time) []domain.Collection {
	ts := domain.Timestamps{CreatedAt: now, UpdatedAt: now}
	return []domain.Collection{
		{
			ID:          "apparel",
			Name:        "Apparel",
			Slug:        "apparel",
			Description: "Wear your love for Astro on your sleeve.",
			ImageURL:    "https://a.storyblok.com/f/297215/1193x1193/e53d6d5925/shirts.png",
			Timestamps:  ts,
		},
		{
			ID:          "stickers",
			Name:        "Stickers",
			Slug:        "stickers",
			Description: "Load up those laptop lids with Astro pride.",
			ImageURL:    "https://a.storyblok.com/f/297215/748x748/ef62bea863/astro-sticker-pack.png",
			Timestamps:  ts,
		},
		{
			ID:          "bestSellers",
			Name:        "Best Sellers",
			Slug:        "best-sellers",
			Description: "You'll love these.",
			ImageURL:    "https://a.storyblok.com/f/297215/426x426/60f0ab28af/astro-houston-sticker.png",
			Timestamps:  ts,
		},
	}
}

// SeedProducts returns the products the storefront starts with.
func SeedProducts(now time.Time) []domain.Product {
	ts := domain.Timestamps{CreatedAt: now, UpdatedAt: now}
	return []domain.Product{
		{
			ID:            "astro-icon-zip-up-hoodie",
			Name:          "Astro Icon Zip Up Hoodie",
			Slug:          "astro-icon-zip-up-hoodie",
			Tagline:       "No need to compress this .zip. The Zip Up Hoodie is a comfortable fit and fabric for all sizes.",
			Price:         4500,
			ImageURL:      "https://a.storyblok.com/f/297215/919x919/c44a30d7ed/astro-zip-up-hoodie.png",
			Images:        []string{},
			CollectionIDs: []string{"apparel", "bestSellers"},
			Variants:      sizeVariants(""),
			Timestamps:    ts,
		},
		{
			ID:            "astro-sticker-sheet",
			Name:          "Astro Sticker Sheet",
			Slug:          "astro-sticker-sheet",
			Tagline:       "A whole sheet of Astro for every lid you own.",
			Price:         1000,
			ImageURL:      "https://a.storyblok.com/f/297215/748x748/ef62bea863/astro-sticker-pack.png",
			Images:        []string{},
			CollectionIDs: []string{"stickers", "bestSellers"},
			Variants:      defaultVariant("astro-sticker-sheet"),
			Timestamps:    ts,
		},
		{
			ID:            "astro-logo-tee",
			Name:          "Astro Logo Tee",
			Slug:          "astro-logo-tee",
			Tagline:       "The classic logo on a soft cotton tee.",
			Price:         2500,
			ImageURL:      "https://a.storyblok.com/f/297215/1193x1193/e53d6d5925/shirts.png",
			Images:        []string{},
			CollectionIDs: []string{"apparel"},
			Variants:      sizeVariants("astro-logo-tee"),
			Timestamps:    ts,
		},
		{
			ID:            "houston-sticker",
			Name:          "Houston Sticker",
			Slug:          "houston-sticker",
			Tagline:       "Houston, we have a sticker.",
			Price:         500,
			ImageURL:      "https://a.storyblok.com/f/297215/426x426/60f0ab28af/astro-houston-sticker.png",
			Images:        []string{},
			CollectionIDs: []string{"stickers"},
			Variants:      defaultVariant("houston-sticker"),
			Timestamps:    ts,
		},
	}
}

// NewSeededCatalog builds the catalog from the seed data, stamped with now.
func NewSeededCatalog(now time.Time) (*Catalog, error) {
	return NewCatalog(SeedCollections(now), SeedProducts(now))
}
