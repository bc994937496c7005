package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its normalized slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// ListActive returns active categories ordered by sort order then name
	ListActive(ctx context.Context) ([]Category, error)

	// ListAll returns every category, including inactive ones
	ListAll(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its normalized slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// ExistsBySlug checks whether a slug is taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// ListForPublic returns available and sold products in active categories,
	// most recently updated first. A nil categoryID means all categories.
	ListForPublic(ctx context.Context, categoryID *uuid.UUID) ([]Product, error)

	// ListForAdmin returns all products, optionally filtered by status,
	// most recently updated first
	ListForAdmin(ctx context.Context, status *ProductStatus) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// ProductImageRepository defines the interface for product image persistence
type ProductImageRepository interface {
	// FindByID finds an image by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductImage, error)

	// ListByProductID returns a product's images ordered by sort order then creation time
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)

	// ListByProductIDs returns images for several products grouped by product ID
	ListByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]ProductImage, error)

	// CountByProductID counts a product's images
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)

	// Save creates or updates an image
	Save(ctx context.Context, image *ProductImage) error

	// Delete removes an image row
	Delete(ctx context.Context, id uuid.UUID) error
}
