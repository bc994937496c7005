package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

type seedCategory struct {
	name      string
	slug      string
	sortOrder int
}

type seedImage struct {
	key     string
	altText string
}

type seedProduct struct {
	title        string
	slug         string
	description  string
	price        string
	condition    catalog.ProductCondition
	status       catalog.ProductStatus
	categorySlug string
	image        seedImage
}

var mockCategories = []seedCategory{
	{name: "Electronics", slug: "electronics", sortOrder: 1},
	{name: "Furniture", slug: "furniture", sortOrder: 2},
	{name: "Home Appliances", slug: "home-appliances", sortOrder: 3},
}

var mockProducts = []seedProduct{
	{
		title:        "iPhone 13 128GB",
		slug:         "iphone-13-128gb",
		description:  "Well maintained iPhone 13, battery health 88%, no major scratches.",
		price:        "420",
		condition:    catalog.ConditionGood,
		status:       catalog.ProductStatusAvailable,
		categorySlug: "electronics",
		image:        seedImage{key: "products/mock/iphone13.jpg", altText: "iPhone 13 front view"},
	},
	{
		title:        "Ergonomic Office Chair",
		slug:         "ergonomic-office-chair",
		description:  "Mesh ergonomic chair with adjustable armrest and lumbar support.",
		price:        "95",
		condition:    catalog.ConditionFair,
		status:       catalog.ProductStatusSold,
		categorySlug: "furniture",
		image:        seedImage{key: "products/mock/chair01.jpg", altText: "Office chair side view"},
	},
	{
		title:        "Panasonic Microwave Oven",
		slug:         "panasonic-microwave-oven",
		description:  "Compact microwave, fully working, suitable for dorm or small kitchen.",
		price:        "70",
		condition:    catalog.ConditionLikeNew,
		status:       catalog.ProductStatusAvailable,
		categorySlug: "home-appliances",
		image:        seedImage{key: "products/mock/micro001.jpg", altText: "Microwave on table"},
	},
}

// SeedResult reports how many rows a Seed call inserted
type SeedResult struct {
	Categories int
	Products   int
	Images     int
}

// Seed inserts the mock catalog. Rows are matched by slug, so running it
// again only fills in what is missing.
func Seed(ctx context.Context, db *Database, clock shared.Clock) (*SeedResult, error) {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	result := &SeedResult{}

	err := db.Transaction(ctx, func(ctx context.Context) error {
		categoryRepo := NewGormCategoryRepository(db.DB)
		productRepo := NewGormProductRepository(db.DB)
		imageRepo := NewGormProductImageRepository(db.DB)
		now := clock.Now()

		categoriesBySlug := make(map[string]*catalog.Category, len(mockCategories))
		for _, sc := range mockCategories {
			existing, err := categoryRepo.FindBySlug(ctx, sc.slug)
			if err == nil {
				categoriesBySlug[sc.slug] = existing
				continue
			}
			if !errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("find category %s: %w", sc.slug, err)
			}
			category, err := catalog.NewCategory(sc.name, sc.slug, nil, sc.sortOrder, true, now)
			if err != nil {
				return err
			}
			if err := categoryRepo.Save(ctx, category); err != nil {
				return fmt.Errorf("save category %s: %w", sc.slug, err)
			}
			categoriesBySlug[sc.slug] = category
			result.Categories++
		}

		for _, sp := range mockProducts {
			exists, err := productRepo.ExistsBySlug(ctx, sp.slug)
			if err != nil {
				return fmt.Errorf("check product %s: %w", sp.slug, err)
			}
			if exists {
				continue
			}
			product, err := catalog.NewProduct(
				sp.title, sp.slug, sp.description,
				decimal.RequireFromString(sp.price),
				sp.condition,
				categoriesBySlug[sp.categorySlug].ID,
				nil,
				now,
			)
			if err != nil {
				return err
			}
			if err := product.ChangeStatus(sp.status, nil, now); err != nil {
				return err
			}
			if err := productRepo.Save(ctx, product); err != nil {
				return fmt.Errorf("save product %s: %w", sp.slug, err)
			}
			result.Products++

			image, err := catalog.NewProductImage(product.ID, sp.image.key, shared.StringPtr(sp.image.altText), 1, true, nil, now)
			if err != nil {
				return err
			}
			if err := imageRepo.Save(ctx, image); err != nil {
				return fmt.Errorf("save image for %s: %w", sp.slug, err)
			}
			result.Images++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
