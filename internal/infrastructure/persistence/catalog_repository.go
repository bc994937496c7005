package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a category by its slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := conn(ctx, r.db).Where("slug = ?", catalog.NormalizeSlug(slug)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListActive returns active categories ordered by sort order then name
func (r *GormCategoryRepository) ListActive(ctx context.Context) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	if err := conn(ctx, r.db).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(categoryModels), nil
}

// ListAll returns every category, active or not
func (r *GormCategoryRepository) ListAll(ctx context.Context) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	if err := conn(ctx, r.db).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(categoryModels), nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	model := models.CategoryModelFromDomain(category)
	return duplicateAsConflict(conn(ctx, r.db).Save(model).Error,
		fmt.Sprintf("Category slug '%s' already exists.", category.Slug))
}

func categoriesToDomain(categoryModels []models.CategoryModel) []catalog.Category {
	categories := make([]catalog.Category, len(categoryModels))
	for i, m := range categoryModels {
		categories[i] = *m.ToDomain()
	}
	return categories
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a product by its slug regardless of status
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := conn(ctx, r.db).Where("slug = ?", catalog.NormalizeSlug(slug)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsBySlug checks if a product with the given slug exists
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.ProductModel{}).
		Where("slug = ?", catalog.NormalizeSlug(slug)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForPublic returns storefront-visible products in active categories,
// most recently updated first.
func (r *GormProductRepository) ListForPublic(ctx context.Context, categoryID *uuid.UUID) ([]catalog.Product, error) {
	query := conn(ctx, r.db).
		Model(&models.ProductModel{}).
		Select("products.*").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.is_active = ?", true).
		Where("products.status IN ?", catalog.PublicStatuses())
	if categoryID != nil {
		query = query.Where("products.category_id = ?", *categoryID)
	}

	var productModels []models.ProductModel
	if err := query.Order("products.updated_at DESC").Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToDomain(productModels), nil
}

// ListForAdmin returns all products, optionally filtered by status, most
// recently updated first.
func (r *GormProductRepository) ListForAdmin(ctx context.Context, status *catalog.ProductStatus) ([]catalog.Product, error) {
	query := conn(ctx, r.db).Model(&models.ProductModel{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var productModels []models.ProductModel
	if err := query.Order("updated_at DESC").Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToDomain(productModels), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return duplicateAsConflict(conn(ctx, r.db).Save(model).Error,
		fmt.Sprintf("Product slug '%s' already exists.", product.Slug))
}

func productsToDomain(productModels []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(productModels))
	for i, m := range productModels {
		products[i] = *m.ToDomain()
	}
	return products
}

// GormProductImageRepository implements ProductImageRepository using GORM
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewGormProductImageRepository creates a new GormProductImageRepository
func NewGormProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// FindByID finds a product image by its ID
func (r *GormProductImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductImage, error) {
	var model models.ProductImageModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByProductID returns a product's images ordered by sort order then creation time
func (r *GormProductImageRepository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	var imageModels []models.ProductImageModel
	if err := conn(ctx, r.db).
		Where("product_id = ?", productID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&imageModels).Error; err != nil {
		return nil, err
	}
	images := make([]catalog.ProductImage, len(imageModels))
	for i, m := range imageModels {
		images[i] = *m.ToDomain()
	}
	return images, nil
}

// ListByProductIDs loads the images of several products in one query, grouped
// by product and ordered like ListByProductID.
func (r *GormProductImageRepository) ListByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]catalog.ProductImage, error) {
	result := make(map[uuid.UUID][]catalog.ProductImage, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var imageModels []models.ProductImageModel
	if err := conn(ctx, r.db).
		Where("product_id IN ?", productIDs).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&imageModels).Error; err != nil {
		return nil, err
	}
	for _, m := range imageModels {
		result[m.ProductID] = append(result[m.ProductID], *m.ToDomain())
	}
	return result, nil
}

// CountByProductID counts a product's images
func (r *GormProductImageRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.ProductImageModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product image
func (r *GormProductImageRepository) Save(ctx context.Context, image *catalog.ProductImage) error {
	model := models.ProductImageModelFromDomain(image)
	return duplicateAsConflict(conn(ctx, r.db).Save(model).Error,
		"Concurrent update detected. The product may already have a primary image.")
}

// Delete deletes a product image
func (r *GormProductImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ProductImageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure the repositories implement the domain interfaces
var (
	_ catalog.CategoryRepository     = (*GormCategoryRepository)(nil)
	_ catalog.ProductRepository      = (*GormProductRepository)(nil)
	_ catalog.ProductImageRepository = (*GormProductImageRepository)(nil)
)
