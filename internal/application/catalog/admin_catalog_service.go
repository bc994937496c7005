package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AdminCatalogServiceConfig holds configuration for the admin catalog service
type AdminCatalogServiceConfig struct {
	// UploadURLExpiry is how long a presigned upload URL stays valid
	UploadURLExpiry time.Duration
	// MaxImagesPerProduct caps the gallery size
	MaxImagesPerProduct int
}

// DefaultAdminCatalogServiceConfig returns the default configuration
func DefaultAdminCatalogServiceConfig() AdminCatalogServiceConfig {
	return AdminCatalogServiceConfig{
		UploadURLExpiry:     10 * time.Minute,
		MaxImagesPerProduct: catalog.MaxImagesPerProduct,
	}
}

// AdminCatalogService handles product, category and image management for shop admins
type AdminCatalogService struct {
	productRepo     catalog.ProductRepository
	categoryRepo    catalog.CategoryRepository
	imageRepo       catalog.ProductImageRepository
	storage         ObjectStorageService
	cache           CatalogCache
	clock           shared.Clock
	config          AdminCatalogServiceConfig
	logger          *zap.Logger
	businessMetrics *telemetry.BusinessMetrics
}

// NewAdminCatalogService creates a new AdminCatalogService
func NewAdminCatalogService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	imageRepo catalog.ProductImageRepository,
	storage ObjectStorageService,
	clock shared.Clock,
	logger *zap.Logger,
) *AdminCatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminCatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		storage:      storage,
		clock:        clock,
		config:       DefaultAdminCatalogServiceConfig(),
		logger:       logger,
	}
}

// SetConfig sets the service configuration
func (s *AdminCatalogService) SetConfig(config AdminCatalogServiceConfig) {
	s.config = config
}

// SetCache enables invalidation of the public catalog cache on writes
func (s *AdminCatalogService) SetCache(cache CatalogCache) {
	s.cache = cache
}

// SetBusinessMetrics sets the business metrics collector
func (s *AdminCatalogService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// CreateProduct lists a new product and returns its ID
func (s *AdminCatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (uuid.UUID, error) {
	slug := catalog.NormalizeSlug(input.Slug)
	exists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, shared.NewConflictError(fmt.Sprintf("Product slug '%s' already exists.", input.Slug))
	}

	if err := s.requireActiveCategory(ctx, input.CategoryID); err != nil {
		return uuid.Nil, err
	}

	product, err := catalog.NewProduct(
		input.Title,
		input.Slug,
		input.Description,
		input.Price,
		input.Condition,
		input.CategoryID,
		input.AdminUserID,
		s.clock.Now(),
	)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return uuid.Nil, err
	}
	s.invalidateCache(ctx)

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug))
	return product.ID, nil
}

// UpdateProduct replaces the descriptive fields of a product
func (s *AdminCatalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) error {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return err
	}

	slug := catalog.NormalizeSlug(input.Slug)
	if slug != product.Slug {
		exists, err := s.productRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewConflictError(fmt.Sprintf("Product slug '%s' already exists.", input.Slug))
		}
	}
	if err := s.requireActiveCategory(ctx, input.CategoryID); err != nil {
		return err
	}

	if err := product.UpdateDetails(
		input.Title,
		input.Slug,
		input.Description,
		input.Price,
		input.Condition,
		input.CategoryID,
		input.AdminUserID,
		s.clock.Now(),
	); err != nil {
		return err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// UpdateProductStatus moves a product between available, sold and off shelf
func (s *AdminCatalogService) UpdateProductStatus(ctx context.Context, productID uuid.UUID, status catalog.ProductStatus, adminUserID *uuid.UUID) error {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err := product.ChangeStatus(status, adminUserID, s.clock.Now()); err != nil {
		return err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	s.invalidateCache(ctx)

	s.logger.Info("Product status changed",
		zap.String("product_id", productID.String()),
		zap.String("status", status.String()))
	return nil
}

// CreateProductImageUploadURL reserves an object key for a new product image
// and returns a presigned PUT URL the browser uploads to directly
func (s *AdminCatalogService) CreateProductImageUploadURL(ctx context.Context, input CreateImageUploadURLInput) (*ImageUploadURLResult, error) {
	if _, err := s.findProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.FileName) == "" {
		return nil, shared.NewValidationError("INVALID_FILE_NAME", "FileName is required.")
	}
	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		return nil, shared.NewValidationError("INVALID_CONTENT_TYPE", "ContentType is required.")
	}
	if !catalog.IsAllowedImageContentType(contentType) {
		return nil, shared.NewConflictError("Only JPEG, PNG and WEBP images are allowed.")
	}

	count, err := s.imageRepo.CountByProductID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.config.MaxImagesPerProduct) {
		return nil, s.imageLimitError()
	}

	objectKey := catalog.BuildProductImageKey(input.ProductID, input.FileName)
	putURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, objectKey, contentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	return &ImageUploadURLResult{
		ObjectKey:        objectKey,
		PutURL:           putURL,
		ExpiresInSeconds: int(s.config.UploadURLExpiry.Seconds()),
		ExpiresAt:        expiresAt,
		DisplayURL:       s.storage.BuildDisplayURL(objectKey),
	}, nil
}

// AddProductImage registers an uploaded object as a product image
func (s *AdminCatalogService) AddProductImage(ctx context.Context, input AddProductImageInput) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "add_product_image",
		telemetry.SpanAttrProductID, input.ProductID.String(),
		telemetry.SpanAttrObjectKey, input.ObjectKey)
	defer span.End()

	if _, err := s.findProduct(ctx, input.ProductID); err != nil {
		return err
	}

	objectKey := strings.TrimSpace(input.ObjectKey)
	if objectKey == "" {
		return shared.NewValidationError("INVALID_OBJECT_KEY", "ObjectKey is required.")
	}
	if !strings.HasPrefix(objectKey, catalog.ProductImageKeyPrefix(input.ProductID)) {
		return shared.NewConflictError("ObjectKey does not belong to the target product.")
	}
	if input.SortOrder < 0 {
		return shared.NewValidationError("INVALID_SORT_ORDER", "SortOrder must be zero or greater.")
	}

	images, err := s.imageRepo.ListByProductID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if len(images) >= s.config.MaxImagesPerProduct {
		return s.imageLimitError()
	}
	if input.IsPrimary {
		for _, img := range images {
			if img.IsPrimary {
				return shared.NewConflictError("Product already has a primary image.")
			}
		}
	}

	image, err := catalog.NewProductImage(
		input.ProductID,
		objectKey,
		input.AltText,
		input.SortOrder,
		input.IsPrimary,
		input.AdminUserID,
		s.clock.Now(),
	)
	if err != nil {
		return err
	}

	if err := s.imageRepo.Save(ctx, image); err != nil {
		return err
	}
	s.invalidateCache(ctx)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordProductImageAdded(ctx)
	}
	s.logger.Info("Product image added",
		zap.String("product_id", input.ProductID.String()),
		zap.String("object_key", objectKey),
		zap.Bool("primary", input.IsPrimary))
	return nil
}

// DeleteProductImage removes an image row and its stored object. A failure to
// delete the object is logged; the row is already gone and the object is orphaned.
func (s *AdminCatalogService) DeleteProductImage(ctx context.Context, productID, imageID uuid.UUID, adminUserID *uuid.UUID) error {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError(fmt.Sprintf("Image '%s' was not found.", imageID))
		}
		return err
	}
	if image.ProductID != productID {
		return shared.NewNotFoundError(fmt.Sprintf("Image '%s' was not found for product '%s'.", imageID, productID))
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}
	s.invalidateCache(ctx)

	if err := s.storage.DeleteObject(ctx, image.CloudStorageKey); err != nil {
		s.logger.Warn("Failed to delete image object",
			zap.String("object_key", image.CloudStorageKey),
			zap.Error(err))
	}

	fields := []zap.Field{
		zap.String("product_id", productID.String()),
		zap.String("image_id", imageID.String()),
	}
	if adminUserID != nil {
		fields = append(fields, zap.String("admin_user_id", adminUserID.String()))
	}
	s.logger.Info("Product image deleted", fields...)
	return nil
}

// ListProductsForAdmin returns every product, optionally filtered by status
func (s *AdminCatalogService) ListProductsForAdmin(ctx context.Context, status *catalog.ProductStatus) ([]AdminProductListItem, error) {
	products, err := s.productRepo.ListForAdmin(ctx, status)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	imagesByProduct, err := s.imageRepo.ListByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]AdminProductListItem, 0, len(products))
	for _, p := range products {
		images := imagesByProduct[p.ID]
		item := AdminProductListItem{
			ID:         p.ID,
			Title:      p.Title,
			Slug:       p.Slug,
			Price:      p.Price,
			Condition:  p.Condition.String(),
			Status:     p.Status.String(),
			ImageCount: len(images),
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
		}
		if name, ok := categoryNames[p.CategoryID]; ok {
			item.CategoryName = &name
		}
		if cover := coverImage(images); cover != nil {
			url := s.storage.BuildDisplayURL(cover.CloudStorageKey)
			item.PrimaryImageURL = &url
		}
		items = append(items, item)
	}
	return items, nil
}

// ListCategories returns every category, including inactive ones
func (s *AdminCatalogService) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryDTO, len(categories))
	for i := range categories {
		out[i] = ToCategoryDTO(&categories[i])
	}
	return out, nil
}

// CreateCategory adds a category and returns its ID
func (s *AdminCatalogService) CreateCategory(ctx context.Context, input CreateCategoryInput) (uuid.UUID, error) {
	if err := s.requireFreeCategorySlug(ctx, input.Slug, uuid.Nil); err != nil {
		return uuid.Nil, err
	}
	if err := s.requireParentCategory(ctx, input.ParentCategoryID); err != nil {
		return uuid.Nil, err
	}

	category, err := catalog.NewCategory(input.Name, input.Slug, input.ParentCategoryID, input.SortOrder, input.IsActive, s.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return uuid.Nil, err
	}
	s.invalidateCache(ctx)
	return category.ID, nil
}

// UpdateCategory replaces the editable fields of a category
func (s *AdminCatalogService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) error {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError(fmt.Sprintf("Category '%s' was not found.", categoryID))
		}
		return err
	}
	if err := s.requireFreeCategorySlug(ctx, input.Slug, categoryID); err != nil {
		return err
	}
	if err := s.requireParentCategory(ctx, input.ParentCategoryID); err != nil {
		return err
	}

	if err := category.Update(input.Name, input.Slug, input.ParentCategoryID, input.SortOrder, input.IsActive, s.clock.Now()); err != nil {
		return err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *AdminCatalogService) findProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError(fmt.Sprintf("Product '%s' was not found.", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *AdminCatalogService) requireActiveCategory(ctx context.Context, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if category == nil || !category.IsActive {
		return shared.NewNotFoundError(fmt.Sprintf("Category '%s' was not found or inactive.", categoryID))
	}
	return nil
}

func (s *AdminCatalogService) requireFreeCategorySlug(ctx context.Context, slug string, self uuid.UUID) error {
	existing, err := s.categoryRepo.FindBySlug(ctx, catalog.NormalizeSlug(slug))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return shared.NewConflictError(fmt.Sprintf("Category slug '%s' already exists.", slug))
	}
	return nil
}

func (s *AdminCatalogService) requireParentCategory(ctx context.Context, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *parentID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError(fmt.Sprintf("Parent category '%s' was not found.", *parentID))
		}
		return err
	}
	return nil
}

func (s *AdminCatalogService) imageLimitError() error {
	return shared.NewConflictError(fmt.Sprintf("A product can have at most %d images.", s.config.MaxImagesPerProduct))
}

func (s *AdminCatalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

// coverImage picks the primary image, falling back to the first in gallery order
func coverImage(images []catalog.ProductImage) *catalog.ProductImage {
	for i := range images {
		if images[i].IsPrimary {
			return &images[i]
		}
	}
	if len(images) > 0 {
		return &images[0]
	}
	return nil
}
