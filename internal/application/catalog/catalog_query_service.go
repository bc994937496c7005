package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const allCategoriesCacheKey = "all"

// CatalogQueryService serves the public storefront reads
type CatalogQueryService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	imageRepo    catalog.ProductImageRepository
	storage      ObjectStorageService
	cache        CatalogCache
	logger       *zap.Logger
}

// NewCatalogQueryService creates a new CatalogQueryService
func NewCatalogQueryService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	imageRepo catalog.ProductImageRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *CatalogQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogQueryService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		storage:      storage,
		logger:       logger,
	}
}

// SetCache enables read-through caching of category and product lists
func (s *CatalogQueryService) SetCache(cache CatalogCache) {
	s.cache = cache
}

// ListCategories returns active categories ordered by sort order then name
func (s *CatalogQueryService) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetCategories(ctx)
		if err != nil {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryDTO, len(categories))
	for i := range categories {
		out[i] = ToCategoryDTO(&categories[i])
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, out); err != nil {
			s.logger.Warn("Catalog cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

// ListProducts returns the public products, optionally limited to one category
func (s *CatalogQueryService) ListProducts(ctx context.Context, categoryID *uuid.UUID) ([]ProductDTO, error) {
	cacheKey := allCategoriesCacheKey
	if categoryID != nil {
		cacheKey = categoryID.String()
	}
	if s.cache != nil {
		cached, ok, err := s.cache.GetProducts(ctx, cacheKey)
		if err != nil {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	products, err := s.productRepo.ListForPublic(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	categoryNames, err := s.activeCategoryNames(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	imagesByProduct, err := s.imageRepo.ListByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, s.toProductDTO(&products[i], imagesByProduct[products[i].ID], categoryNames))
	}

	if s.cache != nil {
		if err := s.cache.SetProducts(ctx, cacheKey, out); err != nil {
			s.logger.Warn("Catalog cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

// GetProductBySlug returns a single public product
func (s *CatalogQueryService) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	notFound := shared.NewNotFoundError("Product was not found.")

	product, err := s.productRepo.FindBySlug(ctx, catalog.NormalizeSlug(slug))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	if !product.Status.IsPublic() {
		return nil, notFound
	}

	categoryNames, err := s.activeCategoryNames(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := categoryNames[product.CategoryID]; !ok {
		return nil, notFound
	}

	images, err := s.imageRepo.ListByProductID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	dto := s.toProductDTO(product, images, categoryNames)
	return &dto, nil
}

func (s *CatalogQueryService) activeCategoryNames(ctx context.Context) (map[uuid.UUID]string, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (s *CatalogQueryService) toProductDTO(p *catalog.Product, images []catalog.ProductImage, categoryNames map[uuid.UUID]string) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Condition:   p.Condition.String(),
		Status:      p.Status.String(),
		CategoryID:  p.CategoryID,
		Images:      make([]ProductImageDTO, 0, len(images)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if name, ok := categoryNames[p.CategoryID]; ok {
		dto.CategoryName = &name
	}
	for _, img := range SortImages(images) {
		dto.Images = append(dto.Images, ProductImageDTO{
			ID:         img.ID,
			ObjectKey:  img.CloudStorageKey,
			DisplayURL: s.storage.BuildDisplayURL(img.CloudStorageKey),
			AltText:    img.AltText,
			SortOrder:  img.SortOrder,
			IsPrimary:  img.IsPrimary,
		})
	}
	return dto
}
