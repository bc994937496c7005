package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mocks
// ============================================================================

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ListForPublic(ctx context.Context, categoryID *uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListForAdmin(ctx context.Context, status *catalog.ProductStatus) ([]catalog.Product, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

var _ catalog.ProductRepository = (*MockProductRepository)(nil)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListActive(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

var _ catalog.CategoryRepository = (*MockCategoryRepository)(nil)

// MockProductImageRepository is a mock implementation of ProductImageRepository
type MockProductImageRepository struct {
	mock.Mock
}

func (m *MockProductImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductImage), args.Error(1)
}

func (m *MockProductImageRepository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductImage), args.Error(1)
}

func (m *MockProductImageRepository) ListByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]catalog.ProductImage, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]catalog.ProductImage), args.Error(1)
}

func (m *MockProductImageRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductImageRepository) Save(ctx context.Context, image *catalog.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockProductImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ catalog.ProductImageRepository = (*MockProductImageRepository)(nil)

// MockObjectStorageService is a mock implementation of ObjectStorageService
type MockObjectStorageService struct {
	mock.Mock
}

func (m *MockObjectStorageService) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorageService) BuildDisplayURL(storageKey string) string {
	return "https://img.example.com/" + storageKey
}

var _ ObjectStorageService = (*MockObjectStorageService)(nil)

// MockCatalogCache is a mock implementation of CatalogCache
type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) GetCategories(ctx context.Context) ([]CategoryDTO, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]CategoryDTO), args.Bool(1), args.Error(2)
}

func (m *MockCatalogCache) SetCategories(ctx context.Context, categories []CategoryDTO) error {
	return m.Called(ctx, categories).Error(0)
}

func (m *MockCatalogCache) GetProducts(ctx context.Context, key string) ([]ProductDTO, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]ProductDTO), args.Bool(1), args.Error(2)
}

func (m *MockCatalogCache) SetProducts(ctx context.Context, key string, products []ProductDTO) error {
	return m.Called(ctx, key, products).Error(0)
}

func (m *MockCatalogCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ CatalogCache = (*MockCatalogCache)(nil)

// MockBackgroundRemover is a mock implementation of BackgroundRemover
type MockBackgroundRemover struct {
	mock.Mock
}

func (m *MockBackgroundRemover) RemoveBackground(ctx context.Context, image []byte, fileName, contentType string) ([]byte, error) {
	args := m.Called(ctx, image, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ BackgroundRemover = (*MockBackgroundRemover)(nil)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func testClock() shared.Clock {
	return shared.FixedClock{At: fixedNow}
}
