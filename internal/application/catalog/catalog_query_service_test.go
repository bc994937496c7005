package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type queryFixture struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	images     *MockProductImageRepository
	service    *CatalogQueryService
}

func newQueryFixture() *queryFixture {
	f := &queryFixture{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		images:     new(MockProductImageRepository),
	}
	f.service = NewCatalogQueryService(f.products, f.categories, f.images, new(MockObjectStorageService), nil)
	return f
}

func TestCatalogQueryService_ListCategories(t *testing.T) {
	ctx := context.Background()
	cat := activeCategory(t)

	t.Run("reads repository without cache", func(t *testing.T) {
		f := newQueryFixture()
		f.categories.On("ListActive", ctx).Return([]catalog.Category{*cat}, nil)

		out, err := f.service.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "electronics", out[0].Slug)
		assert.True(t, out[0].IsActive)
	})

	t.Run("serves cache hit", func(t *testing.T) {
		f := newQueryFixture()
		cache := new(MockCatalogCache)
		f.service.SetCache(cache)
		cache.On("GetCategories", ctx).Return([]CategoryDTO{{Slug: "cached"}}, true, nil)

		out, err := f.service.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, "cached", out[0].Slug)
		f.categories.AssertNotCalled(t, "ListActive", mock.Anything)
	})

	t.Run("fills cache on miss and tolerates cache errors", func(t *testing.T) {
		f := newQueryFixture()
		cache := new(MockCatalogCache)
		f.service.SetCache(cache)
		cache.On("GetCategories", ctx).Return(nil, false, errors.New("redis down"))
		f.categories.On("ListActive", ctx).Return([]catalog.Category{*cat}, nil)
		cache.On("SetCategories", ctx, mock.Anything).Return(errors.New("redis down"))

		out, err := f.service.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, out, 1)
		cache.AssertExpectations(t)
	})
}

func TestCatalogQueryService_ListProducts(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()
	cat := activeCategory(t)
	p := existingProduct(t, cat.ID)

	late, _ := catalog.NewProductImage(p.ID, "products/p/late.jpg", nil, 0, false, nil, fixedNow.Add(time.Minute))
	early, _ := catalog.NewProductImage(p.ID, "products/p/early.jpg", nil, 0, false, nil, fixedNow)
	second, _ := catalog.NewProductImage(p.ID, "products/p/second.jpg", nil, 1, true, nil, fixedNow.Add(-time.Hour))

	f.products.On("ListForPublic", ctx, &cat.ID).Return([]catalog.Product{*p}, nil)
	f.categories.On("ListActive", ctx).Return([]catalog.Category{*cat}, nil)
	f.images.On("ListByProductIDs", ctx, []uuid.UUID{p.ID}).Return(map[uuid.UUID][]catalog.ProductImage{
		p.ID: {*second, *late, *early},
	}, nil)

	out, err := f.service.ListProducts(ctx, &cat.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)

	dto := out[0]
	assert.Equal(t, "Electronics", *dto.CategoryName)
	assert.True(t, dto.Price.Equal(decimal.NewFromInt(420)))
	require.Len(t, dto.Images, 3)
	assert.Equal(t, "products/p/early.jpg", dto.Images[0].ObjectKey)
	assert.Equal(t, "products/p/late.jpg", dto.Images[1].ObjectKey)
	assert.Equal(t, "products/p/second.jpg", dto.Images[2].ObjectKey)
	assert.Equal(t, "https://img.example.com/products/p/early.jpg", dto.Images[0].DisplayURL)
}

func TestCatalogQueryService_GetProductBySlug(t *testing.T) {
	ctx := context.Background()
	cat := activeCategory(t)

	t.Run("normalizes slug", func(t *testing.T) {
		f := newQueryFixture()
		p := existingProduct(t, cat.ID)
		f.products.On("FindBySlug", ctx, "iphone-13-128gb").Return(p, nil)
		f.categories.On("ListActive", ctx).Return([]catalog.Category{*cat}, nil)
		f.images.On("ListByProductID", ctx, p.ID).Return([]catalog.ProductImage{}, nil)

		dto, err := f.service.GetProductBySlug(ctx, " IPHONE-13-128GB ")
		require.NoError(t, err)
		assert.Equal(t, p.ID, dto.ID)
		assert.NotNil(t, dto.Images)
	})

	t.Run("unknown slug", func(t *testing.T) {
		f := newQueryFixture()
		f.products.On("FindBySlug", ctx, "nope").Return(nil, shared.ErrNotFound)

		_, err := f.service.GetProductBySlug(ctx, "nope")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, "Product was not found.", err.Error())
	})

	t.Run("off shelf product is hidden", func(t *testing.T) {
		f := newQueryFixture()
		p := existingProduct(t, cat.ID)
		p.OffShelf(nil, fixedNow)
		f.products.On("FindBySlug", ctx, p.Slug).Return(p, nil)

		_, err := f.service.GetProductBySlug(ctx, p.Slug)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("product in inactive category is hidden", func(t *testing.T) {
		f := newQueryFixture()
		p := existingProduct(t, uuid.New())
		f.products.On("FindBySlug", ctx, p.Slug).Return(p, nil)
		f.categories.On("ListActive", ctx).Return([]catalog.Category{*cat}, nil)

		_, err := f.service.GetProductBySlug(ctx, p.Slug)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
