package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
	identityapp "github.com/secondhandshop/backend/internal/application/identity"
	inquiryapp "github.com/secondhandshop/backend/internal/application/inquiry"
	"github.com/secondhandshop/backend/internal/domain/catalog"
)

// CatalogQuery serves the public storefront reads
type CatalogQuery interface {
	ListCategories(ctx context.Context) ([]catalogapp.CategoryDTO, error)
	ListProducts(ctx context.Context, categoryID *uuid.UUID) ([]catalogapp.ProductDTO, error)
	GetProductBySlug(ctx context.Context, slug string) (*catalogapp.ProductDTO, error)
}

// AdminCatalog serves the back-office catalog operations
type AdminCatalog interface {
	CreateProduct(ctx context.Context, input catalogapp.CreateProductInput) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input catalogapp.UpdateProductInput) error
	UpdateProductStatus(ctx context.Context, productID uuid.UUID, status catalog.ProductStatus, adminUserID *uuid.UUID) error
	CreateProductImageUploadURL(ctx context.Context, input catalogapp.CreateImageUploadURLInput) (*catalogapp.ImageUploadURLResult, error)
	AddProductImage(ctx context.Context, input catalogapp.AddProductImageInput) error
	DeleteProductImage(ctx context.Context, productID, imageID uuid.UUID, adminUserID *uuid.UUID) error
	ListProductsForAdmin(ctx context.Context, status *catalog.ProductStatus) ([]catalogapp.AdminProductListItem, error)
	ListCategories(ctx context.Context) ([]catalogapp.CategoryDTO, error)
	CreateCategory(ctx context.Context, input catalogapp.CreateCategoryInput) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, input catalogapp.UpdateCategoryInput) error
}

// BackgroundPreviewer removes image backgrounds for the admin preview
type BackgroundPreviewer interface {
	RemoveBackgroundPreview(ctx context.Context, input catalogapp.PreviewInput) (*catalogapp.PreviewResult, error)
	MaxFileSize() int64
}

// InquiryCreator records visitor inquiries
type InquiryCreator interface {
	CreateInquiry(ctx context.Context, input inquiryapp.CreateInquiryInput) (uuid.UUID, error)
}

// AdminAuthenticator logs admins in and looks them up
type AdminAuthenticator interface {
	Login(ctx context.Context, email, password string) (*identityapp.LoginResult, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*identityapp.AdminInfo, error)
}

var (
	_ CatalogQuery        = (*catalogapp.CatalogQueryService)(nil)
	_ AdminCatalog        = (*catalogapp.AdminCatalogService)(nil)
	_ BackgroundPreviewer = (*catalogapp.ImageProcessingService)(nil)
	_ InquiryCreator      = (*inquiryapp.InquiryService)(nil)
	_ AdminAuthenticator  = (*identityapp.AdminAuthService)(nil)
)

// Response shapes named for the API docs.
type (
	CategoryResponse       = catalogapp.CategoryDTO
	ProductResponse        = catalogapp.ProductDTO
	AdminProductResponse   = catalogapp.AdminProductListItem
	ImageUploadURLResponse = catalogapp.ImageUploadURLResult
	LoginResponse          = identityapp.LoginResult
	AdminResponse          = identityapp.AdminInfo
)
