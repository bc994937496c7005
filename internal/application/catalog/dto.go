package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryDTO is the public view of a category
type CategoryDTO struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	ParentCategoryID *uuid.UUID `json:"parentCategoryId"`
	SortOrder        int        `json:"sortOrder"`
	IsActive         bool       `json:"isActive"`
}

// ToCategoryDTO converts a domain category
func ToCategoryDTO(c *catalog.Category) CategoryDTO {
	return CategoryDTO{
		ID:               c.ID,
		Name:             c.Name,
		Slug:             c.Slug,
		ParentCategoryID: c.ParentCategoryID,
		SortOrder:        c.SortOrder,
		IsActive:         c.IsActive,
	}
}

// ProductImageDTO is an image entry of a product
type ProductImageDTO struct {
	ID         uuid.UUID `json:"id"`
	ObjectKey  string    `json:"objectKey"`
	DisplayURL string    `json:"displayUrl"`
	AltText    *string   `json:"altText"`
	SortOrder  int       `json:"sortOrder"`
	IsPrimary  bool      `json:"isPrimary"`
}

// ProductDTO is the public view of a product
type ProductDTO struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	Price        decimal.Decimal   `json:"price"`
	Condition    string            `json:"condition"`
	Status       string            `json:"status"`
	CategoryID   uuid.UUID         `json:"categoryId"`
	CategoryName *string           `json:"categoryName"`
	Images       []ProductImageDTO `json:"images"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// AdminProductListItem is a row of the admin product table
type AdminProductListItem struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Price           decimal.Decimal `json:"price"`
	Condition       string          `json:"condition"`
	Status          string          `json:"status"`
	CategoryName    *string         `json:"categoryName,omitempty"`
	ImageCount      int             `json:"imageCount"`
	PrimaryImageURL *string         `json:"primaryImageUrl,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateProductInput holds the fields of a new listing
type CreateProductInput struct {
	Title       string
	Slug        string
	Description string
	Price       decimal.Decimal
	Condition   catalog.ProductCondition
	CategoryID  uuid.UUID
	AdminUserID *uuid.UUID
}

// UpdateProductInput holds the editable fields of a listing
type UpdateProductInput = CreateProductInput

// CreateCategoryInput holds the fields of a category
type CreateCategoryInput struct {
	Name             string
	Slug             string
	ParentCategoryID *uuid.UUID
	SortOrder        int
	IsActive         bool
}

// UpdateCategoryInput holds the editable fields of a category
type UpdateCategoryInput = CreateCategoryInput

// CreateImageUploadURLInput requests a presigned upload for a product image
type CreateImageUploadURLInput struct {
	ProductID   uuid.UUID
	FileName    string
	ContentType string
	AdminUserID *uuid.UUID
}

// ImageUploadURLResult is the presigned upload handed to the client
type ImageUploadURLResult struct {
	ObjectKey        string    `json:"objectKey"`
	PutURL           string    `json:"putUrl"`
	ExpiresInSeconds int       `json:"expiresInSeconds"`
	ExpiresAt        time.Time `json:"expiresAt"`
	DisplayURL       string    `json:"displayUrl"`
}

// AddProductImageInput registers an uploaded object as a product image
type AddProductImageInput struct {
	ProductID   uuid.UUID
	ObjectKey   string
	AltText     *string
	SortOrder   int
	IsPrimary   bool
	AdminUserID *uuid.UUID
}

// PreviewInput is an image submitted for background removal
type PreviewInput struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

// PreviewResult is the processed PNG
type PreviewResult struct {
	FileName    string
	ContentType string
	Content     []byte
}
