package catalog

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/shared"
)

// MaxImagesPerProduct caps the gallery size of a single product
const MaxImagesPerProduct = 5

var allowedImageContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

// AllowedImageContentTypes returns the MIME types accepted for product images
func AllowedImageContentTypes() []string {
	out := make([]string, len(allowedImageContentTypes))
	copy(out, allowedImageContentTypes)
	return out
}

// IsAllowedImageContentType reports whether contentType is an accepted image type, ignoring case
func IsAllowedImageContentType(contentType string) bool {
	ct := strings.TrimSpace(contentType)
	for _, allowed := range allowedImageContentTypes {
		if strings.EqualFold(ct, allowed) {
			return true
		}
	}
	return false
}

// ProductImage references an object in cloud storage shown in a product gallery
type ProductImage struct {
	shared.AuditableEntity
	ProductID       uuid.UUID
	CloudStorageKey string
	AltText         *string
	SortOrder       int
	IsPrimary       bool
}

// NewProductImage creates a new product image
func NewProductImage(
	productID uuid.UUID,
	cloudStorageKey string,
	altText *string,
	sortOrder int,
	isPrimary bool,
	adminUserID *uuid.UUID,
	now time.Time,
) (*ProductImage, error) {
	img := &ProductImage{ProductID: productID}
	img.ID = uuid.New()
	if err := img.apply(cloudStorageKey, altText, sortOrder, isPrimary); err != nil {
		return nil, err
	}
	img.SetCreatedAudit(adminUserID, now)
	return img, nil
}

// Update replaces the editable fields of the image
func (i *ProductImage) Update(
	cloudStorageKey string,
	altText *string,
	sortOrder int,
	isPrimary bool,
	adminUserID *uuid.UUID,
	now time.Time,
) error {
	if err := i.apply(cloudStorageKey, altText, sortOrder, isPrimary); err != nil {
		return err
	}
	i.Touch(adminUserID, now)
	return nil
}

func (i *ProductImage) apply(cloudStorageKey string, altText *string, sortOrder int, isPrimary bool) error {
	key := strings.TrimSpace(cloudStorageKey)
	if key == "" {
		return shared.NewValidationError("INVALID_STORAGE_KEY", "Cloud storage key is required.")
	}
	if sortOrder < 0 {
		return shared.NewValidationError("INVALID_SORT_ORDER", "SortOrder must be zero or greater.")
	}
	i.CloudStorageKey = key
	i.AltText = shared.NormalizeOptional(altText)
	i.SortOrder = sortOrder
	i.IsPrimary = isPrimary
	return nil
}

// ProductImageKeyPrefix is the object key prefix reserved for a product's images
func ProductImageKeyPrefix(productID uuid.UUID) string {
	return "products/" + compactUUID(productID) + "/"
}

// BuildProductImageKey creates a fresh object key for an upload of fileName.
// Only the extension of the client file name is kept.
func BuildProductImageKey(productID uuid.UUID, fileName string) string {
	return ProductImageKeyPrefix(productID) + compactUUID(uuid.New()) + imageExtension(fileName)
}

func imageExtension(fileName string) string {
	name := strings.TrimSpace(fileName)
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	ext := path.Ext(name)
	if ext == "" || ext == "." {
		return ".bin"
	}
	return shared.ToLowerInvariant(ext)
}

func compactUUID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
