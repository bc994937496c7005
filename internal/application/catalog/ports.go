package catalog

import (
	"context"
	"time"
)

// ObjectStorageService defines the object storage operations the catalog needs.
// It is implemented by the infrastructure layer (Cloudflare R2 via the S3 API).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned PUT URL for storageKey.
	// Returns the upload URL and expiration time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// BuildDisplayURL returns the public URL the image proxy serves storageKey from
	BuildDisplayURL(storageKey string) string
}

// BackgroundRemover strips the background from an image and returns PNG bytes.
// The image is passed as a byte slice so implementations can resend it on retry.
type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, image []byte, fileName, contentType string) ([]byte, error)
}

// CatalogCache caches public catalog reads. Implementations must be safe for
// concurrent use; a miss is reported with ok=false and a nil error.
type CatalogCache interface {
	GetCategories(ctx context.Context) (categories []CategoryDTO, ok bool, err error)
	SetCategories(ctx context.Context, categories []CategoryDTO) error
	GetProducts(ctx context.Context, key string) (products []ProductDTO, ok bool, err error)
	SetProducts(ctx context.Context, key string, products []ProductDTO) error
	Invalidate(ctx context.Context) error
}
