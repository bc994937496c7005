// Package storage provides object storage for product images: Cloudflare R2
// through the S3 API, and an in-memory store for mock mode.
package storage

import (
	"errors"
	"io"
	"strings"
	"time"
)

// ErrObjectNotFound is returned when a key has no object
var ErrObjectNotFound = errors.New("object not found")

// ErrEmptyKey is returned when an operation is called without a storage key
var ErrEmptyKey = errors.New("storage key is required")

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Key                string
	ContentType        string
	ContentLength      int64
	ETag               string // without surrounding quotes
	ContentDisposition string
	LastModified       *time.Time
}

// Object is a stored object with a streaming body. Callers must close Body.
type Object struct {
	ObjectInfo
	Body io.ReadCloser
}

// normalizeETag strips the quotes S3 puts around ETags
func normalizeETag(etag string) string {
	return strings.Trim(strings.TrimSpace(etag), `"`)
}

// buildDisplayURL joins a public base URL and an object key
func buildDisplayURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
