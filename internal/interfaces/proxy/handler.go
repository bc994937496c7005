// Package proxy serves product images from object storage at the edge:
// public, immutable, CORS-open responses keyed by the request path.
package proxy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// Defaults applied when Config leaves a field empty.
const (
	DefaultCacheControl = "public, max-age=86400, s-maxage=604800, immutable"
	DefaultCORSMaxAge   = 86400
)

const allowedMethods = "GET, HEAD, OPTIONS"

// ObjectReader reads objects and their metadata
type ObjectReader interface {
	GetObject(ctx context.Context, key string) (*storage.Object, error)
	HeadObject(ctx context.Context, key string) (*storage.ObjectInfo, error)
}

// Config controls the response headers
type Config struct {
	CacheControl string
	CORSMaxAge   int // seconds
}

// Handler answers image requests for any path
type Handler struct {
	store  ObjectReader
	cfg    Config
	logger *zap.Logger
}

// NewHandler creates a Handler
func NewHandler(store ObjectReader, cfg Config, log *zap.Logger) *Handler {
	if cfg.CacheControl == "" {
		cfg.CacheControl = DefaultCacheControl
	}
	if cfg.CORSMaxAge <= 0 {
		cfg.CORSMaxAge = DefaultCORSMaxAge
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, cfg: cfg, logger: log}
}

// Serve routes on method and uses the URL path, minus its leading slash,
// as the object key.
func (h *Handler) Serve(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		h.setCORSHeaders(c)
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", "*")
		c.Header("Access-Control-Max-Age", strconv.Itoa(h.cfg.CORSMaxAge))
		c.Status(http.StatusNoContent)
	case http.MethodGet, http.MethodHead:
		h.ServeObject(c, strings.TrimPrefix(c.Request.URL.Path, "/"))
	default:
		c.Header("Allow", allowedMethods)
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// ServeObject writes key's object for GET, or only its headers for HEAD.
func (h *Handler) ServeObject(c *gin.Context, key string) {
	if key == "" {
		c.String(http.StatusBadRequest, "Bad Request: missing object key")
		return
	}
	ctx := c.Request.Context()

	if c.Request.Method == http.MethodHead {
		info, err := h.store.HeadObject(ctx, key)
		if err != nil {
			h.handleError(c, key, err)
			return
		}
		if h.writeHeaders(c, info) {
			return
		}
		c.Status(http.StatusOK)
		return
	}

	obj, err := h.store.GetObject(ctx, key)
	if err != nil {
		h.handleError(c, key, err)
		return
	}
	defer obj.Body.Close()

	if h.writeHeaders(c, &obj.ObjectInfo) {
		return
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, obj.Body); err != nil {
		logger.GetGinLogger(c).Warn("Image stream interrupted", zap.String("key", key), zap.Error(err))
	}
}

// writeHeaders sets the object headers. It answers 304 and returns true when
// the client already holds the current version.
func (h *Handler) writeHeaders(c *gin.Context, info *storage.ObjectInfo) bool {
	h.setCORSHeaders(c)
	c.Header("Cache-Control", h.cfg.CacheControl)

	etag := ""
	if info.ETag != "" {
		etag = `"` + info.ETag + `"`
		c.Header("ETag", etag)
	}
	if etag != "" && etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return true
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Length", strconv.FormatInt(info.ContentLength, 10))
	if info.ContentDisposition != "" {
		c.Header("Content-Disposition", info.ContentDisposition)
	}
	if info.LastModified != nil {
		c.Header("Last-Modified", info.LastModified.UTC().Format(http.TimeFormat))
	}
	return false
}

func (h *Handler) setCORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
}

func (h *Handler) handleError(c *gin.Context, key string, err error) {
	if errors.Is(err, storage.ErrObjectNotFound) {
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	h.logger.Error("Failed to read object", zap.String("key", key), zap.Error(err))
	c.String(http.StatusBadGateway, "Bad Gateway")
}

// etagMatches implements the weak comparison used by If-None-Match.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
