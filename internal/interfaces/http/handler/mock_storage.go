package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
	"github.com/secondhandshop/backend/internal/interfaces/proxy"
	"go.uber.org/zap"
)

// ObjectUploader stores raw object bytes
type ObjectUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// MockStorageHandler stands in for R2 in mock mode: presigned PUTs land
// here and display URLs are served back through the image proxy logic.
type MockStorageHandler struct {
	BaseHandler
	store  ObjectUploader
	images *proxy.Handler
}

// NewMockStorageHandler creates a MockStorageHandler
func NewMockStorageHandler(store ObjectUploader, images *proxy.Handler) *MockStorageHandler {
	return &MockStorageHandler{store: store, images: images}
}

type uploadHeaders struct {
	ContentType string `header:"Content-Type" binding:"required,image_content_type"`
}

// Put godoc
// @Summary      Mock storage upload
// @Description  Accepts the bytes a browser PUTs to a mock presigned URL
// @Tags         mock-storage
// @Accept       image/jpeg,image/png,image/webp
// @Param        key path string true "Object key"
// @Success      200
// @Failure      400 {object} dto.ErrorResponse
// @Router       /mock-storage/{key} [put]
func (h *MockStorageHandler) Put(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Missing object key.")
		return
	}
	var headers uploadHeaders
	if err := c.ShouldBindHeader(&headers); err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_CONTENT_TYPE", "Only JPEG, PNG and WEBP images are allowed.")
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.store.Upload(c.Request.Context(), key, data, strings.TrimSpace(headers.ContentType)); err != nil {
		h.HandleError(c, err)
		return
	}

	logger.GetGinLogger(c).Debug("Mock storage object stored", zap.String("key", key), zap.Int("size", len(data)))
	c.Status(http.StatusOK)
}

// Get godoc
// @Summary      Mock storage download
// @Tags         mock-storage
// @Param        key path string true "Object key"
// @Success      200 {file} file
// @Failure      404 {string} string "Not Found"
// @Router       /mock-storage/{key} [get]
func (h *MockStorageHandler) Get(c *gin.Context) {
	h.images.ServeObject(c, strings.TrimPrefix(c.Param("key"), "/"))
}
