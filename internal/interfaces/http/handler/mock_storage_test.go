package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/infrastructure/storage"
	"github.com/secondhandshop/backend/internal/interfaces/proxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupMockStorage() (*storage.LocalObjectStorage, *gin.Engine) {
	store := storage.NewLocalObjectStorage("http://localhost:8080")
	h := NewMockStorageHandler(store, proxy.NewHandler(store, proxy.Config{}, zap.NewNop()))
	r := newTestEngine()
	r.PUT("/mock-storage/*key", h.Put)
	r.GET("/mock-storage/*key", h.Get)
	r.HEAD("/mock-storage/*key", h.Get)
	return store, r
}

func putObject(r http.Handler, key, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/mock-storage/"+key, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMockStorageHandler_Put(t *testing.T) {
	t.Run("stores the object", func(t *testing.T) {
		store, r := setupMockStorage()

		rec := putObject(r, "products/p1/a.jpg", "image/jpeg", "jpeg-bytes")

		require.Equal(t, http.StatusOK, rec.Code)
		obj, err := store.GetObject(context.Background(), "products/p1/a.jpg")
		require.NoError(t, err)
		defer obj.Body.Close()
		assert.Equal(t, "image/jpeg", obj.ContentType)
	})

	t.Run("rejects other content types", func(t *testing.T) {
		store, r := setupMockStorage()

		rec := putObject(r, "products/p1/a.pdf", "application/pdf", "pdf")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_CONTENT_TYPE", decodeError(t, rec).Error.Code)
		_, err := store.HeadObject(context.Background(), "products/p1/a.pdf")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("requires content type", func(t *testing.T) {
		_, r := setupMockStorage()

		rec := putObject(r, "products/p1/a.jpg", "", "jpeg")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMockStorageHandler_Get(t *testing.T) {
	_, r := setupMockStorage()
	require.Equal(t, http.StatusOK, putObject(r, "products/p1/b.png", "image/png", "png-bytes").Code)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mock-storage/products/p1/b.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, proxy.DefaultCacheControl, rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mock-storage/products/p1/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
