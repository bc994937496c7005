package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testR2Config(endpoint string) *config.R2Config {
	return &config.R2Config{
		AccountID:       "acc123",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		BucketName:      "shop-images",
		WorkerBaseURL:   "https://img.example.com/",
		Endpoint:        endpoint,
		Region:          "auto",
	}
}

func TestNewR2ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewR2ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := testR2Config("")
		cfg.BucketName = ""
		_, err := NewR2ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket name is required")
	})

	t.Run("missing credentials return error", func(t *testing.T) {
		cfg := testR2Config("")
		cfg.SecretAccessKey = ""
		_, err := NewR2ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret access key")
	})

	t.Run("missing account and endpoint returns error", func(t *testing.T) {
		cfg := testR2Config("")
		cfg.AccountID = ""
		_, err := NewR2ObjectStorage(cfg)
		require.Error(t, err)
	})

	t.Run("valid config creates storage with defaults", func(t *testing.T) {
		storage, err := NewR2ObjectStorage(testR2Config(""), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "shop-images", storage.GetBucket())
		assert.Equal(t, 10*time.Minute, storage.presignExpiration)
	})

	t.Run("WithPresignExpiration overrides the default", func(t *testing.T) {
		storage, err := NewR2ObjectStorage(testR2Config(""), WithPresignExpiration(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, storage.presignExpiration)
	})
}

func TestR2ObjectStorage_Presign(t *testing.T) {
	storage, err := NewR2ObjectStorage(testR2Config(""))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("upload URL targets the account endpoint with path style", func(t *testing.T) {
		url, expiresAt, err := storage.GenerateUploadURL(ctx, "products/abc/def.jpg", "image/jpeg", 15*time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://acc123.r2.cloudflarestorage.com/shop-images/products/abc/def.jpg?"))
		assert.Contains(t, url, "X-Amz-Signature=")
		assert.Contains(t, url, "X-Amz-Expires=900")
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("non-positive expiry means five minutes", func(t *testing.T) {
		url, expiresAt, err := storage.GenerateUploadURL(ctx, "k.png", "image/png", 0)
		require.NoError(t, err)
		assert.Contains(t, url, "X-Amz-Expires=300")
		assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("empty key returns error", func(t *testing.T) {
		_, _, err := storage.GenerateUploadURL(ctx, "", "image/png", time.Minute)
		assert.ErrorIs(t, err, ErrEmptyKey)
		_, _, err = storage.GenerateDownloadURL(ctx, "", time.Minute)
		assert.ErrorIs(t, err, ErrEmptyKey)
	})

	t.Run("download URL", func(t *testing.T) {
		url, _, err := storage.GenerateDownloadURL(ctx, "products/abc/def.jpg", 0)
		require.NoError(t, err)
		assert.Contains(t, url, "/shop-images/products/abc/def.jpg")
		assert.Contains(t, url, "X-Amz-Expires=600")
	})

	t.Run("display URL trims the trailing slash", func(t *testing.T) {
		assert.Equal(t, "https://img.example.com/products/abc/def.jpg", storage.BuildDisplayURL("products/abc/def.jpg"))
	})
}

// fakeS3 is a minimal path-style S3 endpoint for one bucket
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
}

type fakeObject struct {
	body        string
	contentType string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/shop-images/")
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = fakeObject{body: string(body), contentType: r.Header.Get("Content-Type")}
		w.Header().Set("ETag", `"etag-put"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodHead, http.MethodGet:
		obj, ok := f.objects[key]
		if !ok {
			if r.Method == http.MethodGet {
				w.Header().Set("Content-Type", "application/xml")
				w.WriteHeader(http.StatusNotFound)
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
				return
			}
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", obj.contentType)
		w.Header().Set("ETag", `"abc123"`)
		w.Header().Set("Content-Disposition", `inline; filename="x.jpg"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(obj.body)))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, obj.body)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestR2ObjectStorage_ObjectLifecycle(t *testing.T) {
	fake := &fakeS3{objects: map[string]fakeObject{}}
	server := httptest.NewServer(fake)
	defer server.Close()

	storage, err := NewR2ObjectStorage(testR2Config(server.URL))
	require.NoError(t, err)
	ctx := context.Background()
	key := "products/p1/i1.jpg"

	exists, err := storage.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = storage.GetObject(ctx, key)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, err = storage.HeadObject(ctx, key)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, storage.Upload(ctx, key, []byte("jpeg-bytes"), "image/jpeg"))

	info, err := storage.HeadObject(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", info.ContentType)
	assert.Equal(t, int64(10), info.ContentLength)
	assert.Equal(t, "abc123", info.ETag)

	obj, err := storage.GetObject(ctx, key)
	require.NoError(t, err)
	defer obj.Body.Close()
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))
	assert.Equal(t, `inline; filename="x.jpg"`, obj.ContentDisposition)

	require.NoError(t, storage.DeleteObject(ctx, key))
	exists, err = storage.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}
