package storage

import (
	"context"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalObjectStorage(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewLocalObjectStorage("http://localhost:8080/")
	store.now = func() time.Time { return now }
	ctx := context.Background()
	key := "products/p1/i1.png"

	t.Run("upload URL points at the mock endpoint", func(t *testing.T) {
		raw, expiresAt, err := store.GenerateUploadURL(ctx, key, "image/png", 0)
		require.NoError(t, err)
		assert.Equal(t, now.Add(5*time.Minute), expiresAt)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "/mock-storage/products/p1/i1.png", u.Path)
		assert.Equal(t, "image/png", u.Query().Get("contentType"))
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := store.GetObject(ctx, key)
		assert.ErrorIs(t, err, ErrObjectNotFound)
		exists, err := store.ObjectExists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Upload(ctx, key, []byte("png"), "image/png"))

		obj, err := store.GetObject(ctx, key)
		require.NoError(t, err)
		data, err := io.ReadAll(obj.Body)
		require.NoError(t, err)
		assert.Equal(t, "png", string(data))
		assert.Equal(t, "image/png", obj.ContentType)
		assert.Equal(t, int64(3), obj.ContentLength)
		assert.Len(t, obj.ETag, 32)

		info, err := store.HeadObject(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, obj.ETag, info.ETag)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteObject(ctx, key))
		require.NoError(t, store.DeleteObject(ctx, key))
		_, err := store.HeadObject(ctx, key)
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("display URL and empty keys", func(t *testing.T) {
		assert.Equal(t, "http://localhost:8080/mock-storage/a/b.jpg", store.BuildDisplayURL("a/b.jpg"))
		assert.ErrorIs(t, store.Upload(ctx, "", nil, ""), ErrEmptyKey)
		assert.ErrorIs(t, store.DeleteObject(ctx, ""), ErrEmptyKey)
	})
}
