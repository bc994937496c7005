package imaging

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) (*RemoveBgClient, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewRemoveBgClient(config.RemoveBgConfig{
		APIKey:     "key-123",
		BaseURL:    server.URL + "/",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	}, zaptest.NewLogger(t))
	client.retryUnit = time.Millisecond
	return client, &calls
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

func TestRemoveBgClient_Success(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1.0/removebg", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("X-Api-Key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "auto", r.FormValue("size"))
		file, header, err := r.FormFile("image_file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "chair.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
		data, _ := io.ReadAll(file)
		assert.Equal(t, "jpeg-data", string(data))

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-data"))
	}, 1)

	png, err := client.RemoveBackground(context.Background(), []byte("jpeg-data"), `C:\photos\chair.jpg`, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "png-data", string(png))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestRemoveBgClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		code    string
		message string
	}{
		{http.StatusUnauthorized, shared.CodeUnprocessable, "Background removal service authentication failed."},
		{http.StatusForbidden, shared.CodeUnprocessable, "Background removal service authentication failed."},
		{http.StatusPaymentRequired, shared.CodeUnprocessable, "Background removal credit limit reached."},
		{http.StatusUnprocessableEntity, shared.CodeUnprocessable, "The image could not be processed for background removal."},
		{http.StatusBadRequest, shared.CodeUnprocessable, "Background removal failed (400)."},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}, 2)

			_, err := client.RemoveBackground(context.Background(), []byte("x"), "a.png", "image/png")
			assertDomainCode(t, err, tt.code)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "non-transient errors are not retried")
		})
	}
}

func TestRemoveBgClient_Retries(t *testing.T) {
	t.Run("recovers after a 503", func(t *testing.T) {
		var n int32
		client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&n, 1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("png"))
		}, 1)

		png, err := client.RemoveBackground(context.Background(), []byte("x"), "a.png", "image/png")
		require.NoError(t, err)
		assert.Equal(t, "png", string(png))
		assert.Equal(t, int32(2), atomic.LoadInt32(calls))
	})

	t.Run("gives up with an upstream error", func(t *testing.T) {
		client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}, 2)

		_, err := client.RemoveBackground(context.Background(), []byte("x"), "a.png", "image/png")
		assertDomainCode(t, err, shared.CodeUpstream)
		assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, 5)
		client.retryUnit = time.Hour

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := client.RemoveBackground(ctx, []byte("x"), "a.png", "image/png")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRemoveBgClient_NotConfigured(t *testing.T) {
	client := NewRemoveBgClient(config.RemoveBgConfig{}, nil)
	assert.False(t, client.Configured())

	_, err := client.RemoveBackground(context.Background(), []byte("x"), "a.png", "image/png")
	assertDomainCode(t, err, shared.CodeUnprocessable)
	assert.Equal(t, "Background removal is not configured.", err.Error())
}

func TestRemoveBgClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewRemoveBgClient(config.RemoveBgConfig{APIKey: "k", BaseURL: url, MaxRetries: 0}, nil)
	_, err := client.RemoveBackground(context.Background(), []byte("x"), "a.png", "image/png")
	assertDomainCode(t, err, shared.CodeUpstream)
}
