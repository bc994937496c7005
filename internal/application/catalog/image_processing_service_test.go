package catalog

import (
	"context"
	"testing"

	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestImageProcessingService_RemoveBackgroundPreview(t *testing.T) {
	ctx := context.Background()
	content := []byte("fake-jpeg")

	t.Run("returns png named after upload", func(t *testing.T) {
		remover := new(MockBackgroundRemover)
		svc := NewImageProcessingService(remover, 0, nil)
		remover.On("RemoveBackground", ctx, content, "chair.photo.jpg", "image/jpeg").Return([]byte("png"), nil)

		res, err := svc.RemoveBackgroundPreview(ctx, PreviewInput{FileName: "chair.photo.jpg", ContentType: "image/jpeg", Size: int64(len(content)), Content: content})
		require.NoError(t, err)
		assert.Equal(t, "preview-nobg-chair.photo.png", res.FileName)
		assert.Equal(t, "image/png", res.ContentType)
		assert.Equal(t, []byte("png"), res.Content)
		assert.Equal(t, DefaultMaxPreviewFileSize, svc.MaxFileSize())
	})

	t.Run("rejects empty file", func(t *testing.T) {
		svc := NewImageProcessingService(new(MockBackgroundRemover), 0, nil)
		_, err := svc.RemoveBackgroundPreview(ctx, PreviewInput{FileName: "a.jpg", ContentType: "image/jpeg"})
		assert.Equal(t, "No image file provided.", err.Error())
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		svc := NewImageProcessingService(new(MockBackgroundRemover), 2*1024*1024, nil)
		_, err := svc.RemoveBackgroundPreview(ctx, PreviewInput{FileName: "a.jpg", ContentType: "image/jpeg", Size: 3 * 1024 * 1024, Content: content})
		assert.Equal(t, "File size exceeds the 2 MB limit.", err.Error())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		remover := new(MockBackgroundRemover)
		svc := NewImageProcessingService(remover, 0, nil)
		_, err := svc.RemoveBackgroundPreview(ctx, PreviewInput{FileName: "a.gif", ContentType: "image/gif", Size: 1, Content: content})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		remover.AssertNotCalled(t, "RemoveBackground", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("passes service errors through", func(t *testing.T) {
		remover := new(MockBackgroundRemover)
		svc := NewImageProcessingService(remover, 0, nil)
		remover.On("RemoveBackground", ctx, content, "a.png", "image/png").Return(nil, shared.NewUpstreamError("down"))

		_, err := svc.RemoveBackgroundPreview(ctx, PreviewInput{FileName: "a.png", ContentType: "image/png", Size: 9, Content: content})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeUpstream, de.Code)
	})
}

func TestPreviewFileName(t *testing.T) {
	assert.Equal(t, "preview-nobg-shot.png", PreviewFileName(`C:\tmp\shot.webp`))
	assert.Equal(t, "preview-nobg-noext.png", PreviewFileName("noext"))
}
