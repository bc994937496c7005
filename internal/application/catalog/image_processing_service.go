package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultMaxPreviewFileSize is the largest image accepted for background removal
const DefaultMaxPreviewFileSize int64 = 10 * 1024 * 1024

// ImageProcessingService prepares product photos before upload
type ImageProcessingService struct {
	remover     BackgroundRemover
	maxFileSize int64
	logger      *zap.Logger
}

// NewImageProcessingService creates a new ImageProcessingService.
// A non-positive maxFileSize falls back to DefaultMaxPreviewFileSize.
func NewImageProcessingService(remover BackgroundRemover, maxFileSize int64, logger *zap.Logger) *ImageProcessingService {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxPreviewFileSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageProcessingService{remover: remover, maxFileSize: maxFileSize, logger: logger}
}

// MaxFileSize returns the configured upload limit in bytes
func (s *ImageProcessingService) MaxFileSize() int64 {
	return s.maxFileSize
}

// RemoveBackgroundPreview returns a PNG of the image with its background removed
func (s *ImageProcessingService) RemoveBackgroundPreview(ctx context.Context, input PreviewInput) (*PreviewResult, error) {
	if input.Size == 0 || len(input.Content) == 0 {
		return nil, shared.NewValidationError("INVALID_FILE", "No image file provided.")
	}
	if input.Size > s.maxFileSize || int64(len(input.Content)) > s.maxFileSize {
		return nil, shared.NewValidationError("INVALID_FILE_SIZE",
			fmt.Sprintf("File size exceeds the %d MB limit.", s.maxFileSize/(1024*1024)))
	}
	contentType := strings.TrimSpace(input.ContentType)
	if !catalog.IsAllowedImageContentType(contentType) {
		return nil, shared.NewValidationError("INVALID_CONTENT_TYPE", "Only JPEG, PNG and WEBP images are allowed.")
	}

	png, err := s.remover.RemoveBackground(ctx, input.Content, input.FileName, contentType)
	if err != nil {
		s.logger.Warn("Background removal failed",
			zap.String("file_name", input.FileName),
			zap.Error(err))
		return nil, err
	}

	return &PreviewResult{
		FileName:    PreviewFileName(input.FileName),
		ContentType: "image/png",
		Content:     png,
	}, nil
}

// PreviewFileName names the processed download after the uploaded file
func PreviewFileName(fileName string) string {
	name := strings.TrimSpace(fileName)
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	return "preview-nobg-" + name + ".png"
}
