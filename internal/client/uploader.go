package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxUploadRetries is the number of extra PUT attempts after a 5xx or a
// transport failure.
const MaxUploadRetries = 2

// ImageFile is an image read from disk
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadImageFile reads path and derives its content type from the extension,
// falling back to sniffing the bytes.
func LoadImageFile(path string) (ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, err
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return ImageFile{Name: filepath.Base(path), ContentType: contentType, Data: data}, nil
}

// UploadOptions controls how a batch of images is attached
type UploadOptions struct {
	AltText          string
	PrimaryIndex     int
	RemoveBackground bool
}

// PartialUploadError reports a batch that stopped midway. The product itself
// exists; Uploaded images were attached before Err.
type PartialUploadError struct {
	ProductID uuid.UUID
	Uploaded  int
	Total     int
	Err       error
}

func (e *PartialUploadError) Error() string {
	return fmt.Sprintf("product %s was created, but image upload stopped after %d/%d images: %v",
		e.ProductID, e.Uploaded, e.Total, e.Err)
}

func (e *PartialUploadError) Unwrap() error {
	return e.Err
}

// UploadRejectedError is a 4xx from the object store. It is never retried.
type UploadRejectedError struct {
	StatusCode int
}

func (e *UploadRejectedError) Error() string {
	return fmt.Sprintf("upload rejected with status %d, the presigned URL may have expired", e.StatusCode)
}

// ImageUploader runs the presign, PUT, register sequence for product images
type ImageUploader struct {
	api        *Client
	httpClient *http.Client
	retryDelay time.Duration
	logger     *zap.Logger
}

// UploaderOption configures an ImageUploader
type UploaderOption func(*ImageUploader)

// WithRetryDelay sets the pause between PUT attempts
func WithRetryDelay(d time.Duration) UploaderOption {
	return func(u *ImageUploader) {
		u.retryDelay = d
	}
}

// WithUploadHTTPClient sets the client used for presigned PUTs
func WithUploadHTTPClient(c *http.Client) UploaderOption {
	return func(u *ImageUploader) {
		u.httpClient = c
	}
}

// NewImageUploader creates an ImageUploader on top of api
func NewImageUploader(api *Client, opts ...UploaderOption) *ImageUploader {
	u := &ImageUploader{
		api:        api,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		retryDelay: 500 * time.Millisecond,
		logger:     api.logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload attaches files to the product in order. The image at
// opts.PrimaryIndex is marked primary and sortOrder follows the file order.
// It returns the number of images attached. Any failure is reported as
// *PartialUploadError because the product already exists.
func (u *ImageUploader) Upload(ctx context.Context, productID uuid.UUID, files []ImageFile, opts UploadOptions) (int, error) {
	for i, file := range files {
		if err := u.uploadOne(ctx, productID, i, file, opts); err != nil {
			u.logger.Warn("Image upload stopped",
				zap.String("product_id", productID.String()),
				zap.Int("uploaded", i),
				zap.Int("total", len(files)),
				zap.Error(err),
			)
			return i, &PartialUploadError{ProductID: productID, Uploaded: i, Total: len(files), Err: err}
		}
		u.logger.Info("Image uploaded",
			zap.String("product_id", productID.String()),
			zap.String("file_name", file.Name),
			zap.Int("sort_order", i),
		)
	}
	return len(files), nil
}

func (u *ImageUploader) uploadOne(ctx context.Context, productID uuid.UUID, index int, file ImageFile, opts UploadOptions) error {
	if opts.RemoveBackground {
		cutout, err := u.api.RemoveBackgroundPreview(ctx, file)
		if err != nil {
			return fmt.Errorf("remove background from %s: %w", file.Name, err)
		}
		file = ImageFile{
			Name:        strings.TrimSuffix(file.Name, filepath.Ext(file.Name)) + "-nobg.png",
			ContentType: "image/png",
			Data:        cutout,
		}
	}

	target, err := u.api.CreateImageUploadURL(ctx, productID, file.Name, file.ContentType)
	if err != nil {
		return fmt.Errorf("request upload url for %s: %w", file.Name, err)
	}
	if err := u.PutObject(ctx, target.PutURL, file.ContentType, file.Data); err != nil {
		return err
	}

	req := AddImageRequest{
		ObjectKey: target.ObjectKey,
		SortOrder: index,
		IsPrimary: index == opts.PrimaryIndex,
	}
	if alt := strings.TrimSpace(opts.AltText); alt != "" {
		req.AltText = &alt
	}
	if err := u.api.AddProductImage(ctx, productID, req); err != nil {
		return fmt.Errorf("register %s: %w", file.Name, err)
	}
	return nil
}

// PutObject uploads data to a presigned URL. 5xx answers and transport
// errors are retried MaxUploadRetries times; a 4xx fails at once.
func (u *ImageUploader) PutObject(ctx context.Context, putURL, contentType string, data []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var lastErr error
	for attempt := 0; attempt <= MaxUploadRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(u.retryDelay * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPut, putURL, bytes.NewReader(data))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)
		req.ContentLength = int64(len(data))

		resp, err := u.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return &UploadRejectedError{StatusCode: resp.StatusCode}
		default:
			lastErr = fmt.Errorf("upload failed with status %d", resp.StatusCode)
		}
	}

	if lastErr == nil {
		lastErr = errors.New("upload failed after retries")
	}
	return lastErr
}
