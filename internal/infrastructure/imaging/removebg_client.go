// Package imaging integrates the remove.bg background removal API.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	removeBgPath = "/v1.0/removebg"

	// maxRemoveBgResponseSize bounds the PNG read from remove.bg
	maxRemoveBgResponseSize = 50 * 1024 * 1024
	maxErrorBodySize        = 4 * 1024
)

// Ensure RemoveBgClient implements BackgroundRemover
var _ catalogapp.BackgroundRemover = (*RemoveBgClient)(nil)

// RemoveBgClient calls POST {base}/v1.0/removebg. Rate limiting, 5xx responses
// and timeouts are retried; everything else fails on the first attempt.
type RemoveBgClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	// retryUnit is multiplied by the attempt number between attempts
	retryUnit time.Duration
	logger    *zap.Logger
}

// NewRemoveBgClient creates a client from configuration
func NewRemoveBgClient(cfg config.RemoveBgConfig, logger *zap.Logger) *RemoveBgClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.remove.bg"
	}
	return &RemoveBgClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: max(0, cfg.MaxRetries),
		retryUnit:  time.Second,
		logger:     logger,
	}
}

// Configured reports whether an API key is set
func (c *RemoveBgClient) Configured() bool {
	return c.apiKey != ""
}

// RemoveBackground returns the PNG produced by remove.bg for image
func (c *RemoveBgClient) RemoveBackground(ctx context.Context, image []byte, fileName, contentType string) ([]byte, error) {
	if !c.Configured() {
		return nil, shared.NewUnprocessableError("Background removal is not configured.")
	}

	totalAttempts := 1 + c.maxRetries
	var lastErr error
	for attempt := 1; attempt <= totalAttempts; attempt++ {
		png, err := c.call(ctx, image, fileName, contentType)
		if err == nil {
			return png, nil
		}
		if !isTransient(ctx, err) {
			return nil, err
		}
		lastErr = err
		if attempt == totalAttempts {
			break
		}

		c.logger.Warn("remove.bg transient failure, retrying",
			zap.Int("attempt", attempt),
			zap.Int("total_attempts", totalAttempts),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryUnit):
		}
	}

	c.logger.Error("remove.bg failed after all retry attempts", zap.Error(lastErr))
	return nil, shared.NewUpstreamError("Background removal failed after all retry attempts.")
}

// transientError marks failures worth another attempt
type transientError struct {
	status int
	err    error
}

func (e *transientError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("remove.bg returned status %d", e.status)
}

func (e *transientError) Unwrap() error {
	return e.err
}

func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var te *transientError
	return errors.As(err, &te)
}

func (c *RemoveBgClient) call(ctx context.Context, image []byte, fileName, contentType string) ([]byte, error) {
	body, formContentType, err := buildMultipart(image, fileName, contentType)
	if err != nil {
		return nil, fmt.Errorf("remove.bg: failed to build request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+removeBgPath, body)
	if err != nil {
		return nil, fmt.Errorf("remove.bg: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "image/png")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &transientError{err: fmt.Errorf("remove.bg request timed out: %w", err)}
		}
		c.logger.Error("remove.bg request failed", zap.Error(err))
		return nil, shared.NewUpstreamError("Background removal service is unreachable.")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		png, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoveBgResponseSize))
		if err != nil {
			return nil, &transientError{err: fmt.Errorf("remove.bg: failed to read response: %w", err)}
		}
		return png, nil
	}

	errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	c.logger.Error("remove.bg returned an error",
		zap.Int("status", resp.StatusCode),
		zap.String("body", string(errorBody)))
	return nil, mapStatus(resp.StatusCode)
}

func mapStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return shared.NewUnprocessableError("Background removal service authentication failed.")
	case status == http.StatusPaymentRequired:
		return shared.NewUnprocessableError("Background removal credit limit reached.")
	case status == http.StatusUnprocessableEntity:
		return shared.NewUnprocessableError("The image could not be processed for background removal.")
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return &transientError{status: status}
	default:
		return shared.NewUnprocessableError(fmt.Sprintf("Background removal failed (%d).", status))
	}
}

func buildMultipart(image []byte, fileName, contentType string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image_file"; filename=%q`, fileNameOrDefault(fileName)))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("size", "auto"); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func fileNameOrDefault(fileName string) string {
	name := strings.TrimSpace(fileName)
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		return "image"
	}
	return name
}
