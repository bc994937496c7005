// Package client calls the storefront admin API and the presigned object
// store the way the admin UI does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const maxErrorBodySize = 4 * 1024

// Options configures a Client
type Options struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is an authenticated admin API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Client. BaseURL defaults to the local development server.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(opts.Token),
		httpClient: httpClient,
		logger:     logger,
	}
}

// APIError is a non-2xx answer from the admin API
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api request failed with status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// UploadURL is a presigned PUT target for one image
type UploadURL struct {
	ObjectKey        string `json:"objectKey"`
	PutURL           string `json:"putUrl"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
	DisplayURL       string `json:"displayUrl,omitempty"`
}

// AddImageRequest registers an uploaded object as a product image
type AddImageRequest struct {
	ObjectKey string  `json:"objectKey"`
	AltText   *string `json:"altText,omitempty"`
	SortOrder int     `json:"sortOrder"`
	IsPrimary bool    `json:"isPrimary"`
}

// CreateImageUploadURL asks the API for a presigned upload URL
func (c *Client) CreateImageUploadURL(ctx context.Context, productID uuid.UUID, fileName, contentType string) (*UploadURL, error) {
	var out UploadURL
	path := fmt.Sprintf("/api/admin/products/%s/images/presigned-url", productID)
	body := map[string]string{"fileName": fileName, "contentType": contentType}
	if err := c.doJSON(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddProductImage registers an uploaded object with the product
func (c *Client) AddProductImage(ctx context.Context, productID uuid.UUID, req AddImageRequest) error {
	path := fmt.Sprintf("/api/admin/products/%s/images", productID)
	return c.doJSON(ctx, http.MethodPost, path, req, nil)
}

// RemoveBackgroundPreview sends an image to the preview endpoint and
// returns the PNG cut-out.
func (c *Client) RemoveBackgroundPreview(ctx context.Context, file ImageFile) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", file.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/admin/images/remove-background-preview", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
