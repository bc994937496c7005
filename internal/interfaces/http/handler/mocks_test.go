package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
	identityapp "github.com/secondhandshop/backend/internal/application/identity"
	inquiryapp "github.com/secondhandshop/backend/internal/application/inquiry"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
	"github.com/secondhandshop/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// MockCatalogQuery is a mock implementation of CatalogQuery
type MockCatalogQuery struct {
	mock.Mock
}

func (m *MockCatalogQuery) ListCategories(ctx context.Context) ([]catalogapp.CategoryDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.CategoryDTO), args.Error(1)
}

func (m *MockCatalogQuery) ListProducts(ctx context.Context, categoryID *uuid.UUID) ([]catalogapp.ProductDTO, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.ProductDTO), args.Error(1)
}

func (m *MockCatalogQuery) GetProductBySlug(ctx context.Context, slug string) (*catalogapp.ProductDTO, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductDTO), args.Error(1)
}

// MockAdminCatalog is a mock implementation of AdminCatalog
type MockAdminCatalog struct {
	mock.Mock
}

func (m *MockAdminCatalog) CreateProduct(ctx context.Context, input catalogapp.CreateProductInput) (uuid.UUID, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAdminCatalog) UpdateProduct(ctx context.Context, productID uuid.UUID, input catalogapp.UpdateProductInput) error {
	return m.Called(ctx, productID, input).Error(0)
}

func (m *MockAdminCatalog) UpdateProductStatus(ctx context.Context, productID uuid.UUID, status catalog.ProductStatus, adminUserID *uuid.UUID) error {
	return m.Called(ctx, productID, status, adminUserID).Error(0)
}

func (m *MockAdminCatalog) CreateProductImageUploadURL(ctx context.Context, input catalogapp.CreateImageUploadURLInput) (*catalogapp.ImageUploadURLResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ImageUploadURLResult), args.Error(1)
}

func (m *MockAdminCatalog) AddProductImage(ctx context.Context, input catalogapp.AddProductImageInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAdminCatalog) DeleteProductImage(ctx context.Context, productID, imageID uuid.UUID, adminUserID *uuid.UUID) error {
	return m.Called(ctx, productID, imageID, adminUserID).Error(0)
}

func (m *MockAdminCatalog) ListProductsForAdmin(ctx context.Context, status *catalog.ProductStatus) ([]catalogapp.AdminProductListItem, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.AdminProductListItem), args.Error(1)
}

func (m *MockAdminCatalog) ListCategories(ctx context.Context) ([]catalogapp.CategoryDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.CategoryDTO), args.Error(1)
}

func (m *MockAdminCatalog) CreateCategory(ctx context.Context, input catalogapp.CreateCategoryInput) (uuid.UUID, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAdminCatalog) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input catalogapp.UpdateCategoryInput) error {
	return m.Called(ctx, categoryID, input).Error(0)
}

// MockPreviewer is a mock implementation of BackgroundPreviewer
type MockPreviewer struct {
	mock.Mock
	maxFileSize int64
}

func (m *MockPreviewer) RemoveBackgroundPreview(ctx context.Context, input catalogapp.PreviewInput) (*catalogapp.PreviewResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.PreviewResult), args.Error(1)
}

func (m *MockPreviewer) MaxFileSize() int64 {
	if m.maxFileSize == 0 {
		return 10 << 20
	}
	return m.maxFileSize
}

// MockInquiryCreator is a mock implementation of InquiryCreator
type MockInquiryCreator struct {
	mock.Mock
}

func (m *MockInquiryCreator) CreateInquiry(ctx context.Context, input inquiryapp.CreateInquiryInput) (uuid.UUID, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockAdminAuthenticator is a mock implementation of AdminAuthenticator
type MockAdminAuthenticator struct {
	mock.Mock
}

func (m *MockAdminAuthenticator) Login(ctx context.Context, email, password string) (*identityapp.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.LoginResult), args.Error(1)
}

func (m *MockAdminAuthenticator) GetAdmin(ctx context.Context, id uuid.UUID) (*identityapp.AdminInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.AdminInfo), args.Error(1)
}

// testClaims builds the claims the JWT middleware would attach for adminID.
func testClaims(adminID uuid.UUID) *auth.Claims {
	now := time.Now()
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-" + adminID.String(),
			Subject:   adminID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		AdminUserID: adminID.String(),
		Email:       "owner@example.com",
		DisplayName: "Owner",
	}
}

// asAdmin simulates an authenticated admin without issuing a real token.
func asAdmin(adminID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, testClaims(adminID))
		c.Next()
	}
}

func newTestEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

func performJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func strPtr(s string) *string { return &s }
