package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAdminCategoryHandler() (*MockAdminCatalog, http.Handler) {
	svc := new(MockAdminCatalog)
	h := NewAdminCategoryHandler(svc)
	r := newTestEngine()
	r.GET("/api/admin/categories", h.List)
	r.POST("/api/admin/categories", h.Create)
	r.PUT("/api/admin/categories/:id", h.Update)
	return svc, r
}

func TestAdminCategoryHandler_List(t *testing.T) {
	svc, r := setupAdminCategoryHandler()
	svc.On("ListCategories", mock.Anything).Return([]catalogapp.CategoryDTO{
		{ID: uuid.New(), Name: "Archive", Slug: "archive", IsActive: false},
	}, nil)

	rec := performJSON(r, http.MethodGet, "/api/admin/categories", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isActive":false`)
}

func TestAdminCategoryHandler_Create(t *testing.T) {
	t.Run("defaults to active", func(t *testing.T) {
		svc, r := setupAdminCategoryHandler()
		categoryID := uuid.New()
		svc.On("CreateCategory", mock.Anything, catalogapp.CreateCategoryInput{
			Name:      "Furniture",
			Slug:      "furniture",
			SortOrder: 10,
			IsActive:  true,
		}).Return(categoryID, nil)

		rec := performJSON(r, http.MethodPost, "/api/admin/categories", map[string]any{
			"name":      "Furniture",
			"slug":      "furniture",
			"sortOrder": 10,
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":"`+categoryID.String()+`"}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("with parent and inactive", func(t *testing.T) {
		svc, r := setupAdminCategoryHandler()
		parentID := uuid.New()
		svc.On("CreateCategory", mock.Anything, catalogapp.CreateCategoryInput{
			Name:             "Chairs",
			Slug:             "chairs",
			ParentCategoryID: &parentID,
			IsActive:         false,
		}).Return(uuid.New(), nil)

		rec := performJSON(r, http.MethodPost, "/api/admin/categories", map[string]any{
			"name":             "Chairs",
			"slug":             "chairs",
			"parentCategoryId": parentID.String(),
			"isActive":         false,
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid parent id", func(t *testing.T) {
		svc, r := setupAdminCategoryHandler()

		rec := performJSON(r, http.MethodPost, "/api/admin/categories", map[string]any{
			"name":             "Chairs",
			"slug":             "chairs",
			"parentCategoryId": "nope",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid parentCategoryId.", decodeError(t, rec).Error.Message)
		svc.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		svc, r := setupAdminCategoryHandler()
		svc.On("CreateCategory", mock.Anything, mock.Anything).
			Return(uuid.Nil, shared.NewConflictError("Category slug 'chairs' already exists."))

		rec := performJSON(r, http.MethodPost, "/api/admin/categories", map[string]any{
			"name": "Chairs",
			"slug": "chairs",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAdminCategoryHandler_Update(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		svc, r := setupAdminCategoryHandler()
		categoryID := uuid.New()
		svc.On("UpdateCategory", mock.Anything, categoryID, mock.Anything).Return(nil)

		rec := performJSON(r, http.MethodPut, "/api/admin/categories/"+categoryID.String(), map[string]any{
			"name": "Furniture",
			"slug": "furniture",
		})

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("own parent", func(t *testing.T) {
		svc, r := setupAdminCategoryHandler()
		categoryID := uuid.New()
		svc.On("UpdateCategory", mock.Anything, categoryID, mock.Anything).
			Return(shared.NewValidationError("INVALID_PARENT", "A category cannot be its own parent."))

		rec := performJSON(r, http.MethodPut, "/api/admin/categories/"+categoryID.String(), map[string]any{
			"name":             "Furniture",
			"slug":             "furniture",
			"parentCategoryId": categoryID.String(),
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
