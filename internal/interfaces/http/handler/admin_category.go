package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
)

// AdminCategoryHandler manages categories
type AdminCategoryHandler struct {
	BaseHandler
	catalog AdminCatalog
}

// NewAdminCategoryHandler creates an AdminCategoryHandler
func NewAdminCategoryHandler(adminCatalog AdminCatalog) *AdminCategoryHandler {
	return &AdminCategoryHandler{catalog: adminCatalog}
}

// CategoryRequest creates or replaces a category
type CategoryRequest struct {
	Name             string  `json:"name" binding:"required,max=120" example:"Furniture"`
	Slug             string  `json:"slug" binding:"required,max=160,slug" example:"furniture"`
	ParentCategoryID *string `json:"parentCategoryId" example:"550e8400-e29b-41d4-a716-446655440000"`
	SortOrder        int     `json:"sortOrder" example:"10"`
	IsActive         *bool   `json:"isActive" example:"true"`
}

func (h *AdminCategoryHandler) toInput(c *gin.Context, req CategoryRequest) (catalogapp.CreateCategoryInput, bool) {
	parentID, err := parseOptionalUUID(req.ParentCategoryID)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidID, "Invalid parentCategoryId.")
		return catalogapp.CreateCategoryInput{}, false
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return catalogapp.CreateCategoryInput{
		Name:             req.Name,
		Slug:             req.Slug,
		ParentCategoryID: parentID,
		SortOrder:        req.SortOrder,
		IsActive:         isActive,
	}, true
}

// List godoc
// @Summary      List all categories
// @Description  Includes inactive categories
// @Tags         admin-categories
// @Produce      json
// @Success      200 {array} CategoryResponse
// @Security     BearerAuth
// @Router       /api/admin/categories [get]
func (h *AdminCategoryHandler) List(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Create godoc
// @Summary      Create category
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Param        request body CategoryRequest true "Category"
// @Success      201 {object} dto.IDResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/categories [post]
func (h *AdminCategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input, ok := h.toInput(c, req)
	if !ok {
		return
	}

	id, err := h.catalog.CreateCategory(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.IDResponse{ID: id.String()})
}

// Update godoc
// @Summary      Update category
// @Tags         admin-categories
// @Accept       json
// @Param        id path string true "Category ID"
// @Param        request body CategoryRequest true "Category"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/categories/{id} [put]
func (h *AdminCategoryHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input, ok := h.toInput(c, req)
	if !ok {
		return
	}

	if err := h.catalog.UpdateCategory(c.Request.Context(), id, input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
