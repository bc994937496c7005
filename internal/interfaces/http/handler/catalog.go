package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the public catalog
type CatalogHandler struct {
	BaseHandler
	query CatalogQuery
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(query CatalogQuery) *CatalogHandler {
	return &CatalogHandler{query: query}
}

// ListCategories godoc
// @Summary      List categories
// @Description  Active categories ordered by sort order and name
// @Tags         catalog
// @Produce      json
// @Success      200 {array} CategoryResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.query.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListProducts godoc
// @Summary      List products
// @Description  Products visible in the storefront, optionally filtered by category
// @Tags         catalog
// @Produce      json
// @Param        categoryId query string false "Category ID"
// @Success      200 {array} ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	raw, present := c.GetQuery("categoryId")
	var rawPtr *string
	if present {
		rawPtr = &raw
	}
	categoryID, err := parseOptionalUUID(rawPtr)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidID, "Invalid categoryId.")
		return
	}

	products, err := h.query.ListProducts(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductBySlug godoc
// @Summary      Get product by slug
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} ProductResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/products/slug/{slug} [get]
func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	product, err := h.query.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
