package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// AdminProductHandler manages products and their images
type AdminProductHandler struct {
	BaseHandler
	catalog AdminCatalog
}

// NewAdminProductHandler creates an AdminProductHandler
func NewAdminProductHandler(adminCatalog AdminCatalog) *AdminProductHandler {
	return &AdminProductHandler{catalog: adminCatalog}
}

// ProductRequest creates or replaces a product's details
type ProductRequest struct {
	Title       string          `json:"title" binding:"required,max=200" example:"Oak dining table"`
	Slug        string          `json:"slug" binding:"required,max=220,slug" example:"oak-dining-table"`
	Description string          `json:"description" binding:"max=4000" example:"Solid oak, seats six."`
	Price       decimal.Decimal `json:"price" swaggertype:"number" example:"120.50"`
	Condition   string          `json:"condition" example:"Good"`
	CategoryID  string          `json:"categoryId" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AdminUserID *string         `json:"adminUserId,omitempty"`
}

// UpdateProductStatusRequest changes the sale state of a product
type UpdateProductStatusRequest struct {
	Status      string  `json:"status" binding:"required" example:"Sold"`
	AdminUserID *string `json:"adminUserId,omitempty"`
}

// CreateImageUploadURLRequest asks for a presigned PUT URL
type CreateImageUploadURLRequest struct {
	FileName    string  `json:"fileName" example:"front.jpg"`
	ContentType string  `json:"contentType" example:"image/jpeg"`
	AdminUserID *string `json:"adminUserId,omitempty"`
}

// AddProductImageRequest registers an uploaded object as a product image
type AddProductImageRequest struct {
	ObjectKey   string  `json:"objectKey" example:"products/550e8400e29b41d4a716446655440000/1f0c.jpg"`
	AltText     *string `json:"altText" binding:"omitempty,max=300" example:"Front view"`
	SortOrder   int     `json:"sortOrder" example:"0"`
	IsPrimary   bool    `json:"isPrimary" example:"true"`
	AdminUserID *string `json:"adminUserId,omitempty"`
}

// toInput leaves a blank condition unset so the product falls back to Good.
func (r ProductRequest) toInput(c *gin.Context) (catalogapp.CreateProductInput, error) {
	var condition catalog.ProductCondition
	if strings.TrimSpace(r.Condition) != "" {
		parsed, err := catalog.ParseCondition(r.Condition)
		if err != nil {
			return catalogapp.CreateProductInput{}, err
		}
		condition = parsed
	}
	return catalogapp.CreateProductInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Condition:   condition,
		CategoryID:  uuid.MustParse(r.CategoryID),
		AdminUserID: actingAdmin(c, r.AdminUserID),
	}, nil
}

// List godoc
// @Summary      List products for admin
// @Description  All products, optionally filtered by status
// @Tags         admin-products
// @Produce      json
// @Param        status query string false "Available, Sold or OffShelf"
// @Success      200 {array} AdminProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/products [get]
func (h *AdminProductHandler) List(c *gin.Context) {
	var status *catalog.ProductStatus
	if raw := c.Query("status"); raw != "" {
		s, err := catalog.ParseStatus(raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		status = &s
	}

	items, err := h.catalog.ListProductsForAdmin(c.Request.Context(), status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary      Create product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        request body ProductRequest true "Product"
// @Success      201 {object} dto.IDResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/products [post]
func (h *AdminProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input, err := req.toInput(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	id, err := h.catalog.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.IDResponse{ID: id.String()})
}

// Update godoc
// @Summary      Update product
// @Tags         admin-products
// @Accept       json
// @Param        id path string true "Product ID"
// @Param        request body ProductRequest true "Product"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/products/{id} [put]
func (h *AdminProductHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input, err := req.toInput(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.catalog.UpdateProduct(c.Request.Context(), id, input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateStatus godoc
// @Summary      Change product status
// @Tags         admin-products
// @Accept       json
// @Param        id path string true "Product ID"
// @Param        request body UpdateProductStatusRequest true "Status"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/products/{id}/status [put]
func (h *AdminProductHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProductStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	status, err := catalog.ParseStatus(req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.catalog.UpdateProductStatus(c.Request.Context(), id, status, actingAdmin(c, req.AdminUserID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateImageUploadURL godoc
// @Summary      Presign image upload
// @Description  Returns a short-lived URL the browser PUTs the image bytes to
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body CreateImageUploadURLRequest true "File"
// @Success      200 {object} ImageUploadURLResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/products/{id}/images/presigned-url [post]
func (h *AdminProductHandler) CreateImageUploadURL(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateImageUploadURLRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.catalog.CreateProductImageUploadURL(c.Request.Context(), catalogapp.CreateImageUploadURLInput{
		ProductID:   id,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		AdminUserID: actingAdmin(c, req.AdminUserID),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddImage godoc
// @Summary      Register product image
// @Tags         admin-products
// @Accept       json
// @Param        id path string true "Product ID"
// @Param        request body AddProductImageRequest true "Image"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/products/{id}/images [post]
func (h *AdminProductHandler) AddImage(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AddProductImageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	err := h.catalog.AddProductImage(c.Request.Context(), catalogapp.AddProductImageInput{
		ProductID:   id,
		ObjectKey:   req.ObjectKey,
		AltText:     req.AltText,
		SortOrder:   req.SortOrder,
		IsPrimary:   req.IsPrimary,
		AdminUserID: actingAdmin(c, req.AdminUserID),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteImage godoc
// @Summary      Delete product image
// @Tags         admin-products
// @Param        id path string true "Product ID"
// @Param        imageId path string true "Image ID"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/products/{id}/images/{imageId} [delete]
func (h *AdminProductHandler) DeleteImage(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := h.parseUUIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := h.catalog.DeleteProductImage(c.Request.Context(), id, imageID, actingAdmin(c, nil)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
