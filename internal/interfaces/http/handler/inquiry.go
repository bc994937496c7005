package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inquiryapp "github.com/secondhandshop/backend/internal/application/inquiry"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
)

// InquiryHandler accepts visitor inquiries
type InquiryHandler struct {
	BaseHandler
	inquiries InquiryCreator
}

// NewInquiryHandler creates an InquiryHandler
func NewInquiryHandler(inquiries InquiryCreator) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

// CreateInquiryRequest is a visitor's question about a product
// @Description At least one of email or phoneNumber is required
type CreateInquiryRequest struct {
	ProductID    string  `json:"productId" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CustomerName *string `json:"customerName" binding:"omitempty,max=120" example:"Jane"`
	Email        *string `json:"email" binding:"omitempty,max=256" example:"jane@example.com"`
	PhoneNumber  *string `json:"phoneNumber" binding:"omitempty,max=40" example:"0412345678"`
	Message      string  `json:"message" binding:"required,max=3000" example:"Is this still available?"`
}

// Create godoc
// @Summary      Create inquiry
// @Description  Records an inquiry and notifies the shop owner by email
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        request body CreateInquiryRequest true "Inquiry"
// @Success      201 {object} dto.InquiryCreatedResponse
// @Header       201 {string} Location "URL of the new inquiry"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/inquiries [post]
func (h *InquiryHandler) Create(c *gin.Context) {
	var req CreateInquiryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	id, err := h.inquiries.CreateInquiry(c.Request.Context(), inquiryapp.CreateInquiryInput{
		ProductID:    uuid.MustParse(req.ProductID),
		CustomerName: req.CustomerName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Message:      req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/inquiries/"+id.String())
	c.JSON(http.StatusCreated, dto.InquiryCreatedResponse{InquiryID: id.String()})
}
