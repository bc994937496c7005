package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
	"github.com/secondhandshop/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Created sends a 201 response with a JSON body
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends the standard error body with the given status
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	resp := dto.NewErrorResponse(code, message)
	resp.Error.RequestID = getRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, shared.CodeUnauthorized, message)
}

// ValidationError sends a 400 response listing the rejected fields
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed.",
		getRequestID(c),
		details,
	))
}

// HandleError maps err to a response. Domain errors keep their code and
// message; anything else is logged and reported as a 500 without details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError {
			logger.GetGinLogger(c).Error("Unmapped domain error", zap.String("code", domainErr.Code), zap.Error(err))
		}
		h.Error(c, status, domainErr.Code, domainErr.Message)
		return
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Request body exceeds maximum allowed size.")
		return
	}

	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred.")
}

// bindJSON decodes the body into req. It answers 400 and returns false for
// malformed JSON or failed binding rules.
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if details := middleware.ValidationDetails(err); len(details) > 0 {
		h.ValidationError(c, details)
		return false
	}
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		h.HandleError(c, err)
	case errors.Is(err, io.EOF):
		h.BadRequest(c, "Request body is required.")
	default:
		h.BadRequest(c, "Request body is not valid JSON.")
	}
	return false
}

// parseUUIDParam reads a path parameter as a UUID, answering 400 otherwise.
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidID, "Invalid "+name+".")
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID parses an optional UUID from a request body or query.
// Blank values give nil.
func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// actingAdmin returns the admin from the bearer token. The body field is
// only used when no token identity is available.
func actingAdmin(c *gin.Context, bodyAdminID *string) *uuid.UUID {
	if id, ok := middleware.GetAdminUserID(c); ok {
		return &id
	}
	id, err := parseOptionalUUID(bodyAdminID)
	if err != nil {
		return nil
	}
	return id
}
