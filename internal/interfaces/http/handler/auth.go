package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// AuthHandler handles admin sessions
type AuthHandler struct {
	BaseHandler
	auth        AdminAuthenticator
	revocations auth.TokenRevocationList
}

// NewAuthHandler creates an AuthHandler. revocations may be nil, in which
// case logout only acknowledges the request.
func NewAuthHandler(authService AdminAuthenticator, revocations auth.TokenRevocationList) *AuthHandler {
	return &AuthHandler{auth: authService, revocations: revocations}
}

// LoginRequest holds admin credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=256" example:"owner@example.com"`
	Password string `json:"password" binding:"required,max=128" example:"correct-horse-battery"`
}

// Login godoc
// @Summary      Admin login
// @Description  Exchanges admin credentials for a bearer token
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/admin/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Me godoc
// @Summary      Current admin
// @Tags         admin-auth
// @Produce      json
// @Success      200 {object} AdminResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, ok := middleware.GetAdminUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required.")
		return
	}

	admin, err := h.auth.GetAdmin(c.Request.Context(), adminID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

// Logout godoc
// @Summary      Admin logout
// @Description  Revokes the presented token until it would have expired
// @Tags         admin-auth
// @Success      204
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required.")
		return
	}

	if h.revocations != nil && claims.ID != "" {
		if ttl := claims.GetRemainingTTL(); ttl > 0 {
			if err := h.revocations.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
				h.HandleError(c, err)
				return
			}
		}
	}
	logger.GetGinLogger(c).Info("Admin logged out", zap.String("admin_user_id", claims.AdminUserID))
	h.NoContent(c)
}
