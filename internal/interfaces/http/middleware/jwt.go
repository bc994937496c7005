package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey      = "jwt_claims"
	JWTAdminUserIDKey = "admin_user_id"
	AuthHeaderKey     = "Authorization"
	BearerPrefix      = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Revocations is optional; revoked jtis are rejected
	Revocations auth.TokenRevocationList
	// SkipPaths are full paths served without a token
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuthMiddleware requires a valid admin bearer token
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			handleAuthError(c, log, auth.ErrInvalidToken, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, log, err, "Token validation failed")
			return
		}

		if cfg.Revocations != nil && claims.ID != "" {
			revoked, err := cfg.Revocations.IsRevoked(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// Fail open: a revocation store outage must not lock out every admin.
				log.Error("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
			case revoked:
				handleAuthError(c, log, auth.ErrTokenRevoked, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTAdminUserIDKey, claims.AdminUserID)
		c.Request = c.Request.WithContext(logger.WithAdminUserID(c.Request.Context(), claims.AdminUserID))

		log.Debug("JWT authentication successful", zap.String("admin_user_id", claims.AdminUserID))
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func handleAuthError(c *gin.Context, log *zap.Logger, err error, message string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	code, msg := "UNAUTHORIZED", "Authentication required."
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = "TOKEN_EXPIRED", "Token has expired."
	case errors.Is(err, auth.ErrTokenRevoked):
		code, msg = "TOKEN_REVOKED", "Token has been revoked."
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code, msg = "TOKEN_NOT_VALID", "Token is not yet valid."
	}
	abortWithError(c, http.StatusUnauthorized, code, msg)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetAdminUserID returns the authenticated admin, if any.
func GetAdminUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetJWTClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := claims.GetAdminUUID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
