package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	identityapp "github.com/secondhandshop/backend/internal/application/identity"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type failingRevocationList struct{}

func (failingRevocationList) Revoke(context.Context, string, time.Duration) error {
	return errors.New("redis: connection refused")
}

func (failingRevocationList) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

func TestAuthHandler_Login(t *testing.T) {
	setup := func() (*MockAdminAuthenticator, http.Handler) {
		svc := new(MockAdminAuthenticator)
		h := NewAuthHandler(svc, nil)
		r := newTestEngine()
		r.POST("/api/admin/auth/login", h.Login)
		return svc, r
	}

	t.Run("success", func(t *testing.T) {
		svc, r := setup()
		adminID := uuid.New()
		svc.On("Login", mock.Anything, "owner@example.com", "secret-pass").Return(&identityapp.LoginResult{
			AccessToken: "token-value",
			TokenType:   "Bearer",
			ExpiresAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Admin:       identityapp.AdminInfo{ID: adminID, Email: "owner@example.com", DisplayName: "Owner", IsActive: true},
		}, nil)

		rec := performJSON(r, http.MethodPost, "/api/admin/auth/login", map[string]string{
			"email":    "owner@example.com",
			"password": "secret-pass",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"accessToken":"token-value"`)
		assert.Contains(t, rec.Body.String(), adminID.String())
		svc.AssertExpectations(t)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc, r := setup()
		svc.On("Login", mock.Anything, "owner@example.com", "wrong").
			Return(nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password."))

		rec := performJSON(r, http.MethodPost, "/api/admin/auth/login", map[string]string{
			"email":    "owner@example.com",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password.", decodeError(t, rec).Error.Message)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc, r := setup()

		rec := performJSON(r, http.MethodPost, "/api/admin/auth/login", map[string]string{
			"email":    "not-an-email",
			"password": "x",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	adminID := uuid.New()

	t.Run("authenticated", func(t *testing.T) {
		svc := new(MockAdminAuthenticator)
		svc.On("GetAdmin", mock.Anything, adminID).
			Return(&identityapp.AdminInfo{ID: adminID, Email: "owner@example.com", DisplayName: "Owner", IsActive: true}, nil)
		h := NewAuthHandler(svc, nil)
		r := newTestEngine()
		r.GET("/me", asAdmin(adminID), h.Me)

		rec := performJSON(r, http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"displayName":"Owner"`)
	})

	t.Run("no claims", func(t *testing.T) {
		h := NewAuthHandler(new(MockAdminAuthenticator), nil)
		r := newTestEngine()
		r.GET("/me", h.Me)

		rec := performJSON(r, http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin removed", func(t *testing.T) {
		svc := new(MockAdminAuthenticator)
		svc.On("GetAdmin", mock.Anything, adminID).Return(nil, shared.NewNotFoundError("Admin user not found."))
		h := NewAuthHandler(svc, nil)
		r := newTestEngine()
		r.GET("/me", asAdmin(adminID), h.Me)

		rec := performJSON(r, http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	adminID := uuid.New()

	t.Run("revokes the token id", func(t *testing.T) {
		revocations := auth.NewInMemoryTokenRevocationList()
		h := NewAuthHandler(new(MockAdminAuthenticator), revocations)
		r := newTestEngine()
		r.POST("/logout", asAdmin(adminID), h.Logout)

		rec := performJSON(r, http.MethodPost, "/logout", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		revoked, err := revocations.IsRevoked(context.Background(), testClaims(adminID).ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("without revocation list", func(t *testing.T) {
		h := NewAuthHandler(new(MockAdminAuthenticator), nil)
		r := newTestEngine()
		r.POST("/logout", asAdmin(adminID), h.Logout)

		rec := performJSON(r, http.MethodPost, "/logout", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		h := NewAuthHandler(new(MockAdminAuthenticator), failingRevocationList{})
		r := newTestEngine()
		r.POST("/logout", asAdmin(adminID), h.Logout)

		rec := performJSON(r, http.MethodPost, "/logout", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := NewAuthHandler(new(MockAdminAuthenticator), nil)
		r := newTestEngine()
		r.POST("/logout", h.Logout)

		rec := performJSON(r, http.MethodPost, "/logout", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
