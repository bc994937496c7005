package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/identity"
)

// AdminInfo is the public view of an admin user
type AdminInfo struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"isActive"`
}

// LoginResult is returned after a successful login
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Admin       AdminInfo `json:"admin"`
}

// CreateAdminInput holds the fields for a new admin account
type CreateAdminInput struct {
	DisplayName string
	Email       string
	Password    string
}

// ToAdminInfo converts a domain admin user to AdminInfo
func ToAdminInfo(a *identity.AdminUser) AdminInfo {
	return AdminInfo{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Email:       a.Email,
		IsActive:    a.IsActive,
	}
}
