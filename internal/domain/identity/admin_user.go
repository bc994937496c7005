package identity

import (
	"strings"
	"time"

	"github.com/secondhandshop/backend/internal/domain/shared"
)

const (
	MaxDisplayNameLength = 120
	MaxEmailLength       = 256
)

// AdminUser is a shop operator allowed to manage the catalog
type AdminUser struct {
	shared.BaseEntity
	DisplayName  string
	Email        string
	PasswordHash string
	IsActive     bool
}

// NewAdminUser creates a new active admin user
func NewAdminUser(displayName, email, passwordHash string, now time.Time) (*AdminUser, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, shared.NewValidationError("INVALID_DISPLAY_NAME", "Display name is required.")
	}
	if shared.CharLen(displayName) > MaxDisplayNameLength {
		return nil, shared.NewValidationError("INVALID_DISPLAY_NAME", "Display name cannot exceed 120 characters.")
	}
	email = NormalizeEmail(email)
	if email == "" {
		return nil, shared.NewValidationError("INVALID_EMAIL", "Email is required.")
	}
	if shared.CharLen(email) > MaxEmailLength || !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("INVALID_EMAIL", "Email is invalid.")
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("INVALID_PASSWORD", "Password hash is required.")
	}

	return &AdminUser{
		BaseEntity:   shared.NewBaseEntity(now),
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}, nil
}

// NormalizeEmail trims and lowercases an admin login email
func NormalizeEmail(email string) string {
	return shared.ToLowerInvariant(strings.TrimSpace(email))
}

// SetPasswordHash replaces the stored password hash
func (u *AdminUser) SetPasswordHash(hash string, now time.Time) error {
	if hash == "" {
		return shared.NewValidationError("INVALID_PASSWORD", "Password hash is required.")
	}
	u.PasswordHash = hash
	u.UpdatedAt = now
	return nil
}

// Activate enables sign-in
func (u *AdminUser) Activate(now time.Time) {
	u.IsActive = true
	u.UpdatedAt = now
}

// Deactivate disables sign-in
func (u *AdminUser) Deactivate(now time.Time) {
	u.IsActive = false
	u.UpdatedAt = now
}
