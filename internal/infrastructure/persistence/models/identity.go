package models

import (
	"github.com/secondhandshop/backend/internal/domain/identity"
)

// AdminUserModel is the persistence model for the AdminUser domain entity.
type AdminUserModel struct {
	BaseModel
	DisplayName  string `gorm:"type:varchar(120);not null"`
	Email        string `gorm:"type:varchar(256);not null;uniqueIndex:ux_admin_users_email"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AdminUserModel) TableName() string {
	return "admin_users"
}

// ToDomain converts the persistence model to a domain AdminUser entity.
func (m *AdminUserModel) ToDomain() *identity.AdminUser {
	return &identity.AdminUser{
		BaseEntity:   m.BaseModel.ToDomain(),
		DisplayName:  m.DisplayName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain AdminUser entity.
func (m *AdminUserModel) FromDomain(u *identity.AdminUser) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.DisplayName = u.DisplayName
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.IsActive = u.IsActive
}

// AdminUserModelFromDomain creates a new persistence model from a domain AdminUser entity.
func AdminUserModelFromDomain(u *identity.AdminUser) *AdminUserModel {
	m := &AdminUserModel{}
	m.FromDomain(u)
	return m
}
