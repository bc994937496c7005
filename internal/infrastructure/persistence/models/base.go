package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity. Timestamps come from the domain clock,
// so gorm's automatic time tracking is off.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AuditModel extends BaseModel with the admin users that created and last
// modified the row.
type AuditModel struct {
	BaseModel
	CreatedByAdminUserID *uuid.UUID `gorm:"type:uuid"`
	UpdatedByAdminUserID *uuid.UUID `gorm:"type:uuid"`
}

// ToDomainAuditable converts AuditModel to domain AuditableEntity
func (m *AuditModel) ToDomainAuditable() shared.AuditableEntity {
	return shared.AuditableEntity{
		BaseEntity:           m.BaseModel.ToDomain(),
		CreatedByAdminUserID: m.CreatedByAdminUserID,
		UpdatedByAdminUserID: m.UpdatedByAdminUserID,
	}
}

// FromDomainAuditable populates AuditModel from domain AuditableEntity
func (m *AuditModel) FromDomainAuditable(e shared.AuditableEntity) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.CreatedByAdminUserID = e.CreatedByAdminUserID
	m.UpdatedByAdminUserID = e.UpdatedByAdminUserID
}

// AllModels lists every persistence model, in dependency order, for AutoMigrate.
func AllModels() []any {
	return []any{
		&AdminUserModel{},
		&CategoryModel{},
		&ProductModel{},
		&ProductImageModel{},
		&CustomerModel{},
		&InquiryModel{},
	}
}
