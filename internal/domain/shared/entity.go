package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID stamped at now.
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AuditableEntity records which admin user created and last modified a row.
// A nil admin id means the change came from a system process.
type AuditableEntity struct {
	BaseEntity
	CreatedByAdminUserID *uuid.UUID
	UpdatedByAdminUserID *uuid.UUID
}

// SetCreatedAudit stamps creation and modification fields.
func (e *AuditableEntity) SetCreatedAudit(adminUserID *uuid.UUID, now time.Time) {
	e.CreatedAt = now
	e.UpdatedAt = now
	e.CreatedByAdminUserID = adminUserID
	e.UpdatedByAdminUserID = adminUserID
}

// Touch stamps modification fields.
func (e *AuditableEntity) Touch(adminUserID *uuid.UUID, now time.Time) {
	e.UpdatedAt = now
	e.UpdatedByAdminUserID = adminUserID
}
