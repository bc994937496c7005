package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/identity"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAdminUserRepository implements AdminUserRepository using GORM
type GormAdminUserRepository struct {
	db *gorm.DB
}

// NewGormAdminUserRepository creates a new GormAdminUserRepository
func NewGormAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

// FindByID finds an admin user by ID
func (r *GormAdminUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AdminUser, error) {
	var model models.AdminUserModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an admin user by login email
func (r *GormAdminUserRepository) FindByEmail(ctx context.Context, email string) (*identity.AdminUser, error) {
	var model models.AdminUserModel
	if err := conn(ctx, r.db).
		Where("email = ?", identity.NormalizeEmail(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if an admin user with the given email exists
func (r *GormAdminUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.AdminUserModel{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an admin user
func (r *GormAdminUserRepository) Save(ctx context.Context, user *identity.AdminUser) error {
	model := models.AdminUserModelFromDomain(user)
	err := conn(ctx, r.db).Save(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError(shared.CodeAlreadyExists, "An admin with this email already exists.")
	}
	return err
}

// Ensure GormAdminUserRepository implements AdminUserRepository
var _ identity.AdminUserRepository = (*GormAdminUserRepository)(nil)
