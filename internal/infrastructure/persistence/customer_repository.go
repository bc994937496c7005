package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/partner"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a customer by normalized email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	normalized := shared.NormalizeOptionalLower(&email)
	if normalized == nil {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "email = ?", *normalized)
}

// FindByPhoneNumber finds a customer by normalized phone number
func (r *GormCustomerRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*partner.Customer, error) {
	normalized := shared.NormalizeOptional(&phoneNumber)
	if normalized == nil {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "phone_number = ?", *normalized)
}

func (r *GormCustomerRepository) findOne(ctx context.Context, query string, arg any) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return duplicateAsConflict(conn(ctx, r.db).Save(model).Error,
		"A customer with this email or phone number already exists.")
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
