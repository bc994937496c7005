package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInquiryRepository implements InquiryRepository using GORM
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewGormInquiryRepository creates a new GormInquiryRepository
func NewGormInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

// FindByID finds an inquiry by its ID
func (r *GormInquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inquiry.Inquiry, error) {
	var model models.InquiryModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListPendingEmail returns inquiries whose notification email is due at now,
// oldest first. Pending rows are due when they have no retry time or it has
// passed; failed rows only when a retry time is set and has passed. Rows that
// used up maxAttempts are skipped.
func (r *GormInquiryRepository) ListPendingEmail(ctx context.Context, now time.Time, maxAttempts, limit int) ([]inquiry.Inquiry, error) {
	query := conn(ctx, r.db).
		Where("email_send_attempts < ?", maxAttempts).
		Where(
			"((email_delivery_status = ? AND (next_retry_at IS NULL OR next_retry_at <= ?)) OR "+
				"(email_delivery_status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?))",
			inquiry.EmailDeliveryPending, now,
			inquiry.EmailDeliveryFailed, now,
		).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var inquiryModels []models.InquiryModel
	if err := query.Find(&inquiryModels).Error; err != nil {
		return nil, err
	}
	return inquiriesToDomain(inquiryModels), nil
}

// ListByCustomerID returns a customer's inquiries, newest first
func (r *GormInquiryRepository) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]inquiry.Inquiry, error) {
	var inquiryModels []models.InquiryModel
	if err := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&inquiryModels).Error; err != nil {
		return nil, err
	}
	return inquiriesToDomain(inquiryModels), nil
}

// Save creates or updates an inquiry
func (r *GormInquiryRepository) Save(ctx context.Context, inq *inquiry.Inquiry) error {
	model := models.InquiryModelFromDomain(inq)
	return conn(ctx, r.db).Save(model).Error
}

func inquiriesToDomain(inquiryModels []models.InquiryModel) []inquiry.Inquiry {
	inquiries := make([]inquiry.Inquiry, len(inquiryModels))
	for i, m := range inquiryModels {
		inquiries[i] = *m.ToDomain()
	}
	return inquiries
}

// Ensure GormInquiryRepository implements InquiryRepository
var _ inquiry.InquiryRepository = (*GormInquiryRepository)(nil)
