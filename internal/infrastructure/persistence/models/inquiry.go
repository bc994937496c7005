package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
)

// InquiryModel is the persistence model for the Inquiry domain entity.
type InquiryModel struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;primary_key"`
	ProductID           uuid.UUID                   `gorm:"type:uuid;not null;index:ix_inquiries_product_id"`
	CustomerID          uuid.UUID                   `gorm:"type:uuid;not null;index:ix_inquiries_customer_id"`
	CustomerName        *string                     `gorm:"type:varchar(120)"`
	Email               *string                     `gorm:"type:varchar(256)"`
	PhoneNumber         *string                     `gorm:"type:varchar(40)"`
	Message             string                      `gorm:"type:varchar(3000);not null"`
	CreatedAt           time.Time                   `gorm:"not null"`
	EmailDeliveryStatus inquiry.EmailDeliveryStatus `gorm:"type:smallint;not null;default:1;index:ix_inquiries_email_pending,priority:1"`
	DeliveredAt         *time.Time
	DeliveryError       *string    `gorm:"type:varchar(1000)"`
	EmailSendAttempts   int        `gorm:"not null;default:0"`
	NextRetryAt         *time.Time `gorm:"index:ix_inquiries_email_pending,priority:2"`
}

// TableName returns the table name for GORM
func (InquiryModel) TableName() string {
	return "inquiries"
}

// ToDomain converts the persistence model to a domain Inquiry entity.
func (m *InquiryModel) ToDomain() *inquiry.Inquiry {
	return &inquiry.Inquiry{
		ID:                  m.ID,
		ProductID:           m.ProductID,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		Email:               m.Email,
		PhoneNumber:         m.PhoneNumber,
		Message:             m.Message,
		CreatedAt:           m.CreatedAt,
		EmailDeliveryStatus: m.EmailDeliveryStatus,
		DeliveredAt:         m.DeliveredAt,
		DeliveryError:       m.DeliveryError,
		EmailSendAttempts:   m.EmailSendAttempts,
		NextRetryAt:         m.NextRetryAt,
	}
}

// FromDomain populates the persistence model from a domain Inquiry entity.
func (m *InquiryModel) FromDomain(i *inquiry.Inquiry) {
	m.ID = i.ID
	m.ProductID = i.ProductID
	m.CustomerID = i.CustomerID
	m.CustomerName = i.CustomerName
	m.Email = i.Email
	m.PhoneNumber = i.PhoneNumber
	m.Message = i.Message
	m.CreatedAt = i.CreatedAt
	m.EmailDeliveryStatus = i.EmailDeliveryStatus
	m.DeliveredAt = i.DeliveredAt
	m.DeliveryError = i.DeliveryError
	m.EmailSendAttempts = i.EmailSendAttempts
	m.NextRetryAt = i.NextRetryAt
}

// InquiryModelFromDomain creates a new persistence model from a domain Inquiry entity.
func InquiryModelFromDomain(i *inquiry.Inquiry) *InquiryModel {
	m := &InquiryModel{}
	m.FromDomain(i)
	return m
}
