package inquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InquiryRepository defines the interface for inquiry persistence
type InquiryRepository interface {
	// FindByID finds an inquiry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Inquiry, error)

	// ListPendingEmail returns inquiries whose notification email is due at now
	// and has been attempted fewer than maxAttempts times, oldest first.
	// A limit of zero means no limit.
	ListPendingEmail(ctx context.Context, now time.Time, maxAttempts, limit int) ([]Inquiry, error)

	// ListByCustomerID returns a customer's inquiries, newest first
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Inquiry, error)

	// Save creates or updates an inquiry
	Save(ctx context.Context, inquiry *Inquiry) error
}
