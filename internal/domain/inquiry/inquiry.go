package inquiry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/partner"
	"github.com/secondhandshop/backend/internal/domain/shared"
)

const (
	MaxMessageLength       = 3000
	MaxDeliveryErrorLength = 1000

	defaultDeliveryError = "Unknown mail delivery error."
)

// EmailDeliveryStatus tracks the notification email sent to the shop inbox
type EmailDeliveryStatus int

const (
	EmailDeliveryPending EmailDeliveryStatus = 1
	EmailDeliverySent    EmailDeliveryStatus = 2
	EmailDeliveryFailed  EmailDeliveryStatus = 3
)

// String returns the wire name of the status
func (s EmailDeliveryStatus) String() string {
	switch s {
	case EmailDeliveryPending:
		return "Pending"
	case EmailDeliverySent:
		return "Sent"
	case EmailDeliveryFailed:
		return "Failed"
	default:
		return fmt.Sprintf("EmailDeliveryStatus(%d)", int(s))
	}
}

// Inquiry is a message a visitor left about a product. The contact
// details are copied from the form so they survive later customer merges.
type Inquiry struct {
	ID                  uuid.UUID
	ProductID           uuid.UUID
	CustomerID          uuid.UUID
	CustomerName        *string
	Email               *string
	PhoneNumber         *string
	Message             string
	CreatedAt           time.Time
	EmailDeliveryStatus EmailDeliveryStatus
	DeliveredAt         *time.Time
	DeliveryError       *string
	EmailSendAttempts   int
	NextRetryAt         *time.Time
}

// NewInquiry creates a new inquiry awaiting email delivery
func NewInquiry(
	productID, customerID uuid.UUID,
	customerName, email, phoneNumber *string,
	message string,
	now time.Time,
) (*Inquiry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product is required.")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer is required.")
	}
	name, mail, phone, err := partner.NormalizeContact(customerName, email, phoneNumber)
	if err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, shared.NewValidationError("INVALID_MESSAGE", "Message is required.")
	}
	if shared.CharLen(message) > MaxMessageLength {
		return nil, shared.NewValidationError("INVALID_MESSAGE", "Message cannot exceed 3000 characters.")
	}

	return &Inquiry{
		ID:                  uuid.New(),
		ProductID:           productID,
		CustomerID:          customerID,
		CustomerName:        name,
		Email:               mail,
		PhoneNumber:         phone,
		Message:             message,
		CreatedAt:           now,
		EmailDeliveryStatus: EmailDeliveryPending,
	}, nil
}

// MarkEmailSent records a successful delivery
func (i *Inquiry) MarkEmailSent(now time.Time) {
	i.EmailDeliveryStatus = EmailDeliverySent
	i.DeliveredAt = &now
	i.DeliveryError = nil
	i.NextRetryAt = nil
	i.EmailSendAttempts++
}

// MarkEmailFailed records a failed attempt. A nil nextRetryAt means
// the failure is final and the inquiry is never picked up again.
func (i *Inquiry) MarkEmailFailed(errMessage string, nextRetryAt *time.Time) {
	msg := strings.TrimSpace(errMessage)
	if msg == "" {
		msg = defaultDeliveryError
	}
	msg = shared.Truncate(msg, MaxDeliveryErrorLength)

	i.EmailDeliveryStatus = EmailDeliveryFailed
	i.DeliveryError = &msg
	i.NextRetryAt = nextRetryAt
	i.EmailSendAttempts++
}

// RequeueForEmail puts the inquiry back in the delivery queue
func (i *Inquiry) RequeueForEmail(nextRetryAt time.Time) {
	i.EmailDeliveryStatus = EmailDeliveryPending
	i.NextRetryAt = &nextRetryAt
}

// IsDueForEmail reports whether a delivery attempt should be made at now
func (i *Inquiry) IsDueForEmail(now time.Time) bool {
	switch i.EmailDeliveryStatus {
	case EmailDeliveryPending:
		return i.NextRetryAt == nil || !i.NextRetryAt.After(now)
	case EmailDeliveryFailed:
		return i.NextRetryAt != nil && !i.NextRetryAt.After(now)
	default:
		return false
	}
}
