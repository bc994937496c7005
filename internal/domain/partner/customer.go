package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/shared"
)

const (
	MaxCustomerNameLength  = 120
	MaxCustomerEmailLength = 256
	MaxCustomerPhoneLength = 40
)

// Customer is a person who contacted the shop through an inquiry.
// Customers are identified by email or phone number.
type Customer struct {
	shared.BaseEntity
	Name        *string
	Email       *string
	PhoneNumber *string
}

// NewCustomer creates a new customer
func NewCustomer(name, email, phoneNumber *string, now time.Time) (*Customer, error) {
	c := &Customer{BaseEntity: shared.NewBaseEntity(now)}
	if err := c.apply(name, email, phoneNumber); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateContact replaces the contact details
func (c *Customer) UpdateContact(name, email, phoneNumber *string, now time.Time) error {
	if err := c.apply(name, email, phoneNumber); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

func (c *Customer) apply(name, email, phoneNumber *string) error {
	n, e, p, err := NormalizeContact(name, email, phoneNumber)
	if err != nil {
		return err
	}
	c.Name = n
	c.Email = e
	c.PhoneNumber = p
	return nil
}

// NormalizeContact trims the contact fields, lowercases the email and
// checks the length limits. At least one of email or phone must remain.
func NormalizeContact(name, email, phoneNumber *string) (*string, *string, *string, error) {
	n := shared.NormalizeOptional(name)
	e := shared.NormalizeOptionalLower(email)
	p := shared.NormalizeOptional(phoneNumber)

	if e == nil && p == nil {
		return nil, nil, nil, shared.NewValidationError("INVALID_CONTACT", "Customer must have an email or phone number.")
	}
	if n != nil && shared.CharLen(*n) > MaxCustomerNameLength {
		return nil, nil, nil, shared.NewValidationError("INVALID_NAME", "Customer name cannot exceed 120 characters.")
	}
	if e != nil && shared.CharLen(*e) > MaxCustomerEmailLength {
		return nil, nil, nil, shared.NewValidationError("INVALID_EMAIL", "Email cannot exceed 256 characters.")
	}
	if p != nil && shared.CharLen(*p) > MaxCustomerPhoneLength {
		return nil, nil, nil, shared.NewValidationError("INVALID_PHONE", "Phone number cannot exceed 40 characters.")
	}
	return n, e, p, nil
}

// SameAs reports whether two customers are the same record
func (c *Customer) SameAs(other *Customer) bool {
	return other != nil && c.ID != uuid.Nil && c.ID == other.ID
}
