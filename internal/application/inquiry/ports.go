package inquiry

import (
	"context"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
	"github.com/secondhandshop/backend/internal/domain/partner"
)

// InquiryEmailMessage is the notification sent to the shop inbox for a new inquiry
type InquiryEmailMessage struct {
	InquiryID    uuid.UUID
	ProductID    uuid.UUID
	ProductTitle string
	ProductSlug  string
	CustomerName *string
	Email        *string
	PhoneNumber  *string
	Message      string
}

// EmailSender delivers inquiry notifications
type EmailSender interface {
	SendInquiry(ctx context.Context, message InquiryEmailMessage) error
}

// TransactionScope provides transactional access to customer and inquiry repositories.
// If fn returns an error the transaction is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories sharing one database transaction
type TransactionalRepositories interface {
	CustomerRepo() partner.CustomerRepository
	InquiryRepo() inquiry.InquiryRepository
}

// NoOpTransactionScope runs the function against plain repositories without a transaction
type NoOpTransactionScope struct {
	customerRepo partner.CustomerRepository
	inquiryRepo  inquiry.InquiryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(customerRepo partner.CustomerRepository, inquiryRepo inquiry.InquiryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{customerRepo: customerRepo, inquiryRepo: inquiryRepo}
}

// Execute runs fn without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CustomerRepo returns the customer repository
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository {
	return s.customerRepo
}

// InquiryRepo returns the inquiry repository
func (s *NoOpTransactionScope) InquiryRepo() inquiry.InquiryRepository {
	return s.inquiryRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
