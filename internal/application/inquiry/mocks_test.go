package inquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
	"github.com/secondhandshop/backend/internal/domain/partner"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mocks
// ============================================================================

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ListForPublic(ctx context.Context, categoryID *uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListForAdmin(ctx context.Context, status *catalog.ProductStatus) ([]catalog.Product, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

var _ catalog.ProductRepository = (*MockProductRepository)(nil)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*partner.Customer, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

var _ partner.CustomerRepository = (*MockCustomerRepository)(nil)

// MockInquiryRepository is a mock implementation of InquiryRepository
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inquiry.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inquiry.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) ListPendingEmail(ctx context.Context, now time.Time, maxAttempts, limit int) ([]inquiry.Inquiry, error) {
	args := m.Called(ctx, now, maxAttempts, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inquiry.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]inquiry.Inquiry, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inquiry.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) Save(ctx context.Context, inq *inquiry.Inquiry) error {
	args := m.Called(ctx, inq)
	return args.Error(0)
}

var _ inquiry.InquiryRepository = (*MockInquiryRepository)(nil)

// MockEmailSender is a mock implementation of EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInquiry(ctx context.Context, message InquiryEmailMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

var _ EmailSender = (*MockEmailSender)(nil)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
