package inquiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
	"github.com/secondhandshop/backend/internal/domain/partner"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type inquiryFixture struct {
	products  *MockProductRepository
	customers *MockCustomerRepository
	inquiries *MockInquiryRepository
	sender    *MockEmailSender
	service   *InquiryService
}

func newInquiryFixture() *inquiryFixture {
	f := &inquiryFixture{
		products:  new(MockProductRepository),
		customers: new(MockCustomerRepository),
		inquiries: new(MockInquiryRepository),
		sender:    new(MockEmailSender),
	}
	f.service = NewInquiryService(
		f.products,
		f.inquiries,
		NewNoOpTransactionScope(f.customers, f.inquiries),
		f.sender,
		shared.FixedClock{At: fixedNow},
		nil,
	)
	return f
}

func sampleProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Oak Chair", "oak-chair", "", decimal.NewFromInt(35), catalog.ConditionGood, uuid.New(), nil, fixedNow)
	require.NoError(t, err)
	return p
}

func TestInquiryService_CreateInquiry(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer and sends email", func(t *testing.T) {
		f := newInquiryFixture()
		p := sampleProduct(t)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.customers.On("FindByEmail", mock.Anything, "ann@example.com").Return(nil, shared.ErrNotFound)
		f.customers.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)
		f.inquiries.On("Save", mock.Anything, mock.AnythingOfType("*inquiry.Inquiry")).Return(nil)
		f.sender.On("SendInquiry", mock.Anything, mock.MatchedBy(func(m InquiryEmailMessage) bool {
			return m.ProductTitle == "Oak Chair" && m.ProductSlug == "oak-chair" && *m.Email == "ann@example.com" && m.Message == "Is it still available?"
		})).Return(nil)

		id, err := f.service.CreateInquiry(ctx, CreateInquiryInput{
			ProductID:    p.ID,
			CustomerName: shared.StringPtr(" Ann "),
			Email:        shared.StringPtr(" Ann@Example.com "),
			PhoneNumber:  shared.StringPtr("   "),
			Message:      " Is it still available? ",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		saved := f.inquiries.Calls[len(f.inquiries.Calls)-1].Arguments.Get(1).(*inquiry.Inquiry)
		assert.Equal(t, id, saved.ID)
		assert.Equal(t, inquiry.EmailDeliverySent, saved.EmailDeliveryStatus)
		assert.Equal(t, 1, saved.EmailSendAttempts)
		assert.Nil(t, saved.PhoneNumber)
		assert.Equal(t, "Ann", *saved.CustomerName)

		customer := f.customers.Calls[len(f.customers.Calls)-1].Arguments.Get(1).(*partner.Customer)
		assert.Equal(t, customer.ID, saved.CustomerID)
		f.inquiries.AssertNumberOfCalls(t, "Save", 2)
		f.customers.AssertNotCalled(t, "FindByPhoneNumber", mock.Anything, mock.Anything)
	})

	t.Run("merges contact into existing customer", func(t *testing.T) {
		f := newInquiryFixture()
		p := sampleProduct(t)
		existing, err := partner.NewCustomer(shared.StringPtr("Ann"), shared.StringPtr("ann@example.com"), nil, fixedNow.Add(-24*time.Hour))
		require.NoError(t, err)

		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.customers.On("FindByEmail", mock.Anything, "ann@example.com").Return(existing, nil)
		f.customers.On("FindByPhoneNumber", mock.Anything, "+3612345").Return(nil, shared.ErrNotFound)
		f.customers.On("Save", mock.Anything, existing).Return(nil)
		f.inquiries.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.sender.On("SendInquiry", mock.Anything, mock.Anything).Return(nil)

		_, err = f.service.CreateInquiry(ctx, CreateInquiryInput{
			ProductID:   p.ID,
			Email:       shared.StringPtr("ann@example.com"),
			PhoneNumber: shared.StringPtr("+3612345"),
			Message:     "Hi",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ann", *existing.Name)
		assert.Equal(t, "+3612345", *existing.PhoneNumber)
		assert.Equal(t, fixedNow, existing.UpdatedAt)
	})

	t.Run("conflicting customers", func(t *testing.T) {
		f := newInquiryFixture()
		p := sampleProduct(t)
		byEmail, _ := partner.NewCustomer(nil, shared.StringPtr("ann@example.com"), nil, fixedNow)
		byPhone, _ := partner.NewCustomer(nil, nil, shared.StringPtr("555"), fixedNow)

		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.customers.On("FindByEmail", mock.Anything, "ann@example.com").Return(byEmail, nil)
		f.customers.On("FindByPhoneNumber", mock.Anything, "555").Return(byPhone, nil)

		_, err := f.service.CreateInquiry(ctx, CreateInquiryInput{
			ProductID:   p.ID,
			Email:       shared.StringPtr("ann@example.com"),
			PhoneNumber: shared.StringPtr("555"),
			Message:     "Hi",
		})
		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.Equal(t, "Email and phone number belong to different customers.", err.Error())
		f.inquiries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.sender.AssertNotCalled(t, "SendInquiry", mock.Anything, mock.Anything)
	})

	t.Run("missing product", func(t *testing.T) {
		f := newInquiryFixture()
		id := uuid.New()
		f.products.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.CreateInquiry(ctx, CreateInquiryInput{ProductID: id, Email: shared.StringPtr("a@b.c"), Message: "Hi"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, "Product '"+id.String()+"' was not found.", err.Error())
	})

	t.Run("requires email or phone", func(t *testing.T) {
		f := newInquiryFixture()
		p := sampleProduct(t)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.service.CreateInquiry(ctx, CreateInquiryInput{ProductID: p.ID, Email: shared.StringPtr(" "), Message: "Hi"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, "Customer must have an email or phone number.", err.Error())
	})

	t.Run("email failure schedules retry and still succeeds", func(t *testing.T) {
		f := newInquiryFixture()
		f.service.SetConfig(InquiryServiceConfig{RetryDelay: 10 * time.Minute})
		p := sampleProduct(t)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.customers.On("FindByPhoneNumber", mock.Anything, "555").Return(nil, shared.ErrNotFound)
		f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.inquiries.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.sender.On("SendInquiry", mock.Anything, mock.Anything).Return(errors.New("smtp: connection refused"))

		id, err := f.service.CreateInquiry(ctx, CreateInquiryInput{ProductID: p.ID, PhoneNumber: shared.StringPtr("555"), Message: "Hi"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		saved := f.inquiries.Calls[len(f.inquiries.Calls)-1].Arguments.Get(1).(*inquiry.Inquiry)
		assert.Equal(t, inquiry.EmailDeliveryFailed, saved.EmailDeliveryStatus)
		assert.Equal(t, "smtp: connection refused", *saved.DeliveryError)
		require.NotNil(t, saved.NextRetryAt)
		assert.Equal(t, fixedNow.Add(10*time.Minute), *saved.NextRetryAt)
	})

	t.Run("transaction failure aborts", func(t *testing.T) {
		f := newInquiryFixture()
		p := sampleProduct(t)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.customers.On("FindByPhoneNumber", mock.Anything, "555").Return(nil, shared.ErrNotFound)
		f.customers.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := f.service.CreateInquiry(ctx, CreateInquiryInput{ProductID: p.ID, PhoneNumber: shared.StringPtr("555"), Message: "Hi"})
		assert.EqualError(t, err, "db down")
		f.sender.AssertNotCalled(t, "SendInquiry", mock.Anything, mock.Anything)
	})
}
