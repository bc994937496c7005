package inquiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingInquiry(t *testing.T, productID uuid.UUID, attempts int) inquiry.Inquiry {
	t.Helper()
	inq, err := inquiry.NewInquiry(productID, uuid.New(), nil, shared.StringPtr("a@b.c"), nil, "Hi", fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	inq.EmailSendAttempts = attempts
	return *inq
}

func newRetryService() (*EmailRetryService, *MockInquiryRepository, *MockProductRepository, *MockEmailSender) {
	inquiries := new(MockInquiryRepository)
	products := new(MockProductRepository)
	sender := new(MockEmailSender)
	svc := NewEmailRetryService(inquiries, products, sender, shared.FixedClock{At: fixedNow}, nil)
	return svc, inquiries, products, sender
}

func TestEmailRetryService_ProcessPending(t *testing.T) {
	ctx := context.Background()

	t.Run("sends and backs off", func(t *testing.T) {
		svc, inquiries, products, sender := newRetryService()
		p := sampleProduct(t)
		ok := pendingInquiry(t, p.ID, 0)
		failing := pendingInquiry(t, p.ID, 2)

		inquiries.On("ListPendingEmail", mock.Anything, fixedNow, 5, 50).Return([]inquiry.Inquiry{ok, failing}, nil)
		products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		sender.On("SendInquiry", mock.Anything, mock.MatchedBy(func(m InquiryEmailMessage) bool { return m.InquiryID == ok.ID })).Return(nil)
		sender.On("SendInquiry", mock.Anything, mock.MatchedBy(func(m InquiryEmailMessage) bool { return m.InquiryID == failing.ID })).Return(errors.New("timeout"))
		inquiries.On("Save", mock.Anything, mock.Anything).Return(nil)

		res, err := svc.ProcessPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, ProcessResult{Processed: 2, Sent: 1, Failed: 1}, res)

		first := inquiries.Calls[1].Arguments.Get(1).(*inquiry.Inquiry)
		assert.Equal(t, inquiry.EmailDeliverySent, first.EmailDeliveryStatus)

		second := inquiries.Calls[2].Arguments.Get(1).(*inquiry.Inquiry)
		assert.Equal(t, inquiry.EmailDeliveryFailed, second.EmailDeliveryStatus)
		assert.Equal(t, 3, second.EmailSendAttempts)
		require.NotNil(t, second.NextRetryAt)
		// third attempt: 5m * 2^2
		assert.Equal(t, fixedNow.Add(20*time.Minute), *second.NextRetryAt)
	})

	t.Run("final attempt is terminal", func(t *testing.T) {
		svc, inquiries, products, sender := newRetryService()
		p := sampleProduct(t)
		last := pendingInquiry(t, p.ID, 4)

		inquiries.On("ListPendingEmail", mock.Anything, fixedNow, 5, 50).Return([]inquiry.Inquiry{last}, nil)
		products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		sender.On("SendInquiry", mock.Anything, mock.Anything).Return(errors.New("timeout"))
		inquiries.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.ProcessPending(ctx)
		require.NoError(t, err)
		saved := inquiries.Calls[1].Arguments.Get(1).(*inquiry.Inquiry)
		assert.Nil(t, saved.NextRetryAt)
		assert.False(t, saved.IsDueForEmail(fixedNow.Add(24*time.Hour)))
	})

	t.Run("missing product gives up", func(t *testing.T) {
		svc, inquiries, products, sender := newRetryService()
		orphan := pendingInquiry(t, uuid.New(), 0)

		inquiries.On("ListPendingEmail", mock.Anything, fixedNow, 5, 50).Return([]inquiry.Inquiry{orphan}, nil)
		products.On("FindByID", mock.Anything, orphan.ProductID).Return(nil, shared.ErrNotFound)
		inquiries.On("Save", mock.Anything, mock.Anything).Return(nil)

		res, err := svc.ProcessPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, ProcessResult{Processed: 1, Failed: 1}, res)
		saved := inquiries.Calls[1].Arguments.Get(1).(*inquiry.Inquiry)
		assert.Equal(t, "Product was not found.", *saved.DeliveryError)
		assert.Nil(t, saved.NextRetryAt)
		sender.AssertNotCalled(t, "SendInquiry", mock.Anything, mock.Anything)
	})

	t.Run("list error", func(t *testing.T) {
		svc, inquiries, _, _ := newRetryService()
		inquiries.On("ListPendingEmail", mock.Anything, fixedNow, 5, 50).Return(nil, errors.New("db down"))

		_, err := svc.ProcessPending(ctx)
		assert.EqualError(t, err, "db down")
	})
}

func TestEmailRetryService_Backoff(t *testing.T) {
	svc, _, _, _ := newRetryService()
	assert.Equal(t, 5*time.Minute, svc.backoff(1))
	assert.Equal(t, 10*time.Minute, svc.backoff(2))
	assert.Equal(t, 40*time.Minute, svc.backoff(4))
	assert.Equal(t, time.Hour, svc.backoff(5))
	assert.Equal(t, time.Hour, svc.backoff(12))
}
