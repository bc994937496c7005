package inquiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
	"github.com/secondhandshop/backend/internal/domain/partner"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CreateInquiryInput is the public inquiry form
type CreateInquiryInput struct {
	ProductID    uuid.UUID
	CustomerName *string
	Email        *string
	PhoneNumber  *string
	Message      string
}

// InquiryServiceConfig holds configuration for the inquiry service
type InquiryServiceConfig struct {
	// RetryDelay is how long to wait before retrying a failed notification
	RetryDelay time.Duration
}

// DefaultInquiryServiceConfig returns the default configuration
func DefaultInquiryServiceConfig() InquiryServiceConfig {
	return InquiryServiceConfig{RetryDelay: 5 * time.Minute}
}

// InquiryService records visitor inquiries and notifies the shop
type InquiryService struct {
	productRepo     catalog.ProductRepository
	inquiryRepo     inquiry.InquiryRepository
	txScope         TransactionScope
	sender          EmailSender
	clock           shared.Clock
	config          InquiryServiceConfig
	logger          *zap.Logger
	businessMetrics *telemetry.BusinessMetrics
}

// NewInquiryService creates a new InquiryService
func NewInquiryService(
	productRepo catalog.ProductRepository,
	inquiryRepo inquiry.InquiryRepository,
	txScope TransactionScope,
	sender EmailSender,
	clock shared.Clock,
	logger *zap.Logger,
) *InquiryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InquiryService{
		productRepo: productRepo,
		inquiryRepo: inquiryRepo,
		txScope:     txScope,
		sender:      sender,
		clock:       clock,
		config:      DefaultInquiryServiceConfig(),
		logger:      logger,
	}
}

// SetConfig sets the service configuration
func (s *InquiryService) SetConfig(config InquiryServiceConfig) {
	s.config = config
}

// SetBusinessMetrics sets the business metrics collector
func (s *InquiryService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// CreateInquiry stores the inquiry, reconciles the customer record and
// sends the notification email. A failed email does not fail the call;
// the inquiry is left for the retry job.
func (s *InquiryService) CreateInquiry(ctx context.Context, input CreateInquiryInput) (uuid.UUID, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inquiry", "create",
		telemetry.SpanAttrProductID, input.ProductID.String())
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewNotFoundError(fmt.Sprintf("Product '%s' was not found.", input.ProductID))
		}
		return uuid.Nil, err
	}

	name, email, phone, err := partner.NormalizeContact(input.CustomerName, input.Email, input.PhoneNumber)
	if err != nil {
		return uuid.Nil, err
	}

	now := s.clock.Now()
	var created *inquiry.Inquiry
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := resolveCustomer(ctx, repos.CustomerRepo(), name, email, phone, now)
		if err != nil {
			return err
		}
		if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
			return err
		}

		inq, err := inquiry.NewInquiry(product.ID, customer.ID, name, email, phone, input.Message, now)
		if err != nil {
			return err
		}
		if err := repos.InquiryRepo().Save(ctx, inq); err != nil {
			return err
		}
		created = inq
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return uuid.Nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrInquiryID, created.ID.String(),
		telemetry.SpanAttrCustomerID, created.CustomerID.String())

	if s.businessMetrics != nil {
		s.businessMetrics.RecordInquiryCreated(ctx)
	}

	s.logger.Info("Inquiry created",
		zap.String("inquiry_id", created.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("customer_id", created.CustomerID.String()))

	sendErr := s.sender.SendInquiry(ctx, BuildEmailMessage(created, product))
	if sendErr != nil {
		retryAt := s.clock.Now().Add(s.config.RetryDelay)
		created.MarkEmailFailed(sendErr.Error(), &retryAt)
		s.logger.Warn("Inquiry email failed",
			zap.String("inquiry_id", created.ID.String()),
			zap.Time("next_retry_at", retryAt),
			zap.Error(sendErr))
	} else {
		created.MarkEmailSent(s.clock.Now())
	}
	if s.businessMetrics != nil {
		s.businessMetrics.RecordInquiryEmail(ctx, sendErr == nil)
	}

	if err := s.inquiryRepo.Save(ctx, created); err != nil {
		s.logger.Error("Failed to record inquiry email outcome",
			zap.String("inquiry_id", created.ID.String()),
			zap.Error(err))
	}
	return created.ID, nil
}

// resolveCustomer finds the customer by email and phone, merging new contact
// details into the match, or creates a new one. The result is not yet saved.
func resolveCustomer(
	ctx context.Context,
	repo partner.CustomerRepository,
	name, email, phone *string,
	now time.Time,
) (*partner.Customer, error) {
	var byEmail, byPhone *partner.Customer
	var err error
	if email != nil {
		if byEmail, err = findCustomer(ctx, repo.FindByEmail, *email); err != nil {
			return nil, err
		}
	}
	if phone != nil {
		if byPhone, err = findCustomer(ctx, repo.FindByPhoneNumber, *phone); err != nil {
			return nil, err
		}
	}

	if byEmail != nil && byPhone != nil && !byEmail.SameAs(byPhone) {
		return nil, shared.NewConflictError("Email and phone number belong to different customers.")
	}

	existing := byEmail
	if existing == nil {
		existing = byPhone
	}
	if existing == nil {
		return partner.NewCustomer(name, email, phone, now)
	}

	if err := existing.UpdateContact(
		coalesce(name, existing.Name),
		coalesce(email, existing.Email),
		coalesce(phone, existing.PhoneNumber),
		now,
	); err != nil {
		return nil, err
	}
	return existing, nil
}

func findCustomer(
	ctx context.Context,
	find func(context.Context, string) (*partner.Customer, error),
	value string,
) (*partner.Customer, error) {
	c, err := find(ctx, value)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func coalesce(value, fallback *string) *string {
	if value != nil {
		return value
	}
	return fallback
}

// BuildEmailMessage assembles the notification for an inquiry about product
func BuildEmailMessage(inq *inquiry.Inquiry, product *catalog.Product) InquiryEmailMessage {
	return InquiryEmailMessage{
		InquiryID:    inq.ID,
		ProductID:    product.ID,
		ProductTitle: product.Title,
		ProductSlug:  product.Slug,
		CustomerName: inq.CustomerName,
		Email:        inq.Email,
		PhoneNumber:  inq.PhoneNumber,
		Message:      inq.Message,
	}
}
