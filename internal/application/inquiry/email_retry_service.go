package inquiry

import (
	"context"
	"errors"
	"time"

	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const productMissingError = "Product was not found."

// EmailRetryConfig holds configuration for the email retry service
type EmailRetryConfig struct {
	// BatchSize is the number of inquiries processed per run
	BatchSize int
	// MaxAttempts is the number of delivery attempts before giving up
	MaxAttempts int
	// RetryDelay is the base delay, doubled after each failed attempt
	RetryDelay time.Duration
	// MaxRetryDelay caps the backoff
	MaxRetryDelay time.Duration
}

// DefaultEmailRetryConfig returns the default configuration
func DefaultEmailRetryConfig() EmailRetryConfig {
	return EmailRetryConfig{
		BatchSize:     50,
		MaxAttempts:   5,
		RetryDelay:    5 * time.Minute,
		MaxRetryDelay: time.Hour,
	}
}

// ProcessResult summarizes one retry run
type ProcessResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}

// EmailRetryService resends inquiry notifications that are due
type EmailRetryService struct {
	inquiryRepo     inquiry.InquiryRepository
	productRepo     catalog.ProductRepository
	sender          EmailSender
	clock           shared.Clock
	config          EmailRetryConfig
	logger          *zap.Logger
	businessMetrics *telemetry.BusinessMetrics
}

// NewEmailRetryService creates a new EmailRetryService
func NewEmailRetryService(
	inquiryRepo inquiry.InquiryRepository,
	productRepo catalog.ProductRepository,
	sender EmailSender,
	clock shared.Clock,
	logger *zap.Logger,
) *EmailRetryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailRetryService{
		inquiryRepo: inquiryRepo,
		productRepo: productRepo,
		sender:      sender,
		clock:       clock,
		config:      DefaultEmailRetryConfig(),
		logger:      logger,
	}
}

// SetConfig sets the service configuration
func (s *EmailRetryService) SetConfig(config EmailRetryConfig) {
	s.config = config
}

// SetBusinessMetrics sets the business metrics collector
func (s *EmailRetryService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// ProcessPending sends every due notification in one batch.
// Errors for individual inquiries are recorded on the inquiry, not returned.
func (s *EmailRetryService) ProcessPending(ctx context.Context) (ProcessResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inquiry_email", "process_pending",
		telemetry.SpanAttrBatchSize, s.config.BatchSize)
	defer span.End()

	var result ProcessResult

	pending, err := s.inquiryRepo.ListPendingEmail(ctx, s.clock.Now(), s.config.MaxAttempts, s.config.BatchSize)
	if err != nil {
		telemetry.RecordError(span, err)
		return result, err
	}

	for i := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		inq := &pending[i]
		result.Processed++

		sent, err := s.deliver(ctx, inq)
		if err != nil {
			return result, err
		}
		if sent {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	if result.Processed > 0 {
		s.logger.Info("Inquiry email retry run completed",
			zap.Int("processed", result.Processed),
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed))
	}
	return result, nil
}

func (s *EmailRetryService) deliver(ctx context.Context, inq *inquiry.Inquiry) (bool, error) {
	product, err := s.productRepo.FindByID(ctx, inq.ProductID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return false, err
		}
		inq.MarkEmailFailed(productMissingError, nil)
		s.logger.Warn("Inquiry product missing, giving up on email",
			zap.String("inquiry_id", inq.ID.String()),
			zap.String("product_id", inq.ProductID.String()))
		return false, s.inquiryRepo.Save(ctx, inq)
	}

	sendErr := s.sender.SendInquiry(ctx, BuildEmailMessage(inq, product))
	if sendErr == nil {
		inq.MarkEmailSent(s.clock.Now())
	} else {
		var next *time.Time
		if inq.EmailSendAttempts+1 < s.config.MaxAttempts {
			at := s.clock.Now().Add(s.backoff(inq.EmailSendAttempts + 1))
			next = &at
		}
		inq.MarkEmailFailed(sendErr.Error(), next)
		s.logger.Warn("Inquiry email retry failed",
			zap.String("inquiry_id", inq.ID.String()),
			zap.Int("attempts", inq.EmailSendAttempts),
			zap.Error(sendErr))
	}
	if s.businessMetrics != nil {
		s.businessMetrics.RecordInquiryEmail(ctx, sendErr == nil)
	}
	return sendErr == nil, s.inquiryRepo.Save(ctx, inq)
}

// backoff returns RetryDelay * 2^(attempts-1), capped at MaxRetryDelay
func (s *EmailRetryService) backoff(attempts int) time.Duration {
	delay := s.config.RetryDelay
	for i := 1; i < attempts; i++ {
		delay *= 2
		if s.config.MaxRetryDelay > 0 && delay >= s.config.MaxRetryDelay {
			return s.config.MaxRetryDelay
		}
	}
	if s.config.MaxRetryDelay > 0 && delay > s.config.MaxRetryDelay {
		return s.config.MaxRetryDelay
	}
	return delay
}
