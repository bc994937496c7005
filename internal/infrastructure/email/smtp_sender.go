// Package email delivers inquiry notifications to the shop inbox.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	appinquiry "github.com/secondhandshop/backend/internal/application/inquiry"
	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const (
	notProvided = "(not provided)"
	sendTimeout = 30 * time.Second
)

// Ensure both senders implement EmailSender
var (
	_ appinquiry.EmailSender = (*SMTPEmailSender)(nil)
	_ appinquiry.EmailSender = (*NoOpEmailSender)(nil)
)

// mailDialer is the part of *mail.Client the sender uses
type mailDialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPEmailSender sends inquiry notifications over SMTP
type SMTPEmailSender struct {
	cfg    config.EmailConfig
	dialer mailDialer
	logger *zap.Logger
}

// NewSMTPEmailSender creates a sender. UseSSL selects implicit TLS; otherwise
// STARTTLS is used when the server offers it.
func NewSMTPEmailSender(cfg config.EmailConfig, logger *zap.Logger) (*SMTPEmailSender, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(sendTimeout),
	}
	if cfg.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPEmailSender{cfg: cfg, dialer: client, logger: logger}, nil
}

// SendInquiry emails the admin inbox about a new inquiry
func (s *SMTPEmailSender) SendInquiry(ctx context.Context, message appinquiry.InquiryEmailMessage) error {
	msg, err := s.buildMessage(message)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send inquiry email: %w", err)
	}
	s.logger.Info("Inquiry email sent",
		zap.String("inquiry_id", message.InquiryID.String()),
		zap.String("to", s.cfg.AdminInboxEmail))
	return nil
}

func (s *SMTPEmailSender) buildMessage(message appinquiry.InquiryEmailMessage) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromEmail); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(s.cfg.AdminInboxEmail); err != nil {
		return nil, fmt.Errorf("invalid admin inbox address: %w", err)
	}
	if message.Email != nil && strings.TrimSpace(*message.Email) != "" {
		if err := msg.ReplyTo(strings.TrimSpace(*message.Email)); err != nil {
			s.logger.Warn("Skipping invalid reply-to address",
				zap.String("inquiry_id", message.InquiryID.String()),
				zap.Error(err))
		}
	}
	msg.Subject(Subject(message))
	msg.SetBodyString(mail.TypeTextPlain, Body(message, s.cfg.FrontendBaseURL))
	return msg, nil
}

// Subject returns the notification subject line
func Subject(message appinquiry.InquiryEmailMessage) string {
	return "[Inquiry] " + message.ProductTitle
}

// Body renders the plain text notification
func Body(message appinquiry.InquiryEmailMessage, frontendBaseURL string) string {
	var b strings.Builder
	b.WriteString("New inquiry received.\n\n")
	fmt.Fprintf(&b, "Product: %s\n", message.ProductTitle)
	fmt.Fprintf(&b, "Product URL: %s/products/%s\n", strings.TrimRight(frontendBaseURL, "/"), message.ProductSlug)
	fmt.Fprintf(&b, "Customer name: %s\n", valueOrNotProvided(message.CustomerName))
	fmt.Fprintf(&b, "Email: %s\n", valueOrNotProvided(message.Email))
	fmt.Fprintf(&b, "Phone: %s\n\n", valueOrNotProvided(message.PhoneNumber))
	b.WriteString("Message:\n")
	b.WriteString(message.Message)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "InquiryId: %s", message.InquiryID)
	return b.String()
}

func valueOrNotProvided(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return notProvided
	}
	return *value
}

// NoOpEmailSender logs the notification instead of sending it
type NoOpEmailSender struct {
	logger *zap.Logger
}

// NewNoOpEmailSender creates a NoOpEmailSender
func NewNoOpEmailSender(logger *zap.Logger) *NoOpEmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoOpEmailSender{logger: logger}
}

// SendInquiry logs and succeeds
func (s *NoOpEmailSender) SendInquiry(_ context.Context, message appinquiry.InquiryEmailMessage) error {
	s.logger.Info("Email disabled, inquiry notification skipped",
		zap.String("inquiry_id", message.InquiryID.String()),
		zap.String("product_slug", message.ProductSlug))
	return nil
}
