// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks storefront activity: inquiries, notification
// delivery and product photos.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	inquiriesCreatedTotal    *Counter
	inquiryEmailsSentTotal   *Counter
	inquiryEmailsFailedTotal *Counter
	productImagesAddedTotal  *Counter
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error
	bm.inquiriesCreatedTotal, err = NewCounter(
		cfg.Meter,
		"inquiries_created_total",
		"Total number of customer inquiries submitted",
		"{inquiries}",
	)
	if err != nil {
		return nil, err
	}

	bm.inquiryEmailsSentTotal, err = NewCounter(
		cfg.Meter,
		"inquiry_emails_sent_total",
		"Total number of inquiry notification emails delivered",
		"{emails}",
	)
	if err != nil {
		return nil, err
	}

	bm.inquiryEmailsFailedTotal, err = NewCounter(
		cfg.Meter,
		"inquiry_emails_failed_total",
		"Total number of failed inquiry notification attempts",
		"{emails}",
	)
	if err != nil {
		return nil, err
	}

	bm.productImagesAddedTotal, err = NewCounter(
		cfg.Meter,
		"product_images_added_total",
		"Total number of product images attached",
		"{images}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordInquiryCreated counts a persisted inquiry.
func (bm *BusinessMetrics) RecordInquiryCreated(ctx context.Context) {
	bm.inquiriesCreatedTotal.Inc(ctx)
}

// RecordInquiryEmail counts one delivery attempt by outcome.
func (bm *BusinessMetrics) RecordInquiryEmail(ctx context.Context, sent bool) {
	if sent {
		bm.inquiryEmailsSentTotal.Inc(ctx, AttrEmailOutcome.String("sent"))
		return
	}
	bm.inquiryEmailsFailedTotal.Inc(ctx, AttrEmailOutcome.String("failed"))
}

// RecordProductImageAdded counts an image attached to a product.
func (bm *BusinessMetrics) RecordProductImageAdded(ctx context.Context) {
	bm.productImagesAddedTotal.Inc(ctx)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// AttrEmailOutcome labels inquiry email counters
var AttrEmailOutcome = attribute.Key("email_outcome")
