package persistence

import (
	"context"

	appinquiry "github.com/secondhandshop/backend/internal/application/inquiry"
	"github.com/secondhandshop/backend/internal/domain/inquiry"
	"github.com/secondhandshop/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormInquiryTransactionScope implements the inquiry TransactionScope using GORM transactions.
// Customer reconciliation and the inquiry insert commit or roll back together.
type GormInquiryTransactionScope struct {
	db *gorm.DB
}

// NewGormInquiryTransactionScope creates a new GormInquiryTransactionScope.
func NewGormInquiryTransactionScope(db *gorm.DB) *GormInquiryTransactionScope {
	return &GormInquiryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInquiryTransactionScope) Execute(ctx context.Context, fn func(repos appinquiry.TransactionalRepositories) error) error {
	if tx, ok := txFromContext(ctx); ok {
		return fn(&gormInquiryRepositories{tx: tx})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInquiryRepositories{tx: tx})
	})
}

// gormInquiryRepositories provides access to repositories within a transaction.
type gormInquiryRepositories struct {
	tx *gorm.DB
}

// CustomerRepo returns the customer repository scoped to the current transaction.
func (r *gormInquiryRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// InquiryRepo returns the inquiry repository scoped to the current transaction.
func (r *gormInquiryRepositories) InquiryRepo() inquiry.InquiryRepository {
	return NewGormInquiryRepository(r.tx)
}

// Ensure GormInquiryTransactionScope implements TransactionScope
var _ appinquiry.TransactionScope = (*GormInquiryTransactionScope)(nil)

// Ensure gormInquiryRepositories implements TransactionalRepositories
var _ appinquiry.TransactionalRepositories = (*gormInquiryRepositories)(nil)
