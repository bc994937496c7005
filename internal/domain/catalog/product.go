package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	MaxProductTitleLength       = 200
	MaxProductSlugLength        = 220
	MaxProductDescriptionLength = 4000
)

// ProductCondition describes the wear of a second-hand item
type ProductCondition int

const (
	ConditionLikeNew     ProductCondition = 1
	ConditionGood        ProductCondition = 2
	ConditionFair        ProductCondition = 3
	ConditionNeedsRepair ProductCondition = 4
)

var conditionNames = map[ProductCondition]string{
	ConditionLikeNew:     "LikeNew",
	ConditionGood:        "Good",
	ConditionFair:        "Fair",
	ConditionNeedsRepair: "NeedsRepair",
}

// String returns the wire name of the condition
func (c ProductCondition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ProductCondition(%d)", int(c))
}

// IsValid reports whether c is a known condition
func (c ProductCondition) IsValid() bool {
	_, ok := conditionNames[c]
	return ok
}

// ParseCondition parses a condition name, ignoring case
func ParseCondition(value string) (ProductCondition, error) {
	for c, name := range conditionNames {
		if strings.EqualFold(strings.TrimSpace(value), name) {
			return c, nil
		}
	}
	return 0, shared.NewValidationError("INVALID_CONDITION", fmt.Sprintf("Unsupported product condition '%s'.", value))
}

// ProductStatus is the sale state of a product
type ProductStatus int

const (
	ProductStatusAvailable ProductStatus = 1
	ProductStatusSold      ProductStatus = 2
	ProductStatusOffShelf  ProductStatus = 3
)

var statusNames = map[ProductStatus]string{
	ProductStatusAvailable: "Available",
	ProductStatusSold:      "Sold",
	ProductStatusOffShelf:  "OffShelf",
}

// String returns the wire name of the status
func (s ProductStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ProductStatus(%d)", int(s))
}

// IsValid reports whether s is a known status
func (s ProductStatus) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsPublic reports whether products in this status are shown to visitors.
// Sold items stay visible so shared links keep working.
func (s ProductStatus) IsPublic() bool {
	return s == ProductStatusAvailable || s == ProductStatusSold
}

// ParseStatus parses a status name, ignoring case
func ParseStatus(value string) (ProductStatus, error) {
	for s, name := range statusNames {
		if strings.EqualFold(strings.TrimSpace(value), name) {
			return s, nil
		}
	}
	return 0, shared.NewValidationError("INVALID_STATUS", fmt.Sprintf("Unsupported product status '%s'.", value))
}

// PublicStatuses lists the statuses visible in the storefront
func PublicStatuses() []ProductStatus {
	return []ProductStatus{ProductStatusAvailable, ProductStatusSold}
}

// Product is a single second-hand item listed in the shop
type Product struct {
	shared.AuditableEntity
	Title        string
	Slug         string
	Description  string
	Price        decimal.Decimal
	Condition    ProductCondition
	Status       ProductStatus
	CategoryID   uuid.UUID
	SoldAt       *time.Time
	OffShelvedAt *time.Time
}

// NewProduct creates a new available product
func NewProduct(
	title, slug, description string,
	price decimal.Decimal,
	condition ProductCondition,
	categoryID uuid.UUID,
	adminUserID *uuid.UUID,
	now time.Time,
) (*Product, error) {
	p := &Product{Status: ProductStatusAvailable}
	p.ID = uuid.New()
	if err := p.apply(title, slug, description, price, condition, categoryID); err != nil {
		return nil, err
	}
	p.SetCreatedAudit(adminUserID, now)
	return p, nil
}

// UpdateDetails replaces the descriptive fields of the product
func (p *Product) UpdateDetails(
	title, slug, description string,
	price decimal.Decimal,
	condition ProductCondition,
	categoryID uuid.UUID,
	adminUserID *uuid.UUID,
	now time.Time,
) error {
	if err := p.apply(title, slug, description, price, condition, categoryID); err != nil {
		return err
	}
	p.Touch(adminUserID, now)
	return nil
}

// MarkAsSold records the sale
func (p *Product) MarkAsSold(adminUserID *uuid.UUID, now time.Time) {
	p.Status = ProductStatusSold
	p.SoldAt = &now
	p.OffShelvedAt = nil
	p.Touch(adminUserID, now)
}

// OffShelf withdraws the product from the storefront
func (p *Product) OffShelf(adminUserID *uuid.UUID, now time.Time) {
	p.Status = ProductStatusOffShelf
	p.OffShelvedAt = &now
	p.Touch(adminUserID, now)
}

// MarkAsAvailable puts the product back on sale
func (p *Product) MarkAsAvailable(adminUserID *uuid.UUID, now time.Time) {
	p.Status = ProductStatusAvailable
	p.SoldAt = nil
	p.OffShelvedAt = nil
	p.Touch(adminUserID, now)
}

// ChangeStatus applies the transition matching status
func (p *Product) ChangeStatus(status ProductStatus, adminUserID *uuid.UUID, now time.Time) error {
	switch status {
	case ProductStatusAvailable:
		p.MarkAsAvailable(adminUserID, now)
	case ProductStatusSold:
		p.MarkAsSold(adminUserID, now)
	case ProductStatusOffShelf:
		p.OffShelf(adminUserID, now)
	default:
		return shared.NewValidationError("INVALID_STATUS", "Unsupported product status.")
	}
	return nil
}

func (p *Product) apply(
	title, slug, description string,
	price decimal.Decimal,
	condition ProductCondition,
	categoryID uuid.UUID,
) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewValidationError("INVALID_TITLE", "Title is required.")
	}
	if shared.CharLen(title) > MaxProductTitleLength {
		return shared.NewValidationError("INVALID_TITLE", "Title cannot exceed 200 characters.")
	}

	slug = NormalizeSlug(slug)
	if err := validateSlug(slug, MaxProductSlugLength); err != nil {
		return err
	}

	description = strings.TrimSpace(description)
	if shared.CharLen(description) > MaxProductDescriptionLength {
		return shared.NewValidationError("INVALID_DESCRIPTION", "Description cannot exceed 4000 characters.")
	}

	if !price.IsPositive() {
		return shared.NewValidationError("INVALID_PRICE", "Price must be greater than zero.")
	}
	if !price.Equal(price.Round(2)) {
		return shared.NewValidationError("INVALID_PRICE", "Price cannot have more than two decimal places.")
	}

	if condition == 0 {
		condition = ConditionGood
	}
	if !condition.IsValid() {
		return shared.NewValidationError("INVALID_CONDITION", "Unsupported product condition.")
	}

	if categoryID == uuid.Nil {
		return shared.NewValidationError("INVALID_CATEGORY", "Category is required.")
	}

	p.Title = title
	p.Slug = slug
	p.Description = description
	p.Price = price
	p.Condition = condition
	p.CategoryID = categoryID
	return nil
}
