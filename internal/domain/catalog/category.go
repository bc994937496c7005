package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/shared"
)

const (
	MaxCategoryNameLength = 120
	MaxCategorySlugLength = 160
)

// Category groups products for browsing. Only active categories are
// visible in the public catalog.
type Category struct {
	shared.BaseEntity
	Name             string
	Slug             string
	ParentCategoryID *uuid.UUID
	SortOrder        int
	IsActive         bool
}

// NewCategory creates a new category
func NewCategory(name, slug string, parentCategoryID *uuid.UUID, sortOrder int, isActive bool, now time.Time) (*Category, error) {
	c := &Category{BaseEntity: shared.NewBaseEntity(now)}
	if err := c.apply(name, slug, parentCategoryID, sortOrder, isActive); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the editable fields of the category
func (c *Category) Update(name, slug string, parentCategoryID *uuid.UUID, sortOrder int, isActive bool, now time.Time) error {
	if err := c.apply(name, slug, parentCategoryID, sortOrder, isActive); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

// Activate makes the category visible
func (c *Category) Activate(now time.Time) {
	c.IsActive = true
	c.UpdatedAt = now
}

// Deactivate hides the category and its products from the public catalog
func (c *Category) Deactivate(now time.Time) {
	c.IsActive = false
	c.UpdatedAt = now
}

func (c *Category) apply(name, slug string, parentCategoryID *uuid.UUID, sortOrder int, isActive bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("INVALID_CATEGORY_NAME", "Category name is required.")
	}
	if shared.CharLen(name) > MaxCategoryNameLength {
		return shared.NewValidationError("INVALID_CATEGORY_NAME", "Category name cannot exceed 120 characters.")
	}
	slug = NormalizeSlug(slug)
	if err := validateSlug(slug, MaxCategorySlugLength); err != nil {
		return err
	}
	if parentCategoryID != nil && *parentCategoryID == c.ID {
		return shared.NewValidationError("INVALID_PARENT_CATEGORY", "Category cannot be its own parent.")
	}

	c.Name = name
	c.Slug = slug
	c.ParentCategoryID = parentCategoryID
	c.SortOrder = sortOrder
	c.IsActive = isActive
	return nil
}
