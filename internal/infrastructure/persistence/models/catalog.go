package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name             string     `gorm:"type:varchar(120);not null"`
	Slug             string     `gorm:"type:varchar(160);not null;uniqueIndex:ux_categories_slug"`
	ParentCategoryID *uuid.UUID `gorm:"type:uuid;index:ix_categories_parent_category_id"`
	SortOrder        int        `gorm:"not null;default:0"`
	IsActive         bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity:       m.BaseModel.ToDomain(),
		Name:             m.Name,
		Slug:             m.Slug,
		ParentCategoryID: m.ParentCategoryID,
		SortOrder:        m.SortOrder,
		IsActive:         m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Slug = c.Slug
	m.ParentCategoryID = c.ParentCategoryID
	m.SortOrder = c.SortOrder
	m.IsActive = c.IsActive
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AuditModel
	Title        string                   `gorm:"type:varchar(200);not null"`
	Slug         string                   `gorm:"type:varchar(220);not null;uniqueIndex:ux_products_slug"`
	Description  string                   `gorm:"type:varchar(4000);not null;default:''"`
	Price        decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	Condition    catalog.ProductCondition `gorm:"type:smallint;not null"`
	Status       catalog.ProductStatus    `gorm:"type:smallint;not null;index:ix_products_status_updated_at,priority:1"`
	CategoryID   uuid.UUID                `gorm:"type:uuid;not null;index:ix_products_category_id"`
	SoldAt       *time.Time
	OffShelvedAt *time.Time
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		AuditableEntity: m.AuditModel.ToDomainAuditable(),
		Title:           m.Title,
		Slug:            m.Slug,
		Description:     m.Description,
		Price:           m.Price,
		Condition:       m.Condition,
		Status:          m.Status,
		CategoryID:      m.CategoryID,
		SoldAt:          m.SoldAt,
		OffShelvedAt:    m.OffShelvedAt,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAuditable(p.AuditableEntity)
	m.Title = p.Title
	m.Slug = p.Slug
	m.Description = p.Description
	m.Price = p.Price
	m.Condition = p.Condition
	m.Status = p.Status
	m.CategoryID = p.CategoryID
	m.SoldAt = p.SoldAt
	m.OffShelvedAt = p.OffShelvedAt
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductImageModel is the persistence model for the ProductImage domain entity.
type ProductImageModel struct {
	AuditModel
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index:ix_product_images_product_sort,priority:1;uniqueIndex:ux_product_images_primary,where:is_primary"`
	CloudStorageKey string    `gorm:"type:varchar(512);not null"`
	AltText         *string   `gorm:"type:varchar(300)"`
	SortOrder       int       `gorm:"not null;default:0;index:ix_product_images_product_sort,priority:2"`
	IsPrimary       bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the persistence model to a domain ProductImage entity.
func (m *ProductImageModel) ToDomain() *catalog.ProductImage {
	return &catalog.ProductImage{
		AuditableEntity: m.AuditModel.ToDomainAuditable(),
		ProductID:       m.ProductID,
		CloudStorageKey: m.CloudStorageKey,
		AltText:         m.AltText,
		SortOrder:       m.SortOrder,
		IsPrimary:       m.IsPrimary,
	}
}

// FromDomain populates the persistence model from a domain ProductImage entity.
func (m *ProductImageModel) FromDomain(i *catalog.ProductImage) {
	m.FromDomainAuditable(i.AuditableEntity)
	m.ProductID = i.ProductID
	m.CloudStorageKey = i.CloudStorageKey
	m.AltText = i.AltText
	m.SortOrder = i.SortOrder
	m.IsPrimary = i.IsPrimary
}

// ProductImageModelFromDomain creates a new persistence model from a domain ProductImage entity.
func ProductImageModelFromDomain(i *catalog.ProductImage) *ProductImageModel {
	m := &ProductImageModel{}
	m.FromDomain(i)
	return m
}
