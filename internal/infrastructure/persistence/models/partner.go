package models

import (
	"github.com/secondhandshop/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Email and phone are unique when present.
type CustomerModel struct {
	BaseModel
	Name        *string `gorm:"type:varchar(120)"`
	Email       *string `gorm:"type:varchar(256);uniqueIndex:ux_customers_email,where:email IS NOT NULL"`
	PhoneNumber *string `gorm:"type:varchar(40);uniqueIndex:ux_customers_phone_number,where:phone_number IS NOT NULL"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.PhoneNumber = c.PhoneNumber
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
