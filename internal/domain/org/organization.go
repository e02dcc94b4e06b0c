package org

import (
	"regexp"
	"strings"
	"time"

	"github.com/rentops/backend/internal/domain/shared"
)

// OrganizationStatus represents the lifecycle status of a tenant
type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Organization is the tenant root. Every other aggregate in the system
// carries its ID as TenantID.
type Organization struct {
	shared.BaseAggregateRoot
	Name     string             `gorm:"type:varchar(200);not null"`
	Slug     string             `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email    string             `gorm:"type:varchar(255)"`
	Phone    string             `gorm:"type:varchar(50)"`
	Address  string             `gorm:"type:varchar(500)"`
	Country  string             `gorm:"type:varchar(100)"`
	Currency string             `gorm:"type:varchar(3);not null;default:'EUR'"`
	Timezone string             `gorm:"type:varchar(64);not null;default:'UTC'"`
	Status   OrganizationStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new active organization
func NewOrganization(name, slug string) (*Organization, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase letters, digits and hyphens")
	}

	organization := &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Currency:          "EUR",
		Timezone:          "UTC",
		Status:            OrganizationStatusActive,
	}

	return organization, nil
}

// UpdateProfile changes the public-facing organization details
func (o *Organization) UpdateProfile(name, email, phone, address, country string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}

	o.Name = name
	o.Email = email
	o.Phone = phone
	o.Address = address
	o.Country = country
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetLocale changes currency and timezone
func (o *Organization) SetLocale(currency, timezone string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}
	if timezone == "" {
		return shared.NewDomainError("INVALID_TIMEZONE", "Timezone cannot be empty")
	}

	o.Currency = currency
	o.Timezone = timezone
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Suspend blocks the organization from serving requests
func (o *Organization) Suspend() {
	o.Status = OrganizationStatusSuspended
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Reactivate restores a suspended organization
func (o *Organization) Reactivate() {
	o.Status = OrganizationStatusActive
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// IsActive returns true if the organization can serve requests
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}
