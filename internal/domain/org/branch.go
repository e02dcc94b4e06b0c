package org

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// Branch is a physical rental location belonging to a tenant
type Branch struct {
	shared.TenantAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Address  string `gorm:"type:varchar(500)"`
	City     string `gorm:"type:varchar(100)"`
	Phone    string `gorm:"type:varchar(50)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a new active branch
func NewBranch(tenantID uuid.UUID, name, address, city string) (*Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}

	branch := &Branch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Address:             address,
		City:                city,
		IsActive:            true,
	}

	return branch, nil
}

// Update changes the branch details
func (b *Branch) Update(name, address, city, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}

	b.Name = name
	b.Address = address
	b.City = city
	b.Phone = phone
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Deactivate closes the branch
func (b *Branch) Deactivate() {
	b.IsActive = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Activate reopens the branch
func (b *Branch) Activate() {
	b.IsActive = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
