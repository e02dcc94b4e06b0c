package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxRate is a tenant-configured tax percentage applied to invoices
type TaxRate struct {
	shared.TenantAggregateRoot
	Name      string          `gorm:"type:varchar(100);not null"`
	Percent   decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	IsDefault bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (TaxRate) TableName() string {
	return "tax_rates"
}

// NewTaxRate creates a new tax rate
func NewTaxRate(tenantID uuid.UUID, name string, percent decimal.Decimal) (*TaxRate, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax rate name cannot be empty")
	}
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Tax percent must be between 0 and 100")
	}

	rate := &TaxRate{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Percent:             percent,
	}

	return rate, nil
}

// Update changes the name and percentage
func (t *TaxRate) Update(name string, percent decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tax rate name cannot be empty")
	}
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_PERCENT", "Tax percent must be between 0 and 100")
	}

	t.Name = name
	t.Percent = percent
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// MarkDefault flags this rate as the tenant default. Callers are
// responsible for clearing the flag on the previous default.
func (t *TaxRate) MarkDefault() {
	t.IsDefault = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// ClearDefault removes the default flag
func (t *TaxRate) ClearDefault() {
	t.IsDefault = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}
