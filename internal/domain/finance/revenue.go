package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RevenueSource classifies where revenue comes from
type RevenueSource string

const (
	RevenueSourceRental  RevenueSource = "rental"
	RevenueSourceDeposit RevenueSource = "deposit"
	RevenueSourcePenalty RevenueSource = "penalty"
	RevenueSourceOther   RevenueSource = "other"
)

// IsValid returns true if the source is valid
func (s RevenueSource) IsValid() bool {
	switch s {
	case RevenueSourceRental, RevenueSourceDeposit, RevenueSourcePenalty, RevenueSourceOther:
		return true
	default:
		return false
	}
}

// Revenue records money coming into the business outside of invoicing
type Revenue struct {
	shared.TenantAggregateRoot
	Source      RevenueSource   `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedAt  time.Time       `gorm:"not null;index"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index"`
	ContractID  *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Revenue) TableName() string {
	return "revenues"
}

// NewRevenue creates a new revenue record
func NewRevenue(tenantID uuid.UUID, source RevenueSource, amount decimal.Decimal, receivedAt time.Time, description string) (*Revenue, error) {
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Invalid revenue source")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Revenue amount must be positive")
	}

	revenue := &Revenue{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Source:              source,
		Amount:              amount,
		ReceivedAt:          receivedAt,
		Description:         description,
	}

	return revenue, nil
}

// AttachContract links the revenue to a rental contract
func (r *Revenue) AttachContract(contractID uuid.UUID) {
	r.ContractID = &contractID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Update changes the mutable fields of the revenue record
func (r *Revenue) Update(source RevenueSource, amount decimal.Decimal, receivedAt time.Time, description string) error {
	if !source.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Invalid revenue source")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Revenue amount must be positive")
	}

	r.Source = source
	r.Amount = amount
	r.ReceivedAt = receivedAt
	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}
