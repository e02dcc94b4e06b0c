package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractStatus represents the lifecycle status of a rental contract
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// IsValid returns true if the status is valid
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusActive, ContractStatusCompleted, ContractStatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal returns true if the status is a terminal state
func (s ContractStatus) IsFinal() bool {
	return s == ContractStatusCompleted || s == ContractStatusCancelled
}

// Contract represents a vehicle rental contract for a customer
type Contract struct {
	shared.TenantAggregateRoot
	Number      string          `gorm:"type:varchar(50);not null;index"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehicleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartDate   time.Time       `gorm:"not null"`
	EndDate     time.Time       `gorm:"not null"`
	DailyRate   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      ContractStatus  `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}

// NewContract creates a new draft contract
func NewContract(tenantID uuid.UUID, number string, customerID, vehicleID uuid.UUID, startDate, endDate time.Time, dailyRate decimal.Decimal) (*Contract, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Contract number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Contract requires a customer")
	}
	if vehicleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Contract requires a vehicle")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Contract start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Contract end date must be after start date")
	}
	if dailyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Daily rate cannot be negative")
	}

	contract := &Contract{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		VehicleID:           vehicleID,
		StartDate:           startDate,
		EndDate:             endDate,
		DailyRate:           dailyRate,
		Status:              ContractStatusDraft,
	}
	contract.TotalAmount = contract.calculateTotal()

	return contract, nil
}

// calculateTotal computes daily rate times rental days, rounded up to whole days
func (c *Contract) calculateTotal() decimal.Decimal {
	days := int(c.EndDate.Sub(c.StartDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return c.DailyRate.Mul(decimal.NewFromInt(int64(days)))
}

// Reschedule updates the rental period and recalculates the total
func (c *Contract) Reschedule(startDate, endDate time.Time) error {
	if c.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a finalised contract")
	}
	if endDate.Before(startDate) {
		return shared.NewDomainError("INVALID_PERIOD", "Contract end date must be after start date")
	}

	c.StartDate = startDate
	c.EndDate = endDate
	c.TotalAmount = c.calculateTotal()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetDailyRate updates the daily rate and recalculates the total
func (c *Contract) SetDailyRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Daily rate cannot be negative")
	}
	if c.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change the rate of a finalised contract")
	}

	c.DailyRate = rate
	c.TotalAmount = c.calculateTotal()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the contract notes
func (c *Contract) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate moves a draft contract to active
func (c *Contract) Activate() error {
	if c.Status != ContractStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft contracts can be activated")
	}

	c.Status = ContractStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Complete finishes an active contract
func (c *Contract) Complete() error {
	if c.Status != ContractStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can be completed")
	}

	c.Status = ContractStatusCompleted
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Cancel cancels a draft or active contract
func (c *Contract) Cancel() error {
	if c.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", "Contract is already finalised")
	}

	c.Status = ContractStatusCancelled
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
