package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies where an expense belongs
type ExpenseCategory string

const (
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryFuel        ExpenseCategory = "fuel"
	ExpenseCategoryInsurance   ExpenseCategory = "insurance"
	ExpenseCategoryRent        ExpenseCategory = "rent"
	ExpenseCategorySalary      ExpenseCategory = "salary"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// IsValid returns true if the category is valid
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryMaintenance, ExpenseCategoryFuel, ExpenseCategoryInsurance,
		ExpenseCategoryRent, ExpenseCategorySalary, ExpenseCategoryOther:
		return true
	default:
		return false
	}
}

// Expense records money going out of the business
type Expense struct {
	shared.TenantAggregateRoot
	Category    ExpenseCategory `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IncurredAt  time.Time       `gorm:"not null;index"`
	VehicleID   *uuid.UUID      `gorm:"type:uuid;index"`
	BranchID    *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500)"`
	Receipt     string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a new expense record
func NewExpense(tenantID uuid.UUID, category ExpenseCategory, amount decimal.Decimal, incurredAt time.Time, description string) (*Expense, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	expense := &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Category:            category,
		Amount:              amount,
		IncurredAt:          incurredAt,
		Description:         description,
	}

	return expense, nil
}

// AttachVehicle links the expense to a fleet vehicle
func (e *Expense) AttachVehicle(vehicleID uuid.UUID) {
	e.VehicleID = &vehicleID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// Update changes the mutable fields of the expense
func (e *Expense) Update(category ExpenseCategory, amount decimal.Decimal, incurredAt time.Time, description string) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	e.Category = category
	e.Amount = amount
	e.IncurredAt = incurredAt
	e.Description = description
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}
