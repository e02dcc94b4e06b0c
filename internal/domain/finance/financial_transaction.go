package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money in from money out
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ReferenceType names the aggregate a transaction originated from
type ReferenceType string

const (
	ReferenceTypeInvoice ReferenceType = "invoice"
	ReferenceTypeExpense ReferenceType = "expense"
	ReferenceTypeRevenue ReferenceType = "revenue"
	ReferenceTypeManual  ReferenceType = "manual"
)

// FinancialTransaction is the unified ledger entry written whenever
// money moves. Income and expense records both project into it so the
// summary endpoints can aggregate a single table.
type FinancialTransaction struct {
	shared.TenantAggregateRoot
	Type            TransactionType `gorm:"type:varchar(10);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OccurredAt      time.Time       `gorm:"not null;index"`
	ReferenceType   ReferenceType   `gorm:"type:varchar(20);not null"`
	ReferenceID     *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethodID *uuid.UUID      `gorm:"type:uuid;index"`
	Description     string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (FinancialTransaction) TableName() string {
	return "financial_transactions"
}

// NewFinancialTransaction creates a new ledger entry
func NewFinancialTransaction(tenantID uuid.UUID, txType TransactionType, amount decimal.Decimal, occurredAt time.Time, refType ReferenceType, refID *uuid.UUID, description string) (*FinancialTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid transaction type")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	tx := &FinancialTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                txType,
		Amount:              amount,
		OccurredAt:          occurredAt,
		ReferenceType:       refType,
		ReferenceID:         refID,
		Description:         description,
	}

	return tx, nil
}

// SetPaymentMethod records which payment method settled the transaction
func (t *FinancialTransaction) SetPaymentMethod(methodID uuid.UUID) {
	t.PaymentMethodID = &methodID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SignedAmount returns the amount negated for expense entries
func (t *FinancialTransaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
