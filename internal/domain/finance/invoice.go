package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// IsValid returns true if the status is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	default:
		return false
	}
}

// IsFinal returns true if the status is a terminal state
func (s InvoiceStatus) IsFinal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoid
}

// Invoice represents a customer invoice
type Invoice struct {
	shared.TenantAggregateRoot
	Number     string          `gorm:"type:varchar(50);not null;index"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContractID *uuid.UUID      `gorm:"type:uuid;index"`
	IssueDate  time.Time       `gorm:"not null"`
	DueDate    time.Time       `gorm:"not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status     InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new draft invoice. TaxAmount is derived from the
// given tax rate percentage applied to the subtotal.
func NewInvoice(tenantID uuid.UUID, number string, customerID uuid.UUID, issueDate, dueDate time.Time, subtotal, taxPercent decimal.Decimal) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Invoice requires a customer")
	}
	if subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice subtotal cannot be negative")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede issue date")
	}

	tax := subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100))

	invoice := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		IssueDate:           issueDate,
		DueDate:             dueDate,
		Subtotal:            subtotal,
		TaxAmount:           tax,
		Total:               subtotal.Add(tax),
		Status:              InvoiceStatusDraft,
	}

	return invoice, nil
}

// AttachContract links the invoice to a rental contract
func (i *Invoice) AttachContract(contractID uuid.UUID) {
	i.ContractID = &contractID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// Issue moves a draft invoice to issued
func (i *Invoice) Issue() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be issued")
	}

	i.Status = InvoiceStatusIssued
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// MarkPaid marks an issued invoice as paid
func (i *Invoice) MarkPaid() error {
	if i.Status != InvoiceStatusIssued {
		return shared.NewDomainError("INVALID_STATE", "Only issued invoices can be marked paid")
	}

	i.Status = InvoiceStatusPaid
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Void voids a draft or issued invoice
func (i *Invoice) Void() error {
	if i.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already finalised")
	}

	i.Status = InvoiceStatusVoid
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsOverdue returns true if the invoice is issued and past its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoiceStatusIssued && now.After(i.DueDate)
}
