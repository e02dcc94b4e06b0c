package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// PaymentMethodKind classifies how a payment is settled
type PaymentMethodKind string

const (
	PaymentMethodCash         PaymentMethodKind = "cash"
	PaymentMethodCard         PaymentMethodKind = "card"
	PaymentMethodBankTransfer PaymentMethodKind = "bank_transfer"
	PaymentMethodOnline       PaymentMethodKind = "online"
)

// IsValid returns true if the kind is valid
func (k PaymentMethodKind) IsValid() bool {
	switch k {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodOnline:
		return true
	default:
		return false
	}
}

// PaymentMethod is a tenant-configured way of accepting payment
type PaymentMethod struct {
	shared.TenantAggregateRoot
	Label    string            `gorm:"type:varchar(100);not null"`
	Kind     PaymentMethodKind `gorm:"type:varchar(20);not null"`
	IsActive bool              `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// NewPaymentMethod creates a new active payment method
func NewPaymentMethod(tenantID uuid.UUID, label string, kind PaymentMethodKind) (*PaymentMethod, error) {
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Payment method label cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Invalid payment method kind")
	}

	method := &PaymentMethod{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Label:               label,
		Kind:                kind,
		IsActive:            true,
	}

	return method, nil
}

// Rename changes the display label
func (m *PaymentMethod) Rename(label string) error {
	if label == "" {
		return shared.NewDomainError("INVALID_LABEL", "Payment method label cannot be empty")
	}

	m.Label = label
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// Deactivate disables the payment method for new transactions
func (m *PaymentMethod) Deactivate() {
	m.IsActive = false
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Activate re-enables the payment method
func (m *PaymentMethod) Activate() {
	m.IsActive = true
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}
