package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceFilter carries invoice-specific list criteria
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	Status     *InvoiceStatus
	From       *time.Time
	To         *time.Time
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Invoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (*shared.Paginated[*Invoice], error)
	Save(ctx context.Context, invoice *Invoice) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
}

// RecordFilter carries date-range criteria shared by expense and
// revenue listings
type RecordFilter struct {
	shared.Filter
	From *time.Time
	To   *time.Time
}

// ExpenseRepository persists expense records
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter RecordFilter) (*shared.Paginated[*Expense], error)
	Save(ctx context.Context, expense *Expense) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// RevenueRepository persists revenue records
type RevenueRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Revenue, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Revenue, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter RecordFilter) (*shared.Paginated[*Revenue], error)
	Save(ctx context.Context, revenue *Revenue) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// TransactionFilter carries ledger list criteria
type TransactionFilter struct {
	shared.Filter
	Type *TransactionType
	From *time.Time
	To   *time.Time
}

// TransactionTotals aggregates the ledger for a period
type TransactionTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// FinancialTransactionRepository persists ledger entries
type FinancialTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FinancialTransaction, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) (*shared.Paginated[*FinancialTransaction], error)
	Save(ctx context.Context, tx *FinancialTransaction) error
	TotalsForPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*TransactionTotals, error)
}

// PaymentMethodRepository persists payment methods
type PaymentMethodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PaymentMethod, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*PaymentMethod, error)
	Save(ctx context.Context, method *PaymentMethod) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// TaxRateRepository persists tax rates
type TaxRateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TaxRate, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*TaxRate, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*TaxRate, error)
	FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*TaxRate, error)
	Save(ctx context.Context, rate *TaxRate) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
