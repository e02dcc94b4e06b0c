package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Invoice DTOs
// =============================================================================

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID        `json:"customer_id" binding:"required"`
	ContractID *uuid.UUID       `json:"contract_id"`
	IssueDate  time.Time        `json:"issue_date" binding:"required"`
	DueDate    time.Time        `json:"due_date" binding:"required"`
	Subtotal   decimal.Decimal  `json:"subtotal" binding:"required"`
	TaxRateID  *uuid.UUID       `json:"tax_rate_id"`
	TaxPercent *decimal.Decimal `json:"tax_percent"`
	Notes      string           `json:"notes"`
	CreatedBy  *uuid.UUID       `json:"-"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID         uuid.UUID       `json:"id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	ContractID *uuid.UUID      `json:"contract_id"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    time.Time       `json:"due_date"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToInvoiceResponse converts a domain invoice to a response
func ToInvoiceResponse(i *finance.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         i.ID,
		TenantID:   i.TenantID,
		Number:     i.Number,
		CustomerID: i.CustomerID,
		ContractID: i.ContractID,
		IssueDate:  i.IssueDate,
		DueDate:    i.DueDate,
		Subtotal:   i.Subtotal,
		TaxAmount:  i.TaxAmount,
		Total:      i.Total,
		Status:     string(i.Status),
		Notes:      i.Notes,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
		Version:    i.Version,
	}
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

// =============================================================================
// Expense and revenue DTOs
// =============================================================================

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IncurredAt  time.Time       `json:"incurred_at" binding:"required"`
	VehicleID   *uuid.UUID      `json:"vehicle_id"`
	Description string          `json:"description" binding:"max=500"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredAt  time.Time       `json:"incurred_at"`
	VehicleID   *uuid.UUID      `json:"vehicle_id"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToExpenseResponse converts a domain expense to a response
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		IncurredAt:  e.IncurredAt,
		VehicleID:   e.VehicleID,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// CreateRevenueRequest represents a request to record revenue
type CreateRevenueRequest struct {
	Source      string          `json:"source" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ReceivedAt  time.Time       `json:"received_at" binding:"required"`
	CustomerID  *uuid.UUID      `json:"customer_id"`
	ContractID  *uuid.UUID      `json:"contract_id"`
	Description string          `json:"description" binding:"max=500"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// RevenueResponse represents a revenue record in API responses
type RevenueResponse struct {
	ID          uuid.UUID       `json:"id"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	ReceivedAt  time.Time       `json:"received_at"`
	CustomerID  *uuid.UUID      `json:"customer_id"`
	ContractID  *uuid.UUID      `json:"contract_id"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToRevenueResponse converts a domain revenue record to a response
func ToRevenueResponse(r *finance.Revenue) RevenueResponse {
	return RevenueResponse{
		ID:          r.ID,
		Source:      string(r.Source),
		Amount:      r.Amount,
		ReceivedAt:  r.ReceivedAt,
		CustomerID:  r.CustomerID,
		ContractID:  r.ContractID,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// RecordListFilter represents filter options for expense and revenue lists
type RecordListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// =============================================================================
// Summary DTOs
// =============================================================================

// FinancialSummaryResponse aggregates income and spend for a period.
// It is computed on demand from the ledger, nothing is persisted.
type FinancialSummaryResponse struct {
	From         time.Time                  `json:"from"`
	To           time.Time                  `json:"to"`
	TotalIncome  decimal.Decimal            `json:"total_income"`
	TotalExpense decimal.Decimal            `json:"total_expense"`
	NetResult    decimal.Decimal            `json:"net_result"`
	ByCategory   map[string]decimal.Decimal `json:"by_category"`
	BySource     map[string]decimal.Decimal `json:"by_source"`
}

// =============================================================================
// Payment method and tax rate DTOs
// =============================================================================

// CreatePaymentMethodRequest represents a request to add a payment method
type CreatePaymentMethodRequest struct {
	Label string `json:"label" binding:"required,min=1,max=100"`
	Kind  string `json:"kind" binding:"required,oneof=cash card bank_transfer online"`
}

// PaymentMethodResponse represents a payment method in API responses
type PaymentMethodResponse struct {
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"`
	Kind     string    `json:"kind"`
	IsActive bool      `json:"is_active"`
}

// ToPaymentMethodResponse converts a domain payment method to a response
func ToPaymentMethodResponse(m *finance.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:       m.ID,
		Label:    m.Label,
		Kind:     string(m.Kind),
		IsActive: m.IsActive,
	}
}

// CreateTaxRateRequest represents a request to add a tax rate
type CreateTaxRateRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=100"`
	Percent   decimal.Decimal `json:"percent" binding:"required"`
	IsDefault bool            `json:"is_default"`
}

// TaxRateResponse represents a tax rate in API responses
type TaxRateResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Percent   decimal.Decimal `json:"percent"`
	IsDefault bool            `json:"is_default"`
}

// ToTaxRateResponse converts a domain tax rate to a response
func ToTaxRateResponse(t *finance.TaxRate) TaxRateResponse {
	return TaxRateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Percent:   t.Percent,
		IsDefault: t.IsDefault,
	}
}
