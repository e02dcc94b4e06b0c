package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/crm"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a customer profile
type CreateCustomerRequest struct {
	Code          string     `json:"code" binding:"required,min=1,max=50"`
	FullName      string     `json:"full_name" binding:"required,min=1,max=200"`
	Email         string     `json:"email" binding:"omitempty,email,max=255"`
	Phone         string     `json:"phone" binding:"max=50"`
	LicenseNumber string     `json:"license_number" binding:"max=50"`
	Address       string     `json:"address" binding:"max=500"`
	City          string     `json:"city" binding:"max=100"`
	PostalCode    string     `json:"postal_code" binding:"max=20"`
	Notes         string     `json:"notes"`
	Attributes    string     `json:"attributes"`
	CreatedBy     *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// UpdateCustomerRequest represents a request to update a customer profile
type UpdateCustomerRequest struct {
	FullName      *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Email         *string `json:"email" binding:"omitempty,email,max=255"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	LicenseNumber *string `json:"license_number" binding:"omitempty,max=50"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	PostalCode    *string `json:"postal_code" binding:"omitempty,max=20"`
	Notes         *string `json:"notes"`
	Attributes    *string `json:"attributes"`
}

// CustomerResponse represents a customer profile in API responses
type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Code          string    `json:"code"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postal_code"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	Attributes    string    `json:"attributes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// ToCustomerResponse converts a domain customer profile to a response
func ToCustomerResponse(c *crm.CustomerProfile) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		TenantID:      c.TenantID,
		Code:          c.Code,
		FullName:      c.FullName,
		Email:         c.Email,
		Phone:         c.Phone,
		LicenseNumber: c.LicenseNumber,
		Address:       c.Address,
		City:          c.City,
		PostalCode:    c.PostalCode,
		Status:        string(c.Status),
		Notes:         c.Notes,
		Attributes:    c.Attributes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Version:       c.Version,
	}
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	City     string `form:"city"`
}

// =============================================================================
// Contract DTOs
// =============================================================================

// CreateContractRequest represents a request to create a rental contract
type CreateContractRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	VehicleID  uuid.UUID       `json:"vehicle_id" binding:"required"`
	StartDate  time.Time       `json:"start_date" binding:"required"`
	EndDate    time.Time       `json:"end_date" binding:"required"`
	DailyRate  decimal.Decimal `json:"daily_rate" binding:"required"`
	CreatedBy  *uuid.UUID      `json:"-"`
}

// RescheduleContractRequest represents a request to change contract dates
type RescheduleContractRequest struct {
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Number      string          `json:"number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	VehicleID   uuid.UUID       `json:"vehicle_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToContractResponse converts a domain contract to a response
func ToContractResponse(c *crm.Contract) ContractResponse {
	return ContractResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Number:      c.Number,
		CustomerID:  c.CustomerID,
		VehicleID:   c.VehicleID,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		DailyRate:   c.DailyRate,
		TotalAmount: c.TotalAmount,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
}

// ContractListFilter represents filter options for the contract list
type ContractListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	CustomerID *uuid.UUID `form:"customer_id"`
	VehicleID  *uuid.UUID `form:"vehicle_id"`
	Status     string     `form:"status"`
}

// CustomerStatisticsResponse aggregates customer counts and contract value
// for a tenant
type CustomerStatisticsResponse struct {
	ActiveCustomers   int64                      `json:"active_customers"`
	InactiveCustomers int64                      `json:"inactive_customers"`
	TotalCustomers    int64                      `json:"total_customers"`
	ContractedAmount  decimal.Decimal            `json:"contracted_amount"`
	ByContractStatus  map[string]decimal.Decimal `json:"by_contract_status"`
}

// =============================================================================
// Communication log DTOs
// =============================================================================

// LogCommunicationRequest represents a request to record a customer touchpoint
type LogCommunicationRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" binding:"required"`
	Channel    string     `json:"channel" binding:"required,oneof=phone email sms in_person"`
	Subject    string     `json:"subject" binding:"required,min=1,max=200"`
	Body       string     `json:"body"`
	LoggedAt   *time.Time `json:"logged_at"`
	CreatedBy  *uuid.UUID `json:"-"`
}

// CommunicationResponse represents a communication log entry in API responses
type CommunicationResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Channel    string    `json:"channel"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	LoggedAt   time.Time `json:"logged_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToCommunicationResponse converts a domain log entry to a response
func ToCommunicationResponse(l *crm.CommunicationLog) CommunicationResponse {
	return CommunicationResponse{
		ID:         l.ID,
		CustomerID: l.CustomerID,
		Channel:    string(l.Channel),
		Subject:    l.Subject,
		Body:       l.Body,
		LoggedAt:   l.LoggedAt,
		CreatedAt:  l.CreatedAt,
	}
}
