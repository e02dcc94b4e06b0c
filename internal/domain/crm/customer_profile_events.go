package crm

import (
	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomerProfile = "CustomerProfile"

// Event type constants
const (
	EventTypeCustomerCreated       = "CustomerCreated"
	EventTypeCustomerUpdated       = "CustomerUpdated"
	EventTypeCustomerStatusChanged = "CustomerStatusChanged"
)

// CustomerCreatedEvent is published when a new customer profile is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	FullName   string    `json:"full_name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *CustomerProfile) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomerProfile, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		FullName:        customer.FullName,
	}
}

// CustomerUpdatedEvent is published when a customer profile is updated
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *CustomerProfile) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomerProfile, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		FullName:        customer.FullName,
		Phone:           customer.Phone,
		Email:           customer.Email,
	}
}

// CustomerStatusChangedEvent is published when a customer's status changes
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID      `json:"customer_id"`
	OldStatus  CustomerStatus `json:"old_status"`
	NewStatus  CustomerStatus `json:"new_status"`
}

// NewCustomerStatusChangedEvent creates a new CustomerStatusChangedEvent
func NewCustomerStatusChangedEvent(customer *CustomerProfile, oldStatus, newStatus CustomerStatus) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, AggregateTypeCustomerProfile, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
