package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// CustomerProfileRepository defines the interface for customer profile persistence
type CustomerProfileRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerProfile, error)

	// FindByIDForTenant finds a customer by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CustomerProfile, error)

	// FindByCode finds a customer by code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*CustomerProfile, error)

	// FindAllForTenant finds all customers for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CustomerProfile, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *CustomerProfile) error

	// DeleteForTenant deletes a customer within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts customers for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts customers by status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status CustomerStatus) (int64, error)

	// ExistsByCode checks if a customer with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// ExistsByEmail checks if a customer with the given email exists in the tenant
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}

// ContractFilter defines filtering options for contract queries
type ContractFilter struct {
	shared.Filter
	CustomerID *uuid.UUID      // Filter by customer
	VehicleID  *uuid.UUID      // Filter by vehicle
	Status     *ContractStatus // Filter by status
	StartFrom  *time.Time      // Filter by start date range start
	StartTo    *time.Time      // Filter by start date range end
}

// ContractRepository defines the interface for rental contract persistence
type ContractRepository interface {
	// FindByID finds a contract by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)

	// FindByIDForTenant finds a contract by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Contract, error)

	// FindByNumber finds a contract by number within a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Contract, error)

	// FindAllForTenant finds all contracts for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ContractFilter) ([]Contract, error)

	// FindByCustomer finds all contracts for a customer
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]Contract, error)

	// Save creates or updates a contract
	Save(ctx context.Context, contract *Contract) error

	// DeleteForTenant deletes a contract within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts contracts for a tenant with filtering
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ContractFilter) (int64, error)
}

// CommunicationLogRepository defines the interface for communication log persistence
type CommunicationLogRepository interface {
	// FindByIDForTenant finds a log entry by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CommunicationLog, error)

	// FindByCustomer finds all log entries for a customer, newest first
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]CommunicationLog, error)

	// Save creates a log entry. Entries are append-only and never updated.
	Save(ctx context.Context, log *CommunicationLog) error

	// CountByCustomer counts log entries for a customer
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
}
